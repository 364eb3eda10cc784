package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tagtodo/internal/task"
)

// editState is the transient buffer of a row in edit mode. It is never
// authoritative: it is committed through Repository.Update or dropped.
type editState struct {
	taskID string
	input  textinput.Model
}

// newEditState returns the focused edit buffer and the cursor blink command.
func newEditState(t task.Task, width int) (*editState, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = max(10, width-8)
	ti.SetValue(t.Title)
	ti.CursorEnd()
	cmd := ti.Focus()
	return &editState{taskID: t.ID, input: ti}, cmd
}

// commitValue returns the trimmed buffer and true only when it is non-empty
// and differs from the original title.
func commitValue(original, buffer string) (string, bool) {
	v := strings.TrimSpace(buffer)
	if v == "" || v == original {
		return "", false
	}
	return v, true
}

// renderItem draws one task as rowHeight lines: the title line, the meta
// line (priority, due, tags) and padding.
func renderItem(t task.Task, selected bool, edit *editState, rowHeight int) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}
	checkbox := "[ ]"
	if t.Done {
		checkbox = "[x]"
	}

	var title string
	switch {
	case edit != nil && edit.taskID == t.ID:
		title = edit.input.View()
	case t.Done:
		title = doneStyle.Render(t.Title)
	default:
		title = titleStyle.Render(t.Title)
	}
	head := marker + checkbox + " " + title

	meta := []string{priorityStyles[t.Priority].Render(t.Priority.Label())}
	if due := t.DueLabel(); due != "" {
		meta = append(meta, dateChipStyle.Render(due))
	}
	for _, tag := range t.Tags {
		meta = append(meta, chipStyle.Render("#"+tag))
	}
	metaLine := strings.Join(meta, " ")

	if rowHeight <= 1 {
		return head + "  " + metaLine
	}
	lines := make([]string, rowHeight)
	lines[0] = head
	lines[1] = "      " + metaLine
	return strings.Join(lines, "\n")
}
