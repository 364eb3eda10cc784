package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"tagtodo/internal/task"
)

type focus int

const (
	focusList focus = iota
	focusTitle
	focusDue
	focusPriority
	focusSearch
)

// composer holds the new-task inputs. Title and due are cleared after a
// successful add; the priority selection carries over.
type composer struct {
	title    textinput.Model
	due      textinput.Model
	priority task.Priority
}

func newComposer() composer {
	title := textinput.New()
	title.Placeholder = "What's the plan? Use tags like #work #home"
	title.CharLimit = 256
	title.Width = 40

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.Width = 10
	due.Prompt = ""

	return composer{title: title, due: due, priority: task.PriorityMedium}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search…"
	ti.CharLimit = 128
	ti.Width = 20
	ti.Prompt = ""
	return ti
}

// dueValue validates the due field: empty, or a calendar date.
func (c composer) dueValue() (string, bool) {
	v := strings.TrimSpace(c.due.Value())
	if v == "" {
		return "", true
	}
	if _, err := time.Parse(task.DateLayout, v); err != nil {
		return "", false
	}
	return v, true
}

func (c *composer) reset() {
	c.title.SetValue("")
	c.due.SetValue("")
}

// nextFocus cycles title -> due -> priority -> search -> title.
func nextFocus(f focus) focus {
	switch f {
	case focusTitle:
		return focusDue
	case focusDue:
		return focusPriority
	case focusPriority:
		return focusSearch
	default:
		return focusTitle
	}
}
