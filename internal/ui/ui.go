package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"tagtodo/internal/config"
	"tagtodo/internal/task"
	"tagtodo/internal/virtual"
)

// chromeHeight is the number of lines View draws around the list area.
const chromeHeight = 9

type Model struct {
	repo       *task.Repository
	cfg        config.Config
	keys       keymap
	help       help.Model
	list       *virtual.List
	cursor     int
	focus      focus
	composer   composer
	search     textinput.Model
	debounce   debouncer
	edit       *editState
	pendingDel *task.Task
	status     string
	width      int
}

func New(repo *task.Repository, cfg config.Config) Model {
	search := newSearchInput()
	search.SetValue(repo.State().Search)

	m := Model{
		repo:     repo,
		cfg:      cfg,
		keys:     newKeymap(cfg.Keys),
		help:     help.New(),
		list:     virtual.New(cfg.RowHeight, cfg.Overscan),
		focus:    focusList,
		composer: newComposer(),
		search:   search,
		debounce: debouncer{delay: time.Duration(cfg.SearchDebounceMS) * time.Millisecond},
		status:   fmt.Sprintf("Press %s to add a task, %s to search.", label(cfg.Keys.Add), label(cfg.Keys.Search)),
	}
	m.sync()
	return m
}

func Run(repo *task.Repository, cfg config.Config) error {
	program := tea.NewProgram(New(repo, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.composer.title.Width = max(10, msg.Width-10)
		if m.list.Resize(msg.Width, max(0, msg.Height-chromeHeight)) {
			m.list.EnsureVisible(m.cursor)
		}
		return m, nil
	case searchDebounceMsg:
		if m.debounce.Take(msg) {
			m.applySearch(msg.query)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.pendingDel != nil {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.edit != nil {
			return m.updateEdit(msg)
		}
		switch m.focus {
		case focusList:
			return m.updateList(msg)
		case focusSearch:
			return m.updateSearch(msg)
		default:
			return m.updateComposer(msg)
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.debounce.Cancel()
	return m, tea.Quit
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.quit):
		return m.quit()
	case key.Matches(msg, k.down):
		m.moveCursor(1)
	case key.Matches(msg, k.up):
		m.moveCursor(-1)
	case key.Matches(msg, k.pageDown):
		m.moveCursor(m.list.PageRows())
	case key.Matches(msg, k.pageUp):
		m.moveCursor(-m.list.PageRows())
	case key.Matches(msg, k.add):
		return m.focusOn(focusTitle)
	case key.Matches(msg, k.search):
		return m.focusOn(focusSearch)
	case key.Matches(msg, k.toggle):
		if t, ok := m.selected(); ok {
			m.repo.Toggle(t.ID)
			m.sync()
			m.status = "Toggled task"
		}
	case key.Matches(msg, k.del):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !m.cfg.ConfirmDelete {
			m.repo.Delete(t.ID)
			m.sync()
			m.status = "Deleted task"
			return m, nil
		}
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	case key.Matches(msg, k.edit):
		if t, ok := m.selected(); ok {
			var cmd tea.Cmd
			m.edit, cmd = newEditState(t, m.width)
			m.status = "Editing: enter to save, esc to cancel"
			return m, cmd
		}
	case key.Matches(msg, k.tagSearch):
		m.searchSelectedTag()
	case key.Matches(msg, k.filter):
		m.setFilter(m.repo.State().Filter.Next())
	case key.Matches(msg, k.clearDone):
		m.repo.ClearCompleted()
		m.sync()
		m.status = "Cleared completed tasks"
	default:
		switch msg.String() {
		case "1", "2", "3":
			m.setFilter(task.Filters[int(msg.String()[0]-'1')])
		}
	}
	return m, nil
}

func (m Model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.cancel):
		return m.focusOn(focusList)
	case key.Matches(msg, k.search):
		return m.focusOn(focusSearch)
	case key.Matches(msg, k.nextField):
		return m.focusOn(nextFocus(m.focus))
	case key.Matches(msg, k.confirm):
		return m.submit()
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.composer.title, cmd = m.composer.title.Update(msg)
	case focusDue:
		m.composer.due, cmd = m.composer.due.Update(msg)
	case focusPriority:
		switch {
		case key.Matches(msg, k.prioNext):
			m.composer.priority = m.composer.priority.Next(1)
		case key.Matches(msg, k.prioPrev):
			m.composer.priority = m.composer.priority.Next(-1)
		default:
			if p, ok := task.ParsePriority(msg.String()); ok {
				m.composer.priority = p
			}
		}
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	due, ok := m.composer.dueValue()
	if !ok {
		m.status = "Due date must be YYYY-MM-DD"
		return m, nil
	}
	id := m.repo.Add(m.composer.title.Value(), due, m.composer.priority)
	if id == "" {
		return m, nil
	}
	m.composer.reset()
	m.cursor = 0
	m.follow(id)
	m.status = "Added task"
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.cancel):
		return m.focusOn(focusList)
	case key.Matches(msg, k.nextField):
		return m.focusOn(nextFocus(focusSearch))
	case key.Matches(msg, k.confirm):
		m.debounce.Cancel()
		m.applySearch(m.search.Value())
		return m.focusOn(focusList)
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	tick := m.debounce.Schedule(m.search.Value())
	return m, tea.Batch(cmd, tick)
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.cancel):
		m.edit = nil
		m.status = "Edit cancelled"
		return m, nil
	case key.Matches(msg, k.confirm), key.Matches(msg, k.nextField):
		m.commitEdit()
		return m, nil
	case key.Matches(msg, k.search):
		m.commitEdit()
		return m.focusOn(focusSearch)
	}
	var cmd tea.Cmd
	m.edit.input, cmd = m.edit.input.Update(msg)
	return m, cmd
}

// commitEdit leaves edit mode, saving the buffer only when it holds a
// non-empty title that differs from the task's current one.
func (m *Model) commitEdit() {
	e := m.edit
	m.edit = nil
	t, ok := m.repo.Find(e.taskID)
	if !ok {
		return
	}
	title, changed := commitValue(t.Title, e.input.Value())
	if !changed {
		m.status = "No changes"
		return
	}
	m.repo.Update(t.ID, task.Patch{Title: &title})
	m.follow(t.ID)
	m.status = "Saved task"
}

func (m Model) updateDeleteConfirm(answer string) (tea.Model, tea.Cmd) {
	switch answer {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		m.repo.Delete(m.pendingDel.ID)
		m.pendingDel = nil
		m.sync()
		m.status = "Deleted task"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) focusOn(f focus) (tea.Model, tea.Cmd) {
	m.composer.title.Blur()
	m.composer.due.Blur()
	m.search.Blur()
	m.focus = f

	var cmd tea.Cmd
	switch f {
	case focusTitle:
		cmd = m.composer.title.Focus()
		m.status = "New task: enter to add, tab for due date and priority"
	case focusDue:
		cmd = m.composer.due.Focus()
		m.status = "Due date (optional): YYYY-MM-DD"
	case focusPriority:
		m.status = "Priority: left/right or l/m/h"
	case focusSearch:
		cmd = m.search.Focus()
		m.status = "Search: type to narrow the list, enter or esc to return"
	case focusList:
		m.status = ""
	}
	return m, cmd
}

func (m *Model) setFilter(f task.Filter) {
	m.repo.SetFilter(f)
	m.sync()
	m.status = "Showing " + strings.ToLower(f.Label())
}

func (m *Model) applySearch(q string) {
	sel, ok := m.selected()
	m.repo.SetSearch(q)
	if ok {
		m.follow(sel.ID)
		return
	}
	m.sync()
}

// searchSelectedTag searches by the selected task's first tag; pressing it
// again while searching one of its tags moves on to the next tag.
func (m *Model) searchSelectedTag() {
	t, ok := m.selected()
	if !ok || len(t.Tags) == 0 {
		m.status = "No tags on this task"
		return
	}
	next := t.Tags[0]
	cur := m.repo.State().Search
	for i, tag := range t.Tags {
		if tag == cur {
			next = t.Tags[(i+1)%len(t.Tags)]
			break
		}
	}
	m.debounce.Cancel()
	m.search.SetValue(next)
	m.applySearch(next)
	m.status = "Searching #" + next
}

func (m Model) selected() (task.Task, bool) {
	vis := m.repo.Visible()
	if len(vis) == 0 {
		return task.Task{}, false
	}
	return vis[clampCursor(m.cursor, len(vis))], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor = clampCursor(m.cursor+delta, len(m.repo.Visible()))
	m.list.EnsureVisible(m.cursor)
}

// sync re-derives the visible list and keeps the cursor in range and on screen.
func (m *Model) sync() {
	vis := m.repo.Visible()
	m.list.SetCount(len(vis))
	m.cursor = clampCursor(m.cursor, len(vis))
	m.list.EnsureVisible(m.cursor)
}

// follow moves the cursor onto task id if it is visible.
func (m *Model) follow(id string) {
	for i, t := range m.repo.Visible() {
		if t.ID == id {
			m.cursor = i
			break
		}
	}
	m.sync()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("My Tasks"))
	b.WriteString("\n\n")
	b.WriteString(m.fieldLabel("Add ", focusTitle))
	b.WriteString(m.composer.title.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel("Due ", focusDue))
	b.WriteString(m.composer.due.View())
	b.WriteString("  ")
	b.WriteString(m.fieldLabel("Priority ", focusPriority))
	b.WriteString(m.renderPriority())
	b.WriteString("  ")
	b.WriteString(m.fieldLabel("Search ", focusSearch))
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderToolbar())
	b.WriteString("\n")
	b.WriteString(m.rule())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.rule())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.helpKeys()))

	return b.String()
}

func (m Model) renderList() string {
	vp := m.list.Viewport()
	if !vp.Ready() {
		return ""
	}
	vis := m.repo.Visible()
	if len(vis) == 0 {
		lines := make([]string, vp.Height)
		lines[0] = ansi.Truncate(mutedStyle.Render("Nothing here yet"), vp.Width, "")
		return strings.Join(lines, "\n")
	}
	return m.list.Render(func(i int) string {
		if i >= len(vis) {
			return ""
		}
		return renderItem(vis[i], i == m.cursor && m.focus == focusList, m.edit, m.list.RowHeight())
	})
}

func (m Model) renderToolbar() string {
	cur := m.repo.State().Filter
	tabs := make([]string, 0, len(task.Filters))
	for i, f := range task.Filters {
		name := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == cur {
			tabs = append(tabs, activeTab.Render(name))
		} else {
			tabs = append(tabs, inactiveTab.Render(name))
		}
	}
	right := []string{m.repo.Summary().String()}
	if n := m.list.Count(); n > m.list.PageRows() {
		right = append(right, fmt.Sprintf("row %d of %d", m.cursor+1, n))
	}
	right = append(right, label(m.cfg.Keys.ClearDone)+" clear done")
	return strings.Join(tabs, "  ") + "    " + mutedStyle.Render(strings.Join(right, " • "))
}

func (m Model) renderPriority() string {
	p := m.composer.priority
	return "< " + priorityStyles[p].Render(p.Label()) + " >"
}

func (m Model) fieldLabel(name string, f focus) string {
	if m.focus == f {
		return focusedLabel.Render(name)
	}
	return mutedStyle.Render(name)
}

func (m Model) rule() string {
	w := m.width
	if w <= 0 {
		w = 40
	}
	return mutedStyle.Render(strings.Repeat("─", w))
}

func (m Model) helpKeys() []key.Binding {
	switch {
	case m.edit != nil:
		return m.keys.editHelp()
	case m.focus == focusList:
		return m.keys.listHelp()
	default:
		return m.keys.composerHelp()
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
