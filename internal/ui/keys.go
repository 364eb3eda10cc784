package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"tagtodo/internal/config"
)

type keymap struct {
	quit      key.Binding
	add       key.Binding
	search    key.Binding
	up        key.Binding
	down      key.Binding
	pageUp    key.Binding
	pageDown  key.Binding
	toggle    key.Binding
	del       key.Binding
	edit      key.Binding
	tagSearch key.Binding
	filter    key.Binding
	clearDone key.Binding
	nextField key.Binding
	confirm   key.Binding
	cancel    key.Binding
	prioNext  key.Binding
	prioPrev  key.Binding
}

func newKeymap(k config.Keymap) keymap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label(keys[0]), help))
	}
	return keymap{
		quit:      bind("quit", k.Quit),
		add:       bind("new task", k.Add),
		search:    bind("search", k.Search),
		up:        bind("up", k.Up, "up"),
		down:      bind("down", k.Down, "down"),
		pageUp:    bind("page up", k.PageUp),
		pageDown:  bind("page down", k.PageDown),
		toggle:    bind("toggle", k.Toggle),
		del:       bind("delete", k.Delete),
		edit:      bind("edit", k.Edit, k.Confirm),
		tagSearch: bind("search tag", k.TagSearch),
		filter:    bind("filter", k.FilterNext),
		clearDone: bind("clear done", k.ClearDone),
		nextField: bind("next field", k.NextField),
		confirm:   bind("save", k.Confirm),
		cancel:    bind("back", k.Cancel),
		prioNext:  bind("priority", k.PriorityFwd),
		prioPrev:  bind("priority", k.PriorityBck),
	}
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keymap) listHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.toggle, k.edit, k.del, k.tagSearch, k.filter, k.clearDone, k.add, k.search, k.quit}
}

func (k keymap) composerHelp() []key.Binding {
	return []key.Binding{k.confirm, k.nextField, k.prioNext, k.search, k.cancel}
}

func (k keymap) editHelp() []key.Binding {
	return []key.Binding{k.confirm, k.nextField, k.cancel}
}
