package task

import (
	"strings"
	"time"
)

// The commands below never modify the state they are given; each returns
// a new AppState whose Items slice is freshly allocated.

// Patch carries optional field replacements for UpdateTask.
type Patch struct {
	Title    *string
	Done     *bool
	Due      *string
	Priority *Priority
}

// AddTask prepends a task built from rawInput. Blank input is a no-op.
func AddTask(s AppState, id, rawInput, due string, p Priority) AppState {
	raw := strings.TrimSpace(rawInput)
	if raw == "" {
		return s
	}
	p, _ = ParsePriority(string(p))
	title := StripTags(raw)
	if title == "" {
		title = raw
	}
	t := Task{
		ID:       id,
		Title:    title,
		Due:      normalizeDue(due),
		Priority: p,
		Tags:     ExtractTags(raw),
	}
	items := make([]Task, 0, len(s.Items)+1)
	items = append(items, t)
	items = append(items, cloneItems(s.Items)...)
	s.Items = items
	return s
}

func ToggleTask(s AppState, id string) AppState {
	return mapTask(s, id, func(t Task) Task {
		t.Done = !t.Done
		return t
	})
}

func DeleteTask(s AppState, id string) AppState {
	return keep(s, func(t Task) bool { return t.ID != id })
}

// normalizeDue trims due and drops anything that is not a calendar date.
func normalizeDue(due string) string {
	due = strings.TrimSpace(due)
	if _, err := time.Parse(DateLayout, due); err != nil {
		return ""
	}
	return due
}

// clean trims a new title and due date. A blank title or unknown priority
// is dropped from the patch; a due date that does not parse clears it.
func (p Patch) clean() Patch {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = nil
		if title != "" {
			p.Title = &title
		}
	}
	if p.Due != nil {
		due := normalizeDue(*p.Due)
		p.Due = &due
	}
	if p.Priority != nil {
		prio, ok := ParsePriority(string(*p.Priority))
		p.Priority = nil
		if ok {
			p.Priority = &prio
		}
	}
	return p
}

func (p Patch) empty() bool {
	return p.Title == nil && p.Done == nil && p.Due == nil && p.Priority == nil
}

// UpdateTask merges patch into the task with id. A new title also
// re-extracts tags from that title; tags are otherwise untouched.
func UpdateTask(s AppState, id string, patch Patch) AppState {
	patch = patch.clean()
	if patch.empty() {
		return s
	}
	return mapTask(s, id, func(t Task) Task {
		if patch.Title != nil {
			t.Title = *patch.Title
			t.Tags = ExtractTags(*patch.Title)
		}
		if patch.Done != nil {
			t.Done = *patch.Done
		}
		if patch.Due != nil {
			t.Due = *patch.Due
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		return t
	})
}

func ClearCompleted(s AppState) AppState {
	return keep(s, func(t Task) bool { return !t.Done })
}

func SetFilter(s AppState, f Filter) AppState {
	s.Filter = f
	s.Items = cloneItems(s.Items)
	return s
}

func SetSearch(s AppState, text string) AppState {
	s.Search = normalizeSearch(text)
	s.Items = cloneItems(s.Items)
	return s
}

func normalizeSearch(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func mapTask(s AppState, id string, fn func(Task) Task) AppState {
	idx := -1
	for i, t := range s.Items {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}
	items := cloneItems(s.Items)
	items[idx] = fn(items[idx])
	s.Items = items
	return s
}

func keep(s AppState, pred func(Task) bool) AppState {
	items := make([]Task, 0, len(s.Items))
	for _, t := range s.Items {
		if pred(t) {
			items = append(items, cloneTask(t))
		}
	}
	s.Items = items
	return s
}

func cloneItems(items []Task) []Task {
	out := make([]Task, len(items))
	for i, t := range items {
		out[i] = cloneTask(t)
	}
	return out
}

func cloneTask(t Task) Task {
	if t.Tags != nil {
		t.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	}
	return t
}
