package task

import (
	"fmt"
	"strings"
)

// VisibleTasks narrows s.Items by the status filter and then by search.
func VisibleTasks(s AppState) []Task {
	out := make([]Task, 0, len(s.Items))
	for _, t := range s.Items {
		if !matchesFilter(t, s.Filter) {
			continue
		}
		if s.Search != "" && !matchesSearch(t, s.Search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesFilter(t Task, f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Done
	case FilterDone:
		return t.Done
	default:
		return true
	}
}

func matchesSearch(t Task, search string) bool {
	hay := strings.ToLower(t.Title + " " + strings.Join(t.Tags, " "))
	return strings.Contains(hay, search)
}

type Summary struct {
	Done  int
	Total int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d / %d", s.Done, s.Total)
}

func CompletionSummary(s AppState) Summary {
	sum := Summary{Total: len(s.Items)}
	for _, t := range s.Items {
		if t.Done {
			sum.Done++
		}
	}
	return sum
}

type visibleKey struct {
	rev    uint64
	filter Filter
	search string
}

// Deriver memoizes VisibleTasks and CompletionSummary. rev identifies an
// Items value: callers bump it whenever Items is replaced. The visible list
// is keyed on (rev, filter, search) and the summary on rev alone.
type Deriver struct {
	visKey   visibleKey
	visible  []Task
	hasVis   bool
	sumRev   uint64
	summary  Summary
	hasSum   bool
	computed int
}

// Visible returns the cached slice while the key is unchanged; callers
// must not modify it.
func (d *Deriver) Visible(s AppState, rev uint64) []Task {
	key := visibleKey{rev: rev, filter: s.Filter, search: s.Search}
	if d.hasVis && d.visKey == key {
		return d.visible
	}
	d.visible = VisibleTasks(s)
	d.visKey = key
	d.hasVis = true
	d.computed++
	return d.visible
}

func (d *Deriver) Summary(s AppState, rev uint64) Summary {
	if d.hasSum && d.sumRev == rev {
		return d.summary
	}
	d.summary = CompletionSummary(s)
	d.sumRev = rev
	d.hasSum = true
	d.computed++
	return d.summary
}
