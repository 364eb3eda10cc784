package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type searchDebounceMsg struct {
	seq   int
	query string
}

// debouncer coalesces search keystrokes. Each Schedule supersedes the
// previous pending tick; only a message carrying the latest seq applies.
type debouncer struct {
	delay time.Duration
	seq   int
}

func (d *debouncer) Schedule(query string) tea.Cmd {
	d.seq++
	seq := d.seq
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
}

// Cancel invalidates any pending tick.
func (d *debouncer) Cancel() { d.seq++ }

// Take reports whether msg is the pending tick and consumes it.
func (d *debouncer) Take(msg searchDebounceMsg) bool {
	if msg.seq != d.seq {
		return false
	}
	d.seq++
	return true
}
