// Package virtual renders fixed-height rows of a long list, materializing
// only the rows that intersect the viewport plus an overscan margin.
package virtual

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Viewport is the measured list area in terminal cells. Zero in either
// dimension means it has not been measured yet.
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Ready() bool { return v.Width > 0 && v.Height > 0 }

// Range is an inclusive index range. Last < First means empty.
type Range struct {
	First int
	Last  int
}

var emptyRange = Range{First: 0, Last: -1}

func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

func (r Range) Contains(i int) bool { return i >= r.First && i <= r.Last }

// VisibleRange returns the rows of height rowHeight that intersect
// [offset, offset+height), widened by overscan rows on each side and
// clamped to [0, count).
func VisibleRange(count, rowHeight, offset, height, overscan int) Range {
	if count <= 0 || rowHeight <= 0 || height <= 0 {
		return emptyRange
	}
	if offset < 0 {
		offset = 0
	}
	start := offset / rowHeight
	stop := (offset + height - 1) / rowHeight
	if start > count-1 {
		start = count - 1
	}
	first := max(0, start-overscan)
	last := min(count-1, stop+overscan)
	return Range{First: first, Last: last}
}

type List struct {
	rowHeight int
	overscan  int
	viewport  Viewport
	offset    int
	count     int
}

func New(rowHeight, overscan int) *List {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if overscan < 0 {
		overscan = 0
	}
	return &List{rowHeight: rowHeight, overscan: overscan}
}

// Resize records a new measurement and reports whether it changed anything.
func (l *List) Resize(width, height int) bool {
	vp := Viewport{Width: max(0, width), Height: max(0, height)}
	if vp == l.viewport {
		return false
	}
	l.viewport = vp
	l.clamp()
	return true
}

func (l *List) Viewport() Viewport { return l.viewport }

func (l *List) SetCount(n int) {
	l.count = max(0, n)
	l.clamp()
}

func (l *List) Count() int { return l.count }

func (l *List) RowHeight() int { return l.rowHeight }

func (l *List) Offset() int { return l.offset }

// TotalHeight is the full scrollable height, count*rowHeight.
func (l *List) TotalHeight() int { return l.count * l.rowHeight }

func (l *List) ScrollTo(offset int) {
	l.offset = offset
	l.clamp()
}

func (l *List) ScrollBy(delta int) { l.ScrollTo(l.offset + delta) }

// EnsureVisible scrolls the minimum amount needed to show row index fully.
func (l *List) EnsureVisible(index int) {
	if index < 0 || index >= l.count {
		return
	}
	top := index * l.rowHeight
	bottom := top + l.rowHeight
	switch {
	case top < l.offset:
		l.offset = top
	case bottom > l.offset+l.viewport.Height:
		l.offset = bottom - l.viewport.Height
	}
	l.clamp()
}

func (l *List) clamp() {
	maxOffset := max(0, l.TotalHeight()-l.viewport.Height)
	l.offset = min(max(0, l.offset), maxOffset)
}

func (l *List) Range() Range {
	if !l.viewport.Ready() {
		return emptyRange
	}
	return VisibleRange(l.count, l.rowHeight, l.offset, l.viewport.Height, l.overscan)
}

// PageRows is how many whole rows fit in the viewport, at least one.
func (l *List) PageRows() int {
	return max(1, l.viewport.Height/l.rowHeight)
}

// Render calls renderRow only for indices in Range and places each row at
// line index*rowHeight of the scrollable area. The result is the
// viewport-sized window onto that area. An unmeasured viewport renders "".
func (l *List) Render(renderRow func(index int) string) string {
	if !l.viewport.Ready() {
		return ""
	}
	canvas := make([]string, l.viewport.Height)
	r := l.Range()
	for i := r.First; i <= r.Last; i++ {
		lines := strings.Split(renderRow(i), "\n")
		top := i*l.rowHeight - l.offset
		for j := 0; j < l.rowHeight && j < len(lines); j++ {
			y := top + j
			if y < 0 || y >= len(canvas) {
				continue
			}
			canvas[y] = ansi.Truncate(lines[j], l.viewport.Width, "")
		}
	}
	return strings.Join(canvas, "\n")
}
