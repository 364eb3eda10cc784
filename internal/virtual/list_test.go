package virtual

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name                                    string
		count, rowHeight, offset, height, overs int
		want                                    Range
	}{
		{"top of list", 1000, 76, 0, 600, 8, Range{0, 15}},
		{"middle", 1000, 76, 76 * 100, 600, 8, Range{92, 115}},
		{"partial row at top", 1000, 76, 76*100 + 10, 600, 8, Range{92, 116}},
		{"end clamps", 10, 3, 21, 9, 2, Range{5, 9}},
		{"short list", 2, 3, 0, 30, 8, Range{0, 1}},
		{"empty list", 0, 3, 0, 30, 8, Range{0, -1}},
		{"no height", 10, 3, 0, 0, 8, Range{0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleRange(tt.count, tt.rowHeight, tt.offset, tt.height, tt.overs))
		})
	}
}

func TestRenderedRowsIndependentOfCount(t *testing.T) {
	for _, n := range []int{100, 1000, 100000} {
		l := New(76, 8)
		l.Resize(400, 600)
		l.SetCount(n)
		l.ScrollTo(76 * 50)

		rendered := 0
		l.Render(func(i int) string {
			rendered++
			return fmt.Sprint(i)
		})
		// ceil(600/76)+1 partially visible rows plus 8 overscan on each side.
		assert.LessOrEqual(t, rendered, 9+16, "n=%d", n)
		assert.Equal(t, l.Range().Len(), rendered)
	}
}

func TestRender_NotMeasured(t *testing.T) {
	l := New(3, 8)
	l.SetCount(50)
	called := false
	out := l.Render(func(int) string { called = true; return "x" })
	assert.Empty(t, out)
	assert.False(t, called)

	l.Resize(80, 0)
	assert.Empty(t, l.Render(func(int) string { called = true; return "x" }))
	assert.False(t, called)
}

func TestRender_PositionsRowsAtOffset(t *testing.T) {
	l := New(2, 1)
	l.Resize(20, 5)
	l.SetCount(10)
	l.ScrollTo(3)

	out := l.Render(func(i int) string {
		return fmt.Sprintf("row%d-a\nrow%d-b", i, i)
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"row1-b", "row2-a", "row2-b", "row3-a", "row3-b"}, lines)
}

func TestRender_TruncatesToWidth(t *testing.T) {
	l := New(1, 0)
	l.Resize(4, 1)
	l.SetCount(1)
	assert.Equal(t, "abcd", l.Render(func(int) string { return "abcdefgh" }))
}

func TestResize_Idempotent(t *testing.T) {
	l := New(3, 8)
	assert.True(t, l.Resize(80, 24))
	assert.False(t, l.Resize(80, 24))
	assert.True(t, l.Resize(100, 24))
}

func TestScrollClamping(t *testing.T) {
	l := New(3, 0)
	l.Resize(10, 9)
	l.SetCount(10)
	assert.Equal(t, 30, l.TotalHeight())

	l.ScrollTo(1000)
	assert.Equal(t, 21, l.Offset())
	l.ScrollBy(-1000)
	assert.Equal(t, 0, l.Offset())

	l.SetCount(2)
	l.ScrollTo(5)
	assert.Equal(t, 0, l.Offset(), "content shorter than viewport cannot scroll")
}

func TestEnsureVisible(t *testing.T) {
	l := New(3, 0)
	l.Resize(10, 9)
	l.SetCount(20)

	l.EnsureVisible(5)
	assert.Equal(t, 9, l.Offset(), "row 5 spans lines 15-17, bottom aligned")

	l.EnsureVisible(1)
	assert.Equal(t, 3, l.Offset())

	l.EnsureVisible(2)
	assert.Equal(t, 3, l.Offset(), "already visible")
	assert.Equal(t, 3, l.PageRows())
}
