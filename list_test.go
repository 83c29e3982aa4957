package tview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestList(t *testing.T, texts ...string) (*List, func()) {
	t.Helper()
	screen := newSimulationScreen(t, 10, 3)
	l := NewList()
	l.SetBuilder(func(index, cursor int) ListItem {
		if index < 0 || index >= len(texts) {
			return nil
		}
		return NewTextItem(texts[index]).SetHandle(false)
	})
	l.SetRect(0, 0, 10, 3)
	return l, func() { l.Draw(screen) }
}

func TestListReportsLayout(t *testing.T) {
	l, draw := newTestList(t, "a", "b", "c")
	var positions, heights []int
	l.SetGap(1).SetLayoutFunc(func(index, pos, height int) {
		positions = append(positions, pos)
		heights = append(heights, height)
	})

	draw()
	assert.Equal(t, []int{0, 2, 4}, positions)
	assert.Equal(t, []int{1, 1, 1}, heights)
	assert.Equal(t, 5, l.ContentLength())
}

func TestListScrollsCursorIntoView(t *testing.T) {
	l, draw := newTestList(t, "a", "b", "c", "d", "e")
	draw()

	l.SetCursor(4)
	draw()
	assert.Equal(t, 2, l.ScrollOffset())

	l.SetCursor(0)
	draw()
	assert.Equal(t, 0, l.ScrollOffset())

	assert.False(t, l.PrevItem())
	assert.True(t, l.NextItem())
	assert.Equal(t, 1, l.Cursor())
}

func TestListIndexAtPoint(t *testing.T) {
	l, draw := newTestList(t, "a", "b", "c")
	l.SetGap(1)
	draw()

	assert.Equal(t, 0, l.IndexAtPoint(0, 0))
	assert.Equal(t, 0, l.IndexAtPoint(0, 1), "the gap belongs to the item above")
	assert.Equal(t, 1, l.IndexAtPoint(5, 2))
	assert.Equal(t, -1, l.IndexAtPoint(10, 0))
}

func TestListScrollToOffsetClamps(t *testing.T) {
	l, draw := newTestList(t, "a", "b", "c", "d", "e")
	draw()

	l.ScrollToOffset(100, false)
	assert.Equal(t, 2, l.ScrollOffset())
	l.ScrollToOffset(-4, false)
	assert.Equal(t, 0, l.ScrollOffset())
}
