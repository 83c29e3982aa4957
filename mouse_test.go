package tview

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestMouseTrackerClicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newMouseTracker(clock)
	press := func(x, y int, buttons tcell.ButtonMask) []MouseAction {
		return m.actions(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
	}

	assert.Equal(t, []MouseAction{MouseLeftDown}, press(0, 0, tcell.ButtonPrimary))
	assert.Equal(t, []MouseAction{MouseLeftUp, MouseLeftClick}, press(0, 0, tcell.ButtonNone))

	clock.Advance(DoubleClickInterval / 2)
	press(0, 0, tcell.ButtonPrimary)
	assert.Equal(t, []MouseAction{MouseLeftUp, MouseLeftDoubleClick}, press(0, 0, tcell.ButtonNone))

	clock.Advance(time.Second)
	press(0, 0, tcell.ButtonSecondary)
	assert.Equal(t, []MouseAction{MouseRightUp, MouseRightClick}, press(0, 0, tcell.ButtonNone))
}

func TestMouseTrackerDragIsNotAClick(t *testing.T) {
	m := newMouseTracker(clockwork.NewFakeClock())

	m.actions(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	actions := m.actions(tcell.NewEventMouse(1, 4, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, []MouseAction{MouseMove}, actions)

	actions = m.actions(tcell.NewEventMouse(1, 4, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, []MouseAction{MouseLeftUp}, actions)
}

func TestMouseTrackerWheel(t *testing.T) {
	m := newMouseTracker(clockwork.NewFakeClock())

	assert.Equal(t, []MouseAction{MouseScrollDown}, m.actions(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)))
	assert.Equal(t, []MouseAction{MouseMove, MouseScrollUp}, m.actions(tcell.NewEventMouse(2, 0, tcell.WheelUp, tcell.ModNone)))
}
