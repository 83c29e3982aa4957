package tview

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
)

// DoubleClickInterval is the longest time between two clicks that still
// makes them a double click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction is what the mouse is logically doing, derived from the button
// state of consecutive mouse events.
type MouseAction int16

// Mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
)

var mouseButtons = []struct {
	mask                      tcell.ButtonMask
	down, up, click, dblClick MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var mouseWheels = []struct {
	mask   tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
}

// mouseTracker turns raw mouse events into mouse actions. A release at the
// position of its press is also a click.
type mouseTracker struct {
	clock clockwork.Clock

	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
	lastClick    time.Time
}

func newMouseTracker(clock clockwork.Clock) *mouseTracker {
	return &mouseTracker{clock: clock}
}

// actions returns the actions event stands for, in the order they happened.
func (m *mouseTracker) actions(event *tcell.EventMouse) []MouseAction {
	x, y := event.Position()
	buttons := event.Buttons()

	var actions []MouseAction
	if x != m.x || y != m.y {
		actions = append(actions, MouseMove)
		m.x, m.y = x, y
	}

	changed := buttons ^ m.buttons
	for _, b := range mouseButtons {
		switch {
		case changed&b.mask == 0:
			continue
		case buttons&b.mask != 0:
			actions = append(actions, b.down)
			m.downX, m.downY = x, y
			continue
		}

		actions = append(actions, b.up)
		if x != m.downX || y != m.downY {
			continue
		}
		now := m.clock.Now()
		if !m.lastClick.IsZero() && now.Sub(m.lastClick) <= DoubleClickInterval {
			actions = append(actions, b.dblClick)
			m.lastClick = time.Time{}
		} else {
			actions = append(actions, b.click)
			m.lastClick = now
		}
	}

	for _, wheel := range mouseWheels {
		if buttons&wheel.mask != 0 {
			actions = append(actions, wheel.action)
		}
	}

	m.buttons = buttons
	return actions
}
