package tview

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/ayn2op/tview-reorder/anim"
	"github.com/ayn2op/tview-reorder/keybind"
	"github.com/ayn2op/tview-reorder/reorder"
)

// Drag geometry is reported to the controller in half rows so that a pointer
// sits at the center of its cell rather than on an item boundary.
const dragScale = 2

// animationFrame is the redraw interval while items are moving.
const animationFrame = 16 * time.Millisecond

// DraggableItemFunc returns the list item for the data element with key at
// index. cursor is the list's cursor and props carry the item's drag state.
type DraggableItemFunc func(key string, index, cursor int, props reorder.ItemProps) ListItem

// DraggableListKeyMap are the keybinds of a DraggableList.
type DraggableListKeyMap struct {
	Up       keybind.Keybind
	Down     keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
	Top      keybind.Keybind
	Bottom   keybind.Keybind
	MoveUp   keybind.Keybind
	MoveDown keybind.Keybind
}

// DefaultDraggableListKeyMap returns vim-style keybinds plus the arrow keys.
func DefaultDraggableListKeyMap() DraggableListKeyMap {
	return DraggableListKeyMap{
		Up:       keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("k/↑", "up")),
		Down:     keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("j/↓", "down")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f"), keybind.WithHelp("pgdn", "page down")),
		Top:      keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "first item")),
		Bottom:   keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "last item")),
		MoveUp:   keybind.NewKeybind(keybind.WithKeys("shift+up", "K"), keybind.WithHelp("K", "move item up")),
		MoveDown: keybind.NewKeybind(keybind.WithKeys("shift+down", "J"), keybind.WithHelp("J", "move item down")),
	}
}

// ShortHelp returns the keybinds shown in single-line help.
func (k DraggableListKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Up, k.Down, k.MoveUp, k.MoveDown}
}

// FullHelp returns the keybinds grouped into help columns.
func (k DraggableListKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
		{k.MoveUp, k.MoveDown},
	}
}

type itemAnimator struct {
	*reorder.Animator
	cancel func()
}

// draggablePress is a pointer press on an item that armed a drag.
type draggablePress struct {
	key   string
	index int
	point reorder.Point
}

// DraggableList is a List whose items can be reordered by dragging them with
// the mouse or by moving the item under the cursor with the keyboard.
//
// The list does not own the data: it is given the keys of the data sequence
// and reports reorders through the OnReordered handler, which is expected to
// reorder the data and call SetKeys with the new sequence.
type DraggableList struct {
	*List

	keyMap DraggableListKeyMap
	render DraggableItemFunc

	controller *reorder.Controller
	keys       []string
	animators  map[string]*itemAnimator
	animation  reorder.AnimatorOptions

	clock       clockwork.Clock
	queue       func(func())
	tickPending bool
	committed   func(err error)

	scrollBar     *ScrollBar
	showScrollBar bool

	press *draggablePress
	// settled is set when the keys changed while a reorder was being
	// committed; the drag offsets no longer apply to the new order.
	settled bool

	containerPos    int
	containerExtent int
}

// NewDraggableList returns a new draggable list.
func NewDraggableList() *DraggableList {
	clock := clockwork.NewRealClock()
	d := &DraggableList{
		List:            NewList(),
		keyMap:          DefaultDraggableListKeyMap(),
		animators:       make(map[string]*itemAnimator),
		animation:       reorder.AnimatorOptions{Clock: clock},
		clock:           clock,
		scrollBar:       NewScrollBar(),
		showScrollBar:   true,
		containerExtent: -1,
	}
	d.controller = reorder.NewController(draggableHost{list: d}, reorder.Handlers{}, reorder.Options{})
	d.controller.Subscribe(d.sessionChanged)

	d.List.SetBuilder(d.build)
	d.List.SetLayoutFunc(d.itemLayout)
	d.List.SetScrollFunc(func(offset int) {
		d.controller.HandleScroll(offset * dragScale)
	})
	d.List.SetDecorateFunc(d.decorate)
	return d
}

// SetItemFunc sets the function rendering the items.
func (d *DraggableList) SetItemFunc(render DraggableItemFunc) *DraggableList {
	d.render = render
	d.InvalidateLayout()
	return d
}

// SetKeys sets the keys of the data sequence, in order. Keys must be unique.
func (d *DraggableList) SetKeys(keys []string) *DraggableList {
	if d.controller.State() == reorder.StateCommitting {
		d.settled = true
	}
	d.keys = slices.Clone(keys)
	d.controller.SetKeys(d.keys)

	seen := make(map[string]struct{}, len(d.keys))
	for i, key := range d.keys {
		seen[key] = struct{}{}
		if a, ok := d.animators[key]; ok {
			a.SetIndex(i)
			continue
		}
		d.animators[key] = d.newAnimator(key, i)
	}
	for key, a := range d.animators {
		if _, ok := seen[key]; ok {
			continue
		}
		a.cancel()
		delete(d.animators, key)
		d.controller.Layouts().Forget(key)
	}

	if d.Cursor() >= len(d.keys) {
		d.SetCursor(len(d.keys) - 1)
	}
	d.InvalidateLayout()
	return d
}

// Keys returns the keys of the data sequence.
func (d *DraggableList) Keys() []string {
	return d.keys
}

func (d *DraggableList) newAnimator(key string, index int) *itemAnimator {
	a := &itemAnimator{Animator: reorder.NewAnimator(key, d.animation)}
	a.SetIndex(index)
	a.cancel = a.Bind(d.controller)
	return a
}

func (d *DraggableList) rebuildAnimators() {
	for key, a := range d.animators {
		a.cancel()
		delete(d.animators, key)
	}
	for i, key := range d.keys {
		d.animators[key] = d.newAnimator(key, i)
	}
}

// SetHandlers sets the drag callbacks.
func (d *DraggableList) SetHandlers(handlers reorder.Handlers) *DraggableList {
	d.controller.SetHandlers(handlers)
	return d
}

// SetCommittedFunc sets a handler that is called on the event loop once a
// reorder settles, with the reorder handler's error.
func (d *DraggableList) SetCommittedFunc(handler func(err error)) *DraggableList {
	d.committed = handler
	return d
}

// SetQueueFunc sets the function posting work onto the event loop, usually
// [Application.QueueUpdateDraw]. With a queue the reorder handler runs on its
// own goroutine and animations redraw on their own; without one the handler
// runs inline and animations only advance on redraws caused by other events.
func (d *DraggableList) SetQueueFunc(queue func(func())) *DraggableList {
	d.queue = queue
	d.controller.SetQueue(queue)
	return d
}

// SetContext sets the context passed to the OnReordered handler.
func (d *DraggableList) SetContext(ctx context.Context) *DraggableList {
	d.controller.SetContext(ctx)
	return d
}

// SetLogger sets the logger receiving drag session transitions.
func (d *DraggableList) SetLogger(logger *log.Logger) *DraggableList {
	d.controller.SetLogger(logger)
	return d
}

// SetAutoScroll toggles scrolling when an item is dragged past an edge.
func (d *DraggableList) SetAutoScroll(enabled bool) *DraggableList {
	d.controller.SetAutoScroll(enabled)
	return d
}

// SetClock sets the clock driving the animations.
func (d *DraggableList) SetClock(clock clockwork.Clock) *DraggableList {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	d.clock = clock
	d.animation.Clock = clock
	d.List.SetClock(clock)
	d.rebuildAnimators()
	return d
}

// SetAnimation sets the duration and easing of item displacements and
// automatic scrolls.
func (d *DraggableList) SetAnimation(duration time.Duration, easing anim.Easing) *DraggableList {
	d.animation.Duration = duration
	d.animation.Easing = easing
	d.List.SetScrollAnimation(duration, easing)
	d.rebuildAnimators()
	return d
}

// SetKeyMap sets the keybinds.
func (d *DraggableList) SetKeyMap(keyMap DraggableListKeyMap) *DraggableList {
	d.keyMap = keyMap
	return d
}

// KeyMap returns the keybinds.
func (d *DraggableList) KeyMap() DraggableListKeyMap {
	return d.keyMap
}

// SetScrollBar toggles the scroll bar column on the right edge.
func (d *DraggableList) SetScrollBar(show bool) *DraggableList {
	if d.showScrollBar != show {
		d.showScrollBar = show
		d.InvalidateLayout()
	}
	return d
}

// ScrollBar returns the scroll bar.
func (d *DraggableList) ScrollBar() *ScrollBar {
	return d.scrollBar
}

// Controller returns the drag controller.
func (d *DraggableList) Controller() *reorder.Controller {
	return d.controller
}

func (d *DraggableList) build(index, cursor int) ListItem {
	if d.render == nil || index < 0 || index >= len(d.keys) {
		return nil
	}
	key := d.keys[index]
	props := d.controller.Props(key, index)
	if props.Active {
		props.Offset = d.dragShift(props.Offset)
	} else if a, ok := d.animators[key]; ok {
		props.Offset = a.Offset() / dragScale
	}
	return d.render(key, index, cursor, props)
}

// itemLayout reports an item together with the gap below it, which is how
// far its neighbours move when it moves.
func (d *DraggableList) itemLayout(index, pos, height int) {
	if index < len(d.keys) {
		layout := d.controller.Props(d.keys[index], index).Layout
		layout(pos*dragScale, (height+d.Gap())*dragScale)
	}
}

// dragShift returns the rows the dragged item is drawn away from its resting
// row for pan. The pan is measured from the center of the item and its gap,
// the item itself is centred on the pointer.
func (d *DraggableList) dragShift(pan int) int {
	return (pan + d.Gap()*dragScale/2) / dragScale
}

func (d *DraggableList) decorate(index int) (int, bool) {
	if d.settled || index >= len(d.keys) {
		return 0, false
	}
	key := d.keys[index]
	if s := d.controller.Session(); s.Active() && s.Captured && s.ActiveKey == key {
		return d.dragShift(s.Pan), true
	}
	if a, ok := d.animators[key]; ok {
		return a.Offset() / dragScale, false
	}
	return 0, false
}

func (d *DraggableList) sessionChanged(s reorder.Session) {
	if s.State == reorder.StateIdle {
		d.settled = false
	}
	d.MarkDirty()
}

// Animating reports whether items or the scroll position are moving.
func (d *DraggableList) Animating() bool {
	if d.List.Animating() {
		return true
	}
	for _, a := range d.animators {
		if a.Animating() {
			return true
		}
	}
	return false
}

// IsDirty returns whether the list needs a redraw.
func (d *DraggableList) IsDirty() bool {
	return d.List.IsDirty() || d.Animating()
}

// Draw draws this primitive onto the screen.
func (d *DraggableList) Draw(screen tcell.Screen) {
	d.DrawForSubclass(screen, d)

	x, y, width, height := d.GetInnerRect()
	if y != d.containerPos || height != d.containerExtent {
		d.containerPos, d.containerExtent = y, height
		d.controller.HandleContainerLayout(y*dragScale, max(height, 0)*dragScale)
	}

	listWidth := width
	if d.showScrollBar && width > 1 {
		listWidth--
	}
	d.drawItems(screen, x, y, listWidth, height)

	if listWidth < width {
		d.scrollBar.SetRect(x+listWidth, y, 1, height)
		d.scrollBar.SetLengths(ScrollLengths{ContentLen: d.ContentLength(), ViewportLen: height})
		d.scrollBar.SetOffset(d.ScrollOffset())
		d.scrollBar.Draw(screen)
	}

	if d.Animating() {
		d.scheduleTick()
	}
}

// scheduleTick posts a redraw one animation frame from now.
func (d *DraggableList) scheduleTick() {
	if d.queue == nil || d.tickPending {
		return
	}
	d.tickPending = true
	d.clock.AfterFunc(animationFrame, func() {
		d.queue(func() {
			d.tickPending = false
			d.MarkDirty()
		})
	})
}

// InputHandler handles cursor navigation and keyboard reorders.
func (d *DraggableList) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := d.GetInnerRect()
	page := max(height, 1)

	switch {
	case keybind.Matches(event, d.keyMap.MoveUp):
		return d.moveItem(-1)
	case keybind.Matches(event, d.keyMap.MoveDown):
		return d.moveItem(1)
	case keybind.Matches(event, d.keyMap.Up):
		if !d.PrevItem() {
			return nil
		}
	case keybind.Matches(event, d.keyMap.Down):
		if !d.NextItem() {
			return nil
		}
	case keybind.Matches(event, d.keyMap.PageUp):
		d.SetPendingScroll(-page)
	case keybind.Matches(event, d.keyMap.PageDown):
		d.SetPendingScroll(page)
	case keybind.Matches(event, d.keyMap.Top):
		if len(d.keys) == 0 {
			return nil
		}
		d.SetCursor(0)
	case keybind.Matches(event, d.keyMap.Bottom):
		if len(d.keys) == 0 {
			return nil
		}
		d.SetCursor(len(d.keys) - 1)
	default:
		return nil
	}
	return RedrawCommand{}
}

// moveItem reorders the item under the cursor by delta positions, or the
// first item when there is no cursor yet. The cursor follows the item once
// the reorder succeeds.
func (d *DraggableList) moveItem(delta int) Command {
	from := max(d.Cursor(), 0)
	to := from + delta
	if from < 0 || from >= len(d.keys) || to < 0 || to >= len(d.keys) {
		return nil
	}
	d.watch(d.controller.Reorder(from, to), func(err error) {
		if err == nil {
			d.SetCursor(to)
		}
	})
	return RedrawCommand{}
}

// MouseHandler starts, tracks and drops drags, and handles scroll bar clicks.
func (d *DraggableList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	switch action {
	case MouseLeftDown:
		if !d.InRect(x, y) {
			return nil, nil
		}
		if d.inScrollBar(x, y) {
			_, barY, _, _ := d.scrollBar.GetInnerRect()
			if offset, ok := d.scrollBar.TrackClick(y - barY); ok {
				d.ScrollToOffset(offset, true)
			}
			return nil, AppendCommand(SetFocusCommand{Target: d}, RedrawCommand{})
		}

		index := d.IndexAtPoint(x, y)
		if index < 0 || index >= len(d.keys) {
			return d.handleMouse(action, event, d)
		}
		key := d.keys[index]
		d.controller.Props(key, index).DragStart()
		if d.controller.State() != reorder.StateArmed {
			return d.handleMouse(action, event, d)
		}
		d.press = &draggablePress{key: key, index: index, point: dragPoint(x, y)}
		return d, AppendCommand(SetFocusCommand{Target: d}, RedrawCommand{})

	case MouseMove:
		if d.press == nil {
			return nil, nil
		}
		point := dragPoint(x, y)
		if d.controller.State() == reorder.StateArmed {
			if point == d.press.point {
				return d, nil
			}
			d.controller.Grant(d.press.point)
		}
		d.controller.Move(point)
		return d, RedrawCommand{}

	case MouseLeftUp:
		if d.press == nil {
			return d.handleMouse(action, event, d)
		}
		press := d.press
		d.press = nil
		if d.controller.State() == reorder.StateArmed {
			d.controller.Props(press.key, press.index).DragEnd()
			return nil, RedrawCommand{}
		}

		s := d.controller.Session()
		committable := s.Committable(len(d.keys))
		to := min(s.PanIndex, len(d.keys)-1)
		d.watch(d.controller.Release(), func(err error) {
			if err == nil && committable {
				d.SetCursor(to)
			}
		})
		return nil, RedrawCommand{}
	}
	return d.handleMouse(action, event, d)
}

func (d *DraggableList) inScrollBar(x, y int) bool {
	if !d.showScrollBar {
		return false
	}
	_, _, width, _ := d.GetInnerRect()
	return width > 1 && d.scrollBar.InRect(x, y)
}

// watch calls then and the committed func with the outcome of a reorder. An
// outcome that is not known yet is waited for and delivered through the queue.
func (d *DraggableList) watch(result <-chan error, then func(err error)) {
	done := func(err error) {
		then(err)
		if d.committed != nil {
			d.committed(err)
		}
		d.MarkDirty()
	}
	select {
	case err := <-result:
		done(err)
		return
	default:
	}
	go func() {
		err := <-result
		d.queue(func() {
			done(err)
		})
	}()
}

func dragPoint(x, y int) reorder.Point {
	return reorder.Point{X: x*dragScale + 1, Y: y*dragScale + 1}
}

// draggableHost is the list as seen by the drag controller.
type draggableHost struct {
	list *DraggableList
}

func (h draggableHost) ScrollToOffset(offset int, animated bool) {
	h.list.List.ScrollToOffset(offset/dragScale, animated)
}

func (h draggableHost) MeasureContainer(done func(pos, extent int)) {
	_, y, _, height := h.list.GetInnerRect()
	done(y*dragScale, max(height, 0)*dragScale)
}

var (
	_ Primitive    = &DraggableList{}
	_ reorder.Host = draggableHost{}
)
