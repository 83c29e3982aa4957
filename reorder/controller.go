// Package reorder implements drag-to-reorder for virtual lists.
//
// A Controller owns a single drag session. It is driven by the item press
// signals, the pointer capture, pointer moves and the release, and it keeps
// an as-of-last-layout view of every item through the notifications the list
// reports. All methods must be called from the host's event loop; the only
// work that leaves the loop is the reorder handler, whose completion is posted
// back through Options.Queue.
package reorder

import (
	"context"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Options configure a Controller. The zero value is usable.
type Options struct {
	Axis Axis
	// DisableAutoScroll turns off scrolling when the drag nears an edge.
	DisableAutoScroll bool
	// Queue posts a function onto the event loop. When set, the reorder
	// handler runs on its own goroutine and its settlement is posted back
	// through Queue; otherwise the handler runs inline in Release.
	Queue func(func())
	// Context is passed to the reorder handler. Defaults to
	// context.Background.
	Context context.Context
	// Logger receives debug logs of session transitions.
	Logger *log.Logger
}

type subscriber struct {
	id int
	fn func(Session)
}

// Controller is the drag gesture state machine.
type Controller struct {
	host        Host
	handlers    Handlers
	coordinator *Coordinator
	layouts     *LayoutCache
	viewport    Viewport

	session Session
	keys    []string

	autoScroll bool
	queue      func(func())
	ctx        context.Context
	logger     *log.Logger

	subscribers []subscriber
	nextID      int
}

// NewController returns a controller driving host.
func NewController(host Host, handlers Handlers, opts Options) *Controller {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		host:        host,
		handlers:    handlers,
		coordinator: NewCoordinator(handlers.OnReordered),
		layouts:     NewLayoutCache(),
		session:     Session{Axis: opts.Axis},
		autoScroll:  !opts.DisableAutoScroll,
		queue:       opts.Queue,
		ctx:         ctx,
		logger:      logger,
	}
}

// SetHandlers replaces the application callbacks.
func (c *Controller) SetHandlers(handlers Handlers) {
	c.handlers = handlers
	c.coordinator.SetHandler(handlers.OnReordered)
}

// SetQueue sets the function that posts reorder settlements onto the event
// loop. A nil queue runs the reorder handler inline.
func (c *Controller) SetQueue(queue func(func())) {
	c.queue = queue
}

// SetContext sets the context passed to the reorder handler.
func (c *Controller) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
}

// SetLogger sets the logger receiving session transitions.
func (c *Controller) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c.logger = logger
}

// SetAutoScroll toggles scrolling when the drag nears an edge.
func (c *Controller) SetAutoScroll(enabled bool) {
	c.autoScroll = enabled
}

// SetKeys sets the current data sequence.
func (c *Controller) SetKeys(keys []string) {
	c.keys = slices.Clone(keys)
}

// Keys returns the current data sequence.
func (c *Controller) Keys() []string {
	return c.keys
}

// SetAxis changes the scroll axis. Subscribers see the change like any other
// session change.
func (c *Controller) SetAxis(axis Axis) {
	if c.session.Axis == axis {
		return
	}
	s := c.session
	s.Axis = axis
	c.setSession(s)
}

// Session returns the current session.
func (c *Controller) Session() Session {
	return c.session
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.session.State
}

// Busy reports whether a reorder handler is outstanding.
func (c *Controller) Busy() bool {
	return c.coordinator.Busy()
}

// Layouts returns the layout cache.
func (c *Controller) Layouts() *LayoutCache {
	return c.layouts
}

// Viewport returns the tracked viewport.
func (c *Controller) Viewport() *Viewport {
	return &c.viewport
}

// Subscribe registers fn to receive every session change. The returned
// function removes the subscription.
func (c *Controller) Subscribe(fn func(Session)) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() {
		c.subscribers = slices.DeleteFunc(c.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

// Props returns the render props of the item with key at index.
func (c *Controller) Props(key string, index int) ItemProps {
	props := ItemProps{
		Key:       key,
		Index:     index,
		Active:    c.session.Active() && c.session.ActiveKey == key,
		DragStart: func() { c.StartDrag(key, index) },
		DragEnd:   func() { c.EndDrag(key) },
		Layout:    c.layoutReporter(key),
	}
	if props.Active {
		props.Offset = c.session.Pan
	}
	return props
}

// StartDrag arms a drag of key at index. It is ignored while a reorder is
// outstanding, while another drag runs, and for lists of at most one item.
func (c *Controller) StartDrag(key string, index int) bool {
	if c.coordinator.Busy() {
		c.logger.Debug("drag start ignored, commit outstanding", "key", key)
		return false
	}
	switch c.session.State {
	case StateDragging, StateCommitting:
		return false
	}
	if len(c.keys) <= 1 {
		return false
	}

	c.setSession(c.session.arm(key, index))
	c.logger.Debug("drag armed", "key", key, "index", index)
	if c.handlers.OnArmed != nil {
		c.handlers.OnArmed(index)
	}
	return true
}

// EndDrag is the item's end signal. An armed drag that was never captured is
// abandoned.
func (c *Controller) EndDrag(key string) {
	if c.session.State != StateArmed || c.session.ActiveKey != key {
		return
	}
	c.logger.Debug("armed drag abandoned", "key", key)
	c.setSession(c.session.reset())
}

// Grant captures the pointer for an armed drag. The container position is
// re-measured because the window may have moved without a layout event.
func (c *Controller) Grant(pointer Point) bool {
	if c.session.State != StateArmed || c.coordinator.Busy() {
		return false
	}

	if c.host != nil {
		c.host.MeasureContainer(func(pos, _ int) {
			c.viewport.OnGrantMeasure(pos)
		})
	}

	var extent int
	if entry, ok := c.layouts.Get(c.session.ActiveKey); ok {
		extent = entry.Extent
	}
	s := c.session.grant(c.session.Axis.Of(pointer), extent)
	c.setSession(s)
	c.logger.Debug("drag granted", "key", s.ActiveKey, "index", s.ActiveIndex, "origin", s.Origin)
	if c.handlers.OnDragBegin != nil {
		c.handlers.OnDragBegin(s.ActiveIndex)
	}
	return true
}

// Move applies a pointer move of a captured drag.
func (c *Controller) Move(pointer Point) {
	if c.session.State != StateDragging {
		return
	}

	s := c.session.move(c.session.Axis.Of(pointer))
	active, ok := c.layouts.Get(s.ActiveKey)
	if !ok {
		// The dragged item has not been measured yet; try again on the next move.
		c.setSession(s)
		return
	}
	s.ActiveExtent = active.Extent

	frame := c.viewport.Frame()
	scroll := c.viewport.ScrollOffset()
	wrapPos := s.Origin + s.Delta - frame.Pos
	client := wrapPos + scroll

	if c.autoScroll && c.host != nil {
		req, ok := AutoScroll(AutoScrollInput{
			WrapPos:        wrapPos,
			Extent:         active.Extent,
			ScrollOffset:   scroll,
			ViewportExtent: frame.Extent,
		})
		if ok {
			c.host.ScrollToOffset(req.Offset, req.Animated)
		}
	}

	res := Resolve(ResolveInput{
		Client:   client,
		Keys:     c.keys,
		Layouts:  c.layouts,
		Previous: s.PanIndex,
	})
	s.Pan = PanOffset(client, active)
	changed := res.Index != s.PanIndex
	s.PanIndex = res.Index
	c.setSession(s)

	if changed {
		c.logger.Debug("hover changed", "key", s.ActiveKey, "index", res.Index)
		if c.handlers.OnHoverChanged != nil {
			c.handlers.OnHoverChanged(res.Index)
		}
	}
}

// Release ends the pointer gesture. A captured drag commits its reorder, if
// any, and returns to idle once the handler settles. The returned channel
// receives exactly one value: the handler's error, or nil.
func (c *Controller) Release() <-chan error {
	result := make(chan error, 1)

	switch c.session.State {
	case StateArmed:
		c.logger.Debug("armed drag released without capture", "key", c.session.ActiveKey)
		c.setSession(c.session.reset())
		result <- nil
		return result
	case StateDragging:
	default:
		result <- nil
		return result
	}

	if c.handlers.OnDragEnd != nil {
		c.handlers.OnDragEnd()
	}

	s := c.session
	committable := s.Committable(len(c.keys))
	c.setSession(s.release())
	if !committable {
		c.logger.Debug("drag released without reorder", "key", s.ActiveKey, "index", s.ActiveIndex, "pan", s.PanIndex)
		c.settle(nil)
		result <- nil
		return result
	}

	c.commit(s.ActiveIndex, s.PanIndex, result)
	return result
}

// Reorder commits a reorder that did not come from a pointer drag, such as a
// keyboard move. It shares the commit latch with pointer drags.
func (c *Controller) Reorder(from, to int) <-chan error {
	result := make(chan error, 1)
	switch {
	case c.coordinator.Busy():
		result <- ErrCommitInProgress
		return result
	case c.session.State != StateIdle:
		result <- ErrDragInProgress
		return result
	}

	n := len(c.keys)
	if from < 0 || from >= n || to < 0 || to > n || from == to || (from == n-1 && to > from) {
		result <- nil
		return result
	}

	c.commit(from, to, result)
	return result
}

func (c *Controller) commit(from, to int, result chan<- error) {
	c.logger.Debug("committing reorder", "from", from, "to", to)
	if c.queue == nil {
		err := c.coordinator.Commit(c.ctx, from, to)
		c.settle(err)
		result <- err
		return
	}

	if err := c.coordinator.Acquire(); err != nil {
		c.settle(err)
		result <- err
		return
	}
	go func() {
		err := c.coordinator.invoke(c.ctx, from, to)
		c.queue(func() {
			c.coordinator.Release()
			c.settle(err)
			result <- err
		})
	}()
}

// settle resets the session after a release.
func (c *Controller) settle(err error) {
	if err != nil {
		c.logger.Error("reorder failed", "err", err)
	}
	if c.session.State == StateCommitting {
		c.setSession(c.session.reset())
	}
}

// HandleItemLayout records a per-item layout notification.
func (c *Controller) HandleItemLayout(key string, pos, extent int) {
	c.layoutReporter(key)(pos, extent)
}

// layoutReporter records the layouts of key and passes them on to OnLayout.
func (c *Controller) layoutReporter(key string) LayoutReporter {
	record := c.layouts.Reporter(key)
	return func(pos, extent int) {
		record(pos, extent)
		if c.handlers.OnLayout != nil {
			c.handlers.OnLayout(key, pos, extent)
		}
	}
}

// HandleScroll records a scroll-position notification.
func (c *Controller) HandleScroll(offset int) {
	c.viewport.OnScroll(offset)
	if c.handlers.OnScroll != nil {
		c.handlers.OnScroll(offset)
	}
}

// HandleContainerLayout records a container-geometry notification.
func (c *Controller) HandleContainerLayout(pos, extent int) {
	c.viewport.OnContainerLayout(pos, extent)
	if c.handlers.OnContainerLayout != nil {
		c.handlers.OnContainerLayout(pos, extent)
	}
}

func (c *Controller) setSession(s Session) {
	c.session = s
	subscribers := slices.Clone(c.subscribers)
	for _, sub := range subscribers {
		sub.fn(s)
	}
}
