package tview

import (
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/ayn2op/tview-reorder/anim"
)

// ListItem represents a primitive which can be measured for a given width.
//
// List items are responsible for reporting their own height so the list can
// layout and scroll variable-height items.
type ListItem interface {
	Primitive
	Height(width int) int
}

// ListBuilder returns a list item for the given index and cursor position.
// It must return nil when the index is out of range.
type ListBuilder func(index int, cursor int) ListItem

// ListLayoutFunc receives the natural layout of an item: its first row and
// height in content coordinates, ignoring any decoration shift.
type ListLayoutFunc func(index, pos, height int)

// ListDecorateFunc returns the number of rows an item is drawn away from its
// natural position and whether it is drawn above the other items.
type ListDecorateFunc func(index int) (shift int, front bool)

// List displays a virtual list of primitives returned by a builder function.
//
// The scroll position is a content offset: the number of rows of content above
// the viewport. Every draw measures the items (heights are cached per width),
// reports their layout through the layout func and draws the ones that
// intersect the viewport.
type List struct {
	*Box

	Builder ListBuilder
	gap     int

	cursor int
	scroll listState

	clock          clockwork.Clock
	scrollDuration time.Duration
	scrollEasing   anim.Easing

	layout   ListLayoutFunc
	scrolled func(offset int)
	decorate ListDecorateFunc

	heights  heightCache
	measured listMeasure
	lastDraw []listDrawnItem
	lastRect rect

	// The offset last passed to the scroll func, or -1.
	reportedOffset int
}

type listState struct {
	// Rows of content above the viewport.
	offset int
	// Pending scroll delta in rows to apply on the next draw.
	pending int
	// Ensure the cursor is visible on the next draw.
	wantsCursor bool
	// Animated scroll in progress, if any.
	tween *anim.Tween
}

// listMeasure is the natural layout of all items from the last draw.
type listMeasure struct {
	positions []int
	heights   []int
	total     int
}

type heightCache struct {
	width   int
	heights map[int]int
}

func (c *heightCache) get(index int, item ListItem, width int) int {
	if c.heights == nil || c.width != width {
		c.heights = make(map[int]int)
		c.width = width
	}
	if h, ok := c.heights[index]; ok {
		return h
	}
	h := max(item.Height(width), 1)
	c.heights[index] = h
	return h
}

func (c *heightCache) reset() {
	c.heights = nil
}

type listDrawnItem struct {
	index  int
	item   ListItem
	row    int
	height int
	front  bool
}

// rect is a screen area.
type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// NewList returns a new list.
func NewList() *List {
	return &List{
		Box:            NewBox(),
		cursor:         -1,
		clock:          clockwork.NewRealClock(),
		scrollDuration: anim.DefaultDuration,
		scrollEasing:   anim.DefaultEasing,
		reportedOffset: -1,
	}
}

// SetBuilder sets the builder used to create list items on demand.
func (l *List) SetBuilder(builder ListBuilder) *List {
	if l.Builder != nil || builder != nil {
		l.Builder = builder
		l.heights.reset()
		l.MarkDirty()
	}
	return l
}

// SetGap sets the number of blank rows between items.
func (l *List) SetGap(gap int) *List {
	if gap < 0 {
		gap = 0
	}
	if l.gap != gap {
		l.gap = gap
		l.MarkDirty()
	}
	return l
}

// Gap returns the number of blank rows between items.
func (l *List) Gap() int {
	return l.gap
}

// SetClock sets the clock used for animated scrolling.
func (l *List) SetClock(clock clockwork.Clock) *List {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	l.clock = clock
	return l
}

// SetScrollAnimation sets the duration and easing of animated scrolls.
func (l *List) SetScrollAnimation(duration time.Duration, easing anim.Easing) *List {
	if easing == nil {
		easing = anim.DefaultEasing
	}
	l.scrollDuration = duration
	l.scrollEasing = easing
	return l
}

// SetLayoutFunc sets a handler that receives the natural layout of every
// measured item on each draw.
func (l *List) SetLayoutFunc(handler ListLayoutFunc) *List {
	l.layout = handler
	return l
}

// SetScrollFunc sets a handler that is called whenever the drawn scroll
// offset changes.
func (l *List) SetScrollFunc(handler func(offset int)) *List {
	l.scrolled = handler
	l.reportedOffset = -1
	return l
}

// SetDecorateFunc sets a handler that shifts items away from their natural
// position when drawn.
func (l *List) SetDecorateFunc(handler ListDecorateFunc) *List {
	l.decorate = handler
	l.MarkDirty()
	return l
}

// InvalidateLayout drops all cached item heights. Call it when the content of
// the items changed.
func (l *List) InvalidateLayout() *List {
	l.heights.reset()
	l.MarkDirty()
	return l
}

// ScrollOffset returns the current scroll offset in rows.
func (l *List) ScrollOffset() int {
	if l.scroll.tween != nil {
		return l.clampOffset(l.scroll.tween.AtInt(l.clock.Now()))
	}
	return l.scroll.offset
}

// ContentLength returns the height of all items and gaps as of the last draw.
func (l *List) ContentLength() int {
	return l.measured.total
}

// ScrollToOffset scrolls so that offset rows of content are above the
// viewport. An animated scroll eases from the current offset.
func (l *List) ScrollToOffset(offset int, animated bool) *List {
	target := l.clampOffset(offset)
	l.scroll.wantsCursor = false
	l.scroll.pending = 0
	if !animated || l.scrollDuration <= 0 {
		l.scroll.tween = nil
		l.scroll.offset = target
		l.MarkDirty()
		return l
	}
	tween := anim.NewTween(float64(l.ScrollOffset()), float64(target), l.clock.Now(), l.scrollDuration, l.scrollEasing)
	l.scroll.tween = &tween
	l.MarkDirty()
	return l
}

// Animating reports whether an animated scroll is in progress.
func (l *List) Animating() bool {
	return l.scroll.tween != nil && !l.scroll.tween.Done(l.clock.Now())
}

// SetCursor sets the currently selected item index.
func (l *List) SetCursor(index int) *List {
	if index < -1 {
		index = -1
	}
	if l.cursor != index {
		l.moveCursor(index)
	}
	return l
}

// Cursor returns the current cursor index.
func (l *List) Cursor() int {
	return l.cursor
}

// SetPendingScroll sets a pending scroll amount, in rows. Positive numbers
// scroll down.
func (l *List) SetPendingScroll(rows int) *List {
	if l.scroll.pending != rows {
		l.scroll.pending = rows
		l.MarkDirty()
	}
	return l
}

// NextItem moves the cursor to the next item, if any.
func (l *List) NextItem() bool {
	if l.Builder == nil || l.Builder(l.cursor+1, l.cursor) == nil {
		return false
	}
	l.moveCursor(l.cursor + 1)
	return true
}

// PrevItem moves the cursor to the previous item, if any.
func (l *List) PrevItem() bool {
	if l.cursor <= 0 || l.Builder == nil || l.Builder(l.cursor-1, l.cursor) == nil {
		return false
	}
	l.moveCursor(l.cursor - 1)
	return true
}

// moveCursor moves the cursor and scrolls it into view on the next draw.
func (l *List) moveCursor(index int) {
	l.cursor = index
	l.scroll.wantsCursor = index >= 0
	l.MarkDirty()
}

func (l *List) setLastDraw(children []listDrawnItem) {
	for _, child := range l.lastDraw {
		unbindDirtyParent(child.item, l.Box)
	}
	l.lastDraw = children
	for _, child := range l.lastDraw {
		bindDirtyParent(child.item, l.Box)
	}
}

// IsDirty returns whether this primitive or one of its visible children needs redraw.
func (l *List) IsDirty() bool {
	if l.Box.IsDirty() || l.Animating() {
		return true
	}
	for _, child := range l.lastDraw {
		if child.item != nil && child.item.IsDirty() {
			return true
		}
	}
	return false
}

// MarkClean marks this primitive and visible children as clean.
func (l *List) MarkClean() {
	l.Box.MarkClean()
	for _, child := range l.lastDraw {
		if child.item != nil {
			child.item.MarkClean()
		}
	}
}

// Draw draws this primitive onto the screen.
func (l *List) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	x, y, width, height := l.GetInnerRect()
	l.drawItems(screen, x, y, width, height)
}

// drawItems lays out and draws the items into the given rect.
func (l *List) drawItems(screen tcell.Screen, x, y, width, height int) {
	l.lastRect = rect{x, y, width, height}
	if width <= 0 || height <= 0 || l.Builder == nil {
		l.setLastDraw(nil)
		return
	}

	items := l.measure(width)
	l.resolveScroll(height)

	if l.layout != nil {
		for i := range items {
			l.layout(i, l.measured.positions[i], l.measured.heights[i])
		}
	}
	if l.scrolled != nil && l.scroll.offset != l.reportedOffset {
		l.reportedOffset = l.scroll.offset
		l.scrolled(l.scroll.offset)
	}

	children := make([]listDrawnItem, 0, 16)
	for i, item := range items {
		var (
			shift int
			front bool
		)
		if l.decorate != nil {
			shift, front = l.decorate(i)
		}
		row := l.measured.positions[i] - l.scroll.offset + shift
		itemHeight := l.measured.heights[i]
		if row >= height || row+itemHeight <= 0 {
			continue
		}
		children = append(children, listDrawnItem{
			index:  i,
			item:   item,
			row:    row,
			height: itemHeight,
			front:  front,
		})
	}
	// Items drawn in front go last; the rest keep their order.
	sort.SliceStable(children, func(i, j int) bool {
		return !children[i].front && children[j].front
	})
	l.setLastDraw(children)

	clipped := &clippedScreen{Screen: screen, area: l.lastRect}
	for _, child := range children {
		child.item.SetRect(x, y+child.row, width, child.height)
		child.item.Draw(clipped)
	}
}

// measure builds every item and records its natural layout.
func (l *List) measure(width int) []ListItem {
	var items []ListItem
	m := listMeasure{
		positions: l.measured.positions[:0],
		heights:   l.measured.heights[:0],
	}
	pos := 0
	for i := 0; ; i++ {
		item := l.Builder(i, l.cursor)
		if item == nil {
			break
		}
		if i > 0 {
			pos += l.gap
		}
		h := l.heights.get(i, item, width)
		items = append(items, item)
		m.positions = append(m.positions, pos)
		m.heights = append(m.heights, h)
		pos += h
	}
	m.total = pos
	l.measured = m
	return items
}

// resolveScroll applies animations, pending deltas and cursor tracking to the
// scroll offset.
func (l *List) resolveScroll(height int) {
	if tween := l.scroll.tween; tween != nil {
		now := l.clock.Now()
		l.scroll.offset = tween.AtInt(now)
		if tween.Done(now) {
			l.scroll.tween = nil
		}
	}

	l.scroll.offset += l.scroll.pending
	if l.scroll.pending != 0 {
		l.scroll.tween = nil
	}
	l.scroll.pending = 0

	if l.scroll.wantsCursor && l.cursor >= 0 && l.cursor < len(l.measured.positions) {
		l.scroll.tween = nil
		pos, h := l.measured.positions[l.cursor], l.measured.heights[l.cursor]
		switch {
		case pos < l.scroll.offset:
			l.scroll.offset = pos
		case pos+h > l.scroll.offset+height:
			l.scroll.offset = pos + h - height
		}
	}
	l.scroll.wantsCursor = false

	l.scroll.offset = min(max(l.scroll.offset, 0), max(l.measured.total-height, 0))
}

func (l *List) maxOffset() int {
	return max(l.measured.total-l.lastRect.height, 0)
}

// clampOffset clamps offset to the scrollable range as of the last draw.
// Before the first draw only negative offsets are clamped.
func (l *List) clampOffset(offset int) int {
	offset = max(offset, 0)
	if l.lastRect.height > 0 {
		offset = min(offset, l.maxOffset())
	}
	return offset
}

// InputHandler handles cursor and page navigation.
func (l *List) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := l.GetInnerRect()
	page := max(height, 1)
	switch event.Key() {
	case tcell.KeyDown:
		if !l.NextItem() {
			return nil
		}
	case tcell.KeyUp:
		if !l.PrevItem() {
			return nil
		}
	case tcell.KeyPgDn:
		l.SetPendingScroll(l.scroll.pending + page)
	case tcell.KeyPgUp:
		l.SetPendingScroll(l.scroll.pending - page)
	case tcell.KeyHome:
		l.ScrollToOffset(0, false)
	case tcell.KeyEnd:
		l.ScrollToOffset(l.maxOffset(), false)
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler moves the cursor on click and scrolls on wheel events.
func (l *List) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	return l.handleMouse(action, event, l)
}

// handleMouse handles a mouse event, focusing target on press.
func (l *List) handleMouse(action MouseAction, event *tcell.EventMouse, target Primitive) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: target}
	case MouseLeftClick:
		if index := l.IndexAtPoint(x, y); index >= 0 && index != l.cursor {
			l.moveCursor(index)
			l.scroll.wantsCursor = false
		}
		return nil, RedrawCommand{}
	case MouseScrollUp:
		l.SetPendingScroll(l.scroll.pending - 3)
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.SetPendingScroll(l.scroll.pending + 3)
		return nil, RedrawCommand{}
	}
	return nil, nil
}

// IndexAtPoint returns the index of the item whose natural layout, including
// the gap below it, covers the given screen position, or -1.
func (l *List) IndexAtPoint(x, y int) int {
	if !l.lastRect.contains(x, y) {
		return -1
	}
	row := y - l.lastRect.y + l.scroll.offset
	positions := l.measured.positions
	// The last item starting at or above row.
	i := sort.Search(len(positions), func(i int) bool { return positions[i] > row }) - 1
	if i < 0 {
		return -1
	}
	if row >= positions[i]+l.measured.heights[i]+l.gap {
		return -1
	}
	return i
}

var _ Primitive = &List{}

// clippedScreen drops every cell written outside its area.
type clippedScreen struct {
	tcell.Screen
	area rect
}

func (s *clippedScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if s.area.contains(x, y) {
		s.Screen.SetContent(x, y, primary, combining, style)
	}
}

func (s *clippedScreen) ShowCursor(x, y int) {
	if !s.area.contains(x, y) {
		s.Screen.HideCursor()
		return
	}
	s.Screen.ShowCursor(x, y)
}
