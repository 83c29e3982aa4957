package reorder_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"

	"github.com/ayn2op/tview-reorder/reorder"
	"github.com/ayn2op/tview-reorder/reorder/mocks"
)

const itemExtent = 50

type recorder struct {
	armed    []int
	begun    []int
	ended    int
	hovered  []int
	reorders [][2]int
	err      error
}

func (r *recorder) handlers() reorder.Handlers {
	return reorder.Handlers{
		OnArmed:        func(index int) { r.armed = append(r.armed, index) },
		OnDragBegin:    func(index int) { r.begun = append(r.begun, index) },
		OnDragEnd:      func() { r.ended++ },
		OnHoverChanged: func(index int) { r.hovered = append(r.hovered, index) },
		OnReordered: func(_ context.Context, from, to int) error {
			r.reorders = append(r.reorders, [2]int{from, to})
			return r.err
		},
	}
}

func keysOf(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("item-%d", i)
	}
	return keys
}

// newController returns a controller over n items of itemExtent each, laid
// out from content position 0 in a container at screen position 0 that is
// 1000 cells long.
func newController(t *testing.T, n int, rec *recorder, opts reorder.Options) (*reorder.Controller, *mocks.MockHost) {
	t.Helper()
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)

	c := reorder.NewController(host, rec.handlers(), opts)
	keys := keysOf(n)
	c.SetKeys(keys)
	for i, key := range keys {
		c.HandleItemLayout(key, i*itemExtent, itemExtent)
	}
	c.HandleContainerLayout(0, 1000)
	return c, host
}

func expectMeasure(host *mocks.MockHost, pos, extent int) {
	host.EXPECT().MeasureContainer(gomock.Any()).Do(func(done func(int, int)) {
		done(pos, extent)
	})
}

func TestStartDragIgnoredForShortLists(t *testing.T) {
	for _, n := range []int{0, 1} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			rec := &recorder{}
			c, _ := newController(t, n, rec, reorder.Options{})

			assert.False(t, c.StartDrag("item-0", 0))
			assert.Equal(t, reorder.StateIdle, c.State())
			assert.Empty(t, rec.armed)
		})
	}
}

func TestDragToEndOfVisibleList(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	// The grant measurement reads a transient zero extent which must not
	// replace the laid out extent; otherwise the move below would auto-scroll.
	expectMeasure(host, 0, 0)

	require.True(t, c.StartDrag("item-0", 0))
	assert.Equal(t, reorder.StateArmed, c.State())
	assert.Equal(t, []int{0}, rec.armed)

	require.True(t, c.Grant(reorder.Point{Y: 25}))
	assert.Equal(t, reorder.StateDragging, c.State())
	assert.Equal(t, []int{0}, rec.begun)
	assert.Equal(t, 1000, c.Viewport().Frame().Extent)

	c.Move(reorder.Point{Y: 220})
	s := c.Session()
	assert.Equal(t, 4, s.PanIndex)
	assert.Equal(t, 195, s.Delta)
	assert.Equal(t, 195, s.Pan)
	assert.Equal(t, itemExtent, s.ActiveExtent)
	assert.Equal(t, []int{4}, rec.hovered)

	err := <-c.Release()
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ended)
	assert.Equal(t, [][2]int{{0, 4}}, rec.reorders)
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.Equal(t, reorder.Session{}, c.Session())
	assert.False(t, c.Busy())
}

func TestHoverFiresOnlyOnChange(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-2", 2)
	c.Grant(reorder.Point{Y: 125})
	c.Move(reorder.Point{Y: 130})
	c.Move(reorder.Point{Y: 140})
	c.Move(reorder.Point{Y: 160})
	c.Move(reorder.Point{Y: 165})
	c.Move(reorder.Point{Y: 40})

	assert.Equal(t, []int{3, 0}, rec.hovered)
}

func TestReleaseOnStartSlotSkipsCommit(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-1", 1)
	c.Grant(reorder.Point{Y: 75})
	c.Move(reorder.Point{Y: 80})

	require.NoError(t, <-c.Release())
	assert.Empty(t, rec.reorders)
	assert.Equal(t, 1, rec.ended)
	assert.Equal(t, reorder.StateIdle, c.State())
}

func TestDraggingLastItemPastEndSkipsCommit(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-4", 4)
	c.Grant(reorder.Point{Y: 225})
	c.Move(reorder.Point{Y: 400})
	assert.Equal(t, 5, c.Session().PanIndex)

	require.NoError(t, <-c.Release())
	assert.Empty(t, rec.reorders)
	assert.Equal(t, reorder.StateIdle, c.State())
}

func TestDraggingMiddleItemPastEndCommitsToLength(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-1", 1)
	c.Grant(reorder.Point{Y: 75})
	c.Move(reorder.Point{Y: 400})

	require.NoError(t, <-c.Release())
	assert.Equal(t, [][2]int{{1, 5}}, rec.reorders)
}

func TestAbandonedArmedDrag(t *testing.T) {
	rec := &recorder{}
	c, _ := newController(t, 3, rec, reorder.Options{})

	require.True(t, c.StartDrag("item-1", 1))
	c.EndDrag("item-0")
	assert.Equal(t, reorder.StateArmed, c.State(), "end signal of another item")

	c.EndDrag("item-1")
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.Zero(t, rec.ended)
	assert.Empty(t, rec.reorders)
}

func TestReleaseWithoutCapture(t *testing.T) {
	rec := &recorder{}
	c, _ := newController(t, 3, rec, reorder.Options{})

	c.StartDrag("item-1", 1)
	require.NoError(t, <-c.Release())
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.Zero(t, rec.ended)
	assert.Empty(t, rec.reorders)
}

func TestGrantRequiresArmedSession(t *testing.T) {
	rec := &recorder{}
	c, _ := newController(t, 3, rec, reorder.Options{})

	assert.False(t, c.Grant(reorder.Point{Y: 10}))
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.Empty(t, rec.begun)
}

func TestGrantUsesFreshContainerPosition(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	// The container moved down by 100 cells without a layout event.
	expectMeasure(host, 100, 0)

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{Y: 125})
	c.Move(reorder.Point{Y: 180})

	frame := c.Viewport().Frame()
	assert.Equal(t, reorder.Frame{Pos: 100, Extent: 1000}, frame)
	assert.Equal(t, 1, c.Session().PanIndex)
}

func TestMoveAccountsForScrollOffset(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 10, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)
	c.HandleScroll(200)

	c.StartDrag("item-4", 4)
	c.Grant(reorder.Point{Y: 25})
	c.Move(reorder.Point{Y: 75})

	// Pointer at 75 in the viewport is content position 275.
	assert.Equal(t, 5, c.Session().PanIndex)
}

func TestAutoScrollRequests(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 20, rec, reorder.Options{})
	c.HandleContainerLayout(0, 200)
	c.HandleScroll(30)
	expectMeasure(host, 0, 200)

	c.StartDrag("item-2", 2)
	c.Grant(reorder.Point{Y: 95})

	gomock.InOrder(
		host.EXPECT().ScrollToOffset(80, true),
		host.EXPECT().ScrollToOffset(0, true),
	)
	c.Move(reorder.Point{Y: 190})
	c.Move(reorder.Point{Y: 10})
}

func TestAutoScrollDisabled(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 20, rec, reorder.Options{DisableAutoScroll: true})
	c.HandleContainerLayout(0, 200)
	expectMeasure(host, 0, 200)

	c.StartDrag("item-2", 2)
	c.Grant(reorder.Point{Y: 95})
	c.Move(reorder.Point{Y: 199})
	assert.Equal(t, 3, c.Session().PanIndex)
}

func TestMoveDefersUntilActiveItemMeasured(t *testing.T) {
	rec := &recorder{}
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)
	expectMeasure(host, 0, 500)

	c := reorder.NewController(host, rec.handlers(), reorder.Options{})
	c.SetKeys(keysOf(3))
	c.HandleContainerLayout(0, 500)

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{Y: 5})
	c.Move(reorder.Point{Y: 120})
	assert.Equal(t, 0, c.Session().PanIndex)
	assert.Empty(t, rec.hovered)

	for i, key := range keysOf(3) {
		c.HandleItemLayout(key, i*itemExtent, itemExtent)
	}
	c.Move(reorder.Point{Y: 121})
	assert.Equal(t, 2, c.Session().PanIndex)
}

func TestRejectedHandlerStillResets(t *testing.T) {
	rec := &recorder{err: errors.New("write failed")}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{Y: 25})
	c.Move(reorder.Point{Y: 120})

	err := <-c.Release()
	require.ErrorContains(t, err, "write failed")
	assert.Equal(t, 1, rec.ended)
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.False(t, c.Busy())

	expectMeasure(host, 0, 1000)
	assert.True(t, c.StartDrag("item-1", 1))
	assert.True(t, c.Grant(reorder.Point{Y: 75}))
}

func TestPanickingHandlerStillResets(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	c.SetHandlers(reorder.Handlers{
		OnReordered: func(context.Context, int, int) error { panic("boom") },
	})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{Y: 25})
	c.Move(reorder.Point{Y: 120})

	err := <-c.Release()
	require.ErrorContains(t, err, reorder.ErrHandlerPanicked.Error())
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "boom", zErr.Metadata()["panic"])
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.False(t, c.Busy())
}

// loop is a stand-in for the host event loop used in asynchronous mode.
type loop struct {
	queue chan func()
}

func newLoop() *loop {
	return &loop{queue: make(chan func(), 8)}
}

func (l *loop) post(f func()) {
	l.queue <- f
}

func (l *loop) runOne(t *testing.T) {
	t.Helper()
	select {
	case f := <-l.queue:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("no update queued")
	}
}

func TestCommitLatchBlocksNewDrags(t *testing.T) {
	ev := newLoop()
	unblock := make(chan struct{})
	started := make(chan [2]int, 1)

	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{Queue: ev.post})
	c.SetHandlers(reorder.Handlers{
		OnDragEnd: func() { rec.ended++ },
		OnReordered: func(ctx context.Context, from, to int) error {
			started <- [2]int{from, to}
			<-unblock
			return errors.New("rejected")
		},
	})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-3", 3)
	c.Grant(reorder.Point{Y: 175})
	c.Move(reorder.Point{Y: 30})
	result := c.Release()

	assert.Equal(t, [2]int{3, 0}, <-started)
	assert.Equal(t, reorder.StateCommitting, c.State())
	assert.True(t, c.Busy())
	assert.Equal(t, 1, rec.ended)

	// A drag start while the handler is outstanding is ignored.
	assert.False(t, c.StartDrag("item-1", 1))
	assert.False(t, c.Grant(reorder.Point{Y: 75}))
	assert.Equal(t, reorder.StateCommitting, c.State())

	// Keyboard reorders share the latch.
	require.ErrorContains(t, <-c.Reorder(0, 1), reorder.ErrCommitInProgress.Error())

	// Unrelated notifications keep flowing.
	c.HandleScroll(40)
	assert.Equal(t, 40, c.Viewport().ScrollOffset())

	close(unblock)
	ev.runOne(t)

	require.ErrorContains(t, <-result, "rejected")
	assert.Equal(t, reorder.StateIdle, c.State())
	assert.False(t, c.Busy())
	assert.True(t, c.StartDrag("item-1", 1))
}

func TestSubscribersSeeEveryTransition(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	var states []reorder.State
	cancel := c.Subscribe(func(s reorder.Session) {
		states = append(states, s.State)
	})

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{Y: 25})
	c.Move(reorder.Point{Y: 80})
	<-c.Release()

	assert.Equal(t, []reorder.State{
		reorder.StateArmed,
		reorder.StateDragging,
		reorder.StateDragging,
		reorder.StateCommitting,
		reorder.StateIdle,
	}, states)

	cancel()
	c.StartDrag("item-0", 0)
	assert.Len(t, states, 5)
}

func TestPassThroughNotifications(t *testing.T) {
	var (
		scrolled  []int
		laidOut   []string
		container []int
	)
	c := reorder.NewController(nil, reorder.Handlers{
		OnScroll:          func(offset int) { scrolled = append(scrolled, offset) },
		OnLayout:          func(key string, pos, extent int) { laidOut = append(laidOut, fmt.Sprint(key, pos, extent)) },
		OnContainerLayout: func(pos, extent int) { container = append(container, pos, extent) },
	}, reorder.Options{})

	c.HandleScroll(12)
	c.HandleItemLayout("a", 3, 4)
	c.HandleContainerLayout(1, 20)

	assert.Equal(t, []int{12}, scrolled)
	assert.Equal(t, []string{"a3 4"}, laidOut)
	assert.Equal(t, []int{1, 20}, container)

	entry, ok := c.Layouts().Get("a")
	require.True(t, ok)
	assert.Equal(t, reorder.LayoutEntry{Pos: 3, Extent: 4}, entry)
}

func TestKeyboardReorder(t *testing.T) {
	rec := &recorder{}
	c, _ := newController(t, 4, rec, reorder.Options{})

	require.NoError(t, <-c.Reorder(1, 2))
	require.NoError(t, <-c.Reorder(2, 2))
	require.NoError(t, <-c.Reorder(3, 4))
	require.NoError(t, <-c.Reorder(-1, 0))
	assert.Equal(t, [][2]int{{1, 2}}, rec.reorders)

	c.StartDrag("item-0", 0)
	require.ErrorContains(t, <-c.Reorder(0, 1), reorder.ErrDragInProgress.Error())
}

type ctxKey struct{}

func TestReorderHandlerReceivesContext(t *testing.T) {
	c, _ := newController(t, 3, &recorder{}, reorder.Options{})
	var got any
	c.SetHandlers(reorder.Handlers{
		OnReordered: func(ctx context.Context, _, _ int) error {
			got = ctx.Value(ctxKey{})
			return nil
		},
	})
	c.SetContext(context.WithValue(context.Background(), ctxKey{}, "demo"))

	require.NoError(t, <-c.Reorder(0, 2))
	assert.Equal(t, "demo", got)
}

func TestPropsReflectSession(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 3, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	props := c.Props("item-1", 1)
	assert.False(t, props.Active)

	props.DragStart()
	assert.Equal(t, reorder.StateArmed, c.State())
	assert.True(t, c.Props("item-1", 1).Active)
	assert.False(t, c.Props("item-0", 0).Active)

	c.Grant(reorder.Point{Y: 75})
	c.Move(reorder.Point{Y: 90})
	assert.Equal(t, 15, c.Props("item-1", 1).Offset)

	props.Layout(60, 40)
	entry, _ := c.Layouts().Get("item-1")
	assert.Equal(t, reorder.LayoutEntry{Pos: 60, Extent: 40}, entry)
}

func TestPropsDragEndAbandonsArmedDrag(t *testing.T) {
	rec := &recorder{}
	c, _ := newController(t, 3, rec, reorder.Options{})

	props := c.Props("item-2", 2)
	props.DragStart()
	props.DragEnd()
	assert.Equal(t, reorder.StateIdle, c.State())
}

func TestHorizontalAxis(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{Axis: reorder.Horizontal})
	expectMeasure(host, 0, 1000)

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{X: 25, Y: 3})
	c.Move(reorder.Point{X: 160, Y: 90})
	assert.Equal(t, 3, c.Session().PanIndex)
	assert.Equal(t, reorder.Horizontal, c.Session().Axis)
}

func TestSetAxisBroadcastsAndSwitchesCoordinate(t *testing.T) {
	rec := &recorder{}
	c, host := newController(t, 5, rec, reorder.Options{})
	expectMeasure(host, 0, 1000)

	var axes []reorder.Axis
	cancel := c.Subscribe(func(s reorder.Session) { axes = append(axes, s.Axis) })
	defer cancel()

	c.SetAxis(reorder.Horizontal)
	c.SetAxis(reorder.Horizontal)
	assert.Equal(t, []reorder.Axis{reorder.Horizontal}, axes)

	c.StartDrag("item-0", 0)
	c.Grant(reorder.Point{X: 25, Y: 900})
	c.Move(reorder.Point{X: 130})
	assert.Equal(t, 2, c.Session().PanIndex)
}

func TestPropsLayoutPassesThroughToHandler(t *testing.T) {
	rec := &recorder{}
	c, _ := newController(t, 3, rec, reorder.Options{})

	type layout struct {
		key         string
		pos, extent int
	}
	var seen []layout
	handlers := rec.handlers()
	handlers.OnLayout = func(key string, pos, extent int) {
		seen = append(seen, layout{key, pos, extent})
	}
	c.SetHandlers(handlers)

	c.Props("item-2", 2).Layout(120, 30)
	c.HandleItemLayout("item-0", 0, 10)

	assert.Equal(t, []layout{{"item-2", 120, 30}, {"item-0", 0, 10}}, seen)
	entry, ok := c.Layouts().Get("item-2")
	require.True(t, ok)
	assert.Equal(t, reorder.LayoutEntry{Pos: 120, Extent: 30}, entry)
}
