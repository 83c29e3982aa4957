package layers_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tview "github.com/ayn2op/tview-reorder"
	"github.com/ayn2op/tview-reorder/layers"
)

// focuser moves the focus the way the application does.
type focuser struct {
	current tview.Primitive
}

func (f *focuser) set(p tview.Primitive) {
	if f.current != nil {
		f.current.Blur()
	}
	f.current = p
	p.Focus(f.set)
}

func newLayers() (*layers.Layers, *tview.Box, *tview.Box) {
	base := tview.NewBox()
	overlay := tview.NewBox()
	overlay.SetRect(15, 0, 5, 2)

	l := layers.New()
	l.SetRect(0, 0, 20, 10)
	l.AddLayer(base, layers.WithName("base"), layers.WithResize(true))
	l.AddLayer(overlay, layers.WithName("overlay"), layers.WithOverlay(), layers.WithVisible(false))
	return l, base, overlay
}

func TestFocusFollowsTopLayer(t *testing.T) {
	l, base, overlay := newLayers()
	f := &focuser{}
	f.set(l)
	require.True(t, base.HasFocus())

	l.ShowLayer("overlay")
	assert.True(t, overlay.HasFocus())
	assert.False(t, base.HasFocus())
	name, item := l.GetFrontLayer()
	assert.Equal(t, "overlay", name)
	assert.Equal(t, tview.Primitive(overlay), item)

	l.ToggleLayer("overlay")
	assert.False(t, l.GetVisible("overlay"))
	assert.True(t, base.HasFocus())
	assert.True(t, l.HasFocus())
}

func TestOverlaySwallowsMouse(t *testing.T) {
	l, base, _ := newLayers()
	base.SetRect(0, 0, 20, 10)
	event := tcell.NewEventMouse(2, 2, tcell.ButtonPrimary, tcell.ModNone)

	_, cmd := l.MouseHandler(tview.MouseLeftDown, event)
	assert.Equal(t, tview.SetFocusCommand{Target: base}, cmd)

	l.ShowLayer("overlay")
	_, cmd = l.MouseHandler(tview.MouseLeftDown, event)
	assert.Equal(t, tview.ConsumeEventCommand{}, cmd)
}

func TestOverlayDimsLayersBehind(t *testing.T) {
	l, _, _ := newLayers()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(20, 10)

	l.Draw(screen)
	assert.False(t, dimmed(screen, 2, 2))

	l.ShowLayer("overlay")
	l.Draw(screen)
	assert.True(t, dimmed(screen, 2, 2))
	assert.False(t, dimmed(screen, 16, 1))
}

func dimmed(screen tcell.Screen, x, y int) bool {
	_, _, style, _ := screen.GetContent(x, y)
	_, _, attrs := style.Decompose()
	return attrs&tcell.AttrDim != 0
}
