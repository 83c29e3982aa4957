package help_test

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/tview-reorder/help"
	"github.com/ayn2op/tview-reorder/keybind"
)

type keyMap struct {
	up, down, hidden keybind.Keybind
}

func newKeyMap() keyMap {
	return keyMap{
		up:     keybind.NewKeybind(keybind.WithKeys("up"), keybind.WithHelp("up", "move up")),
		down:   keybind.NewKeybind(keybind.WithKeys("down"), keybind.WithHelp("down", "move down")),
		hidden: keybind.NewKeybind(keybind.WithKeys("x"), keybind.WithHelp("x", "hidden"), keybind.WithDisabled()),
	}
}

func (k keyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.up, k.hidden, k.down}
}

func (k keyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{{k.up, k.down}, {k.hidden}}
}

func TestShortHelpTruncates(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(20, 1)

	h := help.New().SetKeyMap(newKeyMap())
	h.SetRect(0, 0, 20, 1)
	h.Draw(screen)
	screen.Show()

	assert.Equal(t, "up move up …", strings.TrimRight(row(screen, 0), " "))
}

func TestShortHelpFits(t *testing.T) {
	h := help.New().SetKeyMap(newKeyMap())

	width, height := h.Size(80)
	assert.Equal(t, 27, width)
	assert.Equal(t, 1, height)
}

func TestFullHelpAlignsKeys(t *testing.T) {
	h := help.New()
	k := newKeyMap()

	lines := h.FullHelpLines(k.FullHelp(), 0)
	assert.Equal(t, []string{"up   move up", "down move down"}, lines)

	h.SetKeyMap(k).SetShowAll(true)
	width, height := h.Size(80)
	assert.Equal(t, 14, width)
	assert.Equal(t, 2, height)
}

func TestFullHelpColumns(t *testing.T) {
	h := help.New()
	k := newKeyMap()
	groups := [][]keybind.Keybind{{k.up}, {k.down}}

	assert.Equal(t, []string{"up move up    down move down"}, h.FullHelpLines(groups, 0))
	assert.Equal(t, []string{"up move up …"}, h.FullHelpLines(groups, 16))
	assert.Equal(t, []string{"…"}, h.FullHelpLines(groups, 4))
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteString(string(cells[y*width+x].Runes))
	}
	return b.String()
}
