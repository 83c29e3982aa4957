package tview

import (
	"maps"
	"slices"
	"strings"
)

// BorderSet is the glyphs a box frame is drawn with.
type BorderSet struct {
	Top, Bottom, Left, Right                   string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

// newBorderSet builds a frame from one horizontal and one vertical glyph and
// the corners in reading order.
func newBorderSet(horizontal, vertical, corners string) BorderSet {
	c := []rune(corners)
	return BorderSet{
		Top: horizontal, Bottom: horizontal,
		Left: vertical, Right: vertical,
		TopLeft: string(c[0]), TopRight: string(c[1]),
		BottomLeft: string(c[2]), BottomRight: string(c[3]),
	}
}

func BorderSetPlain() BorderSet  { return newBorderSet("─", "│", "┌┐└┘") }
func BorderSetRound() BorderSet  { return newBorderSet("─", "│", "╭╮╰╯") }
func BorderSetThick() BorderSet  { return newBorderSet("━", "┃", "┏┓┗┛") }
func BorderSetDouble() BorderSet { return newBorderSet("═", "║", "╔╗╚╝") }

// BorderSetHidden keeps the space of a frame without drawing it.
func BorderSetHidden() BorderSet { return newBorderSet(" ", " ", "    ") }

var borderSets = map[string]func() BorderSet{
	"hidden": BorderSetHidden,
	"plain":  BorderSetPlain,
	"round":  BorderSetRound,
	"thick":  BorderSetThick,
	"double": BorderSetDouble,
}

// BorderSetByName returns the border set called name, ignoring case.
func BorderSetByName(name string) (BorderSet, bool) {
	set, ok := borderSets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return BorderSet{}, false
	}
	return set(), true
}

// BorderSetNames returns the names [BorderSetByName] accepts, sorted.
func BorderSetNames() []string {
	return slices.Sorted(maps.Keys(borderSets))
}

// Borders is a set of box sides.
type Borders uint8

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll          = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether all sides of flag are set.
func (b Borders) Has(flag Borders) bool {
	return b&flag == flag
}
