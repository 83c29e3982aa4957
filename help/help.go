// Package help draws the keybinds of a key map, either on one line or as
// aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	tview "github.com/ayn2op/tview-reorder"
	"github.com/ayn2op/tview-reorder/keybind"
)

// KeyMap is implemented by primitives that describe their keybinds.
type KeyMap interface {
	// ShortHelp returns the keybinds of the single line.
	ShortHelp() []keybind.Keybind
	// FullHelp returns groups of keybinds, one column each.
	FullHelp() [][]keybind.Keybind
}

const (
	shortSeparator  = " • "
	columnSeparator = "    "
	ellipsis        = "…"
)

type Help struct {
	*tview.Box
	Styles Styles

	keyMap  KeyMap
	showAll bool
}

func New() *Help {
	return &Help{
		Box:    tview.NewBox(),
		Styles: DefaultStyles(),
	}
}

func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll switches between the single line and the columns.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	x, y, width, height := h.GetInnerRect()
	for i, l := range h.lines(width) {
		if i >= height {
			break
		}
		l.draw(screen, x, y+i, width)
	}
}

// Size returns the columns and rows the help takes within maxWidth columns.
// The border and padding are not included.
func (h *Help) Size(maxWidth int) (width, height int) {
	if h.keyMap == nil {
		return 0, 0
	}
	if !h.showAll {
		return h.shortLine(h.keyMap.ShortHelp(), maxWidth).width(), 1
	}
	lines := h.fullLines(h.keyMap.FullHelp(), maxWidth)
	for _, l := range lines {
		width = max(width, l.width())
	}
	return width, len(lines)
}

// FullHelpLines lays groups out as columns and returns the plain text of
// each row. A maxWidth of 0 means unlimited.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	lines := h.fullLines(groups, maxWidth)
	text := make([]string, len(lines))
	for i, l := range lines {
		text[i] = l.String()
	}
	return text
}

func (h *Help) lines(width int) []line {
	switch {
	case h.keyMap == nil:
		return nil
	case h.showAll:
		return h.fullLines(h.keyMap.FullHelp(), width)
	}
	if l := h.shortLine(h.keyMap.ShortHelp(), width); len(l) > 0 {
		return []line{l}
	}
	return nil
}

type span struct {
	text  string
	style tcell.Style
}

type line []span

func (l line) width() int {
	width := 0
	for _, s := range l {
		width += tview.StringWidth(s.text)
	}
	return width
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		_, printed := tview.PrintStyled(screen, s.text, x, y, width, tview.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

func (h *Help) padding(width int, style tcell.Style) span {
	return span{strings.Repeat(" ", width), style}
}

// truncated appends an ellipsis to l if it fits within maxWidth.
func (h *Help) truncated(l line, maxWidth int) line {
	tail := line{{" " + ellipsis, h.Styles.Ellipsis}}
	if maxWidth > 0 && l.width()+tail.width() <= maxWidth {
		return append(l, tail...)
	}
	return l
}

func (h *Help) shortItem(kb keybind.Keybind) line {
	help := kb.Help()
	if !kb.Enabled() {
		return nil
	}
	var l line
	if help.Key != "" {
		l = append(l, span{help.Key, h.Styles.ShortKey})
	}
	if help.Key != "" && help.Desc != "" {
		l = append(l, span{" ", h.Styles.ShortDesc})
	}
	if help.Desc != "" {
		l = append(l, span{help.Desc, h.Styles.ShortDesc})
	}
	return l
}

// shortLine joins the items that fit within maxWidth. It is empty when not
// even the first item fits.
func (h *Help) shortLine(bindings []keybind.Keybind, maxWidth int) line {
	var l line
	for _, kb := range bindings {
		next := h.shortItem(kb)
		if len(next) == 0 {
			continue
		}
		if len(l) > 0 {
			next = append(line{{shortSeparator, h.Styles.ShortSeparator}}, next...)
		}
		if maxWidth > 0 && l.width()+next.width() > maxWidth {
			if len(l) == 0 {
				return nil
			}
			return h.truncated(l, maxWidth)
		}
		l = append(l, next...)
	}
	return l
}

type entry struct {
	key, desc string
}

type column struct {
	entries []entry
	// keyWidth is the widest key; descriptions start after it.
	keyWidth int
	width    int
}

func newColumn(group []keybind.Keybind) column {
	var c column
	for _, kb := range group {
		help := kb.Help()
		if !kb.Enabled() || help == (keybind.Help{}) {
			continue
		}
		c.entries = append(c.entries, entry{help.Key, help.Desc})
		c.keyWidth = max(c.keyWidth, tview.StringWidth(help.Key))
	}
	for _, e := range c.entries {
		width := c.keyWidth + tview.StringWidth(e.desc)
		if e.key != "" && e.desc != "" {
			width++
		}
		c.width = max(c.width, width)
	}
	return c
}

// row returns the cell of c on row i. Every column but the last is padded
// to its width so that separators line up.
func (h *Help) row(c column, i int, last bool) line {
	if i >= len(c.entries) {
		return line{h.padding(c.width, h.Styles.FullDesc)}
	}
	e := c.entries[i]
	var l line
	if e.key != "" {
		l = append(l, span{e.key, h.Styles.FullKey})
	}
	if pad := c.keyWidth - tview.StringWidth(e.key); pad > 0 {
		l = append(l, h.padding(pad, h.Styles.FullKey))
	}
	if e.key != "" && e.desc != "" {
		l = append(l, span{" ", h.Styles.FullDesc})
	}
	if e.desc != "" {
		l = append(l, span{e.desc, h.Styles.FullDesc})
	}
	if pad := c.width - l.width(); !last && pad > 0 {
		l = append(l, h.padding(pad, h.Styles.FullDesc))
	}
	return l
}

// fullLines lays groups out as columns, dropping the columns from the first
// one that does not fit within maxWidth.
func (h *Help) fullLines(groups [][]keybind.Keybind, maxWidth int) []line {
	var columns []column
	for _, group := range groups {
		if c := newColumn(group); len(c.entries) > 0 {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	separatorWidth := tview.StringWidth(columnSeparator)
	fitting, total := 0, 0
	for i, c := range columns {
		width := c.width
		if i > 0 {
			width += separatorWidth
		}
		if maxWidth > 0 && total+width > maxWidth {
			break
		}
		fitting++
		total += width
	}
	if fitting == 0 {
		return []line{{{ellipsis, h.Styles.Ellipsis}}}
	}

	rows := 0
	for _, c := range columns[:fitting] {
		rows = max(rows, len(c.entries))
	}
	lines := make([]line, rows)
	for i := range lines {
		for j, c := range columns[:fitting] {
			if j > 0 {
				lines[i] = append(lines[i], span{columnSeparator, h.Styles.FullSeparator})
			}
			lines[i] = append(lines[i], h.row(c, i, j == fitting-1)...)
		}
	}
	if fitting < len(columns) {
		lines[0] = h.truncated(lines[0], maxWidth)
	}
	return lines
}
