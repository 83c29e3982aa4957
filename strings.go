package tview

import (
	"strings"

	"github.com/rivo/uniseg"
)

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// WordWrap splits text into lines no wider than width cells. Lines break at
// Unicode line break opportunities; a word wider than width is split.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines []string
		// start is the byte offset of the current line, breakAt the last
		// offset it may be broken at and breakWidth the cells before it.
		start, lineWidth, breakAt, breakWidth int
	)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, to := g.Positions()
		if w := g.Width(); lineWidth+w > width {
			if breakAt == start {
				lines = append(lines, text[start:from])
				start, lineWidth = from, 0
			} else {
				lines = append(lines, text[start:breakAt])
				start, lineWidth = breakAt, lineWidth-breakWidth
			}
			breakAt, breakWidth = start, 0
		}
		lineWidth += g.Width()

		switch g.LineBreak() {
		case uniseg.LineCanBreak:
			breakAt, breakWidth = to, lineWidth
		case uniseg.LineMustBreak:
			if to == len(text) && !uniseg.HasTrailingLineBreakInString(text) {
				continue
			}
			lines = append(lines, strings.TrimRight(text[start:to], "\r\n"))
			start, lineWidth = to, 0
			breakAt, breakWidth = start, 0
		}
	}
	return append(lines, text[start:])
}
