package tview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

const (
	SemigraphicsHorizontalEllipsis = "…"
	SemigraphicsDragHandle         = "≡"
)

// setCell writes a grapheme cluster into a single screen cell.
func setCell(screen tcell.Screen, x, y int, cluster string, style tcell.Style) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	screen.SetContent(x, y, runes[0], runes[1:], style)
}

func cellStyle(screen tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := screen.GetContent(x, y)
	return style
}

func fillRect(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// PrintStyled prints text on row y within maxWidth cells starting at x. Text
// that does not fit is cut: on the right when aligned left or centered, on
// the left when aligned right. It returns the number of bytes of text and the
// number of cells printed.
func PrintStyled(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	_, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}

	width := uniseg.StringWidth(text)
	switch alignment {
	case AlignmentRight:
		for width > maxWidth {
			cluster, rest, w, _ := uniseg.FirstGraphemeClusterInString(text, -1)
			if cluster == "" {
				break
			}
			text, width = rest, width-w
		}
		x += maxWidth - width
	case AlignmentCenter:
		if width < maxWidth {
			x += (maxWidth - width) / 2
		}
	}

	bytes, cells := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if cells+w > maxWidth {
			break
		}
		// The trailing cells of a wide cluster are blanked first.
		for i := w - 1; i > 0; i-- {
			setCell(screen, x+cells+i, y, " ", style)
		}
		if w > 0 {
			setCell(screen, x+cells, y, g.Str(), style)
		}
		_, to := g.Positions()
		bytes, cells = to, cells+w
	}
	return bytes, cells
}
