package help

import (
	"github.com/gdamore/tcell/v2"

	tview "github.com/ayn2op/tview-reorder"
)

// Styles are the styles help is drawn with, for the single line and the
// column layout.
type Styles struct {
	ShortKey, ShortDesc, ShortSeparator tcell.Style
	FullKey, FullDesc, FullSeparator    tcell.Style
	Ellipsis                            tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Foreground(tview.Styles.SecondaryTextColor).Dim(true)
	text := tcell.StyleDefault.Foreground(tview.Styles.PrimaryTextColor)
	return Styles{
		ShortKey: dim, ShortDesc: text, ShortSeparator: dim,
		FullKey: dim, FullDesc: text, FullSeparator: dim,
		Ellipsis: dim,
	}
}
