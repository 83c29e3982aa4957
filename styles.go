package tview

import "github.com/gdamore/tcell/v2"

// Theme is the set of colors primitives pick their default styles from.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color
	// DragBackgroundColor is the background of the item being dragged.
	DragBackgroundColor tcell.Color
	BorderColor         tcell.Color
	TitleColor          tcell.Color
	PrimaryTextColor    tcell.Color
	// SecondaryTextColor is used for footers, key hints, drag handles and
	// the scroll bar thumb.
	SecondaryTextColor tcell.Color
}

// Styles is read when a primitive is created; change it before creating
// any.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	DragBackgroundColor:      tcell.ColorGreen,
	BorderColor:              tcell.ColorWhite,
	TitleColor:               tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
}
