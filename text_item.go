package tview

import "github.com/gdamore/tcell/v2"

// TextItem is a list item showing word-wrapped text, optionally preceded by a
// drag handle.
type TextItem struct {
	*Box

	text string

	style         tcell.Style
	selectedStyle tcell.Style
	activeStyle   tcell.Style
	handleStyle   tcell.Style

	selected bool
	active   bool
	handle   bool
}

// NewTextItem returns a new text item.
func NewTextItem(text string) *TextItem {
	return &TextItem{
		Box:           NewBox(),
		text:          text,
		style:         tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
		selectedStyle: tcell.StyleDefault.Foreground(Styles.PrimitiveBackgroundColor).Background(Styles.PrimaryTextColor),
		activeStyle:   tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.DragBackgroundColor).Bold(true),
		handleStyle:   tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
		handle:        true,
	}
}

// SetText sets the text. The owning list must be told to invalidate its
// layout when the number of wrapped lines changes.
func (t *TextItem) SetText(text string) *TextItem {
	if t.text != text {
		t.text = text
		t.MarkDirty()
	}
	return t
}

// Text returns the text.
func (t *TextItem) Text() string {
	return t.text
}

// SetStyle sets the style of an idle item.
func (t *TextItem) SetStyle(style tcell.Style) *TextItem {
	t.style = style
	t.MarkDirty()
	return t
}

// SetSelectedStyle sets the style of the item under the cursor.
func (t *TextItem) SetSelectedStyle(style tcell.Style) *TextItem {
	t.selectedStyle = style
	t.MarkDirty()
	return t
}

// SetActiveStyle sets the style of the item being dragged.
func (t *TextItem) SetActiveStyle(style tcell.Style) *TextItem {
	t.activeStyle = style
	t.MarkDirty()
	return t
}

// SetHandleStyle sets the style of the drag handle.
func (t *TextItem) SetHandleStyle(style tcell.Style) *TextItem {
	t.handleStyle = style
	t.MarkDirty()
	return t
}

// SetSelected marks the item as being under the cursor.
func (t *TextItem) SetSelected(selected bool) *TextItem {
	if t.selected != selected {
		t.selected = selected
		t.MarkDirty()
	}
	return t
}

// SetActive marks the item as being dragged.
func (t *TextItem) SetActive(active bool) *TextItem {
	if t.active != active {
		t.active = active
		t.MarkDirty()
	}
	return t
}

// SetHandle toggles the drag handle column.
func (t *TextItem) SetHandle(handle bool) *TextItem {
	if t.handle != handle {
		t.handle = handle
		t.MarkDirty()
	}
	return t
}

// HandleWidth returns the number of columns in front of the text.
func (t *TextItem) HandleWidth() int {
	if t.handle {
		return 2
	}
	return 0
}

// Height returns the number of wrapped lines at the given width.
func (t *TextItem) Height(width int) int {
	return max(len(t.lines(width)), 1)
}

func (t *TextItem) lines(width int) []string {
	return WordWrap(t.text, max(width-t.HandleWidth(), 1))
}

func (t *TextItem) currentStyle() tcell.Style {
	switch {
	case t.active:
		return t.activeStyle
	case t.selected:
		return t.selectedStyle
	}
	return t.style
}

// Draw draws this primitive onto the screen.
func (t *TextItem) Draw(screen tcell.Screen) {
	x, y, width, height := t.GetRect()
	if width <= 0 || height <= 0 {
		return
	}
	style := t.currentStyle()
	fillRect(screen, x, y, width, height, style)

	offset := t.HandleWidth()
	if t.handle {
		_, bg, _ := style.Decompose()
		setCell(screen, x, y, SemigraphicsDragHandle, t.handleStyle.Background(bg))
	}
	for i, line := range t.lines(width) {
		if i >= height {
			break
		}
		PrintStyled(screen, line, x+offset, y+i, width-offset, AlignmentLeft, style)
	}
}

var _ ListItem = &TextItem{}
