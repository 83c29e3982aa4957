package tview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// caption is a line of text drawn over the top or bottom border.
type caption struct {
	text      string
	style     tcell.Style
	alignment Alignment
}

// draw prints the caption on row y between the corners of a frame at x that
// is width cells wide, ending it with an ellipsis when it does not fit.
func (c caption) draw(screen tcell.Screen, x, y, width int, background tcell.Color) {
	if c.text == "" || width < 4 {
		return
	}
	style := c.style.Background(background)
	printed, _ := PrintStyled(screen, c.text, x+1, y, width-2, c.alignment, style)
	if printed == 0 || printed == len(c.text) {
		return
	}
	ellipsisX := x + width - 2
	if c.alignment == AlignmentRight {
		ellipsisX = x + 1
	}
	setCell(screen, ellipsisX, y, SemigraphicsHorizontalEllipsis, style)
}

// padding is the space between the border and the content.
type padding struct {
	top, bottom, left, right int
}

// Box is the base of every primitive: a rectangle with an optional border,
// title and footer. It tracks the focus and whether it has to be redrawn.
type Box struct {
	x, y, width, height int
	padding             padding

	background       tcell.Color
	borders          Borders
	borderSet        BorderSet
	borderStyle      tcell.Style
	focusBorderStyle tcell.Style

	title  caption
	footer caption

	hasFocus bool

	dirty atomic.Bool
	// dirtyParent is dirtied along with this box, so containers learn about
	// dirty children without scanning them.
	dirtyParent atomic.Pointer[Box]
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	borderStyle := tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor)
	b := &Box{
		width:            15,
		height:           10,
		background:       Styles.PrimitiveBackgroundColor,
		borderSet:        BorderSetPlain(),
		borderStyle:      borderStyle,
		focusBorderStyle: borderStyle.Bold(true),
		title:            caption{style: tcell.StyleDefault.Foreground(Styles.TitleColor), alignment: AlignmentCenter},
		footer:           caption{style: tcell.StyleDefault.Foreground(Styles.SecondaryTextColor), alignment: AlignmentCenter},
	}
	b.dirty.Store(true)
	return b
}

// GetRect returns the position of the box: x, y, width and height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect sets the position of the box.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x, b.y, b.width, b.height = x, y, width, height
		b.MarkDirty()
	}
}

// GetInnerRect returns the rect left for content inside the border, the
// title and footer rows, and the padding. Width and height are never
// negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	x, y, width, height := b.x, b.y, b.width, b.height
	if b.title.text != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer.text != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}

	x += b.padding.left
	y += b.padding.top
	width -= b.padding.left + b.padding.right
	height -= b.padding.top + b.padding.bottom
	return x, y, max(width, 0), max(height, 0)
}

// InRect reports whether x, y lies within the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// SetBorderPadding sets the space between the border and the content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	if p := (padding{top, bottom, left, right}); b.padding != p {
		b.padding = p
		b.MarkDirty()
	}
	return b
}

// IsDirty returns whether this primitive needs redrawing.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty marks this primitive and its dirty parent as needing a redraw.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if parent := b.dirtyParent.Load(); parent != nil {
		parent.MarkDirty()
	}
}

// MarkClean marks this primitive as clean.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

type dirtyParentSetter interface {
	setDirtyParent(parent *Box)
	clearDirtyParent(parent *Box)
}

func (b *Box) setDirtyParent(parent *Box) {
	if parent != nil && parent != b {
		b.dirtyParent.Store(parent)
	}
}

func (b *Box) clearDirtyParent(parent *Box) {
	if parent != nil {
		b.dirtyParent.CompareAndSwap(parent, nil)
	}
}

// bindDirtyParent makes child dirty parent whenever it becomes dirty.
func bindDirtyParent(child Primitive, parent *Box) {
	if setter, ok := child.(dirtyParentSetter); ok && parent != nil {
		setter.setDirtyParent(parent)
	}
}

func unbindDirtyParent(child Primitive, parent *Box) {
	if setter, ok := child.(dirtyParentSetter); ok && parent != nil {
		setter.clearDirtyParent(parent)
	}
}

// InputHandler ignores key events.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// PasteHandler ignores pasted text.
func (b *Box) PasteHandler(text string) Command {
	return nil
}

// MouseHandler requests focus when the box is pressed.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// SetBackgroundColor sets the color the box is cleared with.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.background != color {
		b.background = color
		b.borderStyle = b.borderStyle.Background(color)
		b.focusBorderStyle = b.focusBorderStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

// GetBorders returns the borders.
func (b *Box) GetBorders() Borders {
	return b.borders
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(borders Borders) *Box {
	if b.borders != borders {
		b.borders = borders
		b.MarkDirty()
	}
	return b
}

// GetBorderSet returns the border glyphs.
func (b *Box) GetBorderSet() BorderSet {
	return b.borderSet
}

// SetBorderSet sets the border glyphs.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	if b.borderSet != borderSet {
		b.borderSet = borderSet
		b.MarkDirty()
	}
	return b
}

// SetBorderStyle sets the border style of the box when it is not focused.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	b.borderStyle = style
	b.MarkDirty()
	return b
}

// SetFocusBorderStyle sets the border style of the box while it, or one of
// its children, has focus.
func (b *Box) SetFocusBorderStyle(style tcell.Style) *Box {
	b.focusBorderStyle = style
	b.MarkDirty()
	return b
}

// GetTitle returns the title.
func (b *Box) GetTitle() string {
	return b.title.text
}

// SetTitle sets the title drawn over the top border.
func (b *Box) SetTitle(title string) *Box {
	if b.title.text != title {
		b.title.text = title
		b.MarkDirty()
	}
	return b
}

// SetTitleAlignment sets the alignment of the title.
func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	b.title.alignment = alignment
	b.MarkDirty()
	return b
}

// GetFooter returns the footer.
func (b *Box) GetFooter() string {
	return b.footer.text
}

// SetFooter sets the footer drawn over the bottom border.
func (b *Box) SetFooter(footer string) *Box {
	if b.footer.text != footer {
		b.footer.text = footer
		b.MarkDirty()
	}
	return b
}

// SetFooterAlignment sets the alignment of the footer.
func (b *Box) SetFooterAlignment(alignment Alignment) *Box {
	b.footer.alignment = alignment
	b.MarkDirty()
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws the background, border, title and footer of p, a
// primitive embedding this box. The border is highlighted while p has focus.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}
	fillRect(screen, b.x, b.y, b.width, b.height, tcell.StyleDefault.Background(b.background))

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		style := b.borderStyle
		if p.HasFocus() {
			style = b.focusBorderStyle
		}
		b.drawBorder(screen, style)
	}
	b.title.draw(screen, b.x, b.y, b.width, b.background)
	b.footer.draw(screen, b.x, b.y+b.height-1, b.width, b.background)
}

func (b *Box) drawBorder(screen tcell.Screen, style tcell.Style) {
	set := b.borderSet
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1

	for x := left + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			setCell(screen, x, top, set.Top, style)
		}
		if b.borders.Has(BordersBottom) {
			setCell(screen, x, bottom, set.Bottom, style)
		}
	}
	for y := top + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			setCell(screen, left, y, set.Left, style)
		}
		if b.borders.Has(BordersRight) {
			setCell(screen, right, y, set.Right, style)
		}
	}

	corners := []struct {
		sides Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, corner := range corners {
		if b.borders.Has(corner.sides) {
			setCell(screen, corner.x, corner.y, corner.glyph, style)
		}
	}
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}
