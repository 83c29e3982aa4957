package tview

import "github.com/gdamore/tcell/v2"

// Primitive is anything the application can lay out, draw and send events
// to. Handlers do not act on the application directly; they return a
// [Command] the event loop executes.
type Primitive interface {
	Draw(screen tcell.Screen)

	// GetRect returns x, y, width and height.
	GetRect() (int, int, int, int)
	SetRect(x, y, width, height int)

	// InputHandler is only called while the primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles one mouse action. A non-nil primitive returned
	// captures the mouse: it gets every following action until its handler
	// returns nil.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)
	PasteHandler(text string) Command

	// HasFocus reports whether the primitive or one of its children has
	// focus.
	HasFocus() bool
	// Focus gives the primitive focus. A container passes it on to a child
	// through delegate.
	Focus(delegate func(p Primitive))
	Blur()

	IsDirty() bool
	MarkClean()
}
