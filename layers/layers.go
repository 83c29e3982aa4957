// Package layers stacks primitives on top of each other, such as a help
// overlay drawn above a list.
package layers

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	tview "github.com/ayn2op/tview-reorder"
)

type layer struct {
	tview.Primitive
	name string
	// resize fits the primitive to the inner rect of the container on draw.
	resize  bool
	visible bool
	// overlay dims the layers behind it and keeps input from them.
	overlay bool
}

// Layers draws its layers from back to front. The front-most visible layer
// holds the focus.
type Layers struct {
	*tview.Box

	stack []*layer
	// delegate is the focus function last passed to Focus. It is needed to
	// move the focus when the front layer changes.
	delegate func(p tview.Primitive)
}

type Option func(*layer)

func WithName(name string) Option {
	return func(l *layer) { l.name = name }
}

func WithResize(resize bool) Option {
	return func(l *layer) { l.resize = resize }
}

func WithVisible(visible bool) Option {
	return func(l *layer) { l.visible = visible }
}

// WithOverlay makes the layer dim the layers behind it while it is visible.
// Mouse and key events do not reach them either.
func WithOverlay() Option {
	return func(l *layer) { l.overlay = true }
}

func New() *Layers {
	return &Layers{Box: tview.NewBox()}
}

// AddLayer puts item in front of all layers, replacing the layer of the same
// name. Layers are visible unless WithVisible(false) is given.
func (l *Layers) AddLayer(item tview.Primitive, opts ...Option) *Layers {
	added := &layer{Primitive: item, visible: true}
	for _, opt := range opts {
		opt(added)
	}
	if added.name != "" {
		l.stack = slices.DeleteFunc(l.stack, func(existing *layer) bool {
			return existing.name == added.name
		})
	}
	l.stack = append(l.stack, added)
	l.MarkDirty()
	if l.delegate != nil && l.HasFocus() {
		l.Focus(l.delegate)
	}
	return l
}

// GetVisible reports whether the named layer exists and is visible.
func (l *Layers) GetVisible(name string) bool {
	found := l.find(name)
	return found != nil && found.visible
}

func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

func (l *Layers) ToggleLayer(name string) *Layers {
	return l.setVisible(name, !l.GetVisible(name))
}

// GetFrontLayer returns the front-most visible layer, or "" and nil.
func (l *Layers) GetFrontLayer() (string, tview.Primitive) {
	if i := l.front(); i >= 0 {
		return l.stack[i].name, l.stack[i].Primitive
	}
	return "", nil
}

func (l *Layers) find(name string) *layer {
	i := slices.IndexFunc(l.stack, func(layer *layer) bool { return layer.name == name })
	if i < 0 {
		return nil
	}
	return l.stack[i]
}

// setVisible changes the visibility of a layer. The focus moves to the new
// front layer if the container had it.
func (l *Layers) setVisible(name string, visible bool) *Layers {
	target := l.find(name)
	if target == nil || target.visible == visible {
		return l
	}
	focused := l.HasFocus()
	if !visible && target.HasFocus() {
		target.Blur()
	}
	target.visible = visible
	l.MarkDirty()
	if focused && l.delegate != nil {
		l.Focus(l.delegate)
	}
	return l
}

// front returns the index of the front-most visible layer, or -1.
func (l *Layers) front() int {
	for i := len(l.stack) - 1; i >= 0; i-- {
		if l.stack[i].visible {
			return i
		}
	}
	return -1
}

// backmost returns the index of the back-most layer that still receives
// input and is drawn undimmed: the front-most visible overlay, or 0.
func (l *Layers) backmost() int {
	for i := len(l.stack) - 1; i >= 0; i-- {
		if l.stack[i].visible && l.stack[i].overlay {
			return i
		}
	}
	return 0
}

func (l *Layers) IsDirty() bool {
	return l.Box.IsDirty() || slices.ContainsFunc(l.stack, func(layer *layer) bool {
		return layer.visible && layer.IsDirty()
	})
}

func (l *Layers) MarkClean() {
	l.Box.MarkClean()
	for _, layer := range l.stack {
		layer.MarkClean()
	}
}

// HasFocus reports whether the container or any of its layers has focus.
func (l *Layers) HasFocus() bool {
	return l.Box.HasFocus() || slices.ContainsFunc(l.stack, func(layer *layer) bool {
		return layer.HasFocus()
	})
}

// Focus passes the focus on to the front layer.
func (l *Layers) Focus(delegate func(p tview.Primitive)) {
	if delegate == nil {
		return
	}
	l.delegate = delegate
	if i := l.front(); i >= 0 {
		delegate(l.stack[i].Primitive)
		return
	}
	l.Box.Focus(delegate)
}

func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	dimmed := &dimScreen{Screen: screen}
	backmost := l.backmost()
	for i, layer := range l.stack {
		if !layer.visible {
			continue
		}
		if layer.resize {
			layer.SetRect(x, y, width, height)
		}
		if i < backmost {
			layer.Draw(dimmed)
		} else {
			layer.Draw(screen)
		}
	}
}

// MouseHandler offers the event to the visible layers from front to back,
// stopping at the front-most overlay. An overlay consumes the events that
// none of the layers took.
func (l *Layers) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}

	if len(l.stack) == 0 {
		return nil, nil
	}
	backmost := l.backmost()
	for i := len(l.stack) - 1; i >= backmost; i-- {
		if !l.stack[i].visible {
			continue
		}
		if capture, cmd := l.stack[i].MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}
	if l.stack[backmost].overlay && l.stack[backmost].visible {
		return nil, tview.ConsumeEventCommand{}
	}
	return nil, nil
}

// focused returns the visible layer holding the focus, or nil.
func (l *Layers) focused() *layer {
	i := slices.IndexFunc(l.stack, func(layer *layer) bool {
		return layer.visible && layer.HasFocus()
	})
	if i < 0 {
		return nil
	}
	return l.stack[i]
}

func (l *Layers) InputHandler(event *tcell.EventKey) tview.Command {
	if focused := l.focused(); focused != nil {
		return focused.InputHandler(event)
	}
	return nil
}

func (l *Layers) PasteHandler(text string) tview.Command {
	if focused := l.focused(); focused != nil {
		return focused.PasteHandler(text)
	}
	return nil
}

// dimScreen dims every cell drawn on it.
type dimScreen struct {
	tcell.Screen
}

func (s *dimScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, style.Dim(true))
}
