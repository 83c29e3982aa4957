package tview

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
)

const (
	// The size of the event channel.
	queueSize = 100
	// The size of the queued updates channel.
	updatesQueueSize = 100
)

// queuedUpdate is a function queued by QueueUpdate. done is closed after f
// has run.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application draws a root primitive onto a terminal screen and routes the
// screen's events to it. Primitives are only touched from the event loop;
// other goroutines go through QueueUpdate.
//
//	if err := tview.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
//
// An Application runs once.
type Application struct {
	sync.RWMutex

	// screen is nil before Run and after Stop.
	screen tcell.Screen
	focus  Primitive
	root   Primitive
	// stopRequested is set by Stop, including before Run.
	stopRequested bool

	events  chan tcell.Event
	updates chan queuedUpdate
	// stopped is closed when Run returns.
	stopped     chan struct{}
	stoppedOnce sync.Once

	mouse *mouseTracker
	// capture receives mouse events until its handler stops returning it.
	capture Primitive

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool

	enableMouse bool
	enablePaste bool
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		events:      make(chan tcell.Event, queueSize),
		updates:     make(chan queuedUpdate, updatesQueueSize),
		stopped:     make(chan struct{}),
		mouse:       newMouseTracker(clockwork.NewRealClock()),
		enablePaste: true,
	}
}

// EnableMouse enables mouse events on the next call to Run.
func (a *Application) EnableMouse(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.enableMouse = enable
	return a
}

// EnablePaste enables bracketed paste on the next call to Run. It is enabled
// by default.
func (a *Application) EnablePaste(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.enablePaste = enable
	return a
}

// SetClock sets the clock used to tell clicks from double clicks.
func (a *Application) SetClock(clock clockwork.Clock) *Application {
	a.mouse.clock = clock
	return a
}

// SetScreen sets the application's screen. The screen must already be
// initialized; Run only initializes screens it creates itself.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil && !a.stopRequested {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.Lock()
	defer a.Unlock()
	if a.stopRequested {
		return nil, nil
	}
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
		a.screen = screen
	}
	if a.enableMouse {
		a.screen.EnableMouse()
	}
	if a.enablePaste {
		a.screen.EnablePaste()
	}
	return a.screen, nil
}

// Run starts the event loop and returns once Stop was called. It returns at
// once when Stop was called before. A screen error stops the application and
// is returned.
//
// While the application runs it owns stdin, stdout and stderr.
func (a *Application) Run() error {
	defer a.stoppedOnce.Do(func() { close(a.stopped) })

	screen, err := a.initScreen()
	if err != nil || screen == nil {
		return err
	}

	// A panic would leave the terminal unusable.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	go a.pollEvents(screen)

	var (
		paste  pasteBuffer
		appErr error
	)
	for {
		select {
		case event := <-a.events:
			if event == nil {
				return appErr
			}
			if errEvent, ok := event.(*tcell.EventError); ok {
				appErr = errEvent
				a.Stop()
				continue
			}
			if a.handleEvent(event, &paste) {
				a.draw()
			}
		case update := <-a.updates:
			update.f()
			close(update.done)
		}
	}
}

// pollEvents forwards the screen's events to the event loop. A nil event is
// forwarded once the screen is finalized and ends the loop.
func (a *Application) pollEvents(screen tcell.Screen) {
	for {
		event := screen.PollEvent()
		a.events <- event
		if event == nil {
			return
		}
	}
}

// pasteBuffer collects the keys of a bracketed paste.
type pasteBuffer struct {
	strings.Builder
	active bool
}

func (p *pasteBuffer) add(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyRune:
		p.WriteRune(event.Rune())
	case tcell.KeyEnter:
		p.WriteByte('\n')
	case tcell.KeyTab:
		p.WriteByte('\t')
	}
}

// handleEvent routes event and reports whether the screen must be redrawn.
func (a *Application) handleEvent(event tcell.Event, paste *pasteBuffer) bool {
	switch event := event.(type) {
	case *tcell.EventKey:
		if paste.active {
			paste.add(event)
			return false
		}
		return a.toRoot(func(root Primitive) Command {
			return root.InputHandler(event)
		})
	case *tcell.EventPaste:
		if event.Start() {
			paste.active = true
			paste.Reset()
			return false
		}
		paste.active = false
		if paste.Len() == 0 {
			return false
		}
		text := paste.String()
		return a.toRoot(func(root Primitive) Command {
			return root.PasteHandler(text)
		})
	case *tcell.EventResize:
		a.Lock()
		a.forceRedraw = true
		a.Unlock()
		return true
	case *tcell.EventMouse:
		return a.handleMouse(event)
	}
	return false
}

// toRoot hands an input event to the root while it holds the focus.
func (a *Application) toRoot(handle func(root Primitive) Command) bool {
	a.RLock()
	root := a.root
	a.RUnlock()
	if root == nil || !root.HasFocus() {
		return false
	}
	return a.executeCommand(handle(root))
}

// handleMouse fires the actions of event at the capturing primitive, or at
// the root when nothing captures the mouse.
func (a *Application) handleMouse(event *tcell.EventMouse) bool {
	a.RLock()
	root := a.root
	a.RUnlock()

	redraw := false
	for _, action := range a.mouse.actions(event) {
		primitive := a.capture
		if primitive == nil {
			primitive = root
		}
		if primitive == nil {
			continue
		}
		capture, cmd := primitive.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			redraw = true
		}
		a.capture = capture
	}
	return redraw
}

// Stop finalizes the screen, which makes Run return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	a.stopRequested = true
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

func (a *Application) draw() {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.forceRedraw = false
	a.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	// tcell only sends the cells that changed; clearing is left to forced
	// redraws.
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	root.MarkClean()
	screen.Show()
}

// SetRoot sets the primitive drawn over the whole screen and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	a.forceRedraw = a.screen != nil
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus moves the keyboard focus to p, blurring the primitive that had it.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()

	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the primitive which has the current focus, or nil.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and returns after it ran. It must not
// be called from the event loop. Once the application stopped it returns
// without running f.
func (a *Application) QueueUpdate(f func()) *Application {
	update := queuedUpdate{f: f, done: make(chan struct{})}
	select {
	case a.updates <- update:
	case <-a.stopped:
		return a
	}
	select {
	case <-update.done:
	case <-a.stopped:
	}
	return a
}

// QueueUpdateDraw works like QueueUpdate and redraws the screen after f.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// executeCommand runs cmd and reports whether the screen must be redrawn.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		a.SetFocus(c.Target)
		return changed
	}
	return false
}
