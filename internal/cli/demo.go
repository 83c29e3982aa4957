package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	tview "github.com/ayn2op/tview-reorder"
	"github.com/ayn2op/tview-reorder/help"
	"github.com/ayn2op/tview-reorder/internal/config"
	"github.com/ayn2op/tview-reorder/keybind"
	"github.com/ayn2op/tview-reorder/layers"
	"github.com/ayn2op/tview-reorder/reorder"
)

const (
	listLayer = "list"
	helpLayer = "help"
)

// keyMap adds the demo's own keybinds to the list's.
type keyMap struct {
	tview.DraggableListKeyMap

	Help  keybind.Keybind
	Close keybind.Keybind
	Quit  keybind.Keybind
}

func newKeyMap(list tview.DraggableListKeyMap) keyMap {
	return keyMap{
		DraggableListKeyMap: list,
		Help:                keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "toggle help")),
		Close:               keybind.NewKeybind(keybind.WithKeys("esc"), keybind.WithHelp("esc", "close help")),
		Quit:                keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []keybind.Keybind {
	return append(k.DraggableListKeyMap.ShortHelp(), k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]keybind.Keybind {
	return append(k.DraggableListKeyMap.FullHelp(), []keybind.Keybind{k.Help, k.Close, k.Quit})
}

// demo is the root primitive: the list with a help overlay above it.
type demo struct {
	*layers.Layers

	app    *tview.Application
	list   *tview.DraggableList
	help   *helpOverlay
	keyMap keyMap
	logger *log.Logger
	delay  time.Duration

	items map[string]*tview.TextItem
	// keys is the data sequence. It is only touched on the event loop.
	keys []string
}

func newDemo(app *tview.Application, cfg *config.Config, logger *log.Logger) *demo {
	d := &demo{
		Layers: layers.New(),
		app:    app,
		keyMap: newKeyMap(cfg.KeyMap(tview.DefaultDraggableListKeyMap())),
		logger: logger,
		delay:  cfg.Drag.CommitDelay.Duration,
		items:  make(map[string]*tview.TextItem, len(cfg.Items)),
		keys:   cfg.ItemKeys(),
	}
	for _, item := range cfg.Items {
		d.items[item.Key] = tview.NewTextItem(item.Label())
	}

	d.list = tview.NewDraggableList().
		SetKeyMap(d.keyMap.DraggableListKeyMap).
		SetAnimation(cfg.Drag.Duration.Duration, cfg.Easing()).
		SetAutoScroll(cfg.Drag.AutoScroll).
		SetScrollBar(cfg.ScrollBar).
		SetLogger(logger).
		SetQueueFunc(func(fn func()) { app.QueueUpdateDraw(fn) }).
		SetItemFunc(d.renderItem).
		SetHandlers(reorder.Handlers{
			OnDragBegin: func(index int) {
				logger.Debug("drag began", "index", index)
			},
			OnReordered: d.reorder,
		}).
		SetCommittedFunc(d.committed).
		SetKeys(d.keys)
	d.list.SetGap(cfg.Gap)
	d.list.SetBorders(tview.BordersAll).
		SetBorderSet(cfg.BorderSet()).
		SetTitle(cfg.Title).
		SetFooter(d.footer())

	d.help = newHelpOverlay(d.keyMap)

	d.AddLayer(d.list, layers.WithName(listLayer), layers.WithResize(true))
	d.AddLayer(d.help, layers.WithName(helpLayer), layers.WithOverlay(), layers.WithVisible(false))
	return d
}

func (d *demo) footer() string {
	h := d.keyMap.Help.Help()
	return h.Key + " " + h.Desc
}

func (d *demo) renderItem(key string, index, cursor int, props reorder.ItemProps) tview.ListItem {
	item, ok := d.items[key]
	if !ok {
		item = tview.NewTextItem(key)
		d.items[key] = item
	}
	return item.SetSelected(index == cursor).SetActive(props.Active)
}

// reorder is the OnReordered handler. It runs on its own goroutine and
// applies the new order on the event loop.
func (d *demo) reorder(ctx context.Context, from, to int) error {
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	d.app.QueueUpdateDraw(func() {
		d.keys = reorder.Move(d.keys, from, to)
		d.list.SetKeys(d.keys)
	})
	d.logger.Info("item moved", "from", from, "to", to)
	return nil
}

func (d *demo) committed(err error) {
	if err != nil {
		d.logger.Warn("reorder discarded", "err", err)
	}
}

// InputHandler handles the demo keybinds before the focused layer sees the
// event. Keys other than the help keys are swallowed while the help shows.
func (d *demo) InputHandler(event *tcell.EventKey) tview.Command {
	switch {
	case keybind.Matches(event, d.keyMap.Quit):
		return tview.QuitCommand{}
	case keybind.Matches(event, d.keyMap.Help):
		d.ToggleLayer(helpLayer)
		return tview.RedrawCommand{}
	case d.GetVisible(helpLayer):
		if keybind.Matches(event, d.keyMap.Close) {
			d.HideLayer(helpLayer)
			return tview.RedrawCommand{}
		}
		return tview.ConsumeEventCommand{}
	}
	return d.Layers.InputHandler(event)
}

// helpOverlay is the full help, centered on the screen.
type helpOverlay struct {
	*help.Help
}

func newHelpOverlay(keyMap help.KeyMap) *helpOverlay {
	h := help.New().SetKeyMap(keyMap).SetShowAll(true)
	h.SetBorders(tview.BordersAll).
		SetBorderSet(tview.BorderSetRound()).
		SetBorderPadding(0, 0, 1, 1).
		SetTitle("Keys")
	return &helpOverlay{Help: h}
}

// Draw sizes the overlay to its content before drawing it.
func (h *helpOverlay) Draw(screen tcell.Screen) {
	screenWidth, screenHeight := screen.Size()
	// Two border columns plus one padding column on each side.
	const chromeWidth, chromeHeight = 4, 2
	width, height := h.Size(max(screenWidth-chromeWidth, 1))
	width = min(width+chromeWidth, screenWidth)
	height = min(height+chromeHeight, screenHeight)
	h.SetRect((screenWidth-width)/2, (screenHeight-height)/2, width, height)
	h.Help.Draw(screen)
}

// runDemo runs the demo until it is quit or ctx is cancelled. A nil screen
// uses the terminal.
func runDemo(ctx context.Context, cfg *config.Config, screen tcell.Screen) error {
	parent := ctx
	logger := loggerFromContext(ctx)

	app := tview.NewApplication().EnableMouse(true)
	if screen != nil {
		app.SetScreen(screen)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d := newDemo(app, cfg, logger)
	d.list.SetContext(ctx)
	app.SetRoot(d)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		logger.Debug("demo started", "items", len(d.keys))
		return app.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		app.Stop()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Debug("demo stopped")
	return parent.Err()
}
