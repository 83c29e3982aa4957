// Package config loads the configuration of the reorder demo from TOML.
//
// Every field is optional; missing fields keep the values of [Default]. A
// file without items shows the default backlog.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"

	tview "github.com/ayn2op/tview-reorder"
	"github.com/ayn2op/tview-reorder/anim"
	"github.com/ayn2op/tview-reorder/keybind"
)

// Config is the demo configuration.
type Config struct {
	Title     string `toml:"title"`
	Gap       int    `toml:"gap"`
	ScrollBar bool   `toml:"scrollbar"`
	Border    string `toml:"border"`

	Drag  Drag   `toml:"drag"`
	Keys  Keys   `toml:"keys"`
	Items []Item `toml:"items"`
}

// Drag configures dragging and reordering.
type Drag struct {
	// Duration of displacement and automatic scroll animations.
	Duration Duration `toml:"duration"`
	// Easing is the name of the animation curve, see anim.EasingNames.
	Easing     string `toml:"easing"`
	AutoScroll bool   `toml:"autoscroll"`
	// CommitDelay makes every reorder take at least this long, which keeps
	// new drags blocked while it settles.
	CommitDelay Duration `toml:"commit_delay"`
}

// Keys overrides keybinds. Empty lists keep the defaults.
type Keys struct {
	MoveUp   []string `toml:"move_up"`
	MoveDown []string `toml:"move_down"`
}

// Item is one entry of the reorderable list.
type Item struct {
	Key  string `toml:"key"`
	Text string `toml:"text"`
}

// Label returns the text shown for the item, falling back to its key.
func (i Item) Label() string {
	if i.Text == "" {
		return i.Key
	}
	return i.Text
}

// Duration is a time.Duration written as a string such as "200ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid duration"), "value", string(text))
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Title:     "Backlog",
		ScrollBar: true,
		Border:    "round",
		Drag: Drag{
			Duration:   Duration{anim.DefaultDuration},
			Easing:     "in-out-quad",
			AutoScroll: true,
		},
		Items: defaultItems(),
	}
}

func defaultItems() []Item {
	texts := []string{
		"Sketch the drag gesture",
		"Measure every row as it is laid out",
		"Resolve the drop slot from the pointer",
		"Ease neighbouring rows out of the way",
		"Scroll when the dragged row reaches an edge",
		"Refuse new drags while a reorder settles",
		"Report the reorder to the application",
		"Keep the cursor on the moved row",
		"Move rows with the keyboard as well",
		"Show the key bindings in a help overlay",
		"Draw a scroll bar next to long lists",
		"Write the release notes, which are long enough to wrap onto a second line in narrow terminals",
		"Tag the release",
		"Announce it",
	}
	items := make([]Item, len(texts))
	for i, text := range texts {
		items[i] = Item{Key: fmt.Sprintf("task-%02d", i+1), Text: text}
	}
	return items
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read configuration"), "path", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// Parse decodes and validates a TOML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Items = nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse configuration")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, zerr.With(ErrUnknownField, "field", undecoded[0].String())
	}
	if len(cfg.Items) == 0 {
		cfg.Items = defaultItems()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the demo cannot use.
func (c *Config) Validate() error {
	if c.Gap < 0 {
		return zerr.With(ErrNegativeGap, "gap", c.Gap)
	}
	if _, ok := tview.BorderSetByName(c.Border); !ok {
		err := zerr.With(ErrUnknownBorder, "border", c.Border)
		return zerr.With(err, "known", strings.Join(tview.BorderSetNames(), ","))
	}
	if _, ok := anim.EasingByName(c.Drag.Easing); !ok {
		return zerr.With(ErrUnknownEasing, "easing", c.Drag.Easing)
	}
	if c.Drag.Duration.Duration < 0 {
		return zerr.With(ErrNegativeDuration, "duration", c.Drag.Duration.String())
	}
	if c.Drag.CommitDelay.Duration < 0 {
		return zerr.With(ErrNegativeDuration, "commit_delay", c.Drag.CommitDelay.String())
	}
	for _, key := range append(append([]string(nil), c.Keys.MoveUp...), c.Keys.MoveDown...) {
		if keybind.Normalize(key) == "" {
			return zerr.With(ErrUnknownKey, "key", key)
		}
	}

	seen := make(map[string]int, len(c.Items))
	for i, item := range c.Items {
		if item.Key == "" {
			return zerr.With(ErrEmptyKey, "index", i)
		}
		if first, ok := seen[item.Key]; ok {
			return zerr.With(zerr.With(ErrDuplicateKey, "key", item.Key), "first", first)
		}
		seen[item.Key] = i
	}
	return nil
}

// ItemKeys returns the keys of the items in order.
func (c *Config) ItemKeys() []string {
	keys := make([]string, len(c.Items))
	for i, item := range c.Items {
		keys[i] = item.Key
	}
	return keys
}

// Easing returns the configured animation curve.
func (c *Config) Easing() anim.Easing {
	easing, ok := anim.EasingByName(c.Drag.Easing)
	if !ok {
		return anim.DefaultEasing
	}
	return easing
}

// BorderSet returns the configured border set.
func (c *Config) BorderSet() tview.BorderSet {
	set, ok := tview.BorderSetByName(c.Border)
	if !ok {
		return tview.BorderSetRound()
	}
	return set
}

// KeyMap applies the keybind overrides to keyMap.
func (c *Config) KeyMap(keyMap tview.DraggableListKeyMap) tview.DraggableListKeyMap {
	if len(c.Keys.MoveUp) > 0 {
		keyMap.MoveUp.SetKeys(c.Keys.MoveUp...)
		keyMap.MoveUp.SetHelp(c.Keys.MoveUp[0], keyMap.MoveUp.Help().Desc)
	}
	if len(c.Keys.MoveDown) > 0 {
		keyMap.MoveDown.SetKeys(c.Keys.MoveDown...)
		keyMap.MoveDown.SetHelp(c.Keys.MoveDown[0], keyMap.MoveDown.Help().Desc)
	}
	return keyMap
}
