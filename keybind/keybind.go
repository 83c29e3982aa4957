// Package keybind matches key events against configurable key strings such
// as "shift+up", "ctrl+b" or "J".
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a set of equivalent key strings together with the help shown
// for them.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the short key label and the description shown in help views.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys sets the keys. Keys that name no key are dropped.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) { k.SetKeys(keys...) }
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) { k.SetHelp(key, desc) }
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(k *Keybind) { k.disabled = true }
}

func (k Keybind) Keys() []string { return k.keys }

func (k *Keybind) SetKeys(keys ...string) {
	k.keys = k.keys[:0:0]
	for _, key := range keys {
		if key = Normalize(key); key != "" {
			k.keys = append(k.keys, key)
		}
	}
}

func (k Keybind) Help() Help { return k.help }

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows in help. A
// keybind without keys is never enabled.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event is one of the keys of an enabled keybind.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKey(event)
	return slices.ContainsFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, key)
	})
}

type modifier uint8

const (
	modCtrl modifier = 1 << iota
	modAlt
	modShift
	modMeta
)

// modifierNames is in the order modifiers are written.
var modifierNames = []struct {
	mod  modifier
	name string
}{
	{modCtrl, "ctrl"},
	{modAlt, "alt"},
	{modShift, "shift"},
	{modMeta, "meta"},
}

var modifierAliases = map[string]modifier{
	"ctrl":    modCtrl,
	"control": modCtrl,
	"alt":     modAlt,
	"shift":   modShift,
	"meta":    modMeta,
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
}

// format writes a key with its modifiers in canonical order. Single
// characters keep their case unless a modifier is held.
func format(mods modifier, name string) string {
	if mods != 0 && utf8.RuneCountInString(name) == 1 {
		name = strings.ToLower(name)
	}
	var b strings.Builder
	for _, m := range modifierNames {
		if mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(name)
	return b.String()
}

// Normalize returns key in the canonical form events are matched against,
// or "" when key names no key.
func Normalize(key string) string {
	key = strings.TrimSpace(key)
	if inner, ok := strings.CutPrefix(key, "Rune["); ok && strings.HasSuffix(inner, "]") && len(inner) > 1 {
		return strings.TrimSuffix(inner, "]")
	}

	var (
		mods modifier
		name string
	)
	for _, part := range strings.Split(key, "+") {
		part = strings.TrimSpace(part)
		lower := strings.ToLower(part)
		if mod, ok := modifierAliases[lower]; ok {
			mods |= mod
			continue
		}
		if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok && rest != "" {
			mods |= modCtrl
			part, lower = rest, rest
		}
		switch {
		case part == "":
		case utf8.RuneCountInString(part) == 1:
			name = part
		case keyAliases[lower] != "":
			name = keyAliases[lower]
		default:
			name = lower
		}
	}

	if name == "" {
		return ""
	}
	if name == "backtab" {
		mods |= modShift
		name = "tab"
	}
	return format(mods, name)
}

// eventKey returns the canonical key string of event.
func eventKey(event *tcell.EventKey) string {
	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return format(modCtrl, string(rune('a'+(key-tcell.KeyCtrlA))))
	}

	var mods modifier
	eventMods := event.Modifiers()
	for mask, mod := range map[tcell.ModMask]modifier{
		tcell.ModCtrl:  modCtrl,
		tcell.ModAlt:   modAlt,
		tcell.ModShift: modShift,
		tcell.ModMeta:  modMeta,
	} {
		if eventMods&mask != 0 {
			mods |= mod
		}
	}

	switch {
	case key == tcell.KeyRune:
		// The rune already carries a lone shift, as in "K" or "?".
		if mods == modShift {
			mods = 0
		}
		return format(mods, string(event.Rune()))
	case key == tcell.KeyBacktab:
		return format(mods|modShift, "tab")
	case keyNames[key] != "":
		return format(mods, keyNames[key])
	}
	return Normalize(event.Name())
}
