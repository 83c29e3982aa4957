package config

import "go.trai.ch/zerr"

var (
	// ErrEmptyKey is returned when an item has no key.
	ErrEmptyKey = zerr.New("item key is empty")
	// ErrDuplicateKey is returned when two items share a key.
	ErrDuplicateKey = zerr.New("duplicate item key")
	// ErrUnknownEasing is returned for an easing name that is not registered.
	ErrUnknownEasing = zerr.New("unknown easing")
	// ErrUnknownBorder is returned for a border name that is not registered.
	ErrUnknownBorder = zerr.New("unknown border")
	// ErrUnknownKey is returned for a keybind that names no key.
	ErrUnknownKey = zerr.New("unknown key")
	// ErrUnknownField is returned for configuration fields that are not
	// understood.
	ErrUnknownField = zerr.New("unknown configuration field")
	// ErrNegativeGap is returned for a negative item gap.
	ErrNegativeGap = zerr.New("gap must not be negative")
	// ErrNegativeDuration is returned for a negative duration.
	ErrNegativeDuration = zerr.New("duration must not be negative")
)
