package anim

import (
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Linear is the identity easing.
var Linear Easing = ease.Linear

var easings = map[string]Easing{
	"linear":       ease.Linear,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
	"in-out-quart": ease.InOutQuart,
	"in-out-sine":  ease.InOutSine,
}

// EasingByName returns the easing registered under name. Names are
// case-insensitive; an empty name selects the default curve.
func EasingByName(name string) (Easing, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultEasing, true
	}
	easing, ok := easings[name]
	return easing, ok
}

// EasingNames returns the sorted list of known easing names.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
