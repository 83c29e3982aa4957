package reorder

import "slices"

// Move returns a copy of items with the element at from moved to to. A
// destination at or past the end appends the element. Out of range sources
// return items unchanged.
func Move[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) {
		return items
	}
	to = max(min(to, len(items)-1), 0)
	if from == to {
		return slices.Clone(items)
	}
	item := items[from]
	out := slices.Delete(slices.Clone(items), from, from+1)
	return slices.Insert(out, to, item)
}
