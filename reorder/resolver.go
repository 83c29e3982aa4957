package reorder

// ResolveInput is everything the index resolver needs for one pointer sample.
type ResolveInput struct {
	// Client is the pointer position in content coordinates.
	Client int
	// Keys is the current data sequence.
	Keys []string
	// Layouts is the measured layout of each key.
	Layouts LayoutLookup
	// Previous is the current candidate drop index, kept when resolution has
	// to wait for a measurement.
	Previous int
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Index int
	// Deferred is set when an unmeasured item stopped the scan and Index is
	// the previous candidate.
	Deferred bool
}

// Resolve returns the slot the pointer falls into. Items are treated as
// contiguous half-open intervals [pos, pos+extent) in sequence order: the scan
// advances past every item that ends at or before the client position, so a
// pointer exactly on a boundary belongs to the item below it. A pointer
// past every item resolves to len(Keys).
func Resolve(in ResolveInput) Resolution {
	index := 0
	for index < len(in.Keys) {
		entry, ok := in.Layouts.Get(in.Keys[index])
		if !ok {
			return Resolution{Index: in.Previous, Deferred: true}
		}
		if entry.End() > in.Client {
			break
		}
		index++
	}
	return Resolution{Index: index}
}

// PanOffset returns the offset of the dragged item's visual from its
// measured resting center. It stays anchored to the center measured before
// the drag, not to the slot the item currently hovers.
func PanOffset(client int, active LayoutEntry) int {
	return client - active.Center()
}
