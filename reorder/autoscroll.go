package reorder

// AutoScrollInput describes the dragged item relative to the viewport.
type AutoScrollInput struct {
	// WrapPos is the pointer position relative to the viewport start,
	// before adding the scroll offset.
	WrapPos int
	// Extent is the dragged item's extent.
	Extent int
	// ScrollOffset is the list's current scroll offset.
	ScrollOffset int
	// ViewportExtent is the container's extent.
	ViewportExtent int
}

// ScrollRequest asks the list to scroll to an absolute offset.
type ScrollRequest struct {
	Offset   int
	Delta    int
	Animated bool
}

// Edges returns the leading and trailing edge of the dragged item in
// viewport coordinates.
func (in AutoScrollInput) Edges() (leading, trailing int) {
	half := in.Extent / 2
	return in.WrapPos - half, in.WrapPos + half
}

// AutoScroll decides whether the drag has crossed a viewport edge. Crossing
// the leading edge scrolls back by one item extent, capped by the current
// offset; crossing the trailing edge scrolls forward by one item extent.
func AutoScroll(in AutoScrollInput) (ScrollRequest, bool) {
	leading, trailing := in.Edges()

	var delta int
	switch {
	case leading < 0:
		delta = -min(max(in.ScrollOffset, 0), in.Extent)
	case trailing > in.ViewportExtent:
		delta = in.Extent
	}
	if delta == 0 {
		return ScrollRequest{}, false
	}
	return ScrollRequest{
		Offset:   in.ScrollOffset + delta,
		Delta:    delta,
		Animated: true,
	}, true
}
