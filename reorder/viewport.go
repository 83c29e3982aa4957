package reorder

// Frame is the drag container's screen-space position and extent along the
// scroll axis.
type Frame struct {
	Pos    int
	Extent int
}

// Viewport tracks the container frame and the list's scroll offset. Each
// field has exactly one writer: container layout writes the extent, the grant
// measurement and container layout write the position, scroll events write
// the offset.
type Viewport struct {
	frame  Frame
	scroll int
}

// Frame returns the last known container frame.
func (v *Viewport) Frame() Frame {
	return v.frame
}

// ScrollOffset returns the last reported scroll offset.
func (v *Viewport) ScrollOffset() int {
	return v.scroll
}

// OnContainerLayout applies a container layout event. It is the only source
// the extent is taken from.
func (v *Viewport) OnContainerLayout(pos, extent int) {
	v.frame.Pos = pos
	if extent >= 0 {
		v.frame.Extent = extent
	}
}

// OnGrantMeasure applies the live position measured when a drag is granted.
// The extent is left alone since that measurement may transiently read zero.
func (v *Viewport) OnGrantMeasure(pos int) {
	v.frame.Pos = pos
}

// OnScroll applies a scroll-position event.
func (v *Viewport) OnScroll(offset int) {
	v.scroll = offset
}
