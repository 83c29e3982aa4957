package reorder

// Axis is the scroll axis of the list.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Point is a pointer position in screen coordinates.
type Point struct {
	X, Y int
}

// Of returns the component of p along the axis.
func (a Axis) Of(p Point) int {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}
