package reorder

// State is the phase of a drag session.
type State uint8

const (
	// StateIdle means no drag is in progress.
	StateIdle State = iota
	// StateArmed means an item signalled a drag start but the pointer has not
	// been captured yet.
	StateArmed
	// StateDragging means the pointer is captured and moves are tracked.
	StateDragging
	// StateCommitting means the pointer was released and the reorder
	// handler has not settled yet.
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	case StateCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// Session is the state of a single drag. The zero value is an idle session.
type Session struct {
	State State

	// ActiveKey identifies the dragged item.
	ActiveKey string
	// ActiveIndex is the dragged item's index when the drag started.
	ActiveIndex int
	// PanIndex is the current candidate drop index.
	PanIndex int
	// ActiveExtent is the dragged item's measured extent.
	ActiveExtent int

	// Origin is the pointer position along the axis when the drag was granted.
	Origin int
	// Delta is the cumulative pointer movement since Origin.
	Delta int
	// Pan is the dragged item's visual offset from its resting center.
	Pan int

	// Captured is set once the pointer has been captured.
	Captured bool

	Axis Axis
}

// Active reports whether the session has a dragged item.
func (s Session) Active() bool {
	return s.State != StateIdle && s.ActiveKey != ""
}

// Committable reports whether releasing the session would produce a reorder.
// Dropping on the start slot is a no-op, and so is dragging the final item
// past the end since there is no slot beyond it.
func (s Session) Committable(length int) bool {
	if !s.Active() {
		return false
	}
	if s.PanIndex == s.ActiveIndex {
		return false
	}
	if s.ActiveIndex == length-1 && s.PanIndex > s.ActiveIndex {
		return false
	}
	return true
}

func (s Session) arm(key string, index int) Session {
	return Session{
		State:       StateArmed,
		ActiveKey:   key,
		ActiveIndex: index,
		PanIndex:    index,
		Axis:        s.Axis,
	}
}

func (s Session) grant(origin int, extent int) Session {
	s.State = StateDragging
	s.Captured = true
	s.Origin = origin
	s.Delta = 0
	s.Pan = 0
	s.ActiveExtent = extent
	return s
}

func (s Session) move(position int) Session {
	s.Delta = position - s.Origin
	return s
}

func (s Session) release() Session {
	s.State = StateCommitting
	return s
}

func (s Session) reset() Session {
	return Session{Axis: s.Axis}
}
