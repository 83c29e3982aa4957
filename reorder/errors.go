package reorder

import "go.trai.ch/zerr"

var (
	// ErrCommitInProgress is returned when a reorder is requested while a
	// previous reorder handler has not settled yet.
	ErrCommitInProgress = zerr.New("reorder commit in progress")

	// ErrHandlerPanicked is returned when the reorder handler panics. The
	// panic value is attached to the error.
	ErrHandlerPanicked = zerr.New("reorder handler panicked")

	// ErrDragInProgress is returned when a keyboard reorder is requested
	// while a pointer drag is armed or running.
	ErrDragInProgress = zerr.New("drag in progress")
)
