package reorder

import (
	"context"
	"fmt"

	"go.trai.ch/zerr"
)

// ReorderFunc applies a reorder to the caller's data. It may block; the list
// refuses new drags until it returns.
type ReorderFunc func(ctx context.Context, from, to int) error

// Coordinator serialises reorder handler invocations behind a busy latch.
// The latch is held from the moment a commit starts until the handler
// settles, whether it returned an error, panicked, or succeeded.
type Coordinator struct {
	handler ReorderFunc
	busy    bool
}

// NewCoordinator returns a coordinator invoking handler. A nil handler makes
// every commit a no-op.
func NewCoordinator(handler ReorderFunc) *Coordinator {
	return &Coordinator{handler: handler}
}

// SetHandler replaces the reorder handler.
func (c *Coordinator) SetHandler(handler ReorderFunc) {
	c.handler = handler
}

// Busy reports whether a commit is outstanding.
func (c *Coordinator) Busy() bool {
	return c.busy
}

// Acquire takes the latch. It fails with ErrCommitInProgress when the latch
// is already held.
func (c *Coordinator) Acquire() error {
	if c.busy {
		return ErrCommitInProgress
	}
	c.busy = true
	return nil
}

// Release drops the latch.
func (c *Coordinator) Release() {
	c.busy = false
}

// Commit takes the latch, runs the handler and releases the latch. Errors
// from the handler are returned unchanged.
func (c *Coordinator) Commit(ctx context.Context, from, to int) error {
	if err := c.Acquire(); err != nil {
		return zerr.With(zerr.With(err, "from", from), "to", to)
	}
	defer c.Release()
	return c.invoke(ctx, from, to)
}

// invoke runs the handler without touching the latch.
func (c *Coordinator) invoke(ctx context.Context, from, to int) (err error) {
	if c.handler == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(ErrHandlerPanicked, "panic", fmt.Sprint(r))
		}
	}()
	return c.handler(ctx, from, to)
}
