package reorder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestCoordinatorCommit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got [2]int
		c := NewCoordinator(func(_ context.Context, from, to int) error {
			got = [2]int{from, to}
			return nil
		})

		require.NoError(t, c.Commit(context.Background(), 2, 0))
		assert.Equal(t, [2]int{2, 0}, got)
		assert.False(t, c.Busy())
	})

	t.Run("handler error", func(t *testing.T) {
		c := NewCoordinator(func(context.Context, int, int) error {
			return errors.New("rejected")
		})

		require.ErrorContains(t, c.Commit(context.Background(), 0, 1), "rejected")
		assert.False(t, c.Busy())
	})

	t.Run("handler panic", func(t *testing.T) {
		c := NewCoordinator(func(context.Context, int, int) error {
			panic("index out of range")
		})

		err := c.Commit(context.Background(), 0, 1)
		require.ErrorContains(t, err, ErrHandlerPanicked.Error())
		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "index out of range", zErr.Metadata()["panic"])
		assert.False(t, c.Busy())
	})

	t.Run("nil handler", func(t *testing.T) {
		c := NewCoordinator(nil)
		require.NoError(t, c.Commit(context.Background(), 0, 1))
		assert.False(t, c.Busy())
	})
}

func TestCoordinatorLatch(t *testing.T) {
	c := NewCoordinator(func(context.Context, int, int) error {
		t.Fatal("handler must not run while the latch is held")
		return nil
	})

	require.NoError(t, c.Acquire())
	assert.True(t, c.Busy())
	require.ErrorContains(t, c.Acquire(), ErrCommitInProgress.Error())

	err := c.Commit(context.Background(), 3, 1)
	require.ErrorContains(t, err, ErrCommitInProgress.Error())
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, 3, meta["from"])
	assert.Equal(t, 1, meta["to"])

	c.Release()
	assert.False(t, c.Busy())
}

func TestCoordinatorSetHandler(t *testing.T) {
	c := NewCoordinator(nil)
	called := false
	c.SetHandler(func(context.Context, int, int) error {
		called = true
		return nil
	})

	require.NoError(t, c.Commit(context.Background(), 0, 1))
	assert.True(t, called)
}
