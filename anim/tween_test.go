package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweenEndpoints(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tw := NewTween(0, 10, start, 200*time.Millisecond, nil)

	assert.Equal(t, 0.0, tw.At(start))
	assert.Equal(t, 0.0, tw.At(start.Add(-time.Second)))
	assert.Equal(t, 10.0, tw.At(start.Add(200*time.Millisecond)))
	assert.Equal(t, 10.0, tw.At(start.Add(time.Hour)))
	assert.True(t, tw.Done(start.Add(200*time.Millisecond)))
	assert.False(t, tw.Done(start.Add(100*time.Millisecond)))
}

func TestTweenMidpointIsSymmetric(t *testing.T) {
	start := time.Unix(0, 0)
	tw := NewTween(-4, 4, start, 100*time.Millisecond, nil)

	assert.InDelta(t, 0.0, tw.At(start.Add(50*time.Millisecond)), 1e-9)
	assert.Equal(t, 0, tw.AtInt(start.Add(50*time.Millisecond)))
}

func TestTweenZeroDurationJumps(t *testing.T) {
	start := time.Unix(0, 0)
	tw := NewTween(3, 7, start, 0, nil)

	assert.Equal(t, 7.0, tw.At(start))
	assert.True(t, tw.Done(start))
}

func TestTweenEasesInOut(t *testing.T) {
	start := time.Unix(0, 0)
	tw := NewTween(0, 100, start, 100*time.Millisecond, nil)

	early := tw.At(start.Add(10 * time.Millisecond))
	late := tw.At(start.Add(90 * time.Millisecond))
	assert.Less(t, early, 10.0)
	assert.Greater(t, late, 90.0)
}

func TestEasingByName(t *testing.T) {
	for _, name := range EasingNames() {
		easing, ok := EasingByName(name)
		require.True(t, ok, name)
		assert.InDelta(t, 0.0, easing(0), 1e-9, name)
		assert.InDelta(t, 1.0, easing(1), 1e-9, name)
	}

	_, ok := EasingByName("bounce-forever")
	assert.False(t, ok)

	easing, ok := EasingByName("  In-Out-Quad ")
	require.True(t, ok)
	assert.InDelta(t, 0.5, easing(0.5), 1e-9)

	easing, ok = EasingByName("")
	require.True(t, ok)
	assert.NotNil(t, easing)
}
