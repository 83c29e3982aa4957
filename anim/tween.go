// Package anim provides time-based tweens used by list displacement and
// animated scrolling.
package anim

import (
	"math"
	"time"

	"github.com/fogleman/ease"
)

// DefaultDuration is the duration of displacement and scroll animations.
const DefaultDuration = 200 * time.Millisecond

// Easing maps linear progress in [0, 1] onto an eased progress.
type Easing func(t float64) float64

// DefaultEasing is the ease-in-out curve shared by all list animations.
var DefaultEasing Easing = ease.InOutQuad

// Tween interpolates between two values over a fixed duration.
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Easing   Easing
}

// NewTween returns a tween from one value to another starting at start.
func NewTween(from, to float64, start time.Time, duration time.Duration, easing Easing) Tween {
	if easing == nil {
		easing = DefaultEasing
	}
	return Tween{
		From:     from,
		To:       to,
		Start:    start,
		Duration: duration,
		Easing:   easing,
	}
}

// Progress returns the linear progress of the tween at now, clamped to [0, 1].
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= t.Duration {
		return 1
	}
	return float64(elapsed) / float64(t.Duration)
}

// At returns the interpolated value at now.
func (t Tween) At(now time.Time) float64 {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	easing := t.Easing
	if easing == nil {
		easing = DefaultEasing
	}
	return t.From + (t.To-t.From)*easing(p)
}

// AtInt returns the interpolated value at now rounded to the nearest cell.
func (t Tween) AtInt(now time.Time) int {
	return int(math.Round(t.At(now)))
}

// Done reports whether the tween has reached its target at now.
func (t Tween) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}
