package reorder

import (
	"time"

	"github.com/ayn2op/tview-reorder/anim"
	"github.com/jonboulle/clockwork"
)

// Displacement returns the resting offset of a non-dragged item while a drag
// is in progress. Items between the start slot and the candidate slot slide
// by the dragged item's extent to open a gap for it: forward when the drag
// moves backward past them, backward when it moves forward past them.
func Displacement(index int, key string, s Session) int {
	if !s.Active() || key == s.ActiveKey {
		return 0
	}
	switch {
	case s.PanIndex <= index && index <= s.ActiveIndex:
		return s.ActiveExtent
	case s.ActiveIndex <= index && index <= s.PanIndex:
		return -s.ActiveExtent
	}
	return 0
}

// AnimatorOptions configure an Animator.
type AnimatorOptions struct {
	Clock    clockwork.Clock
	Duration time.Duration
	Easing   anim.Easing
}

// Animator animates one item's displacement. It recomputes its target
// whenever the observed session or its own index changes.
type Animator struct {
	key     string
	index   int
	session Session

	target int
	tween  anim.Tween

	clock    clockwork.Clock
	duration time.Duration
	easing   anim.Easing
}

// NewAnimator returns an animator for the item with key.
func NewAnimator(key string, opts AnimatorOptions) *Animator {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Duration <= 0 {
		opts.Duration = anim.DefaultDuration
	}
	if opts.Easing == nil {
		opts.Easing = anim.DefaultEasing
	}
	return &Animator{
		key:      key,
		clock:    opts.Clock,
		duration: opts.Duration,
		easing:   opts.Easing,
	}
}

// Bind subscribes the animator to c and applies the current session.
func (a *Animator) Bind(c *Controller) (cancel func()) {
	a.Observe(c.Session())
	return c.Subscribe(a.Observe)
}

// Key returns the item key.
func (a *Animator) Key() string {
	return a.key
}

// SetIndex updates the item's index in the data sequence.
func (a *Animator) SetIndex(index int) {
	if a.index == index {
		return
	}
	a.index = index
	a.retarget()
}

// Observe applies a session change.
func (a *Animator) Observe(s Session) {
	a.session = s
	a.retarget()
}

// Target returns the offset the animator is heading to.
func (a *Animator) Target() int {
	return a.target
}

// Offset returns the current animated offset.
func (a *Animator) Offset() int {
	return a.tween.AtInt(a.clock.Now())
}

// Animating reports whether the offset is still moving.
func (a *Animator) Animating() bool {
	return !a.tween.Done(a.clock.Now())
}

func (a *Animator) retarget() {
	now := a.clock.Now()
	if !a.session.Active() {
		// Without a drag every item rests at zero immediately.
		a.target = 0
		a.tween = anim.NewTween(0, 0, now, 0, a.easing)
		return
	}

	target := Displacement(a.index, a.key, a.session)
	if target == a.target {
		return
	}
	current := a.tween.At(now)
	a.target = target
	a.tween = anim.NewTween(current, float64(target), now, a.duration, a.easing)
}
