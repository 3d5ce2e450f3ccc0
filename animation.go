package gaze

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates an alpha multiplier from one value to another with a gween
// tween. It is used for subtrees that are replaced or appear, for the
// cosmetic pressed-key feedback and for drop button overlays.
//
// There is no global animation manager; owners call Update themselves.
type Fade struct {
	tween *gween.Tween
	value float64
	from  float64
	to    float64
	Done  bool
}

// NewFade creates a fade from one value to another over duration seconds.
// A non-positive duration yields a fade that is already done.
func NewFade(from, to, duration float64, fn ease.TweenFunc) *Fade {
	f := &Fade{value: from, from: from, to: to}
	if duration <= 0 {
		f.value = to
		f.Done = true
		return f
	}
	if fn == nil {
		fn = ease.Linear
	}
	f.tween = gween.New(float32(from), float32(to), float32(duration), fn)
	return f
}

// Update advances the fade by dt seconds and returns the current value.
func (f *Fade) Update(dt float64) float64 {
	if f.Done {
		return f.value
	}
	val, finished := f.tween.Update(float32(dt))
	f.value = float64(val)
	if finished {
		f.value = f.to
		f.Done = true
	}
	return f.value
}

// Value returns the current value without advancing.
func (f *Fade) Value() float64 {
	return f.value
}

// Target returns the value the fade ends at.
func (f *Fade) Target() float64 {
	return f.to
}

// Retarget starts a new fade from the current value toward to. The duration
// is scaled by the remaining distance so a half-finished fade reverses in
// half the time.
func (f *Fade) Retarget(to, fullDuration float64) {
	if f.to == to && !f.Done {
		return
	}
	dist := to - f.value
	if dist < 0 {
		dist = -dist
	}
	span := f.to - f.from
	if span < 0 {
		span = -span
	}
	if span == 0 {
		span = 1
	}
	*f = *NewFade(f.value, to, fullDuration*dist/span, ease.Linear)
}
