package gaze

// LerpValue is a scalar that moves by explicit per-tick deltas and never
// leaves its domain. The zero value has the domain [0, 1] and value 0.
type LerpValue struct {
	value  float64
	min    float64
	max    float64
	ranged bool
}

// NewLerpValue returns a LerpValue with the given domain, clamping value into it.
func NewLerpValue(value, min, max float64) LerpValue {
	if max < min {
		min, max = max, min
	}
	l := LerpValue{min: min, max: max, ranged: true}
	l.Set(value)
	return l
}

func (l *LerpValue) bounds() (float64, float64) {
	if !l.ranged {
		return 0, 1
	}
	return l.min, l.max
}

// Value returns the current value.
func (l *LerpValue) Value() float64 {
	return l.value
}

// Set snaps the value, clamped to the domain.
func (l *LerpValue) Set(v float64) {
	lo, hi := l.bounds()
	l.value = clamp(v, lo, hi)
}

// Update adds delta and clamps. Returns the new value.
func (l *LerpValue) Update(delta float64) float64 {
	l.Set(l.value + delta)
	return l.value
}

// Ease moves the value toward the upper bound by step, or toward the lower
// bound when decrease is true. Negative steps are treated as zero.
func (l *LerpValue) Ease(step float64, decrease bool) float64 {
	if step < 0 {
		step = 0
	}
	if decrease {
		step = -step
	}
	return l.Update(step)
}

// Approach moves the value toward target by at most step without
// overshooting it. Returns the new value.
func (l *LerpValue) Approach(target, step float64) float64 {
	lo, hi := l.bounds()
	target = clamp(target, lo, hi)
	if step < 0 {
		step = 0
	}
	switch {
	case l.value < target:
		l.value = min(l.value+step, target)
	case l.value > target:
		l.value = max(l.value-step, target)
	}
	return l.value
}

// AtMin reports whether the value rests on the lower bound.
func (l *LerpValue) AtMin() bool {
	lo, _ := l.bounds()
	return l.value <= lo
}

// AtMax reports whether the value rests on the upper bound.
func (l *LerpValue) AtMax() bool {
	_, hi := l.bounds()
	return l.value >= hi
}
