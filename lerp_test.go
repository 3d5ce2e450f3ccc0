package gaze

import "testing"

func TestLerpValueZeroValueDomain(t *testing.T) {
	var l LerpValue
	if l.Value() != 0 {
		t.Errorf("Value = %v, want 0", l.Value())
	}
	l.Update(5)
	if l.Value() != 1 {
		t.Errorf("Update above domain = %v, want 1", l.Value())
	}
	l.Update(-5)
	if l.Value() != 0 {
		t.Errorf("Update below domain = %v, want 0", l.Value())
	}
}

func TestNewLerpValueClamps(t *testing.T) {
	tests := []struct {
		name           string
		v, min, max    float64
		want           float64
		wantLo, wantHi float64
	}{
		{"inside", 2, 0, 5, 2, 0, 5},
		{"below", -1, 0, 5, 0, 0, 5},
		{"above", 9, 0, 5, 5, 0, 5},
		{"swapped bounds", 3, 5, 0, 3, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLerpValue(tt.v, tt.min, tt.max)
			if l.Value() != tt.want {
				t.Errorf("Value = %v, want %v", l.Value(), tt.want)
			}
			lo, hi := l.bounds()
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("bounds = [%v, %v], want [%v, %v]", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestLerpValueEase(t *testing.T) {
	var l LerpValue
	l.Ease(0.25, false)
	l.Ease(0.25, false)
	if l.Value() != 0.5 {
		t.Errorf("after two increases Value = %v, want 0.5", l.Value())
	}
	l.Ease(0.1, true)
	if l.Value() != 0.4 {
		t.Errorf("after decrease Value = %v, want 0.4", l.Value())
	}
	l.Ease(-1, false)
	if l.Value() != 0.4 {
		t.Errorf("negative step should not move, got %v", l.Value())
	}
}

func TestLerpValueApproachConvergesMonotonically(t *testing.T) {
	for _, target := range []float64{0, 0.3, 1, 2, -1} {
		l := NewLerpValue(0.7, 0, 1)
		prevDist := 2.0
		for i := 0; i < 200; i++ {
			v := l.Approach(target, 0.013)
			if v < 0 || v > 1 {
				t.Fatalf("target %v: value %v left domain", target, v)
			}
			dist := v - clamp(target, 0, 1)
			if dist < 0 {
				dist = -dist
			}
			if dist > prevDist {
				t.Fatalf("target %v: distance grew from %v to %v", target, prevDist, dist)
			}
			prevDist = dist
		}
		if l.Value() != clamp(target, 0, 1) {
			t.Errorf("target %v: Value = %v after convergence", target, l.Value())
		}
	}
}

func TestLerpValueUpdateIdempotentForSameElapsedTime(t *testing.T) {
	a := NewLerpValue(0.2, 0, 1)
	b := NewLerpValue(0.2, 0, 1)
	for i := 0; i < 10; i++ {
		a.Update(0.05)
		b.Update(0.05)
	}
	if a.Value() != b.Value() {
		t.Errorf("same deltas gave %v and %v", a.Value(), b.Value())
	}
}

func TestLerpValueAtBounds(t *testing.T) {
	l := NewLerpValue(0, -1, 1)
	if l.AtMin() || l.AtMax() {
		t.Error("0 in [-1, 1] should be at neither bound")
	}
	l.Set(-3)
	if !l.AtMin() {
		t.Error("expected AtMin")
	}
	l.Set(3)
	if !l.AtMax() {
		t.Error("expected AtMax")
	}
}
