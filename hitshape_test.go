package gaze

import "testing"

func TestHitShapes(t *testing.T) {
	bounds := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	diamond := HitPolygon{Points: []Vec2{{0.5, 0}, {1, 0.5}, {0.5, 1}, {0, 0.5}}}

	tests := []struct {
		name  string
		shape HitShape
		x, y  float64
		want  bool
	}{
		{"box inside", HitBox{}, 50, 30, true},
		{"box edge", HitBox{}, 110, 60, true},
		{"box outside", HitBox{}, 111, 30, false},
		{"circle center", HitCircle{}, 60, 35, true},
		{"circle radius uses shorter side", HitCircle{}, 60 + 26, 35, false},
		{"circle corner", HitCircle{}, 12, 12, false},
		{"polygon center", diamond, 60, 35, true},
		{"polygon corner", diamond, 12, 12, false},
		{"polygon outside", diamond, 200, 35, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(bounds, tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonDegenerate(t *testing.T) {
	line := HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}
	if line.Contains(Rect{Width: 10, Height: 10}, 5, 5) {
		t.Error("polygon with fewer than 3 points should contain nothing")
	}
	square := HitPolygon{Points: []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	if square.Contains(Rect{Width: 0, Height: 10}, 0, 5) {
		t.Error("empty bounds should contain nothing")
	}
}
