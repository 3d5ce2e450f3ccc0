package gaze

// HitShape decides whether a point in layout space penetrates an element
// occupying bounds. Shapes are expressed relative to the bounds so they
// follow the element through every resize.
type HitShape interface {
	Contains(bounds Rect, x, y float64) bool
}

// HitBox covers the whole element rectangle.
type HitBox struct{}

// Contains reports whether (x, y) lies inside bounds.
func (HitBox) Contains(bounds Rect, x, y float64) bool {
	return bounds.Contains(x, y)
}

// HitCircle is the largest circle centered in the element rectangle.
type HitCircle struct{}

// Contains reports whether (x, y) lies inside or on the inscribed circle.
func (HitCircle) Contains(bounds Rect, x, y float64) bool {
	c := bounds.Center()
	r := float64(min(bounds.Width, bounds.Height)) / 2
	dx := x - c.X
	dy := y - c.Y
	return dx*dx+dy*dy <= r*r
}

// HitPolygon is a convex polygon whose points are given in unit space,
// where (0, 0) is the top-left and (1, 1) the bottom-right of the element.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon using a
// cross-product sign test.
func (p HitPolygon) Contains(bounds Rect, x, y float64) bool {
	n := len(p.Points)
	if n < 3 || bounds.Empty() {
		return false
	}
	// Work in unit space.
	ux := (x - float64(bounds.X)) / float64(bounds.Width)
	uy := (y - float64(bounds.Y)) / float64(bounds.Height)

	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(uy-a.Y) - (b.Y-a.Y)*(ux-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
