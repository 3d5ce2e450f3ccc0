package gaze

// Shape names the kind of drawable an element asks the Renderer for.
type Shape uint8

const (
	ShapeQuad    Shape = iota // filled rectangle
	ShapeCircle               // filled circle inscribed in the bounds
	ShapeKey                  // keyboard key: circle plus character
	ShapeText                 // text payload inside the bounds
	ShapePicture              // image payload inside the bounds
)

// Drawable is an opaque handle returned by a Renderer. The core only passes
// it back to the Renderer that created it.
type Drawable any

// DrawParams carries everything the interaction core knows about an element
// at draw time. Renderers decide what to do with each value.
type DrawParams struct {
	Kind  ElementKind
	Style string

	Alpha       float64 // combined alpha, already multiplied through frames
	Activity    float64 // 1 when active, 0 when deactivated
	Dim         float64
	Highlight   float64
	Selection   float64
	Penetration float64 // sensor penetration
	Threshold   float64 // button or keyboard dwell threshold
	Pressing    float64 // button down animation
	Focus       float64 // key focus

	Icon string // icon or picture source
	Text string // text block content or key character

	// Stencil clips drawing, e.g. keys to their keyboard. Empty means none.
	Stencil Rect
}

// Renderer is the graphics capability consumed by the core: fetch a drawable
// for a (shape, style) pair and draw it at a rectangle with parameters. The
// core never allocates graphics resources itself.
type Renderer interface {
	Fetch(shape Shape, style string) Drawable
	Draw(d Drawable, bounds Rect, p DrawParams)
}

// drawableCache remembers the drawables an element fetched from one renderer.
type drawableCache struct {
	renderer Renderer
	items    map[drawableKey]Drawable
}

type drawableKey struct {
	shape Shape
	style string
}

func (c *drawableCache) fetch(r Renderer, shape Shape, style string) Drawable {
	if c.renderer != r || c.items == nil {
		c.renderer = r
		c.items = make(map[drawableKey]Drawable, 2)
	}
	k := drawableKey{shape, style}
	d, ok := c.items[k]
	if !ok {
		d = r.Fetch(shape, style)
		c.items[k] = d
	}
	return d
}

func (c *drawableCache) reset() {
	c.renderer = nil
	c.items = nil
}
