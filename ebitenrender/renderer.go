package ebitenrender

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/gaze"
)

// debugGlyphWidth and debugGlyphHeight are the cell size of the
// ebitenutil debug font.
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

// Style holds the colors a renderer uses for one style name.
type Style struct {
	Background gaze.Color
	Foreground gaze.Color
	Highlight  gaze.Color
	Dim        gaze.Color
	Progress   gaze.Color // sensor penetration and dwell threshold
}

// DefaultStyle is used for style names without an entry.
var DefaultStyle = Style{
	Background: gaze.Color{R: 0.15, G: 0.15, B: 0.18, A: 1},
	Foreground: gaze.ColorWhite,
	Highlight:  gaze.Color{R: 1, G: 0.85, B: 0.2, A: 0.5},
	Dim:        gaze.Color{R: 0, G: 0, B: 0, A: 0.5},
	Progress:   gaze.Color{R: 0.2, G: 0.7, B: 1, A: 0.8},
}

// whitePixel is a 1x1 white image scaled to draw solid quads.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

type drawable struct {
	shape gaze.Shape
	style Style
}

// Renderer draws gaze elements onto an ebiten image. Set the target with
// SetTarget before every Layout.Draw.
type Renderer struct {
	styles map[string]Style
	target *ebiten.Image
	draws  int
}

// NewRenderer creates a renderer with the given styles. A style name of the
// form "name.highlight" falls back to "name".
func NewRenderer(styles map[string]Style) *Renderer {
	if styles == nil {
		styles = make(map[string]Style)
	}
	return &Renderer{styles: styles}
}

// SetTarget sets the image subsequent draws go to and resets the draw count.
func (r *Renderer) SetTarget(target *ebiten.Image) {
	r.target = target
	r.draws = 0
}

// DrawCount returns the number of Draw calls since the last SetTarget.
func (r *Renderer) DrawCount() int {
	return r.draws
}

// style resolves a style name.
func (r *Renderer) style(name string) Style {
	if s, ok := r.styles[name]; ok {
		return s
	}
	if base, _, ok := strings.Cut(name, "."); ok {
		if s, ok := r.styles[base]; ok {
			return s
		}
	}
	return DefaultStyle
}

// Fetch implements gaze.Renderer.
func (r *Renderer) Fetch(shape gaze.Shape, style string) gaze.Drawable {
	return &drawable{shape: shape, style: r.style(style)}
}

// Draw implements gaze.Renderer.
func (r *Renderer) Draw(d gaze.Drawable, bounds gaze.Rect, p gaze.DrawParams) {
	dr, ok := d.(*drawable)
	if !ok || r.target == nil || bounds.Empty() || p.Alpha <= 0 {
		return
	}
	r.draws++
	dst := r.target
	if !p.Stencil.Empty() {
		dst = dst.SubImage(image.Rect(p.Stencil.X, p.Stencil.Y,
			p.Stencil.X+p.Stencil.Width, p.Stencil.Y+p.Stencil.Height)).(*ebiten.Image)
	}

	highlight := strings.HasSuffix(p.Style, ".highlight")
	switch dr.shape {
	case gaze.ShapeQuad:
		if highlight {
			fillRect(dst, bounds, scaleColor(dr.style.Highlight, p.Alpha*max(p.Highlight, p.Selection)))
			return
		}
		fillRect(dst, bounds, shade(dr.style.Background, dr.style.Dim, p))
		drawProgress(dst, bounds, dr.style.Progress, p, max(p.Penetration, p.Threshold))
		if p.Icon != "" {
			printCentered(dst, bounds, p.Icon)
		}
	case gaze.ShapeCircle:
		if highlight {
			fillCircle(dst, bounds, 1, scaleColor(dr.style.Highlight, p.Alpha*max(p.Highlight, p.Selection)))
			return
		}
		fillCircle(dst, bounds, 1-0.1*p.Pressing, shade(dr.style.Background, dr.style.Dim, p))
		if p.Threshold > 0 {
			fillCircle(dst, bounds, p.Threshold, scaleColor(dr.style.Progress, p.Alpha))
		}
		if p.Icon != "" {
			printCentered(dst, bounds, p.Icon)
		}
	case gaze.ShapeKey:
		fillCircle(dst, bounds, 1, shade(dr.style.Background, dr.style.Dim, p))
		if p.Focus > 0 {
			fillCircle(dst, bounds, 0.5+0.5*p.Threshold, scaleColor(dr.style.Highlight, p.Alpha*p.Focus))
		}
		printCentered(dst, bounds, p.Text)
	case gaze.ShapeText:
		ebitenutil.DebugPrintAt(dst, p.Text, bounds.X+2, bounds.Y+2)
	case gaze.ShapePicture:
		fillRect(dst, bounds, shade(dr.style.Background, dr.style.Dim, p))
		printCentered(dst, bounds, p.Icon)
	}
}

// shade combines alpha, activity and dim into the fill color.
func shade(base, dim gaze.Color, p gaze.DrawParams) color.Color {
	c := base
	k := dim.A * max(p.Dim, 1-p.Activity)
	c.R += (dim.R - c.R) * k
	c.G += (dim.G - c.G) * k
	c.B += (dim.B - c.B) * k
	return scaleColor(c, p.Alpha)
}

// scaleColor returns c as premultiplied color.RGBA with its alpha scaled.
func scaleColor(c gaze.Color, alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}

func fillRect(dst *ebiten.Image, b gaze.Rect, c color.Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(b.Width), float64(b.Height))
	op.GeoM.Translate(float64(b.X), float64(b.Y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(whitePixel, &op)
}

// fillCircle fills the circle inscribed in b, scaled by scale.
func fillCircle(dst *ebiten.Image, b gaze.Rect, scale float64, c color.Color) {
	center := b.Center()
	radius := float64(min(b.Width, b.Height)) / 2 * scale
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), float32(radius), c, true)
}

// drawProgress draws a bar along the bottom edge for a value in [0, 1].
func drawProgress(dst *ebiten.Image, b gaze.Rect, c gaze.Color, p gaze.DrawParams, v float64) {
	if v <= 0 {
		return
	}
	h := max(2, b.Height/12)
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y+b.Height-h),
		float32(float64(b.Width)*clamp01(v)), float32(h), scaleColor(c, p.Alpha), false)
}

func printCentered(dst *ebiten.Image, b gaze.Rect, s string) {
	if s == "" {
		return
	}
	c := b.Center()
	w := len([]rune(s)) * debugGlyphWidth
	ebitenutil.DebugPrintAt(dst, s, int(c.X)-w/2, int(c.Y)-debugGlyphHeight/2)
}
