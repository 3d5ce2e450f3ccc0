package gaze

import "math"

// Color represents an RGBA color with components in [0, 1]. The core never
// interprets colors; they are payload handed through to the Renderer.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector in layout pixel space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Rect is an axis-aligned rectangle in pixels. The origin is at the top-left,
// with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x <= float64(r.X+r.Width) &&
		y >= float64(r.Y) && y <= float64(r.Y+r.Height)
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Input is one per-tick input sample in layout pixel space.
type Input struct {
	GazeX float64
	GazeY float64
	// Click is a discrete activation (mouse click, switch press) of whatever
	// interactive element the gaze currently penetrates.
	Click bool

	// consumed is set by the first interactive element that is penetrated
	// this tick, so overlapping elements below it stay untouched.
	consumed bool
}

// Gaze returns the gaze position as a vector.
func (in *Input) Gaze() Vec2 {
	return Vec2{in.GazeX, in.GazeY}
}

// ElementKind distinguishes the variants of an Element.
type ElementKind uint8

const (
	KindBlank        ElementKind = iota // reserves space, draws nothing
	KindBlock                           // background quad
	KindPicture                         // opaque image payload
	KindTextBlock                       // opaque text payload
	KindStack                           // container splitting space among children
	KindSensor                          // continuous dwell accumulation
	KindCircleButton                    // dwell button with circular hit region
	KindBoxButton                       // dwell button with rectangular hit region
	KindDropButton                      // switch button revealing a front element
	KindKeyboard                        // dwell keyboard of keys
)

var kindNames = [...]string{
	KindBlank:        "blank",
	KindBlock:        "block",
	KindPicture:      "picture",
	KindTextBlock:    "text block",
	KindStack:        "stack",
	KindSensor:       "sensor",
	KindCircleButton: "circle button",
	KindBoxButton:    "box button",
	KindDropButton:   "drop button",
	KindKeyboard:     "keyboard",
}

func (k ElementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Orientation decides along which axis a stack splits its space and which
// side a border is measured from.
type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

// NotificationKind identifies what an interactive element reported.
type NotificationKind uint8

const (
	NotifyButtonHit        NotificationKind = iota // button was hit
	NotifyButtonDown                               // button went down
	NotifyButtonUp                                 // button went up
	NotifySensorPenetrated                         // sensor penetration is above zero
	NotifyKeyPressed                               // keyboard key was pressed
)

var notificationNames = [...]string{
	NotifyButtonHit:        "BUTTON_HIT",
	NotifyButtonDown:       "BUTTON_DOWN",
	NotifyButtonUp:         "BUTTON_UP",
	NotifySensorPenetrated: "SENSOR_PENETRATED",
	NotifyKeyPressed:       "KEY_PRESSED",
}

func (k NotificationKind) String() string {
	if int(k) < len(notificationNames) {
		return notificationNames[k]
	}
	return "UNKNOWN"
}

// Operation classifies a reported warning.
type Operation uint8

const (
	OperationBug     Operation = iota // internal inconsistency
	OperationRuntime                  // misuse of the API at runtime
)

func (o Operation) String() string {
	switch o {
	case OperationBug:
		return "bug"
	case OperationRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
