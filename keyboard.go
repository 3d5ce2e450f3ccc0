package gaze

import (
	"math"
	"unicode/utf16"
)

// DefaultKeyRows is the key set a keyboard gets when no rows are given.
var DefaultKeyRows = []string{
	"1234567890/",
	"qwertyuiop+-",
	"asdfghjkl()",
	"#zxcvbnm.:<>",
}

// KeyPress is the character delivered to keyboard listeners, in the wide
// and the narrow encoding.
type KeyPress struct {
	Rune  rune
	UTF16 []uint16
	UTF8  string
}

func newKeyPress(r rune) KeyPress {
	return KeyPress{Rune: r, UTF16: utf16.Encode([]rune{r}), UTF8: string(r)}
}

// key is one cell of the keyboard grid. initial is the nominal center;
// pos and size are the displaced values computed by the last update.
type key struct {
	char    rune
	initial Vec2
	pos     Vec2
	size    float64
	focused bool
	focus   LerpValue
}

// pressedKey is the short-lived cosmetic copy of a key that fired.
type pressedKey struct {
	char rune
	pos  Vec2
	size float64
	fade *Fade
}

// keyboardState is the capability record of a keyboard.
type keyboardState struct {
	keys    [][]*key
	keySize float64 // initial key size in pixels

	// gaze is the filtered gaze position.
	gaze Vec2

	// threshold is the single dwell accumulator shared by all keys.
	threshold     LerpValue
	keyWasPressed bool

	focusRow, focusCol int

	pressed   []pressedKey
	lastPress KeyPress
}

// NewKeyboard creates a dwell keyboard. Each row string becomes one row of
// keys; without rows DefaultKeyRows is used.
func NewKeyboard(id, style string, rows ...string) *Element {
	if len(rows) == 0 {
		rows = DefaultKeyRows
	}
	k := &keyboardState{focusRow: -1, focusCol: -1}
	for _, row := range rows {
		var line []*key
		for _, r := range row {
			line = append(line, &key{char: r})
		}
		if len(line) > 0 {
			k.keys = append(k.keys, line)
		}
	}
	e := &Element{
		ID:          id,
		StyleName:   style,
		Kind:        KindKeyboard,
		interactive: newInteractive(HitBox{}),
		keyboard:    k,
	}
	elementDefaults(e)
	return e
}

// KeyCenter returns the nominal center of the key for r.
func (e *Element) KeyCenter(r rune) (Vec2, bool) {
	if e.keyboard == nil {
		return Vec2{}, false
	}
	for _, line := range e.keyboard.keys {
		for _, k := range line {
			if k.char == r {
				return k.initial, true
			}
		}
	}
	return Vec2{}, false
}

// KeySize returns the initial key size in pixels.
func (e *Element) KeySize() float64 {
	if e.keyboard == nil {
		return 0
	}
	return e.keyboard.keySize
}

// FocusedKey returns the character of the focused key.
func (e *Element) FocusedKey() (rune, bool) {
	if k := e.focusedKey(); k != nil {
		return k.char, true
	}
	return 0, false
}

// FilteredGaze returns the keyboard's stabilized gaze position.
func (e *Element) FilteredGaze() Vec2 {
	if e.keyboard == nil {
		return Vec2{}
	}
	return e.keyboard.gaze
}

// LastPressedKey returns the last key the keyboard fired.
func (e *Element) LastPressedKey() KeyPress {
	if e.keyboard == nil {
		return KeyPress{}
	}
	return e.keyboard.lastPress
}

func (e *Element) focusedKey() *key {
	k := e.keyboard
	if k == nil || k.focusRow < 0 || k.focusCol < 0 {
		return nil
	}
	return k.keys[k.focusRow][k.focusCol]
}

// layoutKeyboard computes the nominal key grid. Keys are squares sized to
// fit the longest row horizontally, with keySpacing between them; rows whose
// length differs from the longest by an odd count shift by half a key.
func (e *Element) layoutKeyboard() {
	k := e.keyboard
	if len(k.keys) == 0 {
		return
	}
	spacing := e.config().Keyboard.KeySpacing
	maxCount := 0
	for _, line := range k.keys {
		maxCount = max(maxCount, len(line))
	}

	horizontal := e.width / maxCount
	horizontal -= int(float64(horizontal) * spacing)
	vertical := e.height / len(k.keys)
	size := min(horizontal, vertical)
	half := size / 2

	xCenter := int((float64(e.width) - float64(maxCount)*(float64(size)+float64(size)*spacing)) / 2)
	yCenter := int(float64(e.height-len(k.keys)*size) / 2)

	for i, line := range k.keys {
		xOffset := int(float64(half) * spacing)
		if (len(line)-maxCount)%2 != 0 {
			xOffset += half
		}
		for j, ky := range line {
			ky.initial = Vec2{
				X: float64(e.x + xCenter + half + j*size + xOffset),
				Y: float64(e.y + yCenter + half + i*size),
			}
			ky.pos = ky.initial
			ky.size = float64(size)
			xOffset += int(float64(size) * spacing)
		}
	}
	k.keySize = float64(size)
}

func (e *Element) updateKeyboard(dt float64, in *Input) float64 {
	cfg := e.config().Keyboard
	k := e.keyboard
	penetrated := e.penetratedByInput(in)

	// Pressed key feedback
	alive := k.pressed[:0]
	for _, p := range k.pressed {
		p.fade.Update(dt)
		p.size += cfg.PressedKeyGrowth * dt * k.keySize
		if !p.fade.Done {
			alive = append(alive, p)
		}
	}
	clear(k.pressed[len(alive):])
	k.pressed = alive

	if k.keySize <= 0 {
		return 0
	}

	// Gaze filter: small displacements are smoothed, large ones followed.
	var weight float64
	if in != nil {
		raw := in.Gaze()
		delta := raw.Sub(k.gaze)
		rawFilter := min(1, delta.Len()/(cfg.FilterRadius*k.keySize))
		filter := rawFilter + (1-rawFilter)*min(1, cfg.FilterMinRate*dt)
		k.gaze = k.gaze.Add(delta.Scale(filter))
		weight = 1 - clamp(raw.Dist(k.gaze)/(cfg.GazeWeightRadius*k.keySize), 0, 1)
	}

	switch {
	case k.keyWasPressed:
		if k.threshold.Update(-cfg.RefractoryDecrease*dt) <= 0 {
			k.keyWasPressed = false
		}
	case penetrated:
		k.threshold.Update(dt * cfg.ThresholdGain * (weight - cfg.GazeBias))
	default:
		k.threshold.Update(-cfg.ThresholdDecrease * dt)
	}

	// Focus the key nearest to the filtered gaze, by settled position.
	if penetrated {
		best := math.MaxFloat64
		row, col := -1, -1
		for i, line := range k.keys {
			for j, ky := range line {
				if d := k.gaze.Dist(ky.pos); d < best {
					best, row, col = d, i, j
				}
			}
		}
		if row != k.focusRow || col != k.focusCol {
			if old := e.focusedKey(); old != nil {
				old.focused = false
			}
			k.focusRow, k.focusCol = row, col
			k.keys[row][col].focused = true
		}
	}

	threshold := k.threshold.Value()
	for _, line := range k.keys {
		for _, ky := range line {
			toGaze := k.gaze.Sub(ky.initial)
			focusWeight := clamp(1-toGaze.Len()/(cfg.FocusRadius*k.keySize), 0, 1)
			shift := toGaze.Scale(focusWeight * 0.25 * threshold)

			grow := k.keySize - ky.pos.Dist(k.gaze)
			grow = (1 - focusWeight) + grow*focusWeight
			grow = max(-0.3*k.keySize, grow) * 0.75 * threshold

			ky.pos = Vec2{math.Trunc(ky.initial.X + shift.X), math.Trunc(ky.initial.Y + shift.Y)}
			ky.size = math.Trunc(k.keySize + grow)
			ky.focus.Ease(dt, !ky.focused)

			if !k.keyWasPressed && threshold >= 1 && ky.focused && ky.pos.Dist(k.gaze) < ky.size/2 {
				e.pressKey(ky)
			}
		}
	}
	return 0
}

// pressKey fires ky: the threshold enters its refractory decay, KEY_PRESSED
// is enqueued and a cosmetic copy starts fading out.
func (e *Element) pressKey(ky *key) {
	k := e.keyboard
	k.keyWasPressed = true
	k.lastPress = newKeyPress(ky.char)
	e.enqueue(NotifyKeyPressed, k.lastPress)
	k.pressed = append(k.pressed, pressedKey{
		char: ky.char,
		pos:  ky.pos,
		size: ky.size,
		fade: NewFade(1, 0, e.config().Keyboard.PressedKeyFadeDuration, nil),
	})
}

// pressFocusedKey is the explicit activation of a keyboard.
func (e *Element) pressFocusedKey() {
	if ky := e.focusedKey(); ky != nil && !e.keyboard.keyWasPressed {
		e.keyboard.threshold.Set(1)
		e.pressKey(ky)
	}
}

func (e *Element) resetKeyboard() {
	k := e.keyboard
	k.threshold.Set(0)
	k.keyWasPressed = false
	k.focusRow, k.focusCol = -1, -1
	k.gaze = Vec2{}
	k.pressed = nil
	for _, line := range k.keys {
		for _, ky := range line {
			ky.focused = false
			ky.focus.Set(0)
			ky.pos = ky.initial
			ky.size = k.keySize
		}
	}
}

func keyBounds(center Vec2, size float64) Rect {
	s := int(size)
	return Rect{int(center.X) - s/2, int(center.Y) - s/2, s, s}
}

func (e *Element) drawKeyboard(r Renderer) {
	k := e.keyboard
	e.drawShape(r, ShapeQuad, e.params())

	stencil := e.Bounds()
	d := e.drawables.fetch(r, ShapeKey, e.StyleName)
	for _, line := range k.keys {
		for _, ky := range line {
			p := e.params()
			p.Text = string(ky.char)
			p.Focus = ky.focus.Value()
			if ky.focused {
				p.Threshold = k.threshold.Value()
			}
			p.Stencil = stencil
			r.Draw(d, keyBounds(ky.pos, ky.size), p)
		}
	}
	for _, pk := range k.pressed {
		p := e.params()
		p.Text = string(pk.char)
		p.Alpha *= pk.fade.Value()
		p.Stencil = stencil
		r.Draw(d, keyBounds(pk.pos, pk.size), p)
	}
	e.drawHighlight(r, ShapeQuad)
}
