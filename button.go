package gaze

// buttonState is the capability record shared by circle, box and drop
// buttons.
type buttonState struct {
	isSwitch bool

	threshold  LerpValue
	refractory bool // threshold must reach 0 before the next hit

	down      bool
	pressing  LerpValue // visual press animation, 1 while fully down
	upTimer   float64   // seconds until a non-switch button returns up
	upPending bool
}

func (s *buttonState) reset() {
	s.threshold.Set(0)
	s.refractory = false
	s.down = false
	s.pressing.Set(0)
	s.upTimer = 0
	s.upPending = false
}

func newButton(id, style, icon string, kind ElementKind, shape HitShape, isSwitch bool) *Element {
	e := &Element{
		ID:          id,
		StyleName:   style,
		Kind:        kind,
		interactive: newInteractive(shape),
		icon:        &iconState{source: icon},
		button:      &buttonState{isSwitch: isSwitch},
	}
	elementDefaults(e)
	return e
}

// NewCircleButton creates a dwell button with a circular hit region.
func NewCircleButton(id, style, icon string, isSwitch bool) *Element {
	return newButton(id, style, icon, KindCircleButton, HitCircle{}, isSwitch)
}

// NewBoxButton creates a dwell button covering its whole rectangle.
func NewBoxButton(id, style, icon string, isSwitch bool) *Element {
	return newButton(id, style, icon, KindBoxButton, HitBox{}, isSwitch)
}

// IsSwitch reports whether the element is a switch button.
func (e *Element) IsSwitch() bool {
	return e.button != nil && e.button.isSwitch
}

// IsDown reports whether the element is a button that is currently down.
func (e *Element) IsDown() bool {
	return e.button != nil && e.button.down
}

// Threshold returns the dwell threshold of a button or keyboard, or 0.
func (e *Element) Threshold() float64 {
	switch {
	case e.button != nil:
		return e.button.threshold.Value()
	case e.keyboard != nil:
		return e.keyboard.threshold.Value()
	}
	return 0
}

func (e *Element) updateButton(dt float64, in *Input) float64 {
	cfg := e.config()
	b := e.button
	penetrated := e.penetratedByInput(in)

	switch {
	case b.refractory:
		b.threshold.Update(-dt / cfg.ButtonThresholdDecreaseDuration)
		if b.threshold.AtMin() {
			b.refractory = false
		}
	case penetrated:
		if b.threshold.Update(dt/cfg.ButtonThresholdIncreaseDuration) >= 1 {
			e.hitButton(false)
		}
	default:
		b.threshold.Update(-dt / cfg.ButtonThresholdDecreaseDuration)
	}

	if b.upPending {
		b.upTimer -= dt
		if b.upTimer <= 0 {
			b.upPending = false
			e.buttonUp(false)
		}
	}
	b.pressing.Ease(dt/cfg.ButtonPressingDuration, !b.down)
	return b.threshold.Value()
}

// hitButton hits the button: BUTTON_HIT, then a switch toggles and any other
// button goes down and returns up after buttonPressingDuration.
func (e *Element) hitButton(immediately bool) {
	b := e.button
	b.refractory = true
	b.threshold.Set(1)
	e.enqueue(NotifyButtonHit, nil)
	if b.isSwitch {
		if b.down {
			e.buttonUp(immediately)
		} else {
			e.buttonDown(immediately)
		}
		return
	}
	e.buttonDown(immediately)
	if immediately {
		e.buttonUp(true)
		return
	}
	b.upPending = true
	b.upTimer = e.config().ButtonPressingDuration
}

// buttonDown moves the button down. It is a no-op for a button already down.
func (e *Element) buttonDown(immediately bool) {
	b := e.button
	if b.down {
		return
	}
	b.down = true
	if immediately {
		b.pressing.Set(1)
	}
	e.enqueue(NotifyButtonDown, nil)
	if e.drop != nil {
		e.showDropInner(immediately)
	}
}

// buttonUp moves the button up. It is a no-op for a button already up.
func (e *Element) buttonUp(immediately bool) {
	b := e.button
	if !b.down {
		return
	}
	b.down = false
	b.upPending = false
	if immediately {
		b.pressing.Set(0)
	}
	e.enqueue(NotifyButtonUp, nil)
	if e.drop != nil {
		e.hideDropInner(immediately)
	}
}

func (e *Element) drawButton(r Renderer) {
	shape := ShapeQuad
	if e.Kind == KindCircleButton {
		shape = ShapeCircle
	}
	p := e.params()
	p.Threshold = e.button.threshold.Value()
	p.Pressing = e.button.pressing.Value()
	p.Icon = e.icon.source
	e.drawShape(r, shape, p)
	e.drawHighlight(r, shape)
}

// --- Drop button ---

// dropState is the capability record of a drop button: an inner element
// shown as a front element of the frame while the button is down.
type dropState struct {
	inner *Element
	fade  *Fade
}

// NewDropButton creates a switch button that reveals inner while down. The
// inner element is laid out dropButtonSpace button sizes below a horizontal
// parent stack, or to the right of a vertical one, and drawn above siblings.
func NewDropButton(id, style, icon string, inner *Element) *Element {
	e := newButton(id, style, icon, KindDropButton, HitBox{}, true)
	if inner == nil {
		inner = NewBlank("", "")
	}
	e.drop = &dropState{inner: inner, fade: NewFade(0, 0, 0, nil)}
	inner.front = true
	e.AddChild(inner)
	return e
}

// DropInner returns the inner element of a drop button, or nil.
func (e *Element) DropInner() *Element {
	if e.drop == nil {
		return nil
	}
	return e.drop.inner
}

// layoutDrop positions the inner element next to the button, along the
// axis the parent stack does not use.
func (e *Element) layoutDrop() {
	space := e.config().DropButtonSpace
	vertical := e.parent == nil || e.parent.Orientation == OrientationHorizontal
	if vertical {
		h := int(float64(e.height) * space)
		e.drop.inner.transformAndResize(e.x, e.y+e.height, e.width, h)
	} else {
		w := int(float64(e.width) * space)
		e.drop.inner.transformAndResize(e.x+e.width, e.y, w, e.height)
	}
}

func (e *Element) showDropInner(immediately bool) {
	d := e.drop
	if immediately {
		d.fade = NewFade(1, 1, 0, nil)
	} else {
		d.fade.Retarget(1, e.config().AnimationDuration)
	}
	if e.frame != nil {
		e.frame.SetFrontElementAlpha(d.inner, d.fade.Value())
	}
}

func (e *Element) hideDropInner(immediately bool) {
	d := e.drop
	if immediately {
		d.fade = NewFade(0, 0, 0, nil)
	} else {
		d.fade.Retarget(0, e.config().AnimationDuration)
	}
	if e.frame != nil {
		e.frame.SetFrontElementAlpha(d.inner, d.fade.Value())
	}
}

func (e *Element) updateDrop(dt float64) {
	d := e.drop
	v := d.fade.Update(dt)
	if e.frame != nil {
		e.frame.SetFrontElementAlpha(d.inner, v)
	}
}
