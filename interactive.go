package gaze

// interactiveState is the capability record of every interactive variant.
type interactiveState struct {
	shape HitShape

	highlighted bool
	highlight   LerpValue
	selection   LerpValue
	penetrated  bool // set by the last penetratedByInput

	// listeners holds a *listenerRegistry[L] for the listener type the
	// variant dispatches to. Allocated on first registration.
	listeners notifier
}

func newInteractive(shape HitShape) *interactiveState {
	if shape == nil {
		shape = HitBox{}
	}
	return &interactiveState{shape: shape}
}

func (s *interactiveState) reset() {
	s.highlighted = false
	s.highlight.Set(0)
	s.selection.Set(0)
	s.penetrated = false
}

// SetHitShape replaces the hit region of an interactive element. A nil shape
// restores the full rectangle.
func (e *Element) SetHitShape(shape HitShape) {
	if e.interactive == nil {
		return
	}
	if shape == nil {
		shape = HitBox{}
	}
	e.interactive.shape = shape
}

// mayConsumeInput reports whether gaze over this element should count as
// interaction at all.
func (e *Element) mayConsumeInput() bool {
	if e.layout == nil || !e.layout.useInput {
		return false
	}
	if !e.active || e.alpha <= 0 {
		return false
	}
	if e.frame != nil && (e.frame.removed || !e.frame.visible) {
		return false
	}
	return true
}

// penetratedByInput hit-tests the input against the current geometry. The
// first element that is penetrated consumes the input so overlapping
// elements further down in update order are not penetrated as well.
func (e *Element) penetratedByInput(in *Input) bool {
	s := e.interactive
	s.penetrated = false
	if in == nil || in.consumed || !e.mayConsumeInput() {
		return false
	}
	if !s.shape.Contains(e.Bounds(), in.GazeX, in.GazeY) {
		return false
	}
	in.consumed = true
	s.penetrated = true
	if in.Click {
		e.interact()
	}
	return true
}

// interact is the explicit, non-gaze activation of the element.
func (e *Element) interact() {
	switch e.Kind {
	case KindSensor:
		e.penetrateSensor(e.config().SensorInteractionPenetrationAmount)
	case KindCircleButton, KindBoxButton, KindDropButton:
		e.hitButton(false)
	case KindKeyboard:
		e.pressFocusedKey()
	}
}

// updateInteractive advances the highlight, selection and dim animations.
func (e *Element) updateInteractive(dt float64) {
	s := e.interactive
	cfg := e.config()
	step := dt / cfg.AnimationDuration
	s.highlight.Ease(step, !s.highlighted)
	selected := e.layout != nil && e.layout.selected == e
	s.selection.Ease(step, !selected)
	if e.Dimming {
		e.dim.Ease(dt/cfg.DimDuration, s.penetrated)
	} else {
		e.dim.Set(0)
	}
}

// enqueue hands a notification to the layout's queue. Elements never call
// listeners directly.
func (e *Element) enqueue(kind NotificationKind, payload any) {
	if e.layout == nil || e.retired {
		return
	}
	e.layout.queue.enqueue(Notification{Source: e, Kind: kind, Payload: payload})
}

// pipeNotification delivers a drained notification to the element's
// listeners. Kinds the variant does not understand are reported as a bug.
func (e *Element) pipeNotification(l *Layout, n Notification) {
	onPanic := func(err error) { l.listenerPanicked(n, err) }
	switch n.Kind {
	case NotifyButtonHit, NotifyButtonDown, NotifyButtonUp:
		if e.button == nil {
			l.warn(OperationBug, "button notification piped to non-button element", "id", e.ID, "kind", n.Kind.String())
			return
		}
		reg := listenersOf[ButtonListener](e)
		if reg == nil {
			return
		}
		reg.notify(func(b ButtonListener) {
			switch n.Kind {
			case NotifyButtonHit:
				b.Hit(l, e.ID)
			case NotifyButtonDown:
				b.Down(l, e.ID)
			default:
				b.Up(l, e.ID)
			}
		}, onPanic)
	case NotifySensorPenetrated:
		amount, ok := n.Payload.(float64)
		if e.sensor == nil || !ok {
			l.warn(OperationBug, "sensor notification piped to non-sensor element", "id", e.ID, "kind", n.Kind.String())
			return
		}
		if reg := listenersOf[SensorListener](e); reg != nil {
			reg.notify(func(s SensorListener) { s.Penetrated(l, e.ID, amount) }, onPanic)
		}
	case NotifyKeyPressed:
		key, ok := n.Payload.(KeyPress)
		if e.keyboard == nil || !ok {
			l.warn(OperationBug, "key notification piped to non-keyboard element", "id", e.ID, "kind", n.Kind.String())
			return
		}
		if reg := listenersOf[KeyboardListener](e); reg != nil {
			reg.notify(func(k KeyboardListener) { k.KeyPressed(l, e.ID, key) }, onPanic)
		}
	default:
		l.warn(OperationBug, "element got notification which is not meant for it", "id", e.ID, "kind", n.Kind.String())
	}
}

// listenersOf returns the element's registry for listener type L, or nil.
func listenersOf[L any](e *Element) *listenerRegistry[L] {
	if e.interactive == nil {
		return nil
	}
	reg, _ := e.interactive.listeners.(*listenerRegistry[L])
	return reg
}

// registerListener adds ref to the element's registry for L, creating it on
// first use.
func registerListener[L any](e *Element, ref ListenerRef[L]) ListenerHandle {
	reg := listenersOf[L](e)
	if reg == nil {
		reg = &listenerRegistry[L]{}
		e.interactive.listeners = reg
	}
	return ListenerHandle{id: reg.add(ref), reg: reg}
}

// drawHighlight draws the interaction overlay every interactive variant shares.
func (e *Element) drawHighlight(r Renderer, shape Shape) {
	s := e.interactive
	if s.highlight.AtMin() && s.selection.AtMin() {
		return
	}
	p := e.params()
	p.Style = e.StyleName + ".highlight"
	r.Draw(e.drawables.fetch(r, shapeOverlay(shape), p.Style), e.Bounds(), p)
}

// shapeOverlay picks the overlay shape for a base shape.
func shapeOverlay(s Shape) Shape {
	if s == ShapeCircle {
		return ShapeCircle
	}
	return ShapeQuad
}
