package gaze

import "fmt"

// Id-based element operations. Misuse (unknown id, wrong variant) is
// reported as a warning and the call does nothing.

// SetElementActivity activates or deactivates an element. A deactivated
// element is dimmed and does not react to input.
func (l *Layout) SetElementActivity(id string, active, immediately bool) {
	if e := l.lookup(id, "SetElementActivity"); e != nil {
		e.setActivity(active, immediately)
		if !active && l.selected == e {
			l.selected = nil
		}
	}
}

// IsElementActive reports whether the element is active. Unknown ids
// report false.
func (l *Layout) IsElementActive(id string) bool {
	e := l.lookup(id, "IsElementActive")
	return e != nil && e.active
}

// interactiveByID finds an interactive element by id.
func (l *Layout) interactiveByID(id, op string) *Element {
	e := l.lookup(id, op)
	if e == nil {
		return nil
	}
	if e.interactive == nil {
		l.warn(OperationRuntime, "element is not interactive", "id", id, "op", op, "kind", e.Kind.String())
		return nil
	}
	return e
}

// HighlightInteractiveElement sets the highlight flag of an interactive
// element.
func (l *Layout) HighlightInteractiveElement(id string, highlight bool) {
	if e := l.interactiveByID(id, "HighlightInteractiveElement"); e != nil {
		e.interactive.highlighted = highlight
	}
}

// IsInteractiveElementHighlighted reports the highlight flag.
func (l *Layout) IsInteractiveElementHighlighted(id string) bool {
	e := l.interactiveByID(id, "IsInteractiveElementHighlighted")
	return e != nil && e.interactive.highlighted
}

// InteractWithInteractiveElement triggers the explicit activation of an
// interactive element.
func (l *Layout) InteractWithInteractiveElement(id string) {
	if e := l.interactiveByID(id, "InteractWithInteractiveElement"); e != nil {
		e.interact()
	}
}

// PenetrateSensor snaps the penetration of a sensor by amount.
func (l *Layout) PenetrateSensor(id string, amount float64) {
	e := l.lookup(id, "PenetrateSensor")
	if e == nil {
		return
	}
	if e.sensor == nil {
		l.warn(OperationRuntime, "element is not a sensor", "id", id, "kind", e.Kind.String())
		return
	}
	e.penetrateSensor(amount)
}

func (l *Layout) buttonByID(id, op string) *Element {
	e := l.lookup(id, op)
	if e == nil {
		return nil
	}
	if e.button == nil {
		l.warn(OperationRuntime, "element is not a button", "id", id, "op", op, "kind", e.Kind.String())
		return nil
	}
	return e
}

// HitButton hits a button as if its threshold had been reached.
func (l *Layout) HitButton(id string) {
	if e := l.buttonByID(id, "HitButton"); e != nil {
		e.hitButton(false)
	}
}

// ButtonDown moves a button down. When immediately, the press animation is
// skipped.
func (l *Layout) ButtonDown(id string, immediately bool) {
	if e := l.buttonByID(id, "ButtonDown"); e != nil {
		e.buttonDown(immediately)
	}
}

// ButtonUp moves a button up. When immediately, the release animation is
// skipped.
func (l *Layout) ButtonUp(id string, immediately bool) {
	if e := l.buttonByID(id, "ButtonUp"); e != nil {
		e.buttonUp(immediately)
	}
}

// IsButtonSwitch reports whether the button registered under id is a switch.
func (l *Layout) IsButtonSwitch(id string) bool {
	e := l.buttonByID(id, "IsButtonSwitch")
	return e != nil && e.button.isSwitch
}

// --- Listeners ---

// RegisterButtonListener registers a listener for the button under id.
func (l *Layout) RegisterButtonListener(id string, ref ListenerRef[ButtonListener]) (ListenerHandle, error) {
	e, err := l.listenerTarget(id, func(e *Element) bool { return e.button != nil })
	if err != nil {
		return ListenerHandle{}, err
	}
	return registerListener(e, ref), nil
}

// RegisterSensorListener registers a listener for the sensor under id.
func (l *Layout) RegisterSensorListener(id string, ref ListenerRef[SensorListener]) (ListenerHandle, error) {
	e, err := l.listenerTarget(id, func(e *Element) bool { return e.sensor != nil })
	if err != nil {
		return ListenerHandle{}, err
	}
	return registerListener(e, ref), nil
}

// RegisterKeyboardListener registers a listener for the keyboard under id.
func (l *Layout) RegisterKeyboardListener(id string, ref ListenerRef[KeyboardListener]) (ListenerHandle, error) {
	e, err := l.listenerTarget(id, func(e *Element) bool { return e.keyboard != nil })
	if err != nil {
		return ListenerHandle{}, err
	}
	return registerListener(e, ref), nil
}

func (l *Layout) listenerTarget(id string, fits func(*Element) bool) (*Element, error) {
	e, ok := l.ids.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	if !fits(e) {
		l.warn(OperationRuntime, "listener does not fit element", "id", id, "kind", e.Kind.String())
		return nil, fmt.Errorf("%w: %q is a %s", ErrInvalidElement, id, e.Kind)
	}
	return e, nil
}

// --- Selection ---

// SelectedInteractiveElement returns the selected element, or nil.
func (l *Layout) SelectedInteractiveElement() *Element {
	return l.selected
}

// SelectInteractiveElement selects the interactive element under id.
func (l *Layout) SelectInteractiveElement(id string) bool {
	e := l.interactiveByID(id, "SelectInteractiveElement")
	if e == nil {
		return false
	}
	l.selected = e
	return true
}

// DeselectInteractiveElement clears the selection.
func (l *Layout) DeselectInteractiveElement() {
	l.selected = nil
}

// InteractWithSelectedInteractiveElement forwards to the selected element's
// explicit activation. Without a selection it does nothing.
func (l *Layout) InteractWithSelectedInteractiveElement() {
	if l.selected != nil && !l.selected.retired {
		l.selected.interact()
	}
}

// SelectNextInteractiveElement selects the next eligible interactive element
// after the current selection in document order: the main frame first, then
// the floating frames back to front, each depth-first. It wraps around and
// returns false only when no element is eligible.
func (l *Layout) SelectNextInteractiveElement() bool {
	var eligible []*Element
	collect := func(f *Frame) {
		if f == nil || f.root == nil || f.removed {
			return
		}
		f.root.walk(func(e *Element) bool {
			if e.interactive != nil && e.mayConsumeInput() {
				eligible = append(eligible, e)
			}
			return true
		})
	}
	collect(l.main)
	for _, idx := range l.order {
		collect(l.floating[idx])
	}
	if len(eligible) == 0 {
		l.selected = nil
		return false
	}
	next := 0
	for i, e := range eligible {
		if e == l.selected {
			next = (i + 1) % len(eligible)
			break
		}
	}
	l.selected = eligible[next]
	return true
}
