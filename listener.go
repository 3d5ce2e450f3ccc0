package gaze

import "weak"

// ButtonListener receives button notifications.
type ButtonListener interface {
	Hit(layout *Layout, id string)
	Down(layout *Layout, id string)
	Up(layout *Layout, id string)
}

// SensorListener receives the current penetration every tick it is above zero.
type SensorListener interface {
	Penetrated(layout *Layout, id string, amount float64)
}

// KeyboardListener receives pressed keys.
type KeyboardListener interface {
	KeyPressed(layout *Layout, id string, key KeyPress)
}

// ButtonListenerFuncs adapts plain functions to ButtonListener. Nil fields
// are skipped.
type ButtonListenerFuncs struct {
	OnHit  func(layout *Layout, id string)
	OnDown func(layout *Layout, id string)
	OnUp   func(layout *Layout, id string)
}

func (f ButtonListenerFuncs) Hit(layout *Layout, id string) {
	if f.OnHit != nil {
		f.OnHit(layout, id)
	}
}

func (f ButtonListenerFuncs) Down(layout *Layout, id string) {
	if f.OnDown != nil {
		f.OnDown(layout, id)
	}
}

func (f ButtonListenerFuncs) Up(layout *Layout, id string) {
	if f.OnUp != nil {
		f.OnUp(layout, id)
	}
}

// SensorListenerFunc adapts a function to SensorListener.
type SensorListenerFunc func(layout *Layout, id string, amount float64)

func (f SensorListenerFunc) Penetrated(layout *Layout, id string, amount float64) {
	f(layout, id, amount)
}

// KeyboardListenerFunc adapts a function to KeyboardListener.
type KeyboardListenerFunc func(layout *Layout, id string, key KeyPress)

func (f KeyboardListenerFunc) KeyPressed(layout *Layout, id string, key KeyPress) {
	f(layout, id, key)
}

// ListenerRef resolves to a listener, or reports false once the listener
// has expired. Expired listeners are skipped and pruned, never an error.
type ListenerRef[L any] func() (L, bool)

// Strong keeps l alive for as long as it stays registered.
func Strong[L any](l L) ListenerRef[L] {
	return func() (L, bool) { return l, true }
}

// Weak references p without keeping it alive. Once p is collected the
// listener expires. p must implement L.
//
//	layout.RegisterSensorListener("sensor", gaze.Weak[gaze.SensorListener](mine))
func Weak[L any, T any](p *T) ListenerRef[L] {
	w := weak.Make(p)
	return func() (L, bool) {
		var zero L
		v := w.Value()
		if v == nil {
			return zero, false
		}
		l, ok := any(v).(L)
		return l, ok
	}
}

// notifier is the type-erased view of a listenerRegistry held by the
// interactive capability record.
type notifier interface {
	remove(id uint32)
	clear()
	size() int
}

type listenerEntry[L any] struct {
	id  uint32
	ref ListenerRef[L]
}

// listenerRegistry is the single listener list and dispatch service shared
// by all interactive variants.
type listenerRegistry[L any] struct {
	entries []listenerEntry[L]
	nextID  uint32
}

func (r *listenerRegistry[L]) add(ref ListenerRef[L]) uint32 {
	r.nextID++
	r.entries = append(r.entries, listenerEntry[L]{id: r.nextID, ref: ref})
	return r.nextID
}

func (r *listenerRegistry[L]) remove(id uint32) {
	for i := range r.entries {
		if r.entries[i].id == id {
			copy(r.entries[i:], r.entries[i+1:])
			r.entries[len(r.entries)-1] = listenerEntry[L]{}
			r.entries = r.entries[:len(r.entries)-1]
			return
		}
	}
}

func (r *listenerRegistry[L]) clear() {
	r.entries = nil
}

func (r *listenerRegistry[L]) size() int {
	return len(r.entries)
}

// notify calls fn for every live listener in registration order and prunes
// expired ones. The entries are snapshotted so a listener may register or
// remove listeners while being notified. A panicking listener is reported
// through onPanic, which may be nil, and the following listeners still run.
func (r *listenerRegistry[L]) notify(fn func(L), onPanic func(error)) {
	if len(r.entries) == 0 {
		return
	}
	snapshot := append([]listenerEntry[L](nil), r.entries...)
	var expired []uint32
	for _, e := range snapshot {
		l, ok := e.ref()
		if !ok {
			expired = append(expired, e.id)
			continue
		}
		callIsolated(func() { fn(l) }, onPanic)
	}
	for _, id := range expired {
		r.remove(id)
	}
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id  uint32
	reg notifier
}

// Remove unregisters the listener so it no longer fires. Calling Remove on
// a zero handle is a no-op.
func (h ListenerHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}
