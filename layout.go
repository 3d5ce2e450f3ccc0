package gaze

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// WarningFunc receives every non-fatal warning a Layout reports, in addition
// to the logger.
type WarningFunc func(op Operation, msg string)

// Layout is the top-level object owning the main frame, the floating frames
// and their z-order, the id registry, the selected interactive element and
// the notification queue. It is the only component that changes the
// structure of its trees.
//
// A Layout is single-threaded: one Update call runs the whole
// update-then-drain sequence to completion, and Draw renders its result.
type Layout struct {
	width, height int
	config        Config

	logger   logr.Logger
	warnFunc WarningFunc
	debug    bool
	sink     EventSink

	main     *Frame
	floating []*Frame // stable index; nil once purged
	order    []int    // floating indices, back to front

	ids      idRegistry
	selected *Element
	queue    notificationQueue

	visible    bool
	visibility LerpValue
	useInput   bool

	resizeNecessary bool
	updating        bool
	pending         []func()
}

// NewLayout creates a layout with a resolution of width x height pixels. The
// config is copied and read-only thereafter.
func NewLayout(width, height int, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Layout{
		width:           width,
		height:          height,
		config:          cfg,
		logger:          logr.Discard(),
		ids:             newIDRegistry(),
		visible:         true,
		useInput:        true,
		resizeNecessary: true,
	}
	l.visibility.Set(1)
	l.main = newFrame(l, -1, 0, 0, 1, 1, true)
	return l, nil
}

// SetLogger sets the logger warnings and debug output go to.
func (l *Layout) SetLogger(logger logr.Logger) {
	l.logger = logger
}

// Logger returns the layout logger.
func (l *Layout) Logger() logr.Logger {
	return l.logger
}

// SetWarningFunc sets an optional callback receiving every warning.
func (l *Layout) SetWarningFunc(fn WarningFunc) {
	l.warnFunc = fn
}

// SetEventSink sets an optional sink receiving every drained notification
// after its listeners ran. Pass nil to remove it.
func (l *Layout) SetEventSink(sink EventSink) {
	l.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, use of disposed
// elements panics, tree shape warnings are logged when trees are attached,
// and per-tick timing stats are logged at V(1).
func (l *Layout) SetDebugMode(enabled bool) {
	l.debug = enabled
}

// Config returns a copy of the layout config.
func (l *Layout) Config() Config {
	return l.config
}

// Size returns the layout resolution.
func (l *Layout) Size() (width, height int) {
	return l.width, l.height
}

// Resize changes the resolution. Every frame is laid out again before the
// next update or draw.
func (l *Layout) Resize(width, height int) {
	if width == l.width && height == l.height {
		return
	}
	l.width, l.height = width, height
	l.resizeNecessary = true
}

// warn reports a non-fatal warning. The tick always continues.
func (l *Layout) warn(op Operation, msg string, kv ...any) {
	l.logger.Info(msg, append([]any{"operation", op.String()}, kv...)...)
	if l.warnFunc != nil {
		l.warnFunc(op, msg)
	}
}

// MainFrame returns the frame covering the whole layout.
func (l *Layout) MainFrame() *Frame {
	return l.main
}

// Root returns the root of the main frame, or nil.
func (l *Layout) Root() *Element {
	return l.main.root
}

// AttachRoot makes root the subtree of the main frame. It fails if the main
// frame already has a root, if root is unusable or on a duplicate id.
func (l *Layout) AttachRoot(root *Element) error {
	if err := l.checkDetached(root); err != nil {
		return err
	}
	if l.main.root != nil {
		return fmt.Errorf("%w: main frame already has a root, use ReplaceElement", ErrInvalidElement)
	}
	if err := l.ids.insertTree(root); err != nil {
		return err
	}
	l.main.attachRoot(root)
	if l.debug {
		l.debugCheckTree(root)
	}
	return nil
}

// checkDetached verifies e may be attached to this layout.
func (l *Layout) checkDetached(e *Element) error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: nil element", ErrInvalidElement)
	case e.disposed:
		return fmt.Errorf("%w: element %q is disposed", ErrInvalidElement, e.ID)
	case e.layout != nil || e.parent != nil:
		return fmt.Errorf("%w: element %q is already attached", ErrInvalidElement, e.ID)
	}
	return nil
}

// --- Tick ---

// Update advances the layout by dt seconds with the given input sample,
// which may be nil. It purges what the previous tick retired, applies
// pending layout changes, updates every frame front to back so the topmost
// frame sees the input first, and finally drains the notification queue.
func (l *Layout) Update(dt float64, in *Input) {
	if dt < 0 {
		dt = 0
	}
	var stats debugStats
	var start time.Time
	if l.debug {
		start = time.Now()
	}

	l.purge()
	l.layoutFrames()

	l.visibility.Ease(dt/l.config.AnimationDuration, !l.visible)
	alpha := l.visibility.Value()

	var sample *Input
	if in != nil && l.visible {
		local := *in
		local.consumed = false
		sample = &local
	}

	l.updating = true
	for i := len(l.order) - 1; i >= 0; i-- {
		l.floating[l.order[i]].update(dt, alpha, sample)
	}
	l.main.update(dt, alpha, sample)
	l.updating = false
	l.applyPending()

	if l.debug {
		stats.updateTime = time.Since(start)
		start = time.Now()
	}

	stats.notifications = l.drain()
	l.applyPending()

	if l.debug {
		stats.drainTime = time.Since(start)
		stats.elements = l.countElements()
		l.debugLog(stats)
	}
}

// drain delivers every queued notification in enqueue order and clears the
// queue. Listener panics are isolated per listener, and per notification for
// the event sink.
func (l *Layout) drain() int {
	delivered, dropped := l.queue.drain(func(n Notification) {
		if n.Source == nil || n.Source.disposed {
			return
		}
		n.Source.pipeNotification(l, n)
		if l.sink != nil {
			l.sink.EmitNotification(n.event())
		}
	}, l.listenerPanicked)
	if dropped > 0 {
		l.warn(OperationRuntime, "notifications dropped after too many drain rounds", "dropped", dropped)
	}
	return delivered
}

// listenerPanicked reports a panic recovered while delivering n.
func (l *Layout) listenerPanicked(n Notification, err error) {
	l.logger.Error(err, "listener panicked", "operation", OperationRuntime.String(),
		"id", n.Source.ID, "kind", n.Kind.String())
	if l.warnFunc != nil {
		l.warnFunc(OperationRuntime, "listener panicked: "+err.Error())
	}
}

// Draw renders the main frame and then the floating frames back to front.
func (l *Layout) Draw(r Renderer) {
	var start time.Time
	if l.debug {
		start = time.Now()
	}
	l.layoutFrames()
	l.main.draw(r)
	for _, idx := range l.order {
		l.floating[idx].draw(r)
	}
	if l.debug {
		l.logger.V(1).Info("draw", "duration", time.Since(start))
	}
}

// deferMutation runs fn now, or after the update traversal if one is in progress.
func (l *Layout) deferMutation(fn func()) {
	if l.updating {
		l.pending = append(l.pending, fn)
		return
	}
	fn()
}

func (l *Layout) applyPending() {
	for len(l.pending) > 0 {
		p := l.pending
		l.pending = nil
		for _, fn := range p {
			fn()
		}
	}
}

// purge destroys retired subtrees and removed floating frames.
func (l *Layout) purge() {
	l.main.purge()
	for i, f := range l.floating {
		if f == nil {
			continue
		}
		if f.purgeable() {
			f.disposeAll()
			l.floating[i] = nil
			l.order = removeIndex(l.order, i)
			continue
		}
		f.purge()
	}
}

// layoutFrames runs transformAndResize on every frame that needs it.
func (l *Layout) layoutFrames() {
	force := l.resizeNecessary
	l.resizeNecessary = false
	l.main.transformAndResize(force)
	for _, f := range l.floating {
		if f != nil {
			f.transformAndResize(force)
		}
	}
}

// --- Visibility and input ---

// SetVisibility shows or hides the whole layout. Unless immediately, the
// change fades over animationDuration. A hidden layout is not interactive.
func (l *Layout) SetVisibility(visible, immediately bool) {
	l.visible = visible
	if immediately {
		if visible {
			l.visibility.Set(1)
		} else {
			l.visibility.Set(0)
		}
	}
}

// IsVisible reports the visibility flag.
func (l *Layout) IsVisible() bool {
	return l.visible
}

// UseInput controls whether elements react to input at all.
func (l *Layout) UseInput(use bool) {
	l.useInput = use
}

// UsesInput reports whether elements react to input.
func (l *Layout) UsesInput() bool {
	return l.useInput
}

// --- Id registry ---

// ElementByID returns the element registered under id.
func (l *Layout) ElementByID(id string) (*Element, bool) {
	return l.ids.lookup(id)
}

// CheckForID reports whether id is registered.
func (l *Layout) CheckForID(id string) bool {
	_, ok := l.ids.lookup(id)
	return ok
}

// RegisterID registers e under id. It fails with ErrDuplicateID if id is
// taken by another element and leaves the registry unchanged.
func (l *Layout) RegisterID(id string, e *Element) error {
	if e == nil {
		return fmt.Errorf("%w: nil element", ErrInvalidElement)
	}
	return l.ids.insert(id, e)
}

// lookup finds an element by id, warning when it is missing.
func (l *Layout) lookup(id, op string) *Element {
	e, ok := l.ids.lookup(id)
	if !ok {
		l.warn(OperationRuntime, "cannot find element", "id", id, "op", op)
		return nil
	}
	return e
}

// --- Structural changes ---

// ReplaceElement replaces the element registered under id with repl at the
// same place in the tree. The ids of the old subtree leave the registry at
// once, so repl may reuse them. The old subtree is moved to its frame's dying
// list and destroyed at the start of a later update: the next one when fade
// is false, the first one after its fade-out otherwise. When fade is true
// repl also fades in.
func (l *Layout) ReplaceElement(id string, repl *Element, fade bool) error {
	if err := l.checkDetached(repl); err != nil {
		return err
	}
	old, ok := l.ids.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	if old.frame == nil || old.retired {
		return fmt.Errorf("%w: %q is not part of a live tree", ErrInvalidElement, id)
	}
	if err := l.ids.checkTree(repl, old); err != nil {
		return err
	}
	l.deferMutation(func() { l.replace(old, repl, fade) })
	return nil
}

func (l *Layout) replace(old, repl *Element, fade bool) {
	if old.retired || old.frame == nil {
		return
	}
	f := old.frame
	outer := old.outer
	placed := old.resized

	if err := l.ids.checkTree(repl, old); err != nil {
		l.warn(OperationBug, "replacement ids conflict", "error", err.Error())
		return
	}
	if l.selected != nil && old.contains(l.selected) {
		l.selected = nil
	}
	l.ids.removeTree(old)
	if err := l.ids.insertTree(repl); err != nil {
		l.warn(OperationBug, "replacement ids conflict", "error", err.Error())
		_ = l.ids.insertTree(old)
		return
	}

	if old.parent == nil {
		f.replaceRoot(repl, fade)
		f.resizeNecessary = true
	} else {
		parent := old.parent
		parent.replaceChild(old, repl)
		repl.bind(l, f)
		if fade {
			repl.fade = NewFade(0, 1, l.config.AnimationDuration, nil)
		}
		if d := parent.drop; d != nil && d.inner == old {
			// A hidden inner element has nothing to fade out.
			f.retire(old, fade && d.fade.Value() > 0)
			d.inner = repl
			f.registerFrontElement(repl, d.fade.Value())
			if parent.resized {
				parent.layoutDrop()
			} else {
				f.resizeNecessary = true
			}
		} else {
			f.retire(old, fade)
			if placed {
				repl.transformAndResize(outer.X, outer.Y, outer.Width, outer.Height)
			} else {
				f.resizeNecessary = true
			}
		}
	}
	if l.debug {
		l.debugCheckTree(repl)
	}
}

// RemoveElement replaces the element registered under id with a blank
// element of the same relative scale.
func (l *Layout) RemoveElement(id string, fade bool) error {
	old, ok := l.ids.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	blank := NewBlank("", "")
	blank.RelativeScale = old.RelativeScale
	return l.ReplaceElement(id, blank, fade)
}

// ResetElements returns every element of every frame to its initial state.
// No notifications are sent.
func (l *Layout) ResetElements() {
	l.main.resetElements()
	for _, f := range l.floating {
		if f != nil {
			f.resetElements()
		}
	}
}

func (f *Frame) resetElements() {
	if f.root != nil {
		f.root.reset()
	}
}

func removeIndex(order []int, idx int) []int {
	for i, v := range order {
		if v == idx {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
