package gaze

import (
	"fmt"
	"time"
)

// debugStats holds per-tick timing. Only populated when the Layout is in
// debug mode.
type debugStats struct {
	updateTime    time.Duration
	drainTime     time.Duration
	notifications int
	elements      int
}

// debugLog writes the tick stats to the layout logger at V(1).
func (l *Layout) debugLog(stats debugStats) {
	if !l.debug {
		return
	}
	l.logger.V(1).Info("tick",
		"update", stats.updateTime,
		"drain", stats.drainTime,
		"notifications", stats.notifications,
		"elements", stats.elements,
	)
}

// countElements returns the number of live elements in every frame.
func (l *Layout) countElements() int {
	n := 0
	count := func(f *Frame) {
		if f == nil || f.root == nil {
			return
		}
		f.root.walk(func(*Element) bool {
			n++
			return true
		})
	}
	count(l.main)
	for _, f := range l.floating {
		count(f)
	}
	return n
}

// debugMode reports whether e belongs to a layout in debug mode. A disposed
// element keeps the flag its layout had when it was destroyed.
func (e *Element) debugMode() bool {
	if e.layout != nil {
		return e.layout.debug
	}
	return e.debug
}

// debugCheckDisposed panics when a disposed element is used. Callers skip
// this entirely outside debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("gaze debug: %s on disposed element %q (%s)", op, e.ID, e.Kind))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTree warns when the tree below root is deeper than
// debugMaxTreeDepth or an element has more than debugMaxChildCount children.
func (l *Layout) debugCheckTree(root *Element) {
	var visit func(e *Element, depth int)
	visit = func(e *Element, depth int) {
		if depth > debugMaxTreeDepth {
			l.logger.V(1).Info("tree depth exceeds threshold", "id", e.ID, "depth", depth, "threshold", debugMaxTreeDepth)
			return
		}
		if len(e.children) > debugMaxChildCount {
			l.logger.V(1).Info("element has too many children", "id", e.ID, "children", len(e.children), "threshold", debugMaxChildCount)
		}
		for _, c := range e.children {
			visit(c, depth+1)
		}
	}
	visit(root, 1)
}

const debugMaxChildCount = 1000
