package gaze

// Element is the fundamental node of the UI tree. A single flat struct is
// used for every variant; the Kind tag selects behavior and the capability
// records below are only allocated for variants that need them.
type Element struct {
	// Identity
	ID        string // optional, unique within a Layout when non-empty
	StyleName string // resolved by the Renderer
	Kind      ElementKind

	// Layout hints, read by transformAndResize
	RelativeScale   float64     // weight inside a stack
	Border          float64     // fraction of the orientation side removed around the element
	Orientation     Orientation // stack direction and border interpretation
	Dimming         bool        // dim while not penetrated
	AdaptiveScaling bool        // report penetration as a scale hint to the parent stack

	// Hierarchy. parent, layout and frame are borrowed references valid only
	// while the element belongs to a live tree.
	parent   *Element
	layout   *Layout
	frame    *Frame
	children []*Element

	// Geometry, assigned only by transformAndResize.
	outer   Rect // rectangle assigned by the parent
	x, y    int
	width   int
	height  int
	resized bool

	// Per-tick derived state
	alpha    float64
	active   bool
	activity LerpValue
	dim      LerpValue
	fade     *Fade // alpha multiplier while appearing or dying
	front    bool  // updated and drawn by the frame instead of the parent
	hint     float64

	drawables drawableCache

	// Capability records
	interactive *interactiveState
	icon        *iconState
	text        *textState
	stack       *stackState
	sensor      *sensorState
	button      *buttonState
	drop        *dropState
	keyboard    *keyboardState

	retired  bool // moved to a dying list, no longer notifies
	disposed bool
	debug    bool // debug mode of the layout when disposed
}

type iconState struct {
	source string
}

type textState struct {
	content string
}

// elementDefaults sets the common default field values shared by all constructors.
func elementDefaults(e *Element) {
	e.RelativeScale = 1
	e.alpha = 1
	e.active = true
	e.activity.Set(1)
}

// NewBlank creates an element that only reserves space.
func NewBlank(id, style string) *Element {
	e := &Element{ID: id, StyleName: style, Kind: KindBlank}
	elementDefaults(e)
	return e
}

// NewBlock creates an element drawing a background quad.
func NewBlock(id, style string) *Element {
	e := &Element{ID: id, StyleName: style, Kind: KindBlock}
	elementDefaults(e)
	return e
}

// NewPicture creates an element drawing the image named by source.
func NewPicture(id, style, source string) *Element {
	e := &Element{ID: id, StyleName: style, Kind: KindPicture, icon: &iconState{source: source}}
	elementDefaults(e)
	return e
}

// NewTextBlock creates an element drawing a text payload on a background quad.
func NewTextBlock(id, style, content string) *Element {
	e := &Element{ID: id, StyleName: style, Kind: KindTextBlock, text: &textState{content: content}}
	elementDefaults(e)
	return e
}

// NewStack creates a container splitting its space among children along
// orientation, weighted by each child's RelativeScale.
func NewStack(id, style string, orientation Orientation, children ...*Element) *Element {
	e := &Element{ID: id, StyleName: style, Kind: KindStack, Orientation: orientation, stack: &stackState{}}
	elementDefaults(e)
	for _, c := range children {
		e.AddChild(c)
	}
	return e
}

// --- Tree manipulation ---

// AddChild appends child to this element's children. It is meant for the
// construction step, before the tree is attached to a Layout; afterwards
// structure changes only go through the Layout.
// Panics if child is nil, already has a parent, would create a cycle, or if
// e is attached to a Layout.
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("gaze: cannot add nil child")
	}
	if e.layout != nil {
		panic("gaze: tree of an attached element can only change through its Layout")
	}
	if e.disposed || child.disposed {
		panic("gaze: cannot add disposed element")
	}
	if child.parent != nil {
		panic("gaze: child already has a parent")
	}
	if isAncestor(child, e) {
		panic("gaze: adding child would create a cycle")
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.stack != nil {
		e.stack.hints = append(e.stack.hints, 0)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil for a root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Layout returns the Layout the element is attached to, or nil.
func (e *Element) Layout() *Layout {
	return e.layout
}

// Frame returns the Frame the element belongs to, or nil.
func (e *Element) Frame() *Frame {
	return e.frame
}

// Bounds returns the rectangle assigned by the last transformAndResize,
// after the border was removed.
func (e *Element) Bounds() Rect {
	return Rect{e.x, e.y, e.width, e.height}
}

// Alpha returns the combined alpha computed by the last update.
func (e *Element) Alpha() float64 {
	return e.alpha
}

// IsActive reports whether the element is active.
func (e *Element) IsActive() bool {
	return e.active
}

// IsDisposed reports whether the element has been destroyed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// IsInteractive reports whether the element carries the interactive capability.
func (e *Element) IsInteractive() bool {
	return e.interactive != nil
}

// Content returns the text of a text block, or "".
func (e *Element) Content() string {
	if e.text == nil {
		return ""
	}
	return e.text.content
}

// walk visits e and its descendants depth-first, parent before child,
// stopping early when fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// contains reports whether target is e or one of its descendants.
func (e *Element) contains(target *Element) bool {
	for p := target; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// bind attaches the subtree to a layout and frame.
func (e *Element) bind(l *Layout, f *Frame) {
	e.walk(func(n *Element) bool {
		n.layout = l
		n.frame = f
		return true
	})
	e.walk(func(n *Element) bool {
		if n.drop != nil && f != nil {
			f.registerFrontElement(n.drop.inner, 0)
		}
		return true
	})
}

// replaceChild swaps old for repl at the same position.
func (e *Element) replaceChild(old, repl *Element) bool {
	for i, c := range e.children {
		if c == old {
			e.children[i] = repl
			repl.parent = e
			old.parent = nil
			if e.stack != nil && i < len(e.stack.hints) {
				e.stack.hints[i] = 0
			}
			return true
		}
	}
	return false
}

// dispose releases the subtree. Called by the Layout at a fixed point
// between ticks, never during traversal.
func (e *Element) dispose() {
	e.walk(func(n *Element) bool {
		n.disposed = true
		n.debug = n.layout != nil && n.layout.debug
		if n.interactive != nil && n.interactive.listeners != nil {
			n.interactive.listeners.clear()
		}
		if n.keyboard != nil {
			n.keyboard.pressed = nil
		}
		n.drawables.reset()
		n.fade = nil
		return true
	})
	for _, c := range e.children {
		c.parent = nil
	}
	e.parent = nil
	e.layout = nil
	e.frame = nil
}

// isAncestor reports whether candidate is an ancestor of (or equal to) node.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Activity ---

func (e *Element) setActivity(active, immediately bool) {
	e.active = active
	if immediately {
		if active {
			e.activity.Set(1)
		} else {
			e.activity.Set(0)
		}
	}
}

// --- Update / transform / draw protocol ---

// transformAndResize assigns the element's rectangle and lays out children.
// Must run at least once before the first draw and again whenever the
// rectangle assigned by the parent changes.
func (e *Element) transformAndResize(x, y, width, height int) {
	e.outer = Rect{x, y, width, height}
	var used int
	if e.Border > 0 {
		if e.Orientation == OrientationHorizontal {
			used = int(float64(height) * e.Border)
		} else {
			used = int(float64(width) * e.Border)
		}
	}
	e.x = x + used/2
	e.y = y + used/2
	e.width = max(0, width-used)
	e.height = max(0, height-used)
	e.resized = true

	switch e.Kind {
	case KindStack:
		e.layoutStack()
	case KindKeyboard:
		e.layoutKeyboard()
	case KindDropButton:
		e.layoutDrop()
	default:
		for _, c := range e.children {
			if !c.front {
				c.transformAndResize(e.x, e.y, e.width, e.height)
			}
		}
	}
}

// update advances the element by dt seconds. alpha is the combined alpha of
// everything above it; in is nil when the element must not be interactive.
// Returns an adaptive scale hint for the parent.
func (e *Element) update(dt, alpha float64, in *Input) float64 {
	if e.fade != nil {
		e.fade.Update(dt)
		alpha *= e.fade.Value()
		if e.fade.Done && e.fade.Target() >= 1 {
			e.fade = nil
		}
	}
	e.alpha = alpha

	cfg := e.config()
	e.activity.Ease(dt/cfg.ActivityDuration, !e.active)
	if alpha <= 0 || !e.active {
		in = nil
	}

	var hint float64
	switch e.Kind {
	case KindSensor:
		hint = e.updateSensor(dt, in)
	case KindCircleButton, KindBoxButton:
		hint = e.updateButton(dt, in)
	case KindDropButton:
		hint = e.updateButton(dt, in)
		e.updateDrop(dt)
	case KindKeyboard:
		hint = e.updateKeyboard(dt, in)
	}
	if e.interactive != nil {
		e.updateInteractive(dt)
	}

	if e.Kind == KindStack {
		e.updateStack(dt, in)
	} else {
		for _, c := range e.children {
			if !c.front {
				c.update(dt, e.alpha, in)
			}
		}
	}

	if !e.AdaptiveScaling {
		hint = 0
	}
	e.hint = hint
	return hint
}

// draw emits the element and its normal-order descendants.
func (e *Element) draw(r Renderer) {
	if e.alpha <= 0 {
		return
	}
	if e.debugMode() {
		debugCheckDisposed(e, "draw")
	}
	switch e.Kind {
	case KindBlock:
		e.drawShape(r, ShapeQuad, e.params())
	case KindPicture:
		p := e.params()
		p.Icon = e.icon.source
		e.drawShape(r, ShapePicture, p)
	case KindTextBlock:
		e.drawShape(r, ShapeQuad, e.params())
		p := e.params()
		p.Text = e.text.content
		e.drawShape(r, ShapeText, p)
	case KindSensor:
		e.drawSensor(r)
	case KindCircleButton, KindBoxButton, KindDropButton:
		e.drawButton(r)
	case KindKeyboard:
		e.drawKeyboard(r)
	}
	for _, c := range e.children {
		if !c.front {
			c.draw(r)
		}
	}
}

func (e *Element) drawShape(r Renderer, shape Shape, p DrawParams) {
	r.Draw(e.drawables.fetch(r, shape, e.StyleName), e.Bounds(), p)
}

// params fills the draw parameters every variant shares.
func (e *Element) params() DrawParams {
	p := DrawParams{
		Kind:     e.Kind,
		Style:    e.StyleName,
		Alpha:    e.alpha,
		Activity: e.activity.Value(),
		Dim:      e.dim.Value(),
	}
	if e.interactive != nil {
		p.Highlight = e.interactive.highlight.Value()
		p.Selection = e.interactive.selection.Value()
	}
	return p
}

// reset returns variant state to its initial values without notifying.
func (e *Element) reset() {
	e.walk(func(n *Element) bool {
		n.dim.Set(0)
		if n.interactive != nil {
			n.interactive.reset()
		}
		switch {
		case n.sensor != nil:
			n.sensor.penetration.Set(0)
		case n.keyboard != nil:
			n.resetKeyboard()
		}
		if n.button != nil {
			n.button.reset()
		}
		if n.drop != nil {
			n.drop.fade = NewFade(0, 0, 0, nil)
			if n.frame != nil {
				n.frame.SetFrontElementAlpha(n.drop.inner, 0)
			}
		}
		return true
	})
}

func (e *Element) config() *Config {
	if e.layout == nil {
		return &defaultConfig
	}
	return &e.layout.config
}

// --- Stack ---

type stackState struct {
	hints []float64
}

// layoutStack splits the inner rectangle among children along the
// orientation. Pixels lost to rounding go to the last child.
func (e *Element) layoutStack() {
	var children []*Element
	var weights []float64
	total := 0.0
	factor := e.config().AdaptiveScaleFactor
	for i, c := range e.children {
		if c.front {
			continue
		}
		w := c.RelativeScale
		if w < 0 {
			w = 0
		}
		if i < len(e.stack.hints) {
			w *= 1 + factor*e.stack.hints[i]
		}
		children = append(children, c)
		weights = append(weights, w)
		total += w
	}
	if len(children) == 0 {
		return
	}
	if total <= 0 {
		total = float64(len(children))
		for i := range weights {
			weights[i] = 1
		}
	}

	span := e.width
	if e.Orientation == OrientationVertical {
		span = e.height
	}
	offset := 0
	for i, c := range children {
		size := int(float64(span) * weights[i] / total)
		if i == len(children)-1 {
			size = span - offset
		}
		if e.Orientation == OrientationVertical {
			c.transformAndResize(e.x, e.y+offset, e.width, size)
		} else {
			c.transformAndResize(e.x+offset, e.y, size, e.height)
		}
		offset += size
	}
}

// updateStack updates children in order and re-lays them out when their
// adaptive scale hints changed.
func (e *Element) updateStack(dt float64, in *Input) {
	changed := false
	for i, c := range e.children {
		if c.front {
			continue
		}
		h := c.update(dt, e.alpha, in)
		if i < len(e.stack.hints) && e.stack.hints[i] != h {
			e.stack.hints[i] = h
			changed = true
		}
	}
	if changed && e.resized {
		e.layoutStack()
	}
}
