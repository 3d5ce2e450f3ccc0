package gaze

// dyingSubtree is a replaced subtree waiting to be destroyed. fade is nil
// when the replacement was instantaneous.
type dyingSubtree struct {
	root *Element
	fade *Fade
}

// Frame is a rectangular region of a Layout owning one root subtree. The
// main frame covers the whole layout; floating frames are positioned by
// fractions of the layout resolution and kept in an explicit z-order.
type Frame struct {
	layout *Layout
	index  int // stable floating index, -1 for the main frame
	root   *Element

	relX, relY          float64
	relWidth, relHeight float64

	visible    bool
	visibility LerpValue
	alpha      float64 // own visibility combined with the layout alpha

	front      []*Element
	frontAlpha map[*Element]float64

	dying []dyingSubtree

	removed         bool
	removeFade      bool
	resizeNecessary bool
}

func newFrame(l *Layout, index int, relX, relY, relWidth, relHeight float64, visible bool) *Frame {
	f := &Frame{
		layout:          l,
		index:           index,
		relX:            relX,
		relY:            relY,
		relWidth:        relWidth,
		relHeight:       relHeight,
		visible:         visible,
		frontAlpha:      make(map[*Element]float64),
		resizeNecessary: true,
	}
	if visible {
		f.visibility.Set(1)
	}
	return f
}

// Index returns the stable floating index, or -1 for the main frame.
func (f *Frame) Index() int { return f.index }

// Root returns the frame's root element.
func (f *Frame) Root() *Element { return f.root }

// IsVisible reports the visibility flag, regardless of a running fade.
func (f *Frame) IsVisible() bool { return f.visible }

// IsRemoved reports whether the frame was marked for removal.
func (f *Frame) IsRemoved() bool { return f.removed }

// Alpha returns the combined alpha computed by the last update.
func (f *Frame) Alpha() float64 { return f.alpha }

// RelativeBounds returns position and size as fractions of the layout size.
func (f *Frame) RelativeBounds() (x, y, width, height float64) {
	return f.relX, f.relY, f.relWidth, f.relHeight
}

// Bounds returns the frame rectangle in layout pixels.
func (f *Frame) Bounds() Rect {
	w, h := f.layout.width, f.layout.height
	return Rect{
		X:      int(f.relX * float64(w)),
		Y:      int(f.relY * float64(h)),
		Width:  int(f.relWidth * float64(w)),
		Height: int(f.relHeight * float64(h)),
	}
}

// attachRoot makes root the frame's subtree.
func (f *Frame) attachRoot(root *Element) {
	f.root = root
	root.bind(f.layout, f)
	f.resizeNecessary = true
}

// replaceRoot swaps the owned subtree. The old one moves to the dying list.
func (f *Frame) replaceRoot(root *Element, fade bool) {
	old := f.root
	f.attachRoot(root)
	if fade {
		root.fade = NewFade(0, 1, f.layout.config.AnimationDuration, nil)
	}
	if old != nil {
		f.retire(old, fade)
	}
}

// retire moves a detached subtree to the dying list. It is still drawn
// while fading but receives no input and sends no notifications.
func (f *Frame) retire(old *Element, fade bool) {
	old.walk(func(e *Element) bool {
		e.retired = true
		f.unregisterFrontElement(e)
		return true
	})
	var fd *Fade
	if fade {
		fd = NewFade(1, 0, f.layout.config.AnimationDuration, nil)
	}
	old.fade = fd
	f.dying = append(f.dying, dyingSubtree{root: old, fade: fd})
}

// registerFrontElement pulls e out of normal traversal: it is updated before
// and drawn after the root subtree, with its own alpha multiplier.
func (f *Frame) registerFrontElement(e *Element, alpha float64) {
	if _, ok := f.frontAlpha[e]; ok {
		f.frontAlpha[e] = alpha
		return
	}
	e.front = true
	f.front = append(f.front, e)
	f.frontAlpha[e] = alpha
}

// SetFrontElementAlpha sets the alpha multiplier of a registered front
// element. Unregistered elements are ignored.
func (f *Frame) SetFrontElementAlpha(e *Element, alpha float64) {
	if _, ok := f.frontAlpha[e]; ok {
		f.frontAlpha[e] = clamp(alpha, 0, 1)
	}
}

// FrontElementAlpha returns the alpha multiplier of a front element.
func (f *Frame) FrontElementAlpha(e *Element) (float64, bool) {
	a, ok := f.frontAlpha[e]
	return a, ok
}

func (f *Frame) unregisterFrontElement(e *Element) {
	if _, ok := f.frontAlpha[e]; !ok {
		return
	}
	delete(f.frontAlpha, e)
	for i, fe := range f.front {
		if fe == e {
			f.front = append(f.front[:i], f.front[i+1:]...)
			break
		}
	}
}

// purge destroys dying subtrees whose fade finished. Called at the start of
// an update, never during traversal or draw.
func (f *Frame) purge() {
	alive := f.dying[:0]
	for _, d := range f.dying {
		if d.fade == nil || d.fade.Done {
			d.root.dispose()
			continue
		}
		alive = append(alive, d)
	}
	clear(f.dying[len(alive):])
	f.dying = alive
}

// disposeAll destroys the root, its front elements and every dying subtree.
func (f *Frame) disposeAll() {
	for _, d := range f.dying {
		d.root.dispose()
	}
	f.dying = nil
	f.front = nil
	clear(f.frontAlpha)
	if f.root != nil {
		f.root.dispose()
		f.root = nil
	}
}

// transformAndResize lays out the root if the frame or the layout changed.
func (f *Frame) transformAndResize(force bool) {
	if !f.resizeNecessary && !force {
		return
	}
	f.resizeNecessary = false
	if f.root == nil {
		return
	}
	b := f.Bounds()
	f.root.transformAndResize(b.X, b.Y, b.Width, b.Height)
}

// update advances the frame by dt seconds. Front elements are updated first,
// then the root, then the dying subtrees without input.
func (f *Frame) update(dt, layoutAlpha float64, in *Input) {
	f.visibility.Ease(dt/f.layout.config.AnimationDuration, !f.visible)
	f.alpha = layoutAlpha * f.visibility.Value()
	if !f.visible || f.removed || f.alpha <= 0 {
		in = nil
	}

	for _, e := range append([]*Element(nil), f.front...) {
		a := f.frontAlpha[e] * f.alpha
		fin := in
		if a <= 0 {
			fin = nil
		}
		e.update(dt, a, fin)
	}
	if f.root != nil {
		f.root.update(dt, f.alpha, in)
	}
	for _, d := range f.dying {
		d.root.update(dt, f.alpha, nil)
	}
}

// draw renders the root, the fading dying subtrees, then front elements.
func (f *Frame) draw(r Renderer) {
	if f.alpha <= 0 {
		return
	}
	if f.root != nil {
		f.root.draw(r)
	}
	for _, d := range f.dying {
		if d.fade != nil {
			d.root.draw(r)
		}
	}
	for _, e := range f.front {
		e.draw(r)
	}
}

// purgeable reports whether a removed floating frame finished fading out.
func (f *Frame) purgeable() bool {
	return f.removed && (!f.removeFade || f.visibility.AtMin())
}
