package gaze

import (
	"fmt"
	"slices"
)

// AddFloatingFrame adds a floating frame with root at the given position and
// size, as fractions of the layout resolution, in front of all others.
// Returns its stable index.
func (l *Layout) AddFloatingFrame(root *Element, relX, relY, relWidth, relHeight float64, visible, fade bool) (int, error) {
	if err := l.checkDetached(root); err != nil {
		return -1, err
	}
	if err := l.ids.insertTree(root); err != nil {
		return -1, err
	}
	idx := len(l.floating)
	f := newFrame(l, idx, relX, relY, relWidth, relHeight, visible)
	if visible && fade {
		f.visibility.Set(0)
	}
	l.floating = append(l.floating, f)
	f.attachRoot(root)
	l.deferMutation(func() { l.order = append(l.order, idx) })
	if l.debug {
		l.debugCheckTree(root)
	}
	return idx, nil
}

// FloatingFrame returns the live floating frame at index.
func (l *Layout) FloatingFrame(index int) (*Frame, error) {
	if index < 0 || index >= len(l.floating) || l.floating[index] == nil || l.floating[index].removed {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFrame, index)
	}
	return l.floating[index], nil
}

// FloatingFrameOrder returns the indices of the floating frames front to back.
func (l *Layout) FloatingFrameOrder() []int {
	out := slices.Clone(l.order)
	slices.Reverse(out)
	return out
}

// SetFloatingFrameVisibility shows or hides a floating frame. Unless
// immediately, the change fades over animationDuration.
func (l *Layout) SetFloatingFrameVisibility(index int, visible, immediately bool) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.visible = visible
	if immediately {
		if visible {
			f.visibility.Set(1)
		} else {
			f.visibility.Set(0)
		}
	}
	return nil
}

// ResetFloatingFrame returns every element of a floating frame to its
// initial state.
func (l *Layout) ResetFloatingFrame(index int) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.resetElements()
	return nil
}

// RemoveFloatingFrame marks a floating frame removed. Its ids leave the
// registry at once and its elements stop sending notifications. The frame is
// destroyed at the start of a later update, after fading out when fade is
// true.
func (l *Layout) RemoveFloatingFrame(index int, fade bool) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.removed = true
	f.removeFade = fade
	f.visible = false
	if f.root != nil {
		l.ids.removeTree(f.root)
		f.root.walk(func(e *Element) bool {
			e.retired = true
			return true
		})
		if l.selected != nil && f.root.contains(l.selected) {
			l.selected = nil
		}
	}
	return nil
}

// TranslateFloatingFrame moves a floating frame by a relative offset.
func (l *Layout) TranslateFloatingFrame(index int, dx, dy float64) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.relX += dx
	f.relY += dy
	f.resizeNecessary = true
	return nil
}

// ScaleFloatingFrame multiplies the relative size of a floating frame.
func (l *Layout) ScaleFloatingFrame(index int, sx, sy float64) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.relWidth = max(0, f.relWidth*sx)
	f.relHeight = max(0, f.relHeight*sy)
	f.resizeNecessary = true
	return nil
}

// SetFloatingFramePosition sets the relative position of a floating frame.
func (l *Layout) SetFloatingFramePosition(index int, relX, relY float64) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.relX, f.relY = relX, relY
	f.resizeNecessary = true
	return nil
}

// SetFloatingFrameSize sets the relative size of a floating frame.
func (l *Layout) SetFloatingFrameSize(index int, relWidth, relHeight float64) error {
	f, err := l.FloatingFrame(index)
	if err != nil {
		return err
	}
	f.relWidth = max(0, relWidth)
	f.relHeight = max(0, relHeight)
	f.resizeNecessary = true
	return nil
}

// MoveFloatingFrameToFront makes a floating frame the topmost one. The
// relative order of the others is kept.
func (l *Layout) MoveFloatingFrameToFront(index int) error {
	if _, err := l.FloatingFrame(index); err != nil {
		return err
	}
	l.deferMutation(func() {
		l.order = append(removeIndex(l.order, index), index)
	})
	return nil
}

// MoveFloatingFrameToBack makes a floating frame the bottommost one. The
// relative order of the others is kept.
func (l *Layout) MoveFloatingFrameToBack(index int) error {
	if _, err := l.FloatingFrame(index); err != nil {
		return err
	}
	l.deferMutation(func() {
		l.order = append([]int{index}, removeIndex(l.order, index)...)
	})
	return nil
}
