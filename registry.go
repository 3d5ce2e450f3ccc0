package gaze

import "fmt"

// idRegistry maps non-empty ids to the elements of a Layout. Entries are
// non-owning and leave the registry when their subtree is replaced or its
// floating frame removed.
type idRegistry struct {
	ids map[string]*Element
}

func newIDRegistry() idRegistry {
	return idRegistry{ids: make(map[string]*Element)}
}

func (r *idRegistry) lookup(id string) (*Element, bool) {
	e, ok := r.ids[id]
	return e, ok
}

// insert registers e under id. Registering the same element again is a
// no-op; a different element under a taken id fails and leaves the registry
// unchanged.
func (r *idRegistry) insert(id string, e *Element) error {
	if id == "" {
		return nil
	}
	if existing, ok := r.ids[id]; ok && existing != e {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	r.ids[id] = e
	return nil
}

// checkTree reports the first id in root's subtree that is duplicated
// within the subtree or already registered to an element outside leaving.
// leaving may be nil.
func (r *idRegistry) checkTree(root, leaving *Element) error {
	seen := make(map[string]bool)
	var err error
	root.walk(func(e *Element) bool {
		if e.ID == "" {
			return true
		}
		if seen[e.ID] {
			err = fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
			return false
		}
		seen[e.ID] = true
		existing, ok := r.ids[e.ID]
		if ok && existing != e && (leaving == nil || !leaving.contains(existing)) {
			err = fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
			return false
		}
		return true
	})
	return err
}

// insertTree registers every id in root's subtree, or none of them.
func (r *idRegistry) insertTree(root *Element) error {
	if err := r.checkTree(root, nil); err != nil {
		return err
	}
	root.walk(func(e *Element) bool {
		if e.ID != "" {
			r.ids[e.ID] = e
		}
		return true
	})
	return nil
}

// removeTree drops every id registered to an element of root's subtree.
func (r *idRegistry) removeTree(root *Element) {
	root.walk(func(e *Element) bool {
		if e.ID != "" && r.ids[e.ID] == e {
			delete(r.ids, e.ID)
		}
		return true
	})
}
