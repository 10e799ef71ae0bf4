package treeview

import (
	"maps"

	"github.com/almonk/arbor/tree"
)

// ExpandStore remembers which items are expanded, keyed by id so the record
// survives the host replacing its tree.
type ExpandStore[T comparable] struct {
	acc     tree.Accessors[T]
	record  map[string]bool
	version int

	root       T
	hasRoot    bool
	selectedID string
}

func NewExpandStore[T comparable](acc tree.Accessors[T]) *ExpandStore[T] {
	return &ExpandStore[T]{acc: acc, record: make(map[string]bool)}
}

// IsExpanded reports the effective state: the root is always expanded and an
// item without children never is.
func (s *ExpandStore[T]) IsExpanded(item T) bool {
	if s.isRoot(item) {
		return true
	}
	if !s.acc.HasChildren(item) {
		return false
	}
	return s.record[s.acc.ID(item)]
}

// SetExpanded records the state for item. It reports whether anything
// changed.
func (s *ExpandStore[T]) SetExpanded(item T, expanded bool) bool {
	if s.isRoot(item) {
		return false
	}
	id := s.acc.ID(item)
	if s.record[id] == expanded {
		return false
	}
	if expanded {
		s.record[id] = true
	} else {
		delete(s.record, id)
	}
	s.version++
	return true
}

// Sync expands every ancestor of the selected item. It only does work when
// the root identity or the selection changed since the last call, and only
// writes ancestors that are not expanded yet. It reports whether it wrote.
func (s *ExpandStore[T]) Sync(root T, selectedID string) bool {
	if s.hasRoot && root == s.root && selectedID == s.selectedID {
		return false
	}
	s.root, s.hasRoot, s.selectedID = root, true, selectedID
	if s.expandAncestors() {
		s.version++
		return true
	}
	return false
}

func (s *ExpandStore[T]) expandAncestors() bool {
	if s.selectedID == "" {
		return false
	}
	path := s.acc.Path(s.root, s.selectedID)
	if len(path) < 2 {
		return false
	}
	wrote := false
	for _, ancestor := range path[1 : len(path)-1] {
		id := s.acc.ID(ancestor)
		if !s.record[id] {
			s.record[id] = true
			wrote = true
		}
	}
	return wrote
}

// ExpandAll expands every item with children.
func (s *ExpandStore[T]) ExpandAll() {
	if !s.hasRoot {
		return
	}
	var walk func(item T)
	walk = func(item T) {
		children := s.acc.Children(item)
		if len(children) > 0 && !s.isRoot(item) {
			s.record[s.acc.ID(item)] = true
		}
		for _, child := range children {
			walk(child)
		}
	}
	walk(s.root)
	s.version++
}

// CollapseAll collapses everything except the path to the selection.
func (s *ExpandStore[T]) CollapseAll() {
	clear(s.record)
	s.expandAncestors()
	s.version++
}

// Record returns a copy of the stored states.
func (s *ExpandStore[T]) Record() map[string]bool {
	return maps.Clone(s.record)
}

// Restore replaces the stored states, for example with a record persisted
// by a previous session. Ancestors of the selection stay expanded.
func (s *ExpandStore[T]) Restore(record map[string]bool) {
	s.record = make(map[string]bool, len(record))
	for id, expanded := range record {
		if expanded {
			s.record[id] = true
		}
	}
	s.expandAncestors()
	s.version++
}

// Version increases on every write.
func (s *ExpandStore[T]) Version() int { return s.version }

func (s *ExpandStore[T]) isRoot(item T) bool {
	return s.hasRoot && s.acc.ID(item) == s.acc.ID(s.root)
}
