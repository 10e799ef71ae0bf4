package tree

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("node not found")
	ErrRootImmovable  = errors.New("root cannot be moved or deleted")
	ErrCycle          = errors.New("node cannot become its own descendant")
	ErrNotContainer   = errors.New("node does not accept children")
	ErrLocked         = errors.New("node is locked")
	ErrDuplicateID    = errors.New("duplicate node id")
	ErrEmptyID        = errors.New("node id is empty")
	ErrUnknownKind    = errors.New("unknown node kind")
	ErrUnknownFormat  = errors.New("unknown document format")
	ErrPositionBounds = errors.New("position out of range")
)

// Reparent moves the node id under parentID at pos and returns the new root.
// pos indexes the parent's children as they are before the move; moving a
// node further down within the same parent accounts for its own removal.
// The input tree is left untouched; only nodes on the two affected paths are
// copied.
func Reparent(root *Node, id, parentID string, pos Position) (*Node, error) {
	if root == nil {
		return nil, fmt.Errorf("reparent %q: %w", id, ErrNotFound)
	}
	if id == root.ID {
		return nil, fmt.Errorf("reparent %q: %w", id, ErrRootImmovable)
	}
	oldPath := PathWithPositions(root, id)
	if oldPath == nil {
		return nil, fmt.Errorf("reparent %q: %w", id, ErrNotFound)
	}
	node := oldPath[len(oldPath)-1].Item
	parent := Find(root, parentID)
	if parent == nil {
		return nil, fmt.Errorf("reparent %q into %q: %w", id, parentID, ErrNotFound)
	}
	if Find(node, parentID) != nil {
		return nil, fmt.Errorf("reparent %q into %q: %w", id, parentID, ErrCycle)
	}
	if parent != root && !parent.IsContainer() {
		return nil, fmt.Errorf("reparent %q into %q: %w", id, parentID, ErrNotContainer)
	}

	index := len(parent.Children)
	if pos != PositionEnd {
		if int(pos) > len(parent.Children) || pos < 0 {
			return nil, fmt.Errorf("reparent %q to %s of %q: %w", id, pos, parentID, ErrPositionBounds)
		}
		index = int(pos)
	}
	oldParent := oldPath[len(oldPath)-2].Item
	oldIndex := oldPath[len(oldPath)-1].Position
	if oldParent.ID == parentID && oldIndex < index {
		index--
	}

	detached, _ := without(root, id)
	attached, ok := with(detached, parentID, index, node)
	if !ok {
		return nil, fmt.Errorf("reparent %q into %q: %w", id, parentID, ErrNotFound)
	}
	return attached, nil
}

// Delete removes the node id and its subtree, returning the new root.
func Delete(root *Node, id string) (*Node, error) {
	if root == nil {
		return nil, fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	if id == root.ID {
		return nil, fmt.Errorf("delete %q: %w", id, ErrRootImmovable)
	}
	n := Find(root, id)
	if n == nil {
		return nil, fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	if n.Locked {
		return nil, fmt.Errorf("delete %q: %w", id, ErrLocked)
	}
	newRoot, _ := without(root, id)
	return newRoot, nil
}

// without returns a copy of n with id removed, sharing unaffected children.
func without(n *Node, id string) (*Node, bool) {
	for i, child := range n.Children {
		if child.ID == id {
			c := shallowCopy(n)
			c.Children = append(append([]*Node{}, n.Children[:i]...), n.Children[i+1:]...)
			return c, true
		}
		if replaced, ok := without(child, id); ok {
			c := shallowCopy(n)
			c.Children = append([]*Node{}, n.Children...)
			c.Children[i] = replaced
			return c, true
		}
	}
	return n, false
}

// with returns a copy of n with child inserted under parentID at index.
func with(n *Node, parentID string, index int, child *Node) (*Node, bool) {
	if n.ID == parentID {
		c := shallowCopy(n)
		if index > len(n.Children) {
			index = len(n.Children)
		}
		c.Children = make([]*Node, 0, len(n.Children)+1)
		c.Children = append(c.Children, n.Children[:index]...)
		c.Children = append(c.Children, child)
		c.Children = append(c.Children, n.Children[index:]...)
		return c, true
	}
	for i, ch := range n.Children {
		if replaced, ok := with(ch, parentID, index, child); ok {
			c := shallowCopy(n)
			c.Children = append([]*Node{}, n.Children...)
			c.Children[i] = replaced
			return c, true
		}
	}
	return n, false
}

func shallowCopy(n *Node) *Node {
	c := *n
	return &c
}

// Validate checks ids and kinds across the whole document.
func Validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("validate: %w", ErrNotFound)
	}
	seen := make(map[string]bool)
	var err error
	Walk(root, func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		switch {
		case n.ID == "":
			err = fmt.Errorf("node %q at depth %d: %w", n.Label(), depth, ErrEmptyID)
		case seen[n.ID]:
			err = fmt.Errorf("node %q: %w", n.ID, ErrDuplicateID)
		case !knownKinds[n.Kind]:
			err = fmt.Errorf("node %q kind %q: %w", n.ID, n.Kind, ErrUnknownKind)
		case len(n.Children) > 0 && !n.IsContainer():
			err = fmt.Errorf("node %q (%s) has children: %w", n.ID, n.Kind, ErrNotContainer)
		}
		seen[n.ID] = true
		return err == nil
	})
	return err
}
