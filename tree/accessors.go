package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// PathEntry is one step of a path together with the item's index among its
// siblings.
type PathEntry[T any] struct {
	Item     T
	Position int
}

// Accessors is the capability set a tree view needs to work over an
// arbitrary host hierarchy. The view never owns or mutates the tree; it only
// reads it through these functions.
type Accessors[T comparable] struct {
	ID                func(item T) string
	FindByID          func(root T, id string) (T, bool)
	Path              func(root T, id string) []T
	PathWithPositions func(root T, id string) []PathEntry[T]
	Children          func(item T) []T
	CanLeaveParent    func(item T) bool
	CanAcceptChild    func(item T) bool
}

// HasChildren reports whether item has at least one child.
func (a Accessors[T]) HasChildren(item T) bool {
	return len(a.Children(item)) > 0
}

// Depth returns the number of edges between root and the item with id,
// or -1 when the item is not in the tree.
func (a Accessors[T]) Depth(root T, id string) int {
	return len(a.Path(root, id)) - 1
}

// Contains reports whether the subtree rooted at ancestor holds id.
func (a Accessors[T]) Contains(ancestor T, id string) bool {
	_, ok := a.FindByID(ancestor, id)
	return ok
}

// NodeAccessors returns the accessor set for *Node documents.
func NodeAccessors() Accessors[*Node] {
	return Accessors[*Node]{
		ID: func(n *Node) string { return n.ID },
		FindByID: func(root *Node, id string) (*Node, bool) {
			n := Find(root, id)
			return n, n != nil
		},
		Path:              Path,
		PathWithPositions: PathWithPositions,
		Children:          func(n *Node) []*Node { return n.Children },
		CanLeaveParent:    func(n *Node) bool { return !n.Locked && n.Kind != KindBody },
		CanAcceptChild:    (*Node).IsContainer,
	}
}

// Position is an insertion index among a parent's children.
type Position int

// PositionEnd appends after the last child.
const PositionEnd Position = -1

func (p Position) String() string {
	if p == PositionEnd {
		return "end"
	}
	return strconv.Itoa(int(p))
}

// ParsePosition accepts "end" or a non-negative index.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "end" {
		return PositionEnd, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid position %q (expected index or \"end\")", s)
	}
	return Position(n), nil
}
