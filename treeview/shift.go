package treeview

import (
	"github.com/almonk/arbor/dnd"
	"github.com/almonk/arbor/tree"
)

// Placement is the insertion indicator: a horizontal line in layout cells
// drawn at the boundary Y between two rows.
type Placement struct {
	X, Y, Width int
}

// ShiftedDropTarget is the final placement of a drag: the new parent, the
// index among its children and the indicator to draw.
type ShiftedDropTarget[T comparable] struct {
	Parent    T
	Position  tree.Position
	Placement Placement
}

type shiftInput[T comparable] struct {
	acc    tree.Accessors[T]
	root   T
	dragID string
	target *dnd.DropTarget[string]
	point  dnd.Point
	// shift is the horizontal pointer displacement in whole indent units,
	// positive to the right.
	shift  int
	layout *layout[T]
	indent int
	width  int
}

// resolveShift turns the pointer-resolved target into a placement. The parent
// it returns is never the dragged item or one of its descendants, and always
// accepts children unless it is the root.
func resolveShift[T comparable](in shiftInput[T]) (ShiftedDropTarget[T], bool) {
	if in.dragID == "" || in.target == nil || in.layout == nil {
		return ShiftedDropTarget[T]{}, false
	}
	acc := in.acc
	rootID := acc.ID(in.root)

	parent := in.root
	if in.target.Item != rootID {
		parent = in.nearestAccepting()
	}
	if _, ok := in.layout.byID[acc.ID(parent)]; !ok {
		parent = in.root
	}
	pos := in.layout.placement(acc.ID(parent), in.point)

	switch {
	case in.shift > 0:
		parent, pos = in.shiftRight(parent, pos)
	case in.shift < 0:
		parent, pos = in.shiftLeft(parent, pos)
	}

	return ShiftedDropTarget[T]{
		Parent:    parent,
		Position:  pos,
		Placement: in.placement(acc.ID(parent), pos),
	}, true
}

// nearestAccepting walks from the hovered item towards the root and returns
// the first item that may take the dragged one.
func (in shiftInput[T]) nearestAccepting() T {
	acc := in.acc
	path := acc.Path(in.root, in.target.Item)
	candidates := make([]T, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		candidates = append(candidates, path[i])
	}
	// On a row edge the drop goes beside the hovered item, not into it.
	if in.target.Area.IsEdge() && len(candidates) > 0 {
		candidates = candidates[1:]
	}
	for i, c := range candidates {
		if acc.ID(c) == in.dragID {
			candidates = candidates[i+1:]
			break
		}
	}
	rootID := acc.ID(in.root)
	for _, c := range candidates {
		if acc.ID(c) == rootID || acc.CanAcceptChild(c) {
			return c
		}
	}
	return in.root
}

// shiftRight nests into the sibling above the insertion line, then into its
// last visible child, one level per indent unit.
func (in shiftInput[T]) shiftRight(parent T, pos tree.Position) (T, tree.Position) {
	l := in.layout
	for n := 0; n < in.shift; n++ {
		kids := l.children[in.acc.ID(parent)]
		idx := len(kids)
		if pos != tree.PositionEnd && int(pos) < idx {
			idx = int(pos)
		}
		if idx == 0 {
			break
		}
		prev := l.rows[kids[idx-1]]
		if prev.id == in.dragID || !in.acc.CanAcceptChild(prev.item) {
			break
		}
		parent, pos = prev.item, tree.PositionEnd
		if !prev.expanded {
			break
		}
	}
	return parent, pos
}

// shiftLeft moves the placement out of enclosing parents while the line sits
// after the last child that is not being dragged.
func (in shiftInput[T]) shiftLeft(parent T, pos tree.Position) (T, tree.Position) {
	acc := in.acc
	rootID := acc.ID(in.root)
	for n := 0; n > in.shift; n-- {
		id := acc.ID(parent)
		if id == rootID || !in.atEnd(id, pos) {
			break
		}
		entries := acc.PathWithPositions(in.root, id)
		if len(entries) < 2 {
			break
		}
		grandparent := entries[len(entries)-2].Item
		if acc.ID(grandparent) != rootID && !acc.CanAcceptChild(grandparent) {
			break
		}
		parent = grandparent
		pos = tree.Position(entries[len(entries)-1].Position + 1)
	}
	return parent, pos
}

func (in shiftInput[T]) atEnd(parentID string, pos tree.Position) bool {
	kids := in.layout.children[parentID]
	idx := len(kids)
	if pos != tree.PositionEnd && int(pos) < idx {
		idx = int(pos)
	}
	for _, k := range kids[idx:] {
		if in.layout.rows[k].id != in.dragID {
			return false
		}
	}
	return true
}

func (in shiftInput[T]) placement(parentID string, pos tree.Position) Placement {
	l := in.layout
	p := l.rows[l.byID[parentID]]
	x := (p.depth + 1) * in.indent
	kids := l.children[parentID]
	var y int
	switch {
	case pos != tree.PositionEnd && int(pos) < len(kids):
		y = l.rows[kids[pos]].index
	case len(kids) > 0:
		y = l.rows[kids[len(kids)-1]].end
	default:
		y = p.index + 1
	}
	return Placement{X: x, Y: y, Width: max(0, in.width-x)}
}
