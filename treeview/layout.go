package treeview

import (
	"math"

	"github.com/almonk/arbor/dnd"
	"github.com/almonk/arbor/tree"
)

// row is one visible item. Row i occupies layout line i.
type row[T comparable] struct {
	item     T
	id       string
	parentID string
	depth    int
	index    int
	end      int // one past the last visible descendant
	// last[d] reports whether the ancestor at depth d+1 is its parent's last
	// child; the final entry is the row itself.
	last        []bool
	hasChildren bool
	expanded    bool
}

// layout is the flattened, expand-aware visible order of a tree.
type layout[T comparable] struct {
	rows     []row[T]
	byID     map[string]int
	children map[string][]int
}

func buildLayout[T comparable](acc tree.Accessors[T], root T, isExpanded func(T) bool) *layout[T] {
	l := &layout[T]{
		byID:     make(map[string]int),
		children: make(map[string][]int),
	}
	var walk func(item T, parentID string, depth int, last []bool)
	walk = func(item T, parentID string, depth int, last []bool) {
		id := acc.ID(item)
		idx := len(l.rows)
		kids := acc.Children(item)
		l.rows = append(l.rows, row[T]{
			item:        item,
			id:          id,
			parentID:    parentID,
			depth:       depth,
			index:       idx,
			last:        last,
			hasChildren: len(kids) > 0,
		})
		l.byID[id] = idx
		if len(kids) > 0 && isExpanded(item) {
			l.rows[idx].expanded = true
			childRows := make([]int, 0, len(kids))
			for i, kid := range kids {
				childRows = append(childRows, len(l.rows))
				chain := make([]bool, len(last), len(last)+1)
				copy(chain, last)
				walk(kid, id, depth+1, append(chain, i == len(kids)-1))
			}
			l.children[id] = childRows
		}
		l.rows[idx].end = len(l.rows)
	}
	walk(root, "", 0, nil)
	return l
}

func (l *layout[T]) lookup(id string) (row[T], bool) {
	i, ok := l.byID[id]
	if !ok {
		return row[T]{}, false
	}
	return l.rows[i], true
}

// subtreeSpan is the vertical extent of row i and its visible descendants.
func (l *layout[T]) subtreeSpan(i int) dnd.Rect {
	r := l.rows[i]
	return dnd.Rect{Y: float64(r.index), H: float64(r.end - r.index)}
}

func (l *layout[T]) childSpans(id string) []dnd.Rect {
	kids := l.children[id]
	if len(kids) == 0 {
		return nil
	}
	spans := make([]dnd.Rect, len(kids))
	for i, k := range kids {
		spans[i] = l.subtreeSpan(k)
	}
	return spans
}

// placement returns the insertion index among id's visible children for a
// pointer at p, or PositionEnd when it shows none.
func (l *layout[T]) placement(id string, p dnd.Point) tree.Position {
	spans := l.childSpans(id)
	if len(spans) == 0 {
		return tree.PositionEnd
	}
	return tree.Position(dnd.PlacementIndex(spans, p))
}

// rowAt returns the row index under layout line y.
func (l *layout[T]) rowAt(y float64) (int, bool) {
	if y < 0 {
		return 0, false
	}
	i := int(math.Floor(y))
	if i >= len(l.rows) {
		return 0, false
	}
	return i, true
}
