package treeview

import (
	"fmt"
	"testing"

	"github.com/almonk/arbor/dnd"
	"github.com/almonk/arbor/tree"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// randomTree draws a document of boxes and text nodes a few levels deep.
func randomTree(t *rapid.T) *tree.Node {
	next := 0
	var gen func(depth int) *tree.Node
	gen = func(depth int) *tree.Node {
		next++
		n := &tree.Node{ID: fmt.Sprintf("n%d", next), Kind: tree.KindText}
		if depth < 4 && rapid.Bool().Draw(t, "container") {
			n.Kind = tree.KindBox
			count := rapid.IntRange(0, 4).Draw(t, "children")
			for range count {
				n.Children = append(n.Children, gen(depth+1))
			}
		}
		return n
	}
	root := gen(0)
	root.ID = "root"
	root.Kind = tree.KindBody
	return root
}

func allNodes(root *tree.Node) []*tree.Node {
	return append([]*tree.Node{root}, tree.FlattenAll(root)...)
}

func TestResolveShiftNoDragOrTarget(t *testing.T) {
	m, _ := newTestModel(t, scenarioTree(), "c")
	in := shiftInput[*tree.Node]{
		acc:    tree.NodeAccessors(),
		root:   scenarioTree(),
		layout: m.layout,
		indent: 2,
		width:  40,
		target: &dnd.DropTarget[string]{Item: "c", Area: dnd.AreaBottom},
	}
	_, ok := resolveShift(in)
	assert.False(t, ok, "no drag item")

	in.dragID = "a"
	in.target = nil
	_, ok = resolveShift(in)
	assert.False(t, ok, "no target")
}

func TestResolveShiftCenterAreaNestsIntoHovered(t *testing.T) {
	root := scenarioTree()
	m, _ := newTestModel(t, root, "c")
	got, ok := resolveShift(shiftInput[*tree.Node]{
		acc:    tree.NodeAccessors(),
		root:   root,
		dragID: "a",
		target: &dnd.DropTarget[string]{Item: "b", Area: dnd.AreaCenterLeft},
		point:  dnd.Point{X: 5, Y: 2.5},
		layout: m.layout,
		indent: 2,
		width:  40,
	})
	assert.True(t, ok)
	assert.Equal(t, "b", got.Parent.ID)
	assert.Equal(t, tree.Position(0), got.Position)
	assert.Equal(t, Placement{X: 4, Y: 3, Width: 36}, got.Placement)
}

func TestResolveShiftUnknownTargetFallsBackToRoot(t *testing.T) {
	root := scenarioTree()
	m, _ := newTestModel(t, root, "c")
	got, ok := resolveShift(shiftInput[*tree.Node]{
		acc:    tree.NodeAccessors(),
		root:   root,
		dragID: "a",
		target: &dnd.DropTarget[string]{Item: "ghost", Area: dnd.AreaCenterLeft},
		point:  dnd.Point{X: 5, Y: 9.5},
		layout: m.layout,
		indent: 2,
		width:  40,
	})
	assert.True(t, ok)
	assert.Equal(t, "r", got.Parent.ID)
	assert.Equal(t, tree.Position(2), got.Position)
}

func TestResolveShiftHiddenParentFallsBackToRoot(t *testing.T) {
	root := scenarioTree()
	m, _ := newTestModel(t, root, "")
	// c is inside collapsed b, so it has no row.
	got, ok := resolveShift(shiftInput[*tree.Node]{
		acc:    tree.NodeAccessors(),
		root:   root,
		dragID: "a",
		target: &dnd.DropTarget[string]{Item: "c", Area: dnd.AreaCenterRight},
		point:  dnd.Point{X: 5, Y: 0.5},
		layout: m.layout,
		indent: 2,
		width:  40,
	})
	assert.True(t, ok)
	assert.Equal(t, "r", got.Parent.ID)
	assert.Equal(t, tree.Position(0), got.Position)
}

func TestResolveShiftProperties(t *testing.T) {
	acc := tree.NodeAccessors()
	areas := []dnd.Area{dnd.AreaTop, dnd.AreaBottom, dnd.AreaCenterLeft, dnd.AreaCenterRight}

	rapid.Check(t, func(rt *rapid.T) {
		root := randomTree(rt)
		m := New(Options[*tree.Node]{Accessors: acc})
		m.SetSize(40, 200)
		m.Sync(root, "")
		if rapid.Bool().Draw(rt, "expandAll") {
			m.ExpandAll()
		}
		rows := m.layout.rows
		if len(rows) < 2 {
			return
		}
		drag := rows[rapid.IntRange(1, len(rows)-1).Draw(rt, "drag")]
		hovered := rapid.IntRange(0, len(rows)-1).Draw(rt, "target")
		got, ok := resolveShift(shiftInput[*tree.Node]{
			acc:    acc,
			root:   root,
			dragID: drag.id,
			target: &dnd.DropTarget[string]{
				Item: rows[hovered].id,
				Area: rapid.SampledFrom(areas).Draw(rt, "area"),
			},
			point:  dnd.CellCenter(rapid.IntRange(0, 39).Draw(rt, "col"), hovered),
			shift:  rapid.IntRange(-4, 4).Draw(rt, "shift"),
			layout: m.layout,
			indent: 2,
			width:  40,
		})
		if !ok {
			rt.Fatalf("no placement while dragging %s", drag.id)
		}
		parentID := got.Parent.ID
		if parentID == drag.id || acc.Contains(drag.item, parentID) {
			rt.Fatalf("parent %s is %s or inside it", parentID, drag.id)
		}
		if parentID != root.ID && !acc.CanAcceptChild(got.Parent) {
			rt.Fatalf("parent %s does not accept children", parentID)
		}
		if _, err := tree.Reparent(root, drag.id, parentID, got.Position); err != nil {
			rt.Fatalf("placement %s@%s rejected: %v", parentID, got.Position, err)
		}
	})
}

func TestExpandProperties(t *testing.T) {
	acc := tree.NodeAccessors()
	rapid.Check(t, func(rt *rapid.T) {
		root := randomTree(rt)
		nodes := allNodes(root)
		selected := rapid.SampledFrom(nodes).Draw(rt, "selected")

		s := NewExpandStore(acc)
		s.Sync(root, selected.ID)
		path := tree.Path(root, selected.ID)
		for _, ancestor := range path[:len(path)-1] {
			if !s.IsExpanded(ancestor) {
				rt.Fatalf("ancestor %s of %s not expanded", ancestor.ID, selected.ID)
			}
		}
		if !s.IsExpanded(root) {
			rt.Fatalf("root not expanded")
		}

		v := s.Version()
		if s.Sync(root, selected.ID) || s.Version() != v {
			rt.Fatalf("repeated sync wrote")
		}

		for _, n := range nodes {
			if len(n.Children) == 0 {
				s.SetExpanded(n, true)
				if s.IsExpanded(n) {
					rt.Fatalf("leaf %s reported expanded", n.ID)
				}
			}
		}
		s.SetExpanded(root, false)
		if !s.IsExpanded(root) {
			rt.Fatalf("root collapsed")
		}
	})
}
