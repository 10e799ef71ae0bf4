package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// r -> [a, b -> [c]]
func smallTree() *Node {
	return &Node{ID: "r", Kind: KindBody, Children: []*Node{
		{ID: "a", Kind: KindText},
		{ID: "b", Kind: KindBox, Children: []*Node{
			{ID: "c", Kind: KindBox},
		}},
	}}
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestFind(t *testing.T) {
	root := smallTree()
	require.NotNil(t, Find(root, "c"))
	assert.Equal(t, "c", Find(root, "c").ID)
	assert.Same(t, root, Find(root, "r"))
	assert.Nil(t, Find(root, "missing"))
	assert.Nil(t, Find(nil, "r"))
}

func TestPath(t *testing.T) {
	root := smallTree()
	assert.Equal(t, []string{"r", "b", "c"}, ids(Path(root, "c")))
	assert.Equal(t, []string{"r"}, ids(Path(root, "r")))
	assert.Nil(t, Path(root, "missing"))
}

func TestPathWithPositions(t *testing.T) {
	root := smallTree()
	entries := PathWithPositions(root, "c")
	require.Len(t, entries, 3)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 1, entries[1].Position)
	assert.Equal(t, 0, entries[2].Position)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Node{ID: "x", Kind: KindHeading, Name: "Title"}, "Title"},
		{Node{ID: "x", Kind: KindListItem}, "List-item"},
		{Node{ID: "x"}, "x"},
	}
	for _, tt := range tests {
		if got := tt.node.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestFlattenAllAndCount(t *testing.T) {
	root := smallTree()
	assert.Equal(t, []string{"a", "b", "c"}, ids(FlattenAll(root)))
	assert.Equal(t, 4, Count(root))
}

func TestNodeAccessors(t *testing.T) {
	acc := NodeAccessors()
	root := Sample()

	assert.False(t, acc.CanLeaveParent(root), "body never leaves")
	assert.False(t, acc.CanLeaveParent(Find(root, "footer")), "locked")
	assert.True(t, acc.CanLeaveParent(Find(root, "hero")))

	assert.True(t, acc.CanAcceptChild(Find(root, "hero")))
	assert.False(t, acc.CanAcceptChild(Find(root, "hero-title")))

	assert.Equal(t, 2, acc.Depth(root, "hero-title"))
	assert.Equal(t, -1, acc.Depth(root, "missing"))
	assert.True(t, acc.Contains(Find(root, "nav"), "nav-docs-link"))
	assert.False(t, acc.Contains(Find(root, "nav"), "hero"))
}

func TestPosition(t *testing.T) {
	assert.Equal(t, "end", PositionEnd.String())
	assert.Equal(t, "3", Position(3).String())

	p, err := ParsePosition("end")
	require.NoError(t, err)
	assert.Equal(t, PositionEnd, p)

	p, err = ParsePosition(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, Position(2), p)

	_, err = ParsePosition("-1")
	assert.Error(t, err)
	_, err = ParsePosition("last")
	assert.Error(t, err)
}
