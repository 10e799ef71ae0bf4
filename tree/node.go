package tree

import "strings"

// Kind names the element type of a node.
type Kind string

const (
	KindBody      Kind = "body"
	KindSection   Kind = "section"
	KindBox       Kind = "box"
	KindForm      Kind = "form"
	KindList      Kind = "list"
	KindListItem  Kind = "list-item"
	KindLink      Kind = "link"
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindButton    Kind = "button"
	KindInput     Kind = "input"
)

// Kinds that may hold children.
var containerKinds = map[Kind]bool{
	KindBody:     true,
	KindSection:  true,
	KindBox:      true,
	KindForm:     true,
	KindList:     true,
	KindListItem: true,
	KindLink:     true,
}

var knownKinds = map[Kind]bool{
	KindBody: true, KindSection: true, KindBox: true, KindForm: true,
	KindList: true, KindListItem: true, KindLink: true, KindHeading: true,
	KindParagraph: true, KindText: true, KindImage: true, KindButton: true,
	KindInput: true,
}

// Node is one element of a document tree. Nodes are treated as immutable
// once loaded: mutations return a new root and share untouched subtrees.
type Node struct {
	ID       string  `yaml:"id" json:"id"`
	Kind     Kind    `yaml:"kind" json:"kind"`
	Name     string  `yaml:"name,omitempty" json:"name,omitempty"`
	Locked   bool    `yaml:"locked,omitempty" json:"locked,omitempty"`
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// Label returns the display name, falling back to the capitalised kind.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	k := string(n.Kind)
	if k == "" {
		return n.ID
	}
	return strings.ToUpper(k[:1]) + k[1:]
}

// IsContainer reports whether n may hold children.
func (n *Node) IsContainer() bool {
	return containerKinds[n.Kind]
}

// HasChildren reports whether n currently has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Find returns the node with the given id, or nil.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the nodes from root to id inclusive, or nil when id is absent.
func Path(root *Node, id string) []*Node {
	entries := PathWithPositions(root, id)
	if entries == nil {
		return nil
	}
	path := make([]*Node, len(entries))
	for i, e := range entries {
		path[i] = e.Item
	}
	return path
}

// PathWithPositions is Path with each node's index among its siblings.
// The root entry has position 0.
func PathWithPositions(root *Node, id string) []PathEntry[*Node] {
	if root == nil {
		return nil
	}
	var path []PathEntry[*Node]
	var walk func(n *Node, pos int) bool
	walk = func(n *Node, pos int) bool {
		path = append(path, PathEntry[*Node]{Item: n, Position: pos})
		if n.ID == id {
			return true
		}
		for i, child := range n.Children {
			if walk(child, i) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !walk(root, 0) {
		return nil
	}
	return path
}

// Walk visits every node depth-first. Returning false from fn skips the
// node's children.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}
}

// FlattenAll returns all nodes regardless of expanded state (skips root).
func FlattenAll(root *Node) []*Node {
	var result []*Node
	Walk(root, func(n *Node, depth int) bool {
		if depth > 0 {
			result = append(result, n)
		}
		return true
	})
	return result
}

// Count returns the number of nodes in the tree, root included.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}
