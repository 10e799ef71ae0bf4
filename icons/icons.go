package icons

import "github.com/almonk/arbor/tree"

// Default icons (Nerd Font)
const (
	BoxClosed = "\uf07b"
	BoxOpen   = "\uf07c"
	Element   = "\uf15b"
	Locked    = "\uf023"
	Search    = "\uf002"
	Drag      = "\uf047"
)

var kindIcons = map[tree.Kind]string{
	tree.KindBody:      "\uf1c9",
	tree.KindSection:   "\uf0db",
	tree.KindForm:      "\uf046",
	tree.KindList:      "\uf03a",
	tree.KindListItem:  "\uf111",
	tree.KindLink:      "\uf0c1",
	tree.KindHeading:   "\uf1dc",
	tree.KindParagraph: "\uf1dd",
	tree.KindText:      "\uf031",
	tree.KindImage:     "\uf03e",
	tree.KindButton:    "\uf0c8",
	tree.KindInput:     "\uf11c",
}

// ForNode returns the glyph for a node. Boxes show open or closed like a
// folder; locked nodes show a padlock.
func ForNode(n *tree.Node, expanded bool) string {
	if n.Locked {
		return Locked
	}
	if n.Kind == tree.KindBox {
		if expanded && n.HasChildren() {
			return BoxOpen
		}
		return BoxClosed
	}
	if icon, ok := kindIcons[n.Kind]; ok {
		return icon
	}
	return Element
}
