package ui

import (
	"sort"
	"strings"

	"github.com/almonk/arbor/icons"
	"github.com/almonk/arbor/tree"
)

// renderer draws one element's label for the tree. It is shared by
// pointer so search can update highlights without rebuilding the tree.
type renderer struct {
	expanded func(*tree.Node) bool
	matches  map[string][]int
}

func (r *renderer) render(n *tree.Node, selected bool) string {
	open := r.expanded != nil && r.expanded(n)
	label := n.Label()
	if idx := r.matches[n.ID]; len(idx) > 0 {
		label = renderNameHighlighted(label, idx)
	}
	return icons.ForNode(n, open) + " " + label
}

// renderNameHighlighted highlights runs of two or more matched characters.
// Single isolated matches are left plain to reduce visual noise.
func renderNameHighlighted(name string, matchIndices []int) string {
	sorted := append([]int(nil), matchIndices...)
	sort.Ints(sorted)

	matchSet := make(map[int]bool, len(sorted))
	for i, idx := range sorted {
		hasPrev := i > 0 && sorted[i-1] == idx-1
		hasNext := i < len(sorted)-1 && sorted[i+1] == idx+1
		if hasPrev || hasNext {
			matchSet[idx] = true
		}
	}
	if len(matchSet) == 0 {
		return name
	}

	// fuzzy reports byte offsets.
	var b strings.Builder
	for i, ch := range name {
		if matchSet[i] {
			b.WriteString(matchHighlightStyle.Render(string(ch)))
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// breadcrumb is the labels from the root down to id.
func breadcrumb(root *tree.Node, id string) []string {
	if id == "" {
		return nil
	}
	path := tree.Path(root, id)
	crumbs := make([]string, len(path))
	for i, n := range path {
		crumbs[i] = n.Label()
	}
	return crumbs
}
