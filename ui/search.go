package ui

import (
	"github.com/almonk/arbor/tree"
	"github.com/sahilm/fuzzy"
)

// nodeSource implements fuzzy.Source over element labels.
type nodeSource []*tree.Node

func (ns nodeSource) String(i int) string { return ns[i].Label() }
func (ns nodeSource) Len() int            { return len(ns) }

// idSource implements fuzzy.Source over element ids.
type idSource []*tree.Node

func (ns idSource) String(i int) string { return ns[i].ID }
func (ns idSource) Len() int            { return len(ns) }

// startSearch enters search mode, remembering the expand state and
// selection so cancelling can put them back.
func (m *Model) startSearch() {
	m.searching = true
	m.savedExpanded = m.tree.ExpandedRecord()
	m.savedSelected = m.sel.ID()
	m.matches = nil
	m.matchIdx = 0
	m.render.matches = nil
	m.input.SetValue("")
	m.input.Focus()
}

// applySearch re-runs the query and jumps to the best match. Selecting a
// match expands its ancestors, revealing it.
func (m *Model) applySearch() {
	query := m.input.Value()
	m.matches = nil
	m.matchIdx = 0
	m.render.matches = nil
	if query == "" {
		return
	}

	nodes := tree.FlattenAll(m.root)
	seen := make(map[string]bool)
	highlights := make(map[string][]int)
	for _, r := range fuzzy.FindFrom(query, nodeSource(nodes)) {
		id := nodes[r.Index].ID
		seen[id] = true
		highlights[id] = r.MatchedIndexes
		m.matches = append(m.matches, id)
	}
	// Ids are matched too, after labels, so "#hero-cta" style queries work.
	for _, r := range fuzzy.FindFrom(query, idSource(nodes)) {
		id := nodes[r.Index].ID
		if !seen[id] {
			seen[id] = true
			m.matches = append(m.matches, id)
		}
	}
	m.render.matches = highlights

	if len(m.matches) > 0 {
		m.selectID(m.matches[0])
	}
}

// jumpToMatch moves to the next (dir=+1) or previous (dir=-1) match.
func (m *Model) jumpToMatch(dir int) {
	n := len(m.matches)
	if n == 0 {
		return
	}
	m.matchIdx = ((m.matchIdx+dir)%n + n) % n
	m.selectID(m.matches[m.matchIdx])
}

// confirmSearch leaves search mode on the current match.
func (m *Model) confirmSearch() {
	m.searching = false
	m.input.Blur()
	m.render.matches = nil
	m.savedExpanded = nil
}

// cancelSearch leaves search mode and puts the expand state and selection
// back the way they were.
func (m *Model) cancelSearch() {
	m.searching = false
	m.input.Blur()
	m.render.matches = nil
	m.matches = nil
	if tree.Find(m.root, m.savedSelected) != nil {
		m.selectID(m.savedSelected)
	}
	if m.savedExpanded != nil {
		m.tree.RestoreExpanded(m.savedExpanded)
		m.savedExpanded = nil
	}
	m.tree.ScrollToID(m.sel.ID())
}
