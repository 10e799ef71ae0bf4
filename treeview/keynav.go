package treeview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model[T]) updateKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) && m.Dragging() {
		m.endDrag(false)
		return nil
	}
	if !m.Focused() || m.selectedID == "" {
		return nil
	}
	cur, ok := m.current()
	if !ok {
		return nil
	}
	r := m.layout.rows[cur]

	switch {
	case key.Matches(msg, m.keys.Expand):
		if r.hasChildren && !r.expanded {
			m.SetExpanded(r.item, true)
		}
	case key.Matches(msg, m.keys.Collapse):
		if r.expanded {
			m.SetExpanded(r.item, false)
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(cur)
	case key.Matches(msg, m.keys.Up):
		return m.focusRow(cur - 1)
	case key.Matches(msg, m.keys.Down):
		return m.focusRow(cur + 1)
	case key.Matches(msg, m.keys.First):
		return m.focusRow(0)
	case key.Matches(msg, m.keys.Last):
		return m.focusRow(len(m.layout.rows) - 1)
	case key.Matches(msg, m.keys.Delete):
		return emit(DeleteMsg{ID: r.id})
	}
	return nil
}

// current is the row keys act on: the focused row, else the selection (or
// its nearest visible ancestor).
func (m *Model[T]) current() (int, bool) {
	if i, ok := m.layout.byID[m.focusID]; ok {
		return i, true
	}
	return m.rowFor(m.selectedID)
}

// focusRow moves focus to row i, clamped to the visible rows. Moving focus
// selects the row and scrolls it into view.
func (m *Model[T]) focusRow(i int) tea.Cmd {
	i = min(max(i, 0), len(m.layout.rows)-1)
	r := m.layout.rows[i]
	if r.id == m.focusID {
		return nil
	}
	m.focusID = r.id
	m.scrollIntoView(i)
	return emit(SelectMsg{ID: r.id})
}
