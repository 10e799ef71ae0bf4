package ui

import (
	"github.com/almonk/arbor/logger"
	"github.com/almonk/arbor/treeview"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case clearFlashMsg:
		m.flashMsg = ""
		m.flashErr = false
		return m, nil

	case selectionMsg:
		m.crumbs = breadcrumb(m.root, msg.ID)
		logger.Debug("selection changed", "id", msg.ID, "previous", msg.Previous)
		return m, waitForSelection(m.selCh)

	case documentChangedMsg:
		cmd := m.reload(false)
		m.crumbs = breadcrumb(m.root, m.sel.ID())
		return m, tea.Batch(cmd, waitForDocument(m.watch, m.watchErr))

	case watchErrorMsg:
		return m, tea.Batch(m.onWatchError(msg.err), waitForDocument(m.watch, m.watchErr))

	case treeview.SelectMsg:
		m.sel.Set(msg.ID)
		m.tree.SetSelectedID(msg.ID)
		return m, nil

	case treeview.DeleteMsg:
		cmd := m.applyDelete(msg.ID)
		m.crumbs = breadcrumb(m.root, m.sel.ID())
		return m, cmd

	case treeview.DragEndMsg:
		cmd := m.applyDragEnd(msg)
		m.crumbs = breadcrumb(m.root, m.sel.ID())
		return m, cmd

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		return m, m.tree.Update(msg)

	case tea.KeyMsg:
		var next tea.Model
		var cmd tea.Cmd
		switch {
		case m.showHelp:
			next, cmd = m.updateHelpMode(msg)
		case m.searching:
			next, cmd = m.updateSearchMode(msg)
		default:
			next, cmd = m.updateNormalMode(msg)
		}
		// Entering or leaving search changes the tree's height.
		if nm, ok := next.(Model); ok {
			nm.layout()
			next = nm
		}
		return next, cmd
	}

	// Hold and auto-scroll ticks, blur.
	return m, m.tree.Update(msg)
}

// layout sizes the tree to the space above the search line and status bar.
func (m *Model) layout() {
	h := m.height - 1
	if m.searching {
		h--
	}
	m.tree.SetSize(m.width, max(h, 0))
}
