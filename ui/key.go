package ui

import (
	"fmt"
	"strings"

	"github.com/almonk/arbor/config"
	"github.com/almonk/arbor/treeview"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// binding builds a key.Binding from whatever keys the config binds to
// action. An action with no keys yields a binding that never matches.
func binding(cfg *config.Config, action config.Action, desc string) key.Binding {
	keys := cfg.KeysFor(action)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	formatted := make([]string, len(keys))
	for i, k := range keys {
		formatted[i] = formatKeyName(k)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(formatted, "/"), desc),
	)
}

// keyMapFromConfig translates the user's keybinds into the tree's key map.
func keyMapFromConfig(cfg *config.Config) treeview.KeyMap {
	return treeview.KeyMap{
		Up:       binding(cfg, config.ActionMoveUp, "up"),
		Down:     binding(cfg, config.ActionMoveDown, "down"),
		First:    binding(cfg, config.ActionGoTop, "first"),
		Last:     binding(cfg, config.ActionGoBottom, "last"),
		Expand:   binding(cfg, config.ActionExpand, "expand"),
		Collapse: binding(cfg, config.ActionCollapse, "collapse"),
		Toggle:   binding(cfg, config.ActionToggle, "toggle"),
		Delete:   binding(cfg, config.ActionDelete, "delete"),
		Cancel:   binding(cfg, config.ActionCancelDrag, "cancel drag"),
	}
}

// shortHelp is the handful of bindings shown in the status bar.
func (m Model) shortHelp() []key.Binding {
	return []key.Binding{
		binding(m.cfg, config.ActionHelp, "help"),
		binding(m.cfg, config.ActionCopyID, "copy"),
		binding(m.cfg, config.ActionQuit, "quit"),
	}
}

func (m Model) updateHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.cfg.ActionFor(msg.String())
	if action == config.ActionHelp || action == config.ActionQuit || msg.String() == "esc" {
		m.showHelp = false
	}
	if action == config.ActionQuit {
		m.saveState()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A drag owns the keyboard until it ends; only cancel gets through.
	if m.tree.Dragging() {
		return m, m.tree.Update(msg)
	}

	switch m.cfg.ActionFor(msg.String()) {
	case config.ActionQuit:
		m.saveState()
		return m, tea.Quit

	case config.ActionCopyID:
		id := m.sel.ID()
		if id == "" {
			return m, nil
		}
		if err := clipboard.WriteAll(id); err != nil {
			return m, flashError(&m, fmt.Sprintf("✗ Failed to copy: %s", err))
		}
		return m, flash(&m, fmt.Sprintf("✓ Copied id: %s", id))

	case config.ActionExpandAll:
		m.tree.ExpandAll()
		m.saveState()

	case config.ActionCollapseAll:
		m.tree.CollapseAll()
		m.tree.ScrollToID(m.sel.ID())
		m.saveState()

	case config.ActionSearch:
		m.startSearch()

	case config.ActionHelp:
		m.showHelp = !m.showHelp

	case config.ActionReload:
		return m, m.reload(true)

	default:
		return m, m.tree.Update(msg)
	}

	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.cfg.ActionFor(msg.String())

	switch {
	case msg.String() == "esc" || action == config.ActionSearchCancel:
		m.cancelSearch()
		return m, nil

	case msg.String() == "enter" || action == config.ActionSearchConfirm:
		m.confirmSearch()
		return m, nil

	case msg.String() == "ctrl+c":
		m.cancelSearch()
		m.saveState()
		return m, tea.Quit

	case msg.String() == "down" || msg.String() == "ctrl+n" || action == config.ActionSearchNextMatch:
		m.jumpToMatch(1)
		return m, nil

	case msg.String() == "up" || msg.String() == "ctrl+p" || action == config.ActionSearchPrevMatch:
		m.jumpToMatch(-1)
		return m, nil
	}

	// Printable characters are always typed into the query, never
	// dispatched as normal-mode actions.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applySearch()
	}
	return m, cmd
}

// formatKeyName makes key names more readable for help text.
func formatKeyName(key string) string {
	switch key {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	case " ":
		return "Space"
	case "enter":
		return "Enter"
	case "esc":
		return "Esc"
	case "backspace":
		return "Backspace"
	case "delete":
		return "Del"
	case "home":
		return "Home"
	case "end":
		return "End"
	}
	if strings.HasPrefix(key, "ctrl+") {
		return "Ctrl+" + strings.TrimPrefix(key, "ctrl+")
	}
	return key
}
