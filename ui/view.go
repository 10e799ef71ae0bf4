package ui

import (
	"fmt"
	"strings"

	"github.com/almonk/arbor/config"
	"github.com/almonk/arbor/icons"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

const crumbSep = " › "

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		help := m.helpView()
		if lipgloss.Height(help) > m.height || lipgloss.Width(help) > m.width {
			return help
		}
		return overlay.New(layer(m.helpView), layer(m.mainView), overlay.Center, overlay.Center, 0, 0).View()
	}
	return m.mainView()
}

// layer adapts a render function to the tea.Model the overlay composites.
type layer func() string

func (l layer) Init() tea.Cmd                       { return nil }
func (l layer) Update(tea.Msg) (tea.Model, tea.Cmd) { return l, nil }
func (l layer) View() string                        { return l() }

func (m Model) mainView() string {
	var b strings.Builder
	b.WriteString(m.tree.View())

	// Search input (above status bar)
	if m.searching {
		b.WriteString("\n")
		b.WriteString(m.searchLine())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) searchLine() string {
	count := ""
	if q := m.input.Value(); q != "" {
		if len(m.matches) == 0 {
			count = "no matches"
		} else {
			count = fmt.Sprintf("%d/%d", m.matchIdx+1, len(m.matches))
		}
	}
	line := searchPromptStyle.Render(icons.Search) + searchInputStyle.Render(m.input.View())
	right := statusHelpStyle.Render(count + " ")
	if pad := m.width - lipgloss.Width(line) - lipgloss.Width(right); pad > 0 {
		line += statusBase.Render(strings.Repeat(" ", pad))
	}
	return line + right
}

// mode returns the status bar mode label and its color.
func (m Model) mode() (string, lipgloss.TerminalColor) {
	switch {
	case m.tree.Dragging():
		return "DRAG", colorOrange
	case m.searching:
		return "SEARCH", colorPurple
	default:
		return "NORMAL", colorBlue
	}
}

func (m Model) renderStatusBar() string {
	w := max(m.width, 20)
	chevron := "\ue0b0" // powerline

	modeLabel, modeBg := m.mode()
	modeStyle := lipgloss.NewStyle().
		Background(modeBg).
		Foreground(lipgloss.Color("0")).
		Bold(true)

	var right string
	if w >= 60 {
		right = statusHelpStyle.Render(m.help.ShortHelpView(m.shortHelp()) + " ")
	}

	left := modeStyle.Render(" " + modeLabel + " ")
	if m.flashMsg != "" {
		style := statusFlashStyle
		if m.flashErr {
			style = statusErrorStyle
		}
		left += lipgloss.NewStyle().Foreground(modeBg).Background(colorBg).Render(chevron) +
			style.Render(m.flashMsg)
	} else {
		// Reserve space for the mode segment, chevrons and the right side.
		budget := max(w-lipgloss.Width(left)-lipgloss.Width(right)-4, 10)
		text := m.middleSegment()
		if runewidth.StringWidth(text) > budget {
			text = middleTruncate(text, budget)
		}
		if text != "" {
			left += lipgloss.NewStyle().Foreground(modeBg).Background(colorSegment).Render(chevron) +
				statusCrumbStyle.Render(" "+text+" ") +
				lipgloss.NewStyle().Foreground(colorSegment).Background(colorBg).Render(chevron)
		} else {
			left += lipgloss.NewStyle().Foreground(modeBg).Background(colorBg).Render(chevron)
		}
	}

	padding := max(w-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + statusBase.Render(strings.Repeat(" ", padding)) + right
}

// middleSegment is the breadcrumb of the selection, or where the drag will
// land while dragging.
func (m Model) middleSegment() string {
	if m.tree.Dragging() {
		t, ok := m.tree.Target()
		if !ok {
			return icons.Drag + " " + m.tree.DragItemID()
		}
		return fmt.Sprintf("%s %s → %s @ %s", icons.Drag, m.tree.DragItemID(), t.Parent.ID, t.Position)
	}
	return strings.Join(m.crumbs, crumbSep)
}

// middleTruncate shortens s to maxWidth cells with "…" in the middle,
// keeping the start and the end, which matter most in a breadcrumb.
func middleTruncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	rightLen := (maxWidth - 1) / 2
	leftLen := maxWidth - 1 - rightLen
	left := runewidth.Truncate(s, leftLen, "")

	runes := []rune(s)
	right := ""
	for i := len(runes) - 1; i >= 0; i-- {
		next := string(runes[i]) + right
		if runewidth.StringWidth(next) > rightLen {
			break
		}
		right = next
	}
	return left + "…" + right
}

// --- Help ---

func (m Model) helpView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  Keybindings"))
	b.WriteString("\n\n")

	actionOrder := []struct {
		action config.Action
		desc   string
	}{
		{config.ActionMoveDown, "Move down"},
		{config.ActionMoveUp, "Move up"},
		{config.ActionGoTop, "Go to first"},
		{config.ActionGoBottom, "Go to last"},
		{config.ActionExpand, "Expand element"},
		{config.ActionCollapse, "Collapse element"},
		{config.ActionToggle, "Toggle element open/close"},
		{config.ActionDelete, "Delete element"},
		{config.ActionCancelDrag, "Cancel drag"},
		{config.ActionCopyID, "Copy element id to clipboard"},
		{config.ActionExpandAll, "Expand all"},
		{config.ActionCollapseAll, "Collapse all"},
		{config.ActionSearch, "Jump to element"},
		{config.ActionReload, "Reload document"},
		{config.ActionHelp, "Toggle help"},
		{config.ActionQuit, "Quit"},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(colorPurple).
		Bold(true).
		Width(20).
		Align(lipgloss.Left).
		PaddingLeft(2)

	descStyle := lipgloss.NewStyle().
		Foreground(colorFgDim)

	for _, entry := range actionOrder {
		keys := m.cfg.KeysFor(entry.action)
		if len(keys) == 0 {
			continue
		}
		formatted := make([]string, len(keys))
		for i, k := range keys {
			formatted[i] = formatKeyName(k)
		}
		b.WriteString(keyStyle.Render(strings.Join(formatted, " / ")))
		b.WriteString(descStyle.Render(entry.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Mouse"))
	b.WriteString("\n\n")
	for _, line := range [][2]string{
		{"Click", "Select element"},
		{"Double-click", "Toggle element open/close"},
		{"Drag", "Move element"},
		{"Drag ← / →", "Move out of / into the element above"},
		{"Hold", "Expand the element under the pointer"},
	} {
		b.WriteString(keyStyle.Render(line[0]))
		b.WriteString(descStyle.Render(line[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpHint := "Press ? to return"
	if keys := m.cfg.KeysFor(config.ActionHelp); len(keys) > 0 {
		helpHint = fmt.Sprintf("Press %s to return", formatKeyName(keys[0]))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(colorComment).PaddingLeft(2).Render(helpHint))

	return helpBoxStyle.Render(b.String())
}
