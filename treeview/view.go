package treeview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model[T]) View() string {
	if !m.hasRoot || m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.refresh()

	// The placement line sits on the boundary above row Placement.Y, so it is
	// drawn as an underline on the row before it.
	lineRow := -1
	if m.shifted != nil {
		lineRow = m.shifted.Placement.Y - 1
	}

	var b strings.Builder
	end := min(m.scroll+m.height, len(m.layout.rows))
	for i := m.scroll; i < end; i++ {
		if i > m.scroll {
			b.WriteString("\n")
		}
		line := m.renderRow(i)
		if i == lineRow {
			line = m.overlayPlacement(line)
		}
		b.WriteString(line)
	}
	for i := end - m.scroll; i < m.height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model[T]) renderRow(i int) string {
	r := m.layout.rows[i]
	selected := r.id == m.selectedID

	chevron := "  "
	if r.hasChildren {
		if r.expanded {
			chevron = "▾ "
		} else {
			chevron = "▸ "
		}
	}

	style := m.styles.Row
	switch {
	case m.shifted != nil && m.acc.ID(m.shifted.Parent) == r.id:
		style = m.styles.DropParent
	case r.id == m.dragID:
		style = m.styles.DragItem
	case selected && r.id == m.focusID:
		style = m.styles.Focused
	case selected:
		style = m.styles.Selected
	case r.id == m.hoverID:
		style = m.styles.Hover
	}

	guide := m.styles.Guide
	if bg := style.GetBackground(); !isNoColor(bg) {
		guide = guide.Background(bg)
	}

	var parts []string
	if prefix := guidePrefix(r.last, m.indent); prefix != "" {
		parts = append(parts, guide.Render(prefix))
	}
	parts = append(parts, style.Render(m.styles.Chevron.Inline(true).Render(chevron)))
	parts = append(parts, style.Render(m.render(r.item, selected)))

	line := strings.Join(parts, "")
	if w := lipgloss.Width(line); w > m.width {
		line = ansi.Truncate(line, m.width, "…")
	} else if w < m.width {
		line += style.Render(strings.Repeat(" ", m.width-w))
	}
	return line
}

// overlayPlacement underlines the row from the indicator's x to the right
// edge.
func (m *Model[T]) overlayPlacement(line string) string {
	p := m.shifted.Placement
	if p.X >= m.width {
		return line
	}
	left := ansi.Cut(line, 0, p.X)
	right := ansi.Strip(ansi.Cut(line, p.X, m.width))
	return left + m.styles.Placement.Render(right)
}

// guidePrefix draws the tree lines for a row from its last-child chain,
// each level indent cells wide.
func guidePrefix(last []bool, indent int) string {
	if len(last) == 0 {
		return ""
	}
	pad := strings.Repeat(" ", indent-1)
	bar := strings.Repeat("─", indent-1)
	var b strings.Builder
	for _, isLast := range last[:len(last)-1] {
		if isLast {
			b.WriteString(" " + pad)
		} else {
			b.WriteString("│" + pad)
		}
	}
	if last[len(last)-1] {
		b.WriteString("└" + bar)
	} else {
		b.WriteString("├" + bar)
	}
	return b.String()
}

func isNoColor(c lipgloss.TerminalColor) bool {
	_, ok := c.(lipgloss.NoColor)
	return ok
}
