package treeview

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used to draw rows.
type Styles struct {
	Row        lipgloss.Style
	Selected   lipgloss.Style
	Focused    lipgloss.Style
	Hover      lipgloss.Style
	Guide      lipgloss.Style
	Chevron    lipgloss.Style
	DragItem   lipgloss.Style
	DropParent lipgloss.Style
	Placement  lipgloss.Style
}

// Palette is the handful of colors Styles are derived from.
type Palette struct {
	Fg, FgDim, Gutter    lipgloss.TerminalColor
	Selection, Focus     lipgloss.TerminalColor
	Accent, Drop, DropFg lipgloss.TerminalColor
}

func DefaultPalette() Palette {
	return Palette{
		Fg:        lipgloss.AdaptiveColor{Light: "0", Dark: "15"},
		FgDim:     lipgloss.AdaptiveColor{Light: "8", Dark: "7"},
		Gutter:    lipgloss.AdaptiveColor{Light: "248", Dark: "239"},
		Selection: lipgloss.AdaptiveColor{Light: "253", Dark: "237"},
		Focus:     lipgloss.AdaptiveColor{Light: "252", Dark: "239"},
		Accent:    lipgloss.Color("12"),
		Drop:      lipgloss.AdaptiveColor{Light: "195", Dark: "24"},
		DropFg:    lipgloss.AdaptiveColor{Light: "0", Dark: "15"},
	}
}

func DefaultStyles() Styles {
	return NewStyles(DefaultPalette())
}

// NewStyles derives row styles from a palette.
func NewStyles(p Palette) Styles {
	return Styles{
		Row: lipgloss.NewStyle().Foreground(p.Fg),
		Selected: lipgloss.NewStyle().
			Background(p.Selection).
			Foreground(p.Fg),
		Focused: lipgloss.NewStyle().
			Background(p.Focus).
			Foreground(p.Fg).
			Bold(true),
		Hover: lipgloss.NewStyle().
			Foreground(p.Accent),
		Guide: lipgloss.NewStyle().
			Foreground(p.Gutter),
		Chevron: lipgloss.NewStyle().
			Foreground(p.FgDim),
		DragItem: lipgloss.NewStyle().
			Foreground(p.FgDim).
			Faint(true),
		DropParent: lipgloss.NewStyle().
			Background(p.Drop).
			Foreground(p.DropFg),
		Placement: lipgloss.NewStyle().
			Foreground(p.Accent).
			Underline(true).
			Bold(true),
	}
}
