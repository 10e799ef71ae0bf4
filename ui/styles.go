package ui

import (
	"github.com/almonk/arbor/theme"
	"github.com/almonk/arbor/treeview"
	"github.com/charmbracelet/lipgloss"
)

// Color palette using ANSI colors that adapt to the terminal's color scheme.
// A loaded theme replaces these with its own palette entries.
var (
	colorBlue   lipgloss.TerminalColor = lipgloss.Color("12")
	colorGreen  lipgloss.TerminalColor = lipgloss.Color("10")
	colorRed    lipgloss.TerminalColor = lipgloss.Color("9")
	colorYellow lipgloss.TerminalColor = lipgloss.Color("11")
	colorPurple lipgloss.TerminalColor = lipgloss.Color("13")
	colorCyan   lipgloss.TerminalColor = lipgloss.Color("14")
	colorOrange lipgloss.TerminalColor = lipgloss.Color("208") // 256-color; no ANSI equivalent

	colorFg      lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorFgDim   lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
	colorComment lipgloss.TerminalColor = lipgloss.Color("8")
	colorGutter  lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "248", Dark: "239"}

	colorBg        lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "254", Dark: "235"}
	colorSelection lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "253", Dark: "237"}
	colorSegment   lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "252", Dark: "237"}
)

var (
	titleStyle          lipgloss.Style
	helpBoxStyle        lipgloss.Style
	matchHighlightStyle lipgloss.Style

	statusBase        lipgloss.Style
	statusCrumbStyle  lipgloss.Style
	statusFlashStyle  lipgloss.Style
	statusErrorStyle  lipgloss.Style
	statusHelpStyle   lipgloss.Style
	searchInputStyle  lipgloss.Style
	searchPromptStyle lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the current color variables.
func buildStyles() {
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).PaddingLeft(1)
	matchHighlightStyle = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	helpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGutter).
		Padding(0, 1)

	// Status bar base style; all status styles inherit this background
	statusBase = lipgloss.NewStyle().Background(colorBg)

	statusCrumbStyle = lipgloss.NewStyle().Background(colorSegment).Foreground(colorFgDim)
	statusFlashStyle = statusBase.Foreground(colorGreen).Bold(true).PaddingLeft(1)
	statusErrorStyle = statusBase.Foreground(colorRed).Bold(true).PaddingLeft(1)
	statusHelpStyle = statusBase.Foreground(colorGutter)

	searchInputStyle = statusBase.Foreground(colorFg).PaddingLeft(1)
	searchPromptStyle = statusBase.Foreground(colorBlue).Bold(true).PaddingLeft(1)
}

// applyTheme swaps the color variables for a theme's palette and returns
// the palette for the tree component. A nil theme keeps the terminal colors.
func applyTheme(th *theme.Theme) treeview.Palette {
	p := treeview.DefaultPalette()
	if th == nil {
		return p
	}

	r := th.Roles()
	set := func(dst *lipgloss.TerminalColor, value string) {
		if value != "" {
			*dst = lipgloss.Color(value)
		}
	}
	set(&colorRed, r.Error)
	set(&colorGreen, r.Success)
	set(&colorYellow, th.Palette[11])
	set(&colorBlue, r.Accent)
	set(&colorPurple, r.Search)
	set(&colorCyan, th.Palette[14])
	set(&colorComment, r.Guide)
	set(&colorGutter, r.Guide)
	set(&colorFg, r.Text)
	set(&colorFgDim, r.Muted)
	set(&colorBg, r.Background)
	set(&colorSelection, r.Selection)
	set(&colorSegment, r.Selection)
	buildStyles()

	p.Fg, p.FgDim, p.Gutter = colorFg, colorFgDim, colorGutter
	p.Selection, p.Focus = colorSelection, colorSelection
	p.Accent = colorBlue
	set(&p.Drop, r.Drop)
	set(&p.DropFg, r.DropFg)
	return p
}
