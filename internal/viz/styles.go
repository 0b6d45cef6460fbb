package viz

import "github.com/charmbracelet/lipgloss"

// styles are the panel styles derived from a theme.
type styles struct {
	canvas   lipgloss.Style
	stats    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:   lipgloss.NewStyle().Padding(1, 2),
		stats:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(panelWidth),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		running:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		errorMsg: lipgloss.NewStyle().Foreground(t.Error),
	}
}

// swatch renders a small block in hex.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}
