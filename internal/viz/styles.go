package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	help    lipgloss.Style
	graph   lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		header:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
	}
}
