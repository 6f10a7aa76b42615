package records

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	id       lipgloss.Style
	name     lipgloss.Style
	detail   lipgloss.Style
	favorite lipgloss.Style
	pending  lipgloss.Style
	synced   lipgloss.Style
	empty    lipgloss.Style
	failure  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		id:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		name:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		favorite: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		pending:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		synced:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:    lipgloss.NewStyle().Faint(true),
		failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
