package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Card      lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style
	Dialog    lipgloss.Style
	Help      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Faint     lipgloss.Style
	Total     lipgloss.Style
	Selected  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Faint(true).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Margin(0, 1),
		CardLabel: lipgloss.NewStyle().Faint(true),
		CardValue: lipgloss.NewStyle().Bold(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3),
		Help:     lipgloss.NewStyle().Faint(true).Padding(1, 1),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).Padding(0, 1),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Padding(0, 1),
		Faint:    lipgloss.NewStyle().Faint(true),
		Total:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Reverse(true),
	}
}
