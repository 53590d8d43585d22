package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title   lipgloss.Style
	User    lipgloss.Style
	Status  lipgloss.Style
	Code    lipgloss.Style
	Error   lipgloss.Style
	Snippet lipgloss.Style
	Help    lipgloss.Style
	Spinner lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		User:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Status:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Code:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Snippet: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
}
