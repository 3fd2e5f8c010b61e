package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the front-end palette.
type Theme struct {
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Success   lipgloss.Color
	Highlight lipgloss.Color
}

// DefaultTheme targets dark terminals.
var DefaultTheme = Theme{
	Accent:    lipgloss.Color("#a78bfa"),
	Muted:     lipgloss.Color("#6b7280"),
	Warning:   lipgloss.Color("#fbbf24"),
	Danger:    lipgloss.Color("#f87171"),
	Success:   lipgloss.Color("#34d399"),
	Highlight: lipgloss.Color("#312e81"),
}

type styles struct {
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	title       lipgloss.Style
	muted       lipgloss.Style
	warning     lipgloss.Style
	danger      lipgloss.Style
	success     lipgloss.Style
	selected    lipgloss.Style
	statusBar   lipgloss.Style
	badge       lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		tabActive:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Padding(0, 1),
		tabInactive: lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1),
		title:       lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		muted:       lipgloss.NewStyle().Foreground(theme.Muted),
		warning:     lipgloss.NewStyle().Foreground(theme.Warning),
		danger:      lipgloss.NewStyle().Foreground(theme.Danger),
		success:     lipgloss.NewStyle().Foreground(theme.Success),
		selected:    lipgloss.NewStyle().Background(theme.Highlight).Bold(true),
		statusBar:   lipgloss.NewStyle().Foreground(theme.Muted).BorderTop(true).BorderStyle(lipgloss.NormalBorder()),
		badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(theme.Warning).Padding(0, 1),
	}
}
