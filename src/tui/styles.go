package tui

import (
	"github.com/charmbracelet/lipgloss"

	"riskwatch/src/contracts"
)

// StyleConfig holds all customizable style colors for the triage UI.
type StyleConfig struct {
	PrimaryBlue    lipgloss.Color
	AccentBlue     lipgloss.Color
	DarkBackground lipgloss.Color
	CardBackground lipgloss.Color
	TextPrimary    lipgloss.Color
	TextSecondary  lipgloss.Color
	BorderColor    lipgloss.Color
	SelectedColor  lipgloss.Color

	// SeverityColors maps the conversation severity to a banner color.
	SeverityColors map[contracts.Severity]lipgloss.Color
}

// DefaultStyles returns the default color palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		PrimaryBlue:    lipgloss.Color("#8AB4F8"),
		AccentBlue:     lipgloss.Color("#4285F4"),
		DarkBackground: lipgloss.Color("#1E1E1E"),
		CardBackground: lipgloss.Color("#2D2D2D"),
		TextPrimary:    lipgloss.Color("#E8EAED"),
		TextSecondary:  lipgloss.Color("#9AA0A6"),
		BorderColor:    lipgloss.Color("#5F6368"),
		SelectedColor:  lipgloss.Color("#303134"),
		SeverityColors: map[contracts.Severity]lipgloss.Color{
			contracts.SeverityLow:    lipgloss.Color("#34A853"), // Green
			contracts.SeverityMedium: lipgloss.Color("#FBBC04"), // Yellow
			contracts.SeverityHigh:   lipgloss.Color("#EA4335"), // Red
		},
	}
}

// SeverityStyle returns a style colored for the given severity.
func (s *StyleConfig) SeverityStyle(sev contracts.Severity) lipgloss.Style {
	color, ok := s.SeverityColors[sev]
	if !ok {
		color = s.TextPrimary
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// TitleStyle returns a title lipgloss style using this config.
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.PrimaryBlue).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle returns a help text lipgloss style using this config.
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 1)
}

// DividerStyle returns the style of the split-view divider.
func (s *StyleConfig) DividerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.BorderColor).
		Bold(true)
}

// DetailHeaderStyle returns the style of the detail panel header line.
func (s *StyleConfig) DetailHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.AccentBlue).
		Bold(true)
}

// ContextStyle returns the dimmed style used for cluster context lines.
func (s *StyleConfig) ContextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary)
}
