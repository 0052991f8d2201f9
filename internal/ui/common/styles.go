package common

import (
	"charm.land/lipgloss/v2"

	"github.com/nickheyer/Mikoshi/internal/display"
)

// Styles are the console's lipgloss styles derived from display settings.
type Styles struct {
	Screen    lipgloss.Style // Background fill
	Output    lipgloss.Style // Scrollback rows
	Input     lipgloss.Style // Prompt row
	Selection lipgloss.Style // Selected cells
	Cursor    lipgloss.Style // Block cursor cell
}

// NewStyles builds styles from the palette in s.
func NewStyles(s display.Settings) Styles {
	c := s.Colors
	base := lipgloss.NewStyle().Background(c.Background)
	return Styles{
		Screen: base,
		Output: base.Foreground(c.Text),
		Input:  base.Foreground(c.Input),
		Selection: lipgloss.NewStyle().
			Background(c.Selection).
			Foreground(c.Text),
		Cursor: lipgloss.NewStyle().
			Background(c.Cursor).
			Foreground(c.Background),
	}
}
