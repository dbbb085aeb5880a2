package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	URL     lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("1")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("3")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("4")),
		URL:     lr.NewStyle().Underline(true).Foreground(lipgloss.Color("4")),
	}
}

// Level returns the style for a conformance level.
func (s *Styles) Level(l core.Level) lipgloss.Style {
	switch l {
	case core.LevelA:
		return s.Warning
	case core.LevelAA:
		return s.Error
	case core.LevelAAA:
		return s.Info
	default:
		return s.Muted
	}
}
