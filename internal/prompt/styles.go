package prompt

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the console styling definitions
type Styles struct {
	Header  lipgloss.Style
	Divider lipgloss.Style

	// Feature display
	FieldLabel lipgloss.Style
	FieldValue lipgloss.Style
	Progress   lipgloss.Style

	// Vocabulary menu
	MenuIndex lipgloss.Style
	MenuItem  lipgloss.Style

	// Status lines
	OK    lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Muted lipgloss.Style
}

// DefaultStyles creates the default style set using the default renderer.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles creates the style set using the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")),
		Divider: r.NewStyle().
			Foreground(lipgloss.Color("238")),

		FieldLabel: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		FieldValue: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		Progress: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")),

		MenuIndex: r.NewStyle().
			Foreground(lipgloss.Color("75")),
		MenuItem: r.NewStyle().
			Foreground(lipgloss.Color("252")),

		OK: r.NewStyle().
			Foreground(lipgloss.Color("76")),
		Warn: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("196")),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("244")),
	}
}
