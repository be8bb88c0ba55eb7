// Package ui provides the visual styling for the aimea interactive client.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared across the interface.
var (
	ColorPrimary = lipgloss.Color("#2196F3") // Blue
	ColorAccent  = lipgloss.Color("#8BC34A") // Lime Green
	ColorMuted   = lipgloss.Color("#666666")
	ColorError   = lipgloss.Color("#e53935") // Red
	ColorWarning = lipgloss.Color("#FFC107") // Yellow
	ColorBorder  = lipgloss.Color("#444444")
)

// Styles holds the lipgloss styles used by the interactive views.
type Styles struct {
	Title      lipgloss.Style
	Line       lipgloss.Style
	Annotation lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	Help       lipgloss.Style
	PaneTitle  lipgloss.Style
	Active     lipgloss.Style
}

// DefaultStyles returns the standard theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1),
		Line: lipgloss.NewStyle(),
		Annotation: lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2),
		Status: lipgloss.NewStyle().
			Foreground(ColorAccent),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingTop(1),
		PaneTitle: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Active: lipgloss.NewStyle().
			Foreground(ColorWarning),
	}
}
