package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focused controls, borders
	ColorMuted     = "241" // Gray - for placeholders, hints
	ColorText      = "252" // Light gray - for JSON dumps
)

// Styles contains shared style definitions used by the property view.
var Styles = struct {
	Title   lipgloss.Style // Bold accent color - page heading
	Section lipgloss.Style // Section headings
	Empty   lipgloss.Style // Loading / not-found placeholders
	JSON    lipgloss.Style // Pretty-printed documents
	Item    lipgloss.Style // Address list entries
	Hint    lipgloss.Style // Help/hint text

	Button        lipgloss.Style // Manual fetch control
	ButtonFocused lipgloss.Style
	Input         lipgloss.Style // Lookup key field border
	InputFocused  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)).
		MarginTop(1),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	JSON: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Item: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	ButtonFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Input: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	InputFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
}
