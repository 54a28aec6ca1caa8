package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Table and summary styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// Picker styles
	Title    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}{
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red

	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("39")),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// AvailabilityText returns styled runtime availability
func AvailabilityText(available bool) string {
	if available {
		return Styles.Success.Render("available")
	}
	return Styles.Danger.Render("unavailable")
}

// StatusText returns styled doctor check status
func StatusText(ok, warn bool) string {
	switch {
	case ok:
		return Styles.Success.Render("OK")
	case warn:
		return Styles.Warning.Render("WARN")
	default:
		return Styles.Danger.Render("FAIL")
	}
}
