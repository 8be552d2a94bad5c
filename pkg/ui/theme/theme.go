package theme

import "github.com/charmbracelet/lipgloss"

// Styles defines the styled glyphs and text styles used in command output.
var Styles = struct {
	Checkmark lipgloss.Style
	XMark     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}{
	Checkmark: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓"),
	XMark:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")).SetString("✗"),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
}
