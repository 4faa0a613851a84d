package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the calculator view.
type Styles struct {
	Title      lipgloss.Style
	Result     lipgloss.Style
	Error      lipgloss.Style
	Expression lipgloss.Style
	Muted      lipgloss.Style
	Help       lipgloss.Style
	Frame      lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Result:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87")),
		Expression: lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
	}
}
