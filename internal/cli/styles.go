package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")) // pink

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Underline(true)

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	docBlockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)
