package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber
	Secondary = lipgloss.Color("#7C3AED") // Violet
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	UsernameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	AnnouncementStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Error)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1)

	PlayingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success)

	PausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Muted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Chat log box
var LogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Muted).
	Padding(0, 1)
