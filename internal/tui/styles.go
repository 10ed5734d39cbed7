package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2D6A80")).
			Padding(0, 1).
			Width(displayWidth + 2)

	previousStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C7C7C")).
			Width(displayWidth).
			Align(lipgloss.Right)

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			Width(displayWidth).
			Align(lipgloss.Right)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8CA1AE")).
		Padding(0, 1)

	activeOpStyle = opStyle.
			Foreground(lipgloss.Color("#05090C")).
			Background(lipgloss.Color("#F6AE2D")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00BFFF")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A1A1AA")).
			Width(8)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)
)

const displayWidth = 24
