package cmd

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for command output.
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	styleDir = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#60A5FA"))

	styleNote = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB"))

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	styleValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	styleErr = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F87171"))
)
