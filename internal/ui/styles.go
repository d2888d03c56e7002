// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"arena/internal/debate"
)

var (
	// Colors
	Cyan    = lipgloss.Color("#00FFFF")
	Green   = lipgloss.Color("#00FF00")
	Yellow  = lipgloss.Color("#FFD700")
	Orange  = lipgloss.Color("#FFA500")
	Red     = lipgloss.Color("#FF6B6B")
	Magenta = lipgloss.Color("#FF00FF")
	Dim     = lipgloss.Color("#555555")
	White   = lipgloss.Color("#FFFFFF")

	// Side colors
	AffirmativeColor = Green
	NegativeColor    = Red
	JudgeColor       = Magenta

	// Box styles
	ActiveBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan)

	InactiveBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Dim)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	SystemStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)

	// Status indicators
	StatusOK   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	StatusWarn = lipgloss.NewStyle().Foreground(Orange).Bold(true)
)

// RoleColor returns the color for a debate role
func RoleColor(r debate.Role) lipgloss.Color {
	switch r {
	case debate.RoleProponent:
		return AffirmativeColor
	case debate.RoleOpponent:
		return NegativeColor
	case debate.RoleJudge:
		return JudgeColor
	default:
		return White
	}
}

// RoleStyle returns the header style for a debate role
func RoleStyle(r debate.Role) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(RoleColor(r)).Bold(true)
}
