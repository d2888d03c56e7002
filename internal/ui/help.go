// internal/ui/help.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Yellow).
				MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(White)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(Dim)
)

// HelpContent returns the formatted help overlay content
func HelpContent(width, height int) string {
	var content strings.Builder

	content.WriteString(helpTitleStyle.Render("ARENA HELP"))
	content.WriteString("\n\n")

	content.WriteString(helpSectionStyle.Render("KEYBINDINGS"))
	content.WriteString("\n\n")

	keybindings := []struct {
		key  string
		desc string
	}{
		{"↑/↓ PgUp/PgDn", "Scroll the arena"},
		{"F1 / ?", "Toggle this help overlay"},
		{"Esc", "Close help"},
		{"q / Ctrl+C", "Stop the debate and quit"},
	}
	for _, kb := range keybindings {
		key := helpKeyStyle.Width(16).Render(kb.key)
		content.WriteString("  " + key + "  " + helpDescStyle.Render(kb.desc) + "\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("AGENT STATUS"))
	content.WriteString("\n\n")

	for _, s := range []AgentStatus{StatusIdle, StatusListening, StatusSpeaking, StatusDone} {
		symbol := lipgloss.NewStyle().Width(3).Render(statusIndicator(s))
		content.WriteString("  " + symbol + "  " + helpDescStyle.Render(s.String()) + "\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("DEBATE FORMAT"))
	content.WriteString("\n\n")

	protocol := []string{
		"1. Opening statements from both sides",
		"2. Rebuttal rounds, each preceded by a summary of the debate so far",
		"3. Closing statements",
		"4. The judge weighs the key points of each side",
	}
	for _, line := range protocol {
		content.WriteString("  " + helpDimStyle.Render(line) + "\n")
	}

	content.WriteString("\n")
	footer := helpDimStyle.Render("Press F1 or Esc to close this help")
	content.WriteString(lipgloss.PlaceHorizontal(max(width-8, 0), lipgloss.Center, footer))

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 3).
		MaxWidth(max(width-10, 20)).
		MaxHeight(max(height-4, 10))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlayStyle.Render(content.String()),
	)
}
