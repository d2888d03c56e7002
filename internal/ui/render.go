// internal/ui/render.go
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arena/internal/debate"
)

const (
	headerHeight = 2
	agentsHeight = 3

	// messages shown per side column
	sideVisible = 6
)

func renderHeader(d *Dashboard, width int) string {
	title := TitleStyle.Render("DEBATE ARENA")
	topic := DimStyle.Width(width).Render("❝ " + d.Topic + " ❞")
	return title + "\n" + topic
}

// renderArena lays out the Affirmative column, the timeline and judge
// column, and the Negative column side by side
func renderArena(d *Dashboard, width int) string {
	side := width * 5 / 14
	mid := width - 2*side
	if side < 20 || mid < 16 {
		// Too narrow for columns, stack them
		return strings.Join([]string{
			renderSide(d, debate.RoleProponent, width),
			renderMiddle(d, width),
			renderSide(d, debate.RoleOpponent, width),
		}, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderSide(d, debate.RoleProponent, side),
		renderMiddle(d, mid),
		renderSide(d, debate.RoleOpponent, side),
	)
}

func renderSide(d *Dashboard, role debate.Role, width int) string {
	inner := max(width-4, 8)
	var sb strings.Builder

	sb.WriteString(RoleStyle(role).Render("● " + role.DisplayName()))
	sb.WriteString("\n\n")

	msgs := d.Messages(role)
	if len(msgs) == 0 {
		sb.WriteString(DimStyle.Italic(true).Render("Waiting for first turn…"))
	} else {
		if len(msgs) > sideVisible {
			msgs = msgs[len(msgs)-sideVisible:]
		}
		for i, m := range msgs {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderBubble(m, inner))
		}
	}

	return InactiveBox.Width(inner).Render(sb.String())
}

func renderBubble(m debate.Message, width int) string {
	header := RoleStyle(m.Role).Render(fmt.Sprintf("%s (%s)", m.Speaker, m.Role))
	body := lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(m.Text))
	return header + "\n" + body
}

func renderMiddle(d *Dashboard, width int) string {
	inner := max(width-4, 8)
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Stage & Judge"))
	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("Timeline"))
	sb.WriteString("\n")

	timeline := d.Timeline()
	if len(timeline) == 0 {
		sb.WriteString(DimStyle.Italic(true).Render("No events yet."))
		sb.WriteString("\n")
	}
	for _, entry := range timeline {
		line := lipgloss.NewStyle().Width(inner).Render("• " + entry)
		if muted(entry) {
			line = DimStyle.Italic(true).Width(inner).Render("• " + entry)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("Judge"))
	sb.WriteString("\n")
	if m, ok := d.LastJudge(); ok {
		sb.WriteString(renderBubble(m, inner))
	} else {
		sb.WriteString(DimStyle.Italic(true).Render("No judge output yet."))
	}

	return ActiveBox.Width(inner).Render(sb.String())
}

func renderAgents(d *Dashboard, spin string, width int) string {
	parts := make([]string, 0, 4)
	for _, role := range []debate.Role{debate.RoleProponent, debate.RoleOpponent, debate.RoleJudge} {
		status := d.Statuses[role]
		parts = append(parts, fmt.Sprintf("%s %s %s",
			statusIndicator(status), RoleStyle(role).Render(role.DisplayName()), DimStyle.Render(status.String())))
	}

	system := SystemStyle.Render(d.System)
	switch {
	case d.Failed:
		system = ErrorStyle.Render(d.System)
	case !d.Finished:
		system = spin + " " + system
	}
	parts = append(parts, system)

	return InactiveBox.Width(max(width-2, 10)).Render(strings.Join(parts, "   "))
}

func statusIndicator(s AgentStatus) string {
	switch s {
	case StatusSpeaking:
		return StatusWarn.Render("●")
	case StatusListening:
		return DimStyle.Render("○")
	case StatusDone:
		return StatusOK.Render("✓")
	default: // Idle
		return DimStyle.Render("·")
	}
}
