// internal/cmd/printer.go
package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"arena/internal/debate"
	"arena/internal/ui"
)

var (
	stageStyle  = lipgloss.NewStyle().Bold(true).Foreground(ui.Cyan)
	statusStyle = lipgloss.NewStyle().Foreground(ui.Yellow)
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(ui.Green)
)

// printer writes events as plain terminal text
type printer struct {
	w io.Writer
}

func (p printer) print(ev debate.Event) {
	switch e := ev.(type) {
	case debate.StageStarted:
		fmt.Fprintf(p.w, "\n%s\n\n", stageStyle.Render("=== "+e.Name+" ==="))
	case debate.Status:
		fmt.Fprintln(p.w, statusStyle.Render("["+e.Text+"]"))
	case debate.Message:
		fmt.Fprintf(p.w, "%s:\n%s\n\n", ui.RoleStyle(e.Role).Render(fmt.Sprintf("%s (%s)", e.Speaker, e.Role)), e.Text)
	case debate.Done:
		fmt.Fprintf(p.w, "\n%s\n", doneStyle.Render("✅ Debate complete."))
	}
}
