// internal/cmd/tui.go
package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"arena/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run a debate in the live dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	debateFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	d := e.cfg.Debate
	s, err := e.newSession(ctx, d.Topic, d.Rounds, d.EnableRAG)
	if err != nil {
		return err
	}
	defer s.Close()

	model := ui.New(d.Topic, s.orch.Run(ctx, s.rounds), cancel)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
