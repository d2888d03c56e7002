// internal/cmd/run.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"arena/internal/export"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a debate and print it to the terminal",
	Long: `Run a debate and print every stage, status and argument as it is
produced. With --markdown the finished debate is also rendered as markdown.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	debateFlags(runCmd)
	runCmd.Flags().Bool("markdown", false, "render the debate as markdown when it ends")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	markdown, _ := cmd.Flags().GetBool("markdown")
	return runDebate(ctx, e, printer{w: cmd.OutOrStdout()}, markdown)
}

// runDebate streams one debate through p. All events produced before a
// failure are printed before the error is returned to the caller.
func runDebate(ctx context.Context, e *env, p printer, markdown bool) error {
	d := e.cfg.Debate
	s, err := e.newSession(ctx, d.Topic, d.Rounds, d.EnableRAG)
	if err != nil {
		return err
	}
	defer s.Close()

	var rec *export.Recorder
	if markdown {
		rec = export.NewRecorder(s.orch.RunID(), d.Topic, d.Rounds)
	}

	for ev, err := range s.orch.Run(ctx, s.rounds) {
		if err != nil {
			if rec != nil {
				rec.Fail(err)
				renderMarkdown(p, rec)
			}
			return err
		}
		p.print(ev)
		if rec != nil {
			rec.Observe(ev)
		}
	}

	if rec != nil {
		renderMarkdown(p, rec)
	}
	return nil
}

func renderMarkdown(p printer, rec *export.Recorder) {
	md := export.ExportDebate(rec.Export())
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Fprint(p.w, out)
			return
		}
	}
	fmt.Fprint(p.w, md)
}
