// internal/cmd/serve.go
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arena/internal/debate"
	"arena/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve debates over a websocket",
	Long: `Start an HTTP server. Connecting to /ws?topic=&rounds=&rag= runs one
debate and streams each event as a JSON record. Only one debate runs at a
time.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	serveCmd.Flags().Bool("access-log", false, "log every HTTP request")
	serveCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	d := e.cfg.Debate
	defaults := server.Request{Topic: d.Topic, Rounds: d.Rounds, EnableRAG: d.EnableRAG}
	build := func(ctx context.Context, req server.Request) (*debate.Orchestrator, func(), error) {
		s, err := e.newSession(ctx, req.Topic, req.Rounds, req.EnableRAG)
		if err != nil {
			return nil, nil, err
		}
		return s.orch, s.Close, nil
	}

	accessLog, _ := cmd.Flags().GetBool("access-log")
	srv := server.New(build, defaults, e.logger, accessLog)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	return srv.Listen(e.cfg.Server.Addr)
}
