package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/bugalert/internal/api"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start an HTTP server exposing the bugalert analysis engine.

Endpoints:
  GET  /health        Health check
  POST /api/analyze   Analyze code sent as JSON {"code", "filename"}
  POST /api/upload    Analyze an uploaded file (multipart field "file")
  GET  /api/sample    Built-in sample program
  GET  /api/ws        WebSocket for interactive analysis
  GET  /metrics       Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}

	f := cmd.Flags()
	f.StringP("addr", "a", "127.0.0.1", "address to listen on")
	f.IntP("port", "p", 6142, "port to listen on")
	f.Duration("delay", 0, "simulated latency between the WebSocket analyzing and result messages")
	a.bind("server.addr", f.Lookup("addr"))
	a.bind("server.port", f.Lookup("port"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")

	srv := api.New(api.Options{
		Addr:     a.cfg.Server.Listen(),
		Scorer:   a.newScorer(),
		Logger:   a.logger,
		MaxBytes: a.cfg.Input.MaxBytes,
		Delay:    delay,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
