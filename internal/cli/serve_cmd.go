package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/learnhub/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to LEARNHUB_HTTP_ADDR)")
	return cmd
}

// serve runs the API until ctx is cancelled or the listener fails.
func serve(ctx context.Context, app *App, addr string) error {
	if addr == "" {
		addr = app.HTTPAddr
	}
	logger := app.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := server.New(server.Deps{
		Chat:        app.Chat,
		Dispatcher:  app.Dispatcher,
		Logs:        app.Logs,
		Catalog:     app.Catalog,
		Logger:      logger,
		CORSOrigins: app.CORSOrigins,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(addr) }()
	if app.Chat == nil {
		logger.Warn("LLM disabled, /chat will answer 503")
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return <-errc
	}
}
