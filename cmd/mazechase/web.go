package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/storage"
	"github.com/vovakirdan/tui-mazechase/internal/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve scores over HTTP",
	Long: `Start a read-only JSON API over the scores database.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/games/{mode}
  GET /api/games/{mode}/scores?limit=N
  GET /api/games/{mode}/rounds?limit=N
  GET /api/games/{mode}/levels

Examples:
  mazechase web
  mazechase web --http :9000 --db ./scores.db`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", web.DefaultServerConfig().Address, "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()
	if err := setup(logger); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(web.ServerConfig{Address: flagHTTPAddr}, store, logger.WithPrefix("mazechase-web"))
	return server.ListenAndServe(ctx)
}
