package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/skywatch-dashboard/internal/app"
	"github.com/samvad-hq/skywatch-dashboard/internal/config"
	"github.com/samvad-hq/skywatch-dashboard/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skywatch-dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("dashboard starting", "config", cfg.Redacted())

	dashboard, err := app.NewDashboard(cfg, log)
	if err != nil {
		log.ErrorObj("dashboard setup failed", "error", err.Error())
		return fmt.Errorf("setup dashboard: %w", err)
	}

	// The display server and refresh loop share one context; either signal
	// stops the wait between cycles and drains in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.InfoObj("serving dashboard", "display", map[string]any{
		"bind_addr":        cfg.BindAddr,
		"refresh_interval": cfg.RefreshInterval.String(),
		"sources_file":     cfg.SourcesFile,
	})

	err = dashboard.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		log.InfoObj("dashboard stopped", "reason", shutdownReason(ctx))
		return nil
	default:
		log.ErrorObj("dashboard stopped with error", "error", err.Error())
		return fmt.Errorf("run dashboard: %w", err)
	}
}

// shutdownReason names why the run loop ended.
func shutdownReason(ctx context.Context) string {
	if ctx.Err() != nil {
		return "signal"
	}
	return "server closed"
}
