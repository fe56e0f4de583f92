package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/skywatch-dashboard/internal/config"
	"github.com/samvad-hq/skywatch-dashboard/internal/display"
	"github.com/samvad-hq/skywatch-dashboard/internal/logger"
	"github.com/samvad-hq/skywatch-dashboard/internal/refresh"
	"github.com/samvad-hq/skywatch-dashboard/internal/server"
	"github.com/samvad-hq/skywatch-dashboard/pkg/httpclient"
	"github.com/samvad-hq/skywatch-dashboard/pkg/sources"
)

// Renderer draws one complete page.
type Renderer interface {
	Render(ctx context.Context, surface display.Surface) (refresh.Summary, error)
}

// Dashboard represents the dashboard runtime. It alternates between
// rendering a full page and waiting for the refresh interval, and serves the
// latest page while it waits.
type Dashboard struct {
	renderer        Renderer
	board           *display.Board
	server          *server.Server
	refreshInterval time.Duration
	log             logger.Logger
	newCycleID      func() string
}

// NewDashboard builds a dashboard runtime from config.
func NewDashboard(cfg *config.Config, log logger.Logger) (*Dashboard, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	reg, err := loadSources(cfg.SourcesFile, log)
	if err != nil {
		return nil, err
	}
	enabled := reg.Enabled()
	ids := make([]string, 0, len(enabled))
	for _, src := range enabled {
		ids = append(ids, src.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count":   len(reg.All()),
		"enabled": ids,
	})

	if cfg.NASAAPIKey == "" {
		log.WarnObj("NASA_API_KEY not set; using shared demo key with reduced rate limits", "api_key", sources.DemoAPIKey)
	}

	client := httpclient.NewRestyClient(cfg.HTTPTimeout)
	fetchers := sources.DefaultFetcherRegistry(client, cfg.NASAAPIKey)
	board := display.NewBoard()

	return &Dashboard{
		renderer:        refresh.NewService(reg, fetchers, log),
		board:           board,
		server:          server.New(cfg.BindAddr, board, cfg.RefreshInterval, log),
		refreshInterval: cfg.RefreshInterval,
		log:             log,
		newCycleID:      uuid.NewString,
	}, nil
}

// loadSources reads the sources file, falling back to the built-in sources when it does not exist.
func loadSources(path string, log logger.Logger) (*sources.Registry, error) {
	if path == "" {
		return sources.DefaultRegistry(), nil
	}
	reg, err := sources.LoadRegistry(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.InfoObj("sources file not found; using built-in sources", "sources_file", path)
		return sources.DefaultRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	return reg, nil
}

// Board exposes the published pages.
func (d *Dashboard) Board() *display.Board { return d.board }

// Run renders immediately, then waits refreshInterval after each completed
// cycle before rendering again, until the context is cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	if d == nil || d.renderer == nil {
		return fmt.Errorf("dashboard is not initialized")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	if d.server != nil {
		go func() {
			serverErr <- d.server.Run(ctx)
		}()
	}

	d.log.InfoObj("refresh loop starting", "dashboard_state", map[string]any{
		"refresh_interval": d.refreshInterval.String(),
	})

	for {
		if err := d.runOnce(ctx); err != nil && ctx.Err() == nil {
			d.log.ErrorObj("refresh cycle failed", "error", err.Error())
		}

		timer := time.NewTimer(d.refreshInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			d.log.InfoObj("refresh loop exiting", "reason", ctx.Err().Error())
			return d.waitServer(serverErr)
		case err := <-serverErr:
			timer.Stop()
			if err != nil {
				return fmt.Errorf("display server: %w", err)
			}
			return nil
		case <-timer.C:
		}
	}
}

func (d *Dashboard) waitServer(serverErr <-chan error) error {
	if d.server == nil {
		return nil
	}
	if err := <-serverErr; err != nil {
		return fmt.Errorf("display server: %w", err)
	}
	return nil
}

// runOnce renders one page and publishes it. A cycle cut short by
// cancellation is discarded so viewers keep the last complete page.
func (d *Dashboard) runOnce(ctx context.Context) error {
	cycleID := d.newCycleID()
	start := time.Now()
	d.log.DebugObj("refresh started", "refresh_meta", map[string]any{
		"cycle_id":   cycleID,
		"started_at": start.UTC(),
	})

	page := display.NewPage(cycleID)
	summary, err := d.renderer.Render(ctx, page)
	if err != nil {
		return fmt.Errorf("render cycle %s: %w", cycleID, err)
	}
	d.board.Publish(page)

	d.log.InfoObj("refresh completed", "refresh_meta", map[string]any{
		"cycle_id":    cycleID,
		"sections":    summary.Sections,
		"unavailable": summary.Unavailable(),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}
