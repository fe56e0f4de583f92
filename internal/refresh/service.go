package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/skywatch-dashboard/internal/display"
	"github.com/samvad-hq/skywatch-dashboard/internal/logger"
	"github.com/samvad-hq/skywatch-dashboard/internal/present"
	"github.com/samvad-hq/skywatch-dashboard/pkg/sources"
)

const (
	PageTitle        = "Hubble vs Webb & Live Feed"
	PageIcon         = "🔭"
	PageHeader       = "🔭 Hubble vs Webb Telescope & Live Observations"
	ComparisonHeader = "🔭 Hubble vs Webb Telescope Comparison"
)

// stageOrder fixes the section order regardless of the sources file layout.
var stageOrder = []string{sources.TypeLiveFeed, sources.TypeAPOD, sources.TypeMediaSearch}

var sectionIcons = map[string]string{
	sources.TypeLiveFeed:    "📡",
	sources.TypeAPOD:        "🛰️",
	sources.TypeMediaSearch: "🔭",
}

// SectionStatus summarizes one fetched section.
type SectionStatus struct {
	SourceID  string         `json:"source_id"`
	Type      string         `json:"type"`
	Available bool           `json:"available"`
	Reason    sources.Reason `json:"reason,omitempty"`
	Records   int            `json:"records"`
	ElapsedMs int64          `json:"elapsed_ms"`
}

// Summary describes a completed cycle.
type Summary struct {
	Sections []SectionStatus `json:"sections"`
}

// Unavailable counts the sections that could not be fetched.
func (s Summary) Unavailable() int {
	n := 0
	for _, sec := range s.Sections {
		if !sec.Available {
			n++
		}
	}
	return n
}

// Service draws one full dashboard page per call.
type Service struct {
	sources  *sources.Registry
	registry sources.FetcherRegistry
	log      logger.Logger
}

// NewService wires the refresh cycle with its sources and fetchers.
func NewService(srcs *sources.Registry, reg sources.FetcherRegistry, log logger.Logger) *Service {
	return &Service{
		sources:  srcs,
		registry: reg,
		log:      logger.Ensure(log),
	}
}

// Render fetches and draws every enabled section in order, then the
// comparison table. Stages run strictly one after another. A cancelled
// context aborts the cycle with ctx.Err(); source failures never do.
func (s *Service) Render(ctx context.Context, surface display.Surface) (Summary, error) {
	if s == nil || s.registry == nil || s.sources == nil {
		return Summary{}, fmt.Errorf("refresh service is not initialized")
	}
	if surface == nil {
		return Summary{}, fmt.Errorf("surface must not be nil")
	}

	surface.Title(PageTitle, PageIcon)
	surface.Header(PageHeader)

	var summary Summary
	for _, typ := range stageOrder {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		src, ok := s.sources.ByType(typ)
		if !ok || !src.EnabledValue() {
			continue
		}

		status, err := s.renderSection(ctx, surface, src)
		if err != nil {
			return summary, err
		}
		summary.Sections = append(summary.Sections, status)
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	surface.Subheader(ComparisonHeader)
	present.Comparisons(surface)

	return summary, nil
}

func (s *Service) renderSection(ctx context.Context, surface display.Surface, src sources.Source) (SectionStatus, error) {
	fetcher, err := s.registry.FetcherFor(src)
	if err != nil {
		return SectionStatus{}, fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}
	presenter, err := present.ForType(src.Type)
	if err != nil {
		return SectionStatus{}, fmt.Errorf("resolve presenter for source %s: %w", src.ID, err)
	}

	start := time.Now()
	res := fetcher.Fetch(ctx, src)
	status := SectionStatus{
		SourceID:  src.ID,
		Type:      src.Type,
		Available: res.Available(),
		Records:   len(res.Records),
		ElapsedMs: time.Since(start).Milliseconds(),
	}

	if !res.Available() {
		status.Reason = res.Unavailable.Reason
		s.log.WarnObj("source unavailable", "source_error", map[string]any{
			"source_id":   src.ID,
			"reason":      res.Unavailable.Reason,
			"status_code": res.Unavailable.StatusCode,
			"error":       res.Unavailable.Error(),
		})
	}

	surface.Subheader(sectionIcons[src.Type] + " " + src.Name)
	presenter.Present(surface, res)
	return status, nil
}
