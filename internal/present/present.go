package present

import (
	"fmt"

	"github.com/samvad-hq/skywatch-dashboard/internal/display"
	"github.com/samvad-hq/skywatch-dashboard/pkg/sources"
)

// Warnings shown in place of a section whose source is unavailable.
const (
	LiveUnavailable  = "Hubble live feed is currently unavailable."
	DailyUnavailable = "NASA space images are currently unavailable."
	MediaUnavailable = "No new Webb telescope images available."
)

// Presenter draws one section from a fetch result.
type Presenter interface {
	Present(s display.Surface, res sources.Result)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(s display.Surface, res sources.Result)

func (f PresenterFunc) Present(s display.Surface, res sources.Result) { f(s, res) }

// ForType returns the presenter for a source type.
func ForType(typ string) (Presenter, error) {
	switch typ {
	case sources.TypeLiveFeed:
		return PresenterFunc(Live), nil
	case sources.TypeAPOD:
		return PresenterFunc(Daily), nil
	case sources.TypeMediaSearch:
		return PresenterFunc(Media), nil
	default:
		return nil, fmt.Errorf("no presenter for source type %q", typ)
	}
}

// Live draws the current observation. An unavailable feed or an empty
// payload yields the warning and nothing else.
func Live(s display.Surface, res sources.Result) {
	if !res.Available() || len(res.Records) == 0 || len(res.Records[0]) == 0 {
		s.Warning(LiveUnavailable)
		return
	}

	obs := LiveObservationFrom(res.Records[0])
	s.Heading("Currently Observing: " + obs.Target)
	if obs.ImageURL != "" {
		s.Image(obs.ImageURL, "Hubble's Live View - "+obs.Target)
	}
	if ts := obs.ObservationTime(); ts != "" {
		s.Field("📅", "Observation Time", ts)
	}
}

// Daily draws the APOD entries in the order the server returned them.
func Daily(s display.Surface, res sources.Result) {
	if !res.Available() {
		s.Warning(DailyUnavailable)
		return
	}

	for _, rec := range res.Records {
		entry := DailyEntryFrom(rec)
		s.Heading(entry.Title)
		if src := entry.DisplayImage(); src != "" {
			s.Image(src, fmt.Sprintf("%s (%s)", entry.Title, entry.Date))
		}
		if entry.IsVideo() && entry.ImageURL != "" {
			s.Link("Watch video", entry.ImageURL)
		}
		s.Field("📅", "Observation Date", entry.Date)
		s.Field("📝", "Description", entry.Explanation)
		s.Divider()
	}
}

// Media draws the image search hits. No hits counts as nothing new.
func Media(s display.Surface, res sources.Result) {
	if !res.Available() || len(res.Records) == 0 {
		s.Warning(MediaUnavailable)
		return
	}

	for _, rec := range res.Records {
		img := MediaImageFrom(rec)
		s.Heading(img.Title)
		if img.ImageURL != "" {
			s.Image(img.ImageURL, img.Title)
		}
		s.Field("📝", "Description", img.Description)
		s.Divider()
	}
}
