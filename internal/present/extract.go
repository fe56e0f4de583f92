package present

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/skywatch-dashboard/internal/domain"
	"github.com/samvad-hq/skywatch-dashboard/pkg/sources"
)

// Placeholders substituted for absent fields.
const (
	UnknownObject      = "Unknown Object"
	UnknownObservation = "Unknown Observation"
	NoDetails          = "No details available."
)

// LiveObservationFrom extracts the live feed fields, defaulting what is absent.
func LiveObservationFrom(rec sources.Record) domain.LiveObservation {
	obs := domain.LiveObservation{
		Target:   rec.String("target", UnknownObject),
		ImageURL: rec.String("image", ""),
	}
	if num, ok := rec.Number("timestamp"); ok {
		if t, ok := epochTime(num); ok {
			obs.ObservedAt = &t
		}
	}
	return obs
}

// DailyEntryFrom extracts one APOD entry, defaulting what is absent.
func DailyEntryFrom(rec sources.Record) domain.DailyImageEntry {
	return domain.DailyImageEntry{
		Title:        rec.String("title", UnknownObservation),
		ImageURL:     rec.String("url", ""),
		Explanation:  rec.String("explanation", NoDetails),
		Date:         rec.String("date", ""),
		MediaType:    rec.String("media_type", ""),
		ThumbnailURL: rec.String("thumbnail_url", ""),
	}
}

// MediaImageFrom extracts one search hit. Descriptions are reduced to plain text.
func MediaImageFrom(rec sources.Record) domain.MediaImage {
	return domain.MediaImage{
		Title:       rec.String(sources.MediaTitleKey, UnknownObservation),
		Description: plainText(rec.String(sources.MediaDescriptionKey, NoDetails)),
		ImageURL:    rec.String(sources.MediaHrefKey, ""),
	}
}

// Epoch seconds of 0001-01-01 and 9999-12-31T23:59:59 UTC. Timestamps outside
// this range cannot be shown in the observation time layout.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// epochTime converts epoch seconds (integral or fractional) to UTC.
func epochTime(num json.Number) (time.Time, bool) {
	if secs, err := num.Int64(); err == nil {
		if secs < minEpochSeconds || secs > maxEpochSeconds {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || f < minEpochSeconds || f > maxEpochSeconds {
		return time.Time{}, false
	}
	whole, frac := math.Modf(f)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC(), true
}

// plainText strips markup and collapses whitespace. Text without tags is returned unchanged.
func plainText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return NoDetails
	}
	return text
}
