package domain

import "time"

// Domain contains the request-scoped entities shown on the dashboard.

// ObservationTimeLayout renders observation times, e.g. "2023-11-14 22:13:20 UTC".
const ObservationTimeLayout = "2006-01-02 15:04:05 UTC"

// LiveObservation is the telescope's current target as reported by the live feed.
type LiveObservation struct {
	Target     string
	ImageURL   string
	ObservedAt *time.Time
}

// ObservationTime formats ObservedAt in UTC, or returns "" when it is unknown.
func (o LiveObservation) ObservationTime() string {
	if o.ObservedAt == nil {
		return ""
	}
	return o.ObservedAt.UTC().Format(ObservationTimeLayout)
}

// DailyImageEntry is one Astronomy Picture of the Day entry.
type DailyImageEntry struct {
	Title        string
	ImageURL     string
	Explanation  string
	Date         string
	MediaType    string
	ThumbnailURL string
}

// IsVideo reports whether the entry points at a video rather than an image.
func (e DailyImageEntry) IsVideo() bool { return e.MediaType == "video" }

// DisplayImage returns the URL suitable for an image widget, or "" if there is none.
func (e DailyImageEntry) DisplayImage() string {
	if e.IsVideo() {
		return e.ThumbnailURL
	}
	return e.ImageURL
}

// MediaImage is one hit from the image library search.
type MediaImage struct {
	Title       string
	Description string
	ImageURL    string
}

// ComparisonPair is a fixed Hubble/Webb image set of the same object.
type ComparisonPair struct {
	Title     string
	HubbleURL string
	WebbURL   string
}
