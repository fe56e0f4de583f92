package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DemoAPIKey is NASA's shared, rate limited key used when none is configured.
const DemoAPIKey = "DEMO_KEY"

// apodFetcher pulls a batch of random Astronomy Picture of the Day entries.
type apodFetcher struct {
	client HTTPClient
	apiKey string
}

// NewAPODFetcher builds a fetcher for the APOD endpoint. An empty apiKey falls back to DemoAPIKey.
func NewAPODFetcher(client HTTPClient, apiKey string) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		apiKey = DemoAPIKey
	}
	return &apodFetcher{client: client, apiKey: apiKey}
}

func (f *apodFetcher) Type() string { return TypeAPOD }

func (f *apodFetcher) Fetch(ctx context.Context, src Source) Result {
	if !strings.EqualFold(src.Type, TypeAPOD) {
		return Fail(src.ID, ReasonMalformed, 0, fmt.Errorf("apod fetcher received incompatible source type %q", src.Type))
	}

	count := ConfigInt(src, ConfigCountKey, DefaultAPODCount)
	if count < 1 || count > MaxAPODCount {
		count = DefaultAPODCount
	}
	query := map[string]string{
		"api_key": f.apiKey,
		"count":   strconv.Itoa(count),
		"thumbs":  "true",
	}

	var records []Record
	if u := fetchJSON(ctx, f.client, src, query, &records); u != nil {
		return Result{SourceID: src.ID, Unavailable: u}
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return Ok(src.ID, out)
}
