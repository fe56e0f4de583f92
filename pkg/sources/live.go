package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// liveFetcher reads the telescope's current observation.
type liveFetcher struct {
	client HTTPClient
}

// NewLiveFetcher builds a fetcher for the live feed endpoint.
func NewLiveFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &liveFetcher{client: client}
}

func (f *liveFetcher) Type() string { return TypeLiveFeed }

func (f *liveFetcher) Fetch(ctx context.Context, src Source) Result {
	if !strings.EqualFold(src.Type, TypeLiveFeed) {
		return Fail(src.ID, ReasonMalformed, 0, fmt.Errorf("live fetcher received incompatible source type %q", src.Type))
	}

	var rec Record
	if u := fetchJSON(ctx, f.client, src, nil, &rec); u != nil {
		return Result{SourceID: src.ID, Unavailable: u}
	}
	if rec == nil {
		return Fail(src.ID, ReasonMalformed, http.StatusOK, fmt.Errorf("%s returned null body", src.ID))
	}
	if len(rec) == 0 {
		return Fail(src.ID, ReasonEmpty, http.StatusOK, fmt.Errorf("%s returned an empty object", src.ID))
	}
	return Ok(src.ID, []Record{rec})
}
