package sources

import (
	"context"

	"github.com/samvad-hq/skywatch-dashboard/pkg/httpclient"
)

// Fetcher retrieves the records for one kind of source.
// Concrete implementations live in type-specific files (e.g., apod.go).
// Fetch never returns an error: failures come back as an unavailable Result.
type Fetcher interface {
	Type() string
	Fetch(ctx context.Context, src Source) Result
}

// FetcherRegistry resolves the fetcher implementation for a given source config.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client
