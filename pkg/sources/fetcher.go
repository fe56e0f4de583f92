package sources

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/skywatch-dashboard/pkg/httpclient"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByType map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry keyed by each fetcher's Type.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByType: make(map[string]Fetcher),
	}
	for _, f := range fetchers {
		reg.register(f)
	}
	return reg
}

func (r *fetcherRegistry) register(f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(f.Type()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByType[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given source based on its type.
func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	typeKey := strings.ToLower(strings.TrimSpace(src.Type))
	if f, ok := r.fetchersByType[typeKey]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.ID, src.Type)
}

const defaultHTTPTimeout = 15 * time.Second

// DefaultHTTPClient returns a resty-backed client for source fetchers.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(defaultHTTPTimeout) }

// DefaultFetcherRegistry wires up the known source fetchers.
func DefaultFetcherRegistry(client HTTPClient, apiKey string) FetcherRegistry {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return NewFetcherRegistry(
		NewLiveFetcher(client),
		NewAPODFetcher(client, apiKey),
		NewMediaSearchFetcher(client),
	)
}
