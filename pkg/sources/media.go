package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// mediaSearchFetcher queries the NASA image library and flattens the first hits.
type mediaSearchFetcher struct {
	client HTTPClient
}

// NewMediaSearchFetcher builds a fetcher for the image search endpoint.
func NewMediaSearchFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &mediaSearchFetcher{client: client}
}

func (f *mediaSearchFetcher) Type() string { return TypeMediaSearch }

type searchResponse struct {
	Collection struct {
		Items []searchItem `json:"items"`
	} `json:"collection"`
}

type searchItem struct {
	Data  []Record `json:"data"`
	Links []Record `json:"links"`
}

// Keys of the flattened media search records.
const (
	MediaTitleKey       = "title"
	MediaDescriptionKey = "description"
	MediaHrefKey        = "href"
)

func (f *mediaSearchFetcher) Fetch(ctx context.Context, src Source) Result {
	if !strings.EqualFold(src.Type, TypeMediaSearch) {
		return Fail(src.ID, ReasonMalformed, 0, fmt.Errorf("media search fetcher received incompatible source type %q", src.Type))
	}

	query := map[string]string{
		"q":          ConfigString(src, ConfigQueryKey, "James Webb Telescope"),
		"media_type": ConfigString(src, ConfigMediaTypeKey, "image"),
	}
	limit := ConfigInt(src, ConfigLimitKey, DefaultMediaLimit)
	if limit < 1 {
		limit = DefaultMediaLimit
	}

	var resp searchResponse
	if u := fetchJSON(ctx, f.client, src, query, &resp); u != nil {
		return Result{SourceID: src.ID, Unavailable: u}
	}

	items := resp.Collection.Items
	if len(items) == 0 {
		return Fail(src.ID, ReasonEmpty, http.StatusOK, fmt.Errorf("%s search returned no items", src.ID))
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return Ok(src.ID, flattenSearchItems(items))
}

// flattenSearchItems keeps data[0].title, data[0].description and links[0].href of each item.
func flattenSearchItems(items []searchItem) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		rec := Record{}
		if len(item.Data) > 0 && item.Data[0] != nil {
			for _, key := range []string{MediaTitleKey, MediaDescriptionKey} {
				if v, ok := item.Data[0][key]; ok {
					rec[key] = v
				}
			}
		}
		if len(item.Links) > 0 && item.Links[0] != nil {
			if v, ok := item.Links[0][MediaHrefKey]; ok {
				rec[MediaHrefKey] = v
			}
		}
		out = append(out, rec)
	}
	return out
}
