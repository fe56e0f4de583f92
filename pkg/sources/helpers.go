package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// fetchJSON performs the GET and decodes a 200 body into out.
// The returned *Unavailable is nil on success.
func fetchJSON(ctx context.Context, client HTTPClient, src Source, query map[string]string, out any) *Unavailable {
	resp, err := client.Get(ctx, src.SourceURL, query, Headers(src))
	if err != nil {
		return &Unavailable{SourceID: src.ID, Reason: ReasonNetwork, Err: fmt.Errorf("fetch %s: %w", src.ID, withoutQuery(err, src.SourceURL))}
	}

	body := resp.Body()
	switch status := resp.StatusCode(); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Unavailable{
			SourceID:   src.ID,
			Reason:     ReasonCredentials,
			StatusCode: status,
			Err:        fmt.Errorf("%s returned status %d body: %s", src.ID, status, responseSnippet(body)),
		}
	case status != http.StatusOK:
		return &Unavailable{
			SourceID:   src.ID,
			Reason:     ReasonStatus,
			StatusCode: status,
			Err:        fmt.Errorf("%s returned status %d body: %s", src.ID, status, responseSnippet(body)),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &Unavailable{
			SourceID:   src.ID,
			Reason:     ReasonMalformed,
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("decode %s response: %w", src.ID, err),
		}
	}
	return nil
}

// withoutQuery strips the request URL reported by a transport error down to
// the configured source URL, so query credentials such as api_key never reach
// the logs.
func withoutQuery(err error, sourceURL string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redactURL(sourceURL), Err: urlErr.Err}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
