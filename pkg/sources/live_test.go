package sources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func liveSource() Source {
	return Source{ID: "hubble_live", Type: TypeLiveFeed, SourceURL: "https://hubblesite.org/api/v3/live"}
}

func TestLiveFetcherFetchSuccess(t *testing.T) {
	client := mockHTTPClient{
		t:         t,
		expectURL: "https://hubblesite.org/api/v3/live",
		body:      `{"target":"NGC 1300","image":"https://img.example/ngc1300.jpg","timestamp":1700000000}`,
	}

	res := NewLiveFetcher(client).Fetch(context.Background(), liveSource())
	if !res.Available() {
		t.Fatalf("expected available result, got %v", res.Unavailable)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	rec := res.Records[0]
	if got := rec.String("target", ""); got != "NGC 1300" {
		t.Errorf("unexpected target %q", got)
	}
	ts, ok := rec.Number("timestamp")
	if !ok || ts != json.Number("1700000000") {
		t.Errorf("expected timestamp kept as json.Number, got %v (%v)", ts, ok)
	}
}

func TestLiveFetcherNonSuccessStatusIsUnavailable(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		client := mockHTTPClient{t: t, status: status, body: "down"}
		res := NewLiveFetcher(client).Fetch(context.Background(), liveSource())
		if res.Available() {
			t.Fatalf("status %d: expected unavailable", status)
		}
		if res.Unavailable.Reason != ReasonStatus {
			t.Errorf("status %d: expected reason %q, got %q", status, ReasonStatus, res.Unavailable.Reason)
		}
		if res.Unavailable.StatusCode != status {
			t.Errorf("expected status %d recorded, got %d", status, res.Unavailable.StatusCode)
		}
	}
}

func TestLiveFetcherTransportErrorIsUnavailable(t *testing.T) {
	boom := errors.New("connection refused")
	client := mockHTTPClient{t: t, err: boom}

	res := NewLiveFetcher(client).Fetch(context.Background(), liveSource())
	if res.Available() {
		t.Fatal("expected unavailable result on transport error")
	}
	if res.Unavailable.Reason != ReasonNetwork {
		t.Fatalf("expected network reason, got %q", res.Unavailable.Reason)
	}
	if !errors.Is(res.Unavailable, boom) {
		t.Fatalf("expected wrapped transport error, got %v", res.Unavailable.Err)
	}
}

func TestLiveFetcherMalformedBody(t *testing.T) {
	for _, body := range []string{"<html>", `["not","an","object"]`, "null"} {
		client := mockHTTPClient{t: t, body: body}
		res := NewLiveFetcher(client).Fetch(context.Background(), liveSource())
		if res.Available() {
			t.Fatalf("body %q: expected unavailable", body)
		}
		if res.Unavailable.Reason != ReasonMalformed {
			t.Errorf("body %q: expected malformed reason, got %q", body, res.Unavailable.Reason)
		}
	}
}

func TestLiveFetcherRejectsOtherType(t *testing.T) {
	calls := 0
	client := mockHTTPClient{t: t, calls: &calls}
	res := NewLiveFetcher(client).Fetch(context.Background(), Source{ID: "x", Type: TypeAPOD, SourceURL: "https://example.com"})
	if res.Available() {
		t.Fatal("expected unavailable for mismatched type")
	}
	if calls != 0 {
		t.Fatalf("expected no request, got %d", calls)
	}
}

func TestRecordStringDefaults(t *testing.T) {
	rec := Record{"title": "", "count": json.Number("3"), "missing": nil}
	if got := rec.String("title", "fallback"); got != "" {
		t.Errorf("present empty string should be kept, got %q", got)
	}
	if got := rec.String("count", "fallback"); got != "fallback" {
		t.Errorf("non-string value should fall back, got %q", got)
	}
	if got := rec.String("missing", "fallback"); got != "fallback" {
		t.Errorf("null value should fall back, got %q", got)
	}
	if got := rec.String("absent", "fallback"); got != "fallback" {
		t.Errorf("absent key should fall back, got %q", got)
	}
}

func TestLiveFetcherEmptyObjectIsUnavailable(t *testing.T) {
	client := mockHTTPClient{t: t, body: `{}`}

	res := NewLiveFetcher(client).Fetch(context.Background(), liveSource())
	if res.Available() {
		t.Fatal("expected unavailable result for an empty object")
	}
	if res.Unavailable.Reason != ReasonEmpty || res.Unavailable.StatusCode != http.StatusOK {
		t.Fatalf("expected empty reason with status 200, got %+v", res.Unavailable)
	}
}
