package sources

import (
	"context"
	"net/http"
	"testing"
)

const sampleAPOD = `[
  {"title":"Pillars of Creation","url":"https://apod.example/pillars.jpg","explanation":"Columns of gas.","date":"2024-01-02","media_type":"image"},
  {"title":"Orion Flythrough","url":"https://youtube.example/embed/x","date":"2024-01-01","media_type":"video","thumbnail_url":"https://img.example/x.jpg"},
  null
]`

func apodSource(count any) Source {
	src := Source{ID: "nasa_apod", Type: TypeAPOD, SourceURL: "https://api.nasa.gov/planetary/apod", Config: map[string]any{}}
	if count != nil {
		src.Config[ConfigCountKey] = count
	}
	return src
}

func TestAPODFetcherSendsKeyAndCount(t *testing.T) {
	client := mockHTTPClient{
		t:         t,
		expectURL: "https://api.nasa.gov/planetary/apod",
		expectQry: map[string]string{"api_key": "secret", "count": "10", "thumbs": "true"},
		body:      sampleAPOD,
	}

	res := NewAPODFetcher(client, "secret").Fetch(context.Background(), apodSource(10))
	if !res.Available() {
		t.Fatalf("expected available, got %v", res.Unavailable)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected null entries dropped, got %d records", len(res.Records))
	}
	if res.Records[0].String("title", "") != "Pillars of Creation" || res.Records[1].String("title", "") != "Orion Flythrough" {
		t.Fatalf("expected server order preserved, got %v", res.Records)
	}
}

func TestAPODFetcherDefaultsCountAndDemoKey(t *testing.T) {
	client := mockHTTPClient{
		t:         t,
		expectQry: map[string]string{"api_key": DemoAPIKey, "count": "5"},
		body:      `[]`,
	}

	res := NewAPODFetcher(client, "  ").Fetch(context.Background(), apodSource(nil))
	if !res.Available() {
		t.Fatalf("expected available, got %v", res.Unavailable)
	}
	if len(res.Records) != 0 {
		t.Fatalf("expected empty records, got %d", len(res.Records))
	}
}

func TestAPODFetcherCredentialRejection(t *testing.T) {
	client := mockHTTPClient{t: t, status: http.StatusForbidden, body: `{"error":{"code":"API_KEY_INVALID"}}`}

	res := NewAPODFetcher(client, "bad").Fetch(context.Background(), apodSource(nil))
	if res.Available() {
		t.Fatal("expected unavailable on 403")
	}
	if res.Unavailable.Reason != ReasonCredentials {
		t.Fatalf("expected credentials reason, got %q", res.Unavailable.Reason)
	}
}

func TestAPODFetcherObjectBodyIsMalformed(t *testing.T) {
	client := mockHTTPClient{t: t, body: `{"title":"single"}`}

	res := NewAPODFetcher(client, "k").Fetch(context.Background(), apodSource(nil))
	if res.Available() || res.Unavailable.Reason != ReasonMalformed {
		t.Fatalf("expected malformed result, got %+v", res.Unavailable)
	}
}
