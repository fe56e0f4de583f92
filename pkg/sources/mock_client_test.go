package sources

import (
	"context"
	"testing"

	"github.com/samvad-hq/skywatch-dashboard/pkg/httpclient"
)

type mockHTTPClient struct {
	t         *testing.T
	expectURL string
	expectQry map[string]string
	status    int
	body      string
	err       error
	calls     *int
}

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

func (m mockHTTPClient) Get(_ context.Context, url string, query map[string]string, _ map[string]string) (httpclient.Response, error) {
	if m.calls != nil {
		*m.calls++
	}
	if m.expectURL != "" && url != m.expectURL {
		m.t.Fatalf("expected url %q, got %q", m.expectURL, url)
	}
	for key, want := range m.expectQry {
		if got := query[key]; got != want {
			m.t.Fatalf("expected query %s=%q, got %q", key, want, got)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}
