package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "skywatch-dashboard/1.0"

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient whose every request is bounded by timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", defaultUserAgent)
	c.SetHeader("Accept", "application/json")
	return &RestyClient{client: c}
}

// Get performs an HTTP GET with the given query parameters and headers.
// Non-2xx responses are returned as responses, not errors.
func (r *RestyClient) Get(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
