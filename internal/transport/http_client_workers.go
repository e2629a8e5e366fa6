//go:build js && wasm

package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/syumai/workers/cloudflare/fetch"
)

// WorkersHTTPClient implements HTTPClient on top of the Cloudflare Workers
// fetch API.
type WorkersHTTPClient struct {
	client  *fetch.Client
	timeout time.Duration
}

// NewHTTPClient creates the Workers transport.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &WorkersHTTPClient{
		client:  fetch.NewClient(),
		timeout: timeout,
	}
}

// Do performs req through fetch. Credentials travel as headers; the Workers
// runtime has no cookie jar.
func (c *WorkersHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fetchReq, err := fetch.NewRequest(ctx, req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		for _, value := range values {
			fetchReq.Header.Add(key, value)
		}
	}

	return c.client.Do(fetchReq, nil)
}
