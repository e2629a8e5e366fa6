package transport

import "net/http"

// HTTPClient is the single operation the API client needs from a transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
