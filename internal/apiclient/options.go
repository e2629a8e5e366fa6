package apiclient

import (
	"errors"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/dvcrn/hrms-api-client/internal/navigation"
	"github.com/dvcrn/hrms-api-client/internal/session"
	"github.com/dvcrn/hrms-api-client/internal/transport"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPClient replaces the transport used to send requests.
func WithHTTPClient(h transport.HTTPClient) Option {
	return func(c *Client) error {
		if h == nil {
			return errors.New("http client must not be nil")
		}
		c.http = h
		return nil
	}
}

// WithSession sets the store the bearer token is read from and cleared in.
func WithSession(s session.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return errors.New("session store must not be nil")
		}
		c.session = s
		return nil
	}
}

// WithNavigator sets where the login redirect is sent on 401.
func WithNavigator(n navigation.Navigator) Option {
	return func(c *Client) error {
		if n == nil {
			return errors.New("navigator must not be nil")
		}
		c.navigator = n
		return nil
	}
}

// WithLogger replaces the process-wide logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.log = l
		return nil
	}
}

// WithTimeout sets the default per-attempt timeout. Individual requests can
// override it with the WithRequestTimeout request option.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithRetryPolicy sets how many times a request is resent after a network
// failure or timeout, and the fixed delay between attempts.
func WithRetryPolicy(maxRetries int, delay time.Duration) Option {
	return func(c *Client) error {
		if maxRetries < 0 {
			return errors.New("max retries must be >= 0")
		}
		if delay < 0 {
			return errors.New("retry delay must be >= 0")
		}
		c.maxRetries = maxRetries
		c.retryDelay = delay
		return nil
	}
}

// WithLoginPath sets the login route used for the 401 redirect.
func WithLoginPath(p string) Option {
	return func(c *Client) error {
		if p == "" {
			return errors.New("login path must not be empty")
		}
		c.loginPath = p
		return nil
	}
}

// withRetryTimer swaps the timer that paces retries.
func withRetryTimer(t backoff.Timer) Option {
	return func(c *Client) error {
		c.timer = t
		return nil
	}
}

// RequestOption adjusts a single request.
type RequestOption func(*RequestConfig)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(rc *RequestConfig) {
		if rc.Header == nil {
			rc.Header = make(map[string]string)
		}
		rc.Header[key] = value
	}
}

// WithQuery merges query parameters into the request URL.
func WithQuery(values url.Values) RequestOption {
	return func(rc *RequestConfig) {
		if rc.Query == nil {
			rc.Query = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				rc.Query.Add(k, v)
			}
		}
	}
}

// WithRequestTimeout overrides the per-attempt timeout for one request.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(rc *RequestConfig) {
		rc.Timeout = d
	}
}
