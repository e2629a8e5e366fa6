// Package apiclient is the HTTP client every HRMS screen uses to talk to the
// backend API.
//
// Each request is decorated with JSON content headers, the bearer token from
// the session store and a fresh X-Request-ID. Requests that get no response
// at all (network failure or timeout) are resent after a fixed delay, up to a
// small cap. Every failure reaches the caller as an *Error; a 401 also clears
// the session and sends the navigator to the login screen.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvcrn/hrms-api-client/internal/config"
	"github.com/dvcrn/hrms-api-client/internal/logger"
	"github.com/dvcrn/hrms-api-client/internal/navigation"
	"github.com/dvcrn/hrms-api-client/internal/session"
	"github.com/dvcrn/hrms-api-client/internal/transport"
)

const (
	// DefaultMaxRetries is how many times a request is resent after a
	// network failure or timeout.
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = time.Second

	// DefaultTimeout bounds a single attempt.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the per-send trace identifier.
	RequestIDHeader = "X-Request-ID"
)

// RequestConfig describes one logical request. It is never mutated while the
// request is in flight; retries resend exactly what it describes.
type RequestConfig struct {
	Method string
	// URL is either absolute or relative to the client's base URL.
	URL     string
	Header  map[string]string
	Query   url.Values
	Body    any
	Timeout time.Duration
}

// Client sends requests to the HRMS API. It is safe for concurrent use; the
// only state shared between requests is the session store.
type Client struct {
	baseURL   string
	http      transport.HTTPClient
	session   session.Store
	navigator navigation.Navigator
	log       *zerolog.Logger

	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	loginPath  string

	// timer paces retries; nil selects the real clock.
	timer backoff.Timer
}

// New constructs a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session.NewMemoryStore(""),
		navigator:  navigation.Discard{},
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		loginPath:  navigation.DefaultLoginPath,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		c.http = transport.NewHTTPClient(0)
	}
	if c.log == nil {
		c.log = logger.Get()
	}
	return c, nil
}

// NewFromConfig constructs a Client from loaded configuration. Options are
// applied after the configured values.
func NewFromConfig(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithRetryPolicy(cfg.MaxRetries, cfg.RetryDelay),
	}
	if cfg.LoginPath != "" {
		base = append(base, WithLoginPath(cfg.LoginPath))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// Session returns the store the client reads the bearer token from.
func (c *Client) Session() session.Store {
	return c.session
}

// Get fetches path and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequestConfig(http.MethodGet, path, nil, opts), out)
}

// Post sends data as JSON and decodes the response body into out.
func (c *Client) Post(ctx context.Context, path string, data, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequestConfig(http.MethodPost, path, data, opts), out)
}

// Put sends data as JSON and decodes the response body into out.
func (c *Client) Put(ctx context.Context, path string, data, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequestConfig(http.MethodPut, path, data, opts), out)
}

// Patch sends data as JSON and decodes the response body into out.
func (c *Client) Patch(ctx context.Context, path string, data, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequestConfig(http.MethodPatch, path, data, opts), out)
}

// Delete removes path and decodes the response body, if any, into out.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequestConfig(http.MethodDelete, path, nil, opts), out)
}

func newRequestConfig(method, path string, body any, opts []RequestOption) RequestConfig {
	rc := RequestConfig{Method: method, URL: path, Body: body}
	for _, opt := range opts {
		opt(&rc)
	}
	return rc
}

// Do sends rc and decodes a 2xx JSON body into out. out may be nil, and an
// empty body leaves it untouched. Any failure is returned as an *Error.
func (c *Client) Do(ctx context.Context, rc RequestConfig, out any) error {
	req, err := c.prepare(rc)
	if err != nil {
		return &Error{Message: "Invalid request.", err: err}
	}

	res, err := c.sendWithRetry(ctx, req)
	if err != nil {
		return err
	}

	if res.status < 200 || res.status >= 300 {
		apiErr := newResponseError(res.status, res.body, res.requestID)
		c.handleFailure(apiErr, req)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(res.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return &Error{
			Status:    res.status,
			Message:   "Invalid response body.",
			RequestID: res.requestID,
			err:       err,
		}
	}
	return nil
}

// preparedRequest is a RequestConfig resolved and encoded once, so every
// attempt sends identical bytes.
type preparedRequest struct {
	method  string
	target  string
	header  map[string]string
	payload []byte
	timeout time.Duration
}

type response struct {
	status    int
	body      []byte
	requestID string
}

func (c *Client) prepare(rc RequestConfig) (*preparedRequest, error) {
	method := strings.ToUpper(rc.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(rc.URL, rc.Query)
	if err != nil {
		return nil, err
	}

	payload, err := encodeBody(rc.Body)
	if err != nil {
		return nil, err
	}

	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	return &preparedRequest{
		method:  method,
		target:  target,
		header:  rc.Header,
		payload: payload,
		timeout: timeout,
	}, nil
}

// resolve joins relative paths onto the base URL and merges query values.
func (c *Client) resolve(raw string, query url.Values) (string, error) {
	full := raw
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		full = c.baseURL + "/" + strings.TrimLeft(raw, "/")
	}

	u, err := url.Parse(full)
	if err != nil {
		return "", fmt.Errorf("could not parse request URL %q: %w", raw, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		return data, nil
	}
}

// sendWithRetry sends req, resending it after a fixed delay while no response
// is received and the retry budget lasts. The retry state lives in this call
// only; concurrent requests never share it.
func (c *Client) sendWithRetry(ctx context.Context, req *preparedRequest) (*response, error) {
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if c.maxRetries > 0 {
		policy = backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.maxRetries))
	}

	var (
		res       *response
		attempt   int
		requestID string
	)
	operation := func() error {
		r, id, err := c.send(ctx, req, attempt)
		requestID = id
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		res = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		attempt++
		retriesTotal.WithLabelValues(req.method).Inc()
		c.log.Warn().
			Err(err).
			Str("method", req.method).
			Str("url", req.target).
			Str("request_id", requestID).
			Int("attempt", attempt).
			Int("max_retries", c.maxRetries).
			Bool("timeout", isTimeout(err)).
			Dur("wait", wait).
			Msg("Request got no response, retrying")
	}

	err := backoff.RetryNotifyWithTimer(operation, backoff.WithContext(policy, ctx), notify, c.timer)
	if err != nil {
		c.log.Error().
			Err(err).
			Str("method", req.method).
			Str("url", req.target).
			Str("request_id", requestID).
			Int("retries", attempt).
			Msg("Request failed without a response")
		return nil, newTransportError(err, requestID)
	}
	return res, nil
}

// send performs a single attempt. An error means no usable response arrived.
func (c *Client) send(ctx context.Context, req *preparedRequest, attempt int) (*response, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, req.timeout)
	defer cancel()

	var body io.Reader
	if req.payload != nil {
		body = bytes.NewReader(req.payload)
	}
	httpReq, err := http.NewRequestWithContext(attemptCtx, req.method, req.target, body)
	if err != nil {
		return nil, "", backoff.Permanent(fmt.Errorf("could not create request: %w", err))
	}
	requestID := c.decorate(httpReq, req.header)

	c.log.Debug().
		Str("method", req.method).
		Str("url", req.target).
		Str("request_id", requestID).
		Int("attempt", attempt).
		Msg("Sending request")

	start := time.Now()
	httpRes, err := c.http.Do(httpReq)
	if err != nil {
		requestsTotal.WithLabelValues(req.method, "network_error").Inc()
		return nil, requestID, err
	}
	defer httpRes.Body.Close()

	data, err := io.ReadAll(httpRes.Body)
	requestDuration.WithLabelValues(req.method).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(req.method, "network_error").Inc()
		return nil, requestID, fmt.Errorf("could not read response body: %w", err)
	}
	requestsTotal.WithLabelValues(req.method, strconv.Itoa(httpRes.StatusCode)).Inc()

	c.log.Debug().
		Str("method", req.method).
		Str("url", req.target).
		Str("request_id", requestID).
		Int("status", httpRes.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Received response")

	return &response{status: httpRes.StatusCode, body: data, requestID: requestID}, requestID, nil
}

// decorate applies the headers every request carries and returns the
// generated request ID. Caller headers may override the content defaults but
// not the trace or auth headers.
func (c *Client) decorate(req *http.Request, extra map[string]string) string {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	token, err := c.session.Token()
	if err != nil {
		c.log.Warn().Err(err).Str("store", c.session.Name()).Msg("Could not read session token, sending without it")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return requestID
}

// handleFailure applies the status-specific side effects of a failed request.
func (c *Client) handleFailure(apiErr *Error, req *preparedRequest) {
	switch apiErr.Status {
	case http.StatusUnauthorized:
		if err := c.session.Clear(); err != nil {
			c.log.Error().Err(err).Str("store", c.session.Name()).Msg("Failed to clear session after 401")
		}
		target := navigation.LoginURL(c.loginPath, c.navigator.CurrentPath())
		c.log.Info().
			Str("method", req.method).
			Str("url", req.target).
			Str("request_id", apiErr.RequestID).
			Str("redirect", target).
			Msg("Session rejected, redirecting to login")
		c.navigator.Navigate(target)
	case http.StatusForbidden:
		c.log.Warn().
			Str("method", req.method).
			Str("url", req.target).
			Str("request_id", apiErr.RequestID).
			Str("code", apiErr.Code).
			Msg("Access forbidden")
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
