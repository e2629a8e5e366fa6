package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const (
	networkErrorMessage  = "Network error. Please check your connection."
	canceledErrorMessage = "Request canceled."
)

// Error is the single error shape returned for every failed request.
// Status is 0 when no response was received.
type Error struct {
	Status    int            `json:"status,omitempty"`
	Message   string         `json:"message"`
	Errors    map[string]any `json:"errors,omitempty"`
	Code      string         `json:"code,omitempty"`
	RequestID string         `json:"-"`

	// RawErrors holds an errors value that is not a JSON object, such as a
	// list of messages, exactly as the backend sent it.
	RawErrors json.RawMessage `json:"-"`

	network bool
	err     error
}

func (e *Error) Error() string {
	msg := e.Message
	switch {
	case e.Status != 0 && e.Code != "":
		msg = fmt.Sprintf("status %d (%s): %s", e.Status, e.Code, e.Message)
	case e.Status != 0:
		msg = fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	if e.err != nil {
		return fmt.Sprintf("%s (%v)", msg, e.err)
	}
	return msg
}

// Unwrap exposes the transport failure behind a network error.
func (e *Error) Unwrap() error { return e.err }

// IsNetwork reports a failure where no response was received.
func (e *Error) IsNetwork() bool { return e.network }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports a 401 from the backend.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// IsForbidden reports a 403 from the backend.
func IsForbidden(err error) bool { return StatusOf(err) == http.StatusForbidden }

// IsNetwork reports a failure where no response was received.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsNetwork()
}

// errorBody is what the backend may send alongside a failure status.
type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Code    json.RawMessage `json:"code"`
}

// newTransportError normalizes a failure that produced no response.
func newTransportError(err error, requestID string) *Error {
	if errors.Is(err, context.Canceled) {
		return &Error{Message: canceledErrorMessage, RequestID: requestID, err: err}
	}
	return &Error{Message: networkErrorMessage, RequestID: requestID, network: true, err: err}
}

// newResponseError normalizes a non-2xx response. Bodies that are not JSON
// objects only contribute the status.
func newResponseError(status int, body []byte, requestID string) *Error {
	e := &Error{Status: status, RequestID: requestID}

	var parsed errorBody
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &parsed) == nil {
		e.Message = parsed.Message
		e.Errors, e.RawErrors = fieldErrors(parsed.Errors)
		e.Code = codeString(parsed.Code)
	}
	if e.Message == "" {
		e.Message = "Request failed with status code " + strconv.Itoa(status)
	}
	return e
}

// fieldErrors splits an errors value into the field map for objects and
// the untouched value for every other non-null shape.
func fieldErrors(raw json.RawMessage) (map[string]any, json.RawMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err == nil {
		if len(fields) == 0 {
			return nil, nil
		}
		return fields, nil
	}
	return nil, raw
}

// codeString accepts both "code":"forbidden" and "code":403.
func codeString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
