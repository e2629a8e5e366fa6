package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResponseError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected *Error
	}{
		{
			name:   "message, field errors and string code",
			status: http.StatusBadRequest,
			body:   `{"message":"Invalid","errors":{"name":"required"},"code":"validation_failed"}`,
			expected: &Error{
				Status:  http.StatusBadRequest,
				Message: "Invalid",
				Errors:  map[string]any{"name": "required"},
				Code:    "validation_failed",
			},
		},
		{
			name:   "numeric code is kept as text",
			status: http.StatusConflict,
			body:   `{"message":"Duplicate email","code":1062}`,
			expected: &Error{
				Status:  http.StatusConflict,
				Message: "Duplicate email",
				Code:    "1062",
			},
		},
		{
			name:   "list-valued field errors pass through",
			status: http.StatusUnprocessableEntity,
			body:   `{"message":"Invalid","errors":{"email":["required","format"]}}`,
			expected: &Error{
				Status:  http.StatusUnprocessableEntity,
				Message: "Invalid",
				Errors:  map[string]any{"email": []any{"required", "format"}},
			},
		},
		{
			name:   "list of messages keeps message and code",
			status: http.StatusBadRequest,
			body:   `{"message":"Invalid","errors":["name is required"],"code":"validation"}`,
			expected: &Error{
				Status:    http.StatusBadRequest,
				Message:   "Invalid",
				Code:      "validation",
				RawErrors: json.RawMessage(`["name is required"]`),
			},
		},
		{
			name:   "string errors value keeps message",
			status: http.StatusBadRequest,
			body:   `{"message":"Invalid","errors":"name is required"}`,
			expected: &Error{
				Status:    http.StatusBadRequest,
				Message:   "Invalid",
				RawErrors: json.RawMessage(`"name is required"`),
			},
		},
		{
			name:   "empty body falls back to status message",
			status: http.StatusNotFound,
			body:   "",
			expected: &Error{
				Status:  http.StatusNotFound,
				Message: "Request failed with status code 404",
			},
		},
		{
			name:   "non-JSON body falls back to status message",
			status: http.StatusBadGateway,
			body:   "<html>bad gateway</html>",
			expected: &Error{
				Status:  http.StatusBadGateway,
				Message: "Request failed with status code 502",
			},
		},
		{
			name:   "null code and empty errors are dropped",
			status: http.StatusForbidden,
			body:   `{"message":"Nope","errors":{},"code":null}`,
			expected: &Error{
				Status:  http.StatusForbidden,
				Message: "Nope",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newResponseError(tt.status, []byte(tt.body), "")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTransportErrorClassification(t *testing.T) {
	network := newTransportError(errors.New("connection refused"), "rid")
	assert.True(t, network.IsNetwork())
	assert.Equal(t, networkErrorMessage, network.Message)
	assert.Equal(t, "rid", network.RequestID)

	canceled := newTransportError(fmt.Errorf("get: %w", context.Canceled), "")
	assert.False(t, canceled.IsNetwork())
	assert.Equal(t, canceledErrorMessage, canceled.Message)
	assert.ErrorIs(t, canceled, context.Canceled)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "status 400: Invalid", (&Error{Status: 400, Message: "Invalid"}).Error())
	assert.Equal(t, "status 403 (forbidden): Nope", (&Error{Status: 403, Code: "forbidden", Message: "Nope"}).Error())
	assert.Equal(t, networkErrorMessage+" (boom)", newTransportError(errors.New("boom"), "").Error())
}

func TestStatusHelpers(t *testing.T) {
	wrapped := fmt.Errorf("loading employees: %w", &Error{Status: http.StatusUnauthorized})
	assert.True(t, IsUnauthorized(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(wrapped))

	assert.True(t, IsForbidden(&Error{Status: http.StatusForbidden}))
	assert.Zero(t, StatusOf(errors.New("plain")))
	assert.False(t, IsNetwork(errors.New("plain")))
}
