package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dvcrn/hrms-api-client/internal/logger"
)

const (
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInvalidCredentials = "invalid_credentials"
	codeValidation         = "validation_failed"
	codeNotFound           = "not_found"
	codeConflict           = "conflict"
	codeMalformedBody      = "malformed_body"
	codeMethodNotAllowed   = "method_not_allowed"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Code    string            `json:"code,omitempty"`
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, fields map[string]string) {
	event := logger.Get().Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Get().Error()
	}
	event.
		Int("status", status).
		Str("code", code).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg(message)

	respondJSON(w, status, errorBody{Message: message, Errors: fields, Code: code})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal Server Error","code":"marshal_error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// decodeBody reads a JSON request body into v, answering 400 when it can't.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, r, http.StatusBadRequest, codeMalformedBody, "Request body must be valid JSON.", nil)
		return false
	}
	return true
}
