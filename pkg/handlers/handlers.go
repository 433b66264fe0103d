// Package handlers provides shared JSON request and response helpers for HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// RequestIDHeader is the response header carrying the request correlation id.
const RequestIDHeader = "X-Request-ID"

// MaxBodySize bounds JSON request bodies read by DecodeJSON.
const MaxBodySize int64 = 1 << 20

// ErrInvalidBody wraps every DecodeJSON failure.
var ErrInvalidBody = errors.New("invalid request body")

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as an ErrorBody with the given status.
// Server errors log at error level, client errors at warn. The request id is
// taken from the response headers when middleware has set one.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	id := w.Header().Get(RequestIDHeader)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err, "request_id", id)
	} else {
		logger.Warn("request rejected", "status", status, "error", err, "request_id", id)
	}
	RespondJSON(w, status, ErrorBody{Error: err.Error(), RequestID: id})
}

// DecodeJSON decodes a single JSON value from the request body into v.
// Bodies over MaxBodySize, empty bodies and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty", ErrInvalidBody)
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidBody)
	}
	return nil
}
