package intake

import (
	"errors"
	"net/http"
)

// Errors returned by the intake handler.
var (
	ErrNoInput         = errors.New("no input provided")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrInvalidFile     = errors.New("failed to process uploaded file")
	ErrFileTooLarge    = errors.New("upload exceeds maximum size")
)

// MapHTTPStatus maps intake errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrUnsupportedFile),
		errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
