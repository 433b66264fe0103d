package disposition

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/estimator/internal/orders"
)

// Errors returned by the resolver.
var (
	ErrExtraction     = errors.New("specification extraction failed")
	ErrInvalidRequest = errors.New("invalid estimate request")
)

// MapHTTPStatus maps resolver errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrExtraction):
		return http.StatusInternalServerError
	}
	return orders.MapHTTPStatus(err)
}
