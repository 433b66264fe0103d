package workflow

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/estimator/internal/orders"
)

// ErrInvalidRequest is returned when a workflow request body cannot be decoded.
var ErrInvalidRequest = errors.New("invalid workflow request")

// MapHTTPStatus maps workflow request errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return orders.MapHTTPStatus(err)
}
