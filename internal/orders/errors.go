package orders

import (
	"errors"
	"net/http"
)

// Domain errors for order operations.
var (
	ErrNotFound      = errors.New("order not found")
	ErrDuplicate     = errors.New("order already exists")
	ErrInvalidID     = errors.New("invalid order id")
	ErrInvalidUpdate = errors.New("invalid order update")
)

// MapHTTPStatus maps order domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidUpdate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
