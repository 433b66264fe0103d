// Package retryqueue records notifications that exhausted their delivery
// budget so they can be replayed by an operator or the workflow engine.
package retryqueue

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Errors returned by the retry queue.
var (
	ErrInvalidItem = errors.New("invalid retry item")
)

// MapHTTPStatus maps retry queue errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidItem) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Item is one failed delivery.
type Item struct {
	OrderID    string    `json:"order_id"`
	FailedAt   time.Time `json:"failed_at"`
	Error      string    `json:"error"`
	RetryCount int       `json:"retry_count"`
}

// Queue is an append-only, process-lifetime log of failed deliveries.
type Queue struct {
	mu     sync.Mutex
	items  []Item
	logger *slog.Logger
}

// New creates an empty Queue.
func New(logger *slog.Logger) *Queue {
	return &Queue{logger: logger.With("system", "retryqueue")}
}

// Append records item. Negative retry counts and empty order ids are rejected.
func (q *Queue) Append(item Item) error {
	if item.OrderID == "" || item.RetryCount < 0 {
		return ErrInvalidItem
	}

	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.logger.Warn("retry item logged", "order_id", item.OrderID, "retry_count", item.RetryCount)
	return nil
}

// List returns a copy of every item in append order.
func (q *Queue) List() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items == nil {
		return []Item{}
	}
	return slices.Clone(q.items)
}
