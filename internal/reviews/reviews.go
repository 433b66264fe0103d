// Package reviews stores customer service review tasks raised by the
// workflow engine for orders that need a human decision.
package reviews

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/estimator/internal/printspec"
)

// StatusCreated is reported for every newly created task.
const StatusCreated = "created"

// Errors returned by the review task store.
var (
	ErrNotFound       = errors.New("task not found")
	ErrInvalidRequest = errors.New("invalid review task")
)

// MapHTTPStatus maps review task errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Task is a review request for one order. Issues is the comma-joined tag list.
type Task struct {
	TaskID    uuid.UUID `json:"task_id"`
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Issues    string    `json:"issues"`
	Price     *float64  `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand carries a review task submission.
type CreateCommand struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Issues    string    `json:"issues"`
	Price     *float64  `json:"price,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a process-lifetime, mutex-guarded map of review tasks.
type Store struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]Task
	logger *slog.Logger
}

// New creates an empty Store.
func New(logger *slog.Logger) *Store {
	return &Store{
		tasks:  make(map[uuid.UUID]Task),
		logger: logger.With("system", "reviews"),
	}
}

// Create stores a task under a fresh id. Tasks whose status is not
// needs_review are accepted with a warning.
func (s *Store) Create(cmd CreateCommand) Task {
	if cmd.Status != string(printspec.NeedsReview) {
		s.logger.Warn("review task status is not needs_review", "order_id", cmd.OrderID, "status", cmd.Status)
	}

	task := Task{
		TaskID:    uuid.New(),
		OrderID:   cmd.OrderID,
		Status:    cmd.Status,
		Issues:    cmd.Issues,
		Price:     cmd.Price,
		CreatedAt: cmd.CreatedAt,
	}

	s.mu.Lock()
	s.tasks[task.TaskID] = task
	s.mu.Unlock()

	s.logger.Info("review task created", "task_id", task.TaskID, "order_id", task.OrderID)
	return task
}

// Find returns the task with id.
func (s *Store) Find(id uuid.UUID) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return task, nil
}
