package retryqueue

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
)

// Handler exposes the retry queue over HTTP.
type Handler struct {
	queue  *Queue
	logger *slog.Logger
}

// NewHandler creates a retry queue Handler.
func NewHandler(queue *Queue, logger *slog.Logger) *Handler {
	return &Handler{
		queue:  queue,
		logger: logger.With("handler", "retryqueue"),
	}
}

// Routes returns the retry queue route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/retry-queue",
		Tags:   []string{"Workflow"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Append, OpenAPI: Spec.Append},
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
		},
	}
}

// Append logs a failed delivery.
func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := handlers.DecodeJSON(w, r, &item); err != nil || item.FailedAt.IsZero() {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidItem)
		return
	}

	if err := h.queue.Append(item); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

// List returns every logged item in append order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.queue.List())
}
