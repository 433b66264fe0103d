package reviews

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
)

// CreateResponse acknowledges a created task.
type CreateResponse struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

// Handler exposes review tasks over HTTP.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

// NewHandler creates a review task Handler.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "reviews"),
	}
}

// Routes returns the review task route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/csr/tasks",
		Tags:   []string{"Reviews"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
		},
	}
}

// Create stores a review task and returns its id.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(w, r, &cmd); err != nil ||
		cmd.OrderID < 1 || cmd.Status == "" || cmd.CreatedAt.IsZero() {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	task := h.store.Create(cmd)
	handlers.RespondJSON(w, http.StatusCreated, CreateResponse{
		TaskID: task.TaskID,
		Status: StatusCreated,
	})
}

// Find returns a review task by id. Malformed ids are reported as missing.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	task, err := h.store.Find(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, task)
}
