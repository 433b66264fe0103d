package orders

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/pagination"
	"github.com/JaimeStill/estimator/pkg/routes"
)

// Handler provides HTTP endpoints for order operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// UpdateRequest is the status patch sent by the downstream workflow's
// customer service steps.
type UpdateRequest struct {
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at"`
	Price     *float64   `json:"price,omitempty"`
	Issues    *string    `json:"issues,omitempty"`
	CSRAction *string    `json:"csr_action,omitempty"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "orders"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for order endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/orders",
		Tags:   []string{"Orders"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
		},
	}
}

// List returns a paginated list of orders with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single order by its id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	o, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, o)
}

// Update patches an order's status, price, and issues.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req UpdateRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil || req.Status == "" || req.UpdatedAt == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpdate)
		return
	}

	if req.CSRAction != nil {
		h.logger.Info("csr action recorded", "id", id, "action", *req.CSRAction)
	}

	o, err := h.sys.Update(r.Context(), id, Update{
		Status:     req.Status,
		FinalPrice: req.Price,
		Issues:     req.Issues,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, o)
}

// ParseID parses a positive order id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}
