package validation

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
)

// Request wraps the specification submitted for standalone validation.
type Request struct {
	Spec *printspec.Specification `json:"spec"`
}

// Handler exposes the validator over HTTP.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a validation Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With("handler", "validation")}
}

// Routes returns the route group for validation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/validate",
		Tags:   []string{"Estimation"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Validate, OpenAPI: Spec.Validate},
		},
	}
}

// Validate runs the validator against a submitted specification without source text.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(w, r, &req); err != nil || req.Spec == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Validate(*req.Spec, ""))
}
