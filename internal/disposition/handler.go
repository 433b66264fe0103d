package disposition

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/estimator/internal/retryqueue"
	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
)

// RetryLog records deliveries that exhausted the notifier's budget.
type RetryLog interface {
	Append(item retryqueue.Item) error
}

// Handler exposes the resolver over HTTP.
type Handler struct {
	resolver *Resolver
	retries  RetryLog
	logger   *slog.Logger
}

// NewHandler creates an estimate Handler.
func NewHandler(resolver *Resolver, retries RetryLog, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		retries:  retries,
		logger:   logger.With("handler", "disposition"),
	}
}

// Routes returns the estimate route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/estimate",
		Tags:   []string{"Estimation"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Estimate, OpenAPI: Spec.Estimate},
		},
	}
}

// Estimate resolves a received order.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := handlers.DecodeJSON(w, r, &cmd); err != nil || cmd.OrderID < 1 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if cmd.CustomerEmail != nil && strings.TrimSpace(*cmd.CustomerEmail) == "" {
		cmd.CustomerEmail = nil
	}

	result, err := h.resolver.Resolve(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if !result.Notified {
		item := retryqueue.Item{
			OrderID:  strconv.FormatInt(result.OrderID, 10),
			FailedAt: time.Now().UTC(),
			Error:    "workflow delivery failed",
		}
		if err := h.retries.Append(item); err != nil {
			h.logger.Error("retry item not logged", "order_id", result.OrderID, "error", err)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
