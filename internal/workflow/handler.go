package workflow

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
)

// Orders is the order store patched by workflow callbacks.
type Orders interface {
	Update(ctx context.Context, id int64, u orders.Update) (*orders.Order, error)
}

// Callback is the status report posted back by the workflow engine.
// Decision takes precedence over Status.
type Callback struct {
	OrderID  int64    `json:"order_id"`
	Status   *string  `json:"status,omitempty"`
	Decision *string  `json:"decision,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Issues   []string `json:"issues,omitempty"`
	Email    *string  `json:"email,omitempty"`
}

// CallbackResult acknowledges an applied callback.
type CallbackResult struct {
	OK         bool     `json:"ok"`
	OrderID    int64    `json:"order_id"`
	Status     string   `json:"status"`
	FinalPrice *float64 `json:"final_price"`
	Issues     string   `json:"issues"`
}

// Handler serves the workflow callback and the MIS hand-off stub.
type Handler struct {
	orders Orders
	logger *slog.Logger
}

// NewHandler creates a workflow Handler.
func NewHandler(o Orders, logger *slog.Logger) *Handler {
	return &Handler{
		orders: o,
		logger: logger.With("handler", "workflow"),
	}
}

// Routes returns the workflow callback route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/workflow",
		Tags:   []string{"Workflow"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/update", Handler: h.Update, OpenAPI: Spec.Update},
		},
	}
}

// MISRoutes returns the route group for the MIS hand-off stub.
func (h *Handler) MISRoutes() routes.Group {
	return routes.Group{
		Prefix: "/mis",
		Tags:   []string{"Workflow"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/orders", Handler: h.ReceiveMIS, OpenAPI: Spec.MIS},
		},
	}
}

// Update applies a workflow callback to the stored order.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cb Callback
	if err := handlers.DecodeJSON(w, r, &cb); err != nil || cb.OrderID < 1 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	u := orders.Update{
		FinalPrice: cb.Price,
		Email:      cb.Email,
	}
	switch {
	case cb.Decision != nil:
		u.Status = *cb.Decision
	case cb.Status != nil:
		u.Status = *cb.Status
	}
	if cb.Issues != nil {
		joined := orders.JoinList(cb.Issues)
		u.Issues = &joined
	}

	o, err := h.orders.Update(r.Context(), cb.OrderID, u)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CallbackResult{
		OK:         true,
		OrderID:    o.ID,
		Status:     o.Status,
		FinalPrice: o.FinalPrice,
		Issues:     o.Issues,
	})
}

// ReceiveMIS acknowledges an order handed to the management information system.
func (h *Handler) ReceiveMIS(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := handlers.DecodeJSON(w, r, &body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	h.logger.Info("mis order received", "order_id", body["order_id"])
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": "Order received by MIS"})
}
