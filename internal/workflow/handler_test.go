package workflow_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/internal/workflow"
	"github.com/JaimeStill/estimator/pkg/routes"
)

type mockOrders struct {
	updateFn func(ctx context.Context, id int64, u orders.Update) (*orders.Order, error)
}

func (m *mockOrders) Update(ctx context.Context, id int64, u orders.Update) (*orders.Order, error) {
	return m.updateFn(ctx, id, u)
}

func setupMux(groups ...routes.Group) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, groups...)
	return mux
}

func TestHandlerUpdate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		updateErr  error
		wantStatus int
		wantUpdate orders.Update
	}{
		{
			name:       "decision preferred over status",
			body:       `{"order_id":5,"status":"needs_review","decision":"auto_approved","price":12.5,"issues":["a","b"],"email":"x@example.com"}`,
			wantStatus: http.StatusOK,
			wantUpdate: orders.Update{
				Status:     "auto_approved",
				FinalPrice: ptr(12.5),
				Issues:     ptr("a,b"),
				Email:      ptr("x@example.com"),
			},
		},
		{
			name:       "status only",
			body:       `{"order_id":5,"status":"rejected"}`,
			wantStatus: http.StatusOK,
			wantUpdate: orders.Update{Status: "rejected"},
		},
		{
			name:       "empty issues clears the list",
			body:       `{"order_id":5,"issues":[]}`,
			wantStatus: http.StatusOK,
			wantUpdate: orders.Update{Issues: ptr("")},
		},
		{
			name:       "unknown order",
			body:       `{"order_id":99,"decision":"rejected"}`,
			updateErr:  orders.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing order id",
			body:       `{"decision":"rejected"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got orders.Update
			m := &mockOrders{
				updateFn: func(_ context.Context, id int64, u orders.Update) (*orders.Order, error) {
					if tt.updateErr != nil {
						return nil, tt.updateErr
					}
					got = u
					status := u.Status
					if status == "" {
						status = "received"
					}
					issues := ""
					if u.Issues != nil {
						issues = *u.Issues
					}
					return &orders.Order{ID: id, Status: status, FinalPrice: u.FinalPrice, Issues: issues}, nil
				},
			}
			h := workflow.NewHandler(m, discard())
			mux := setupMux(h.Routes())

			req := httptest.NewRequest("POST", "/workflow/update", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			if got.Status != tt.wantUpdate.Status {
				t.Errorf("update status = %q, want %q", got.Status, tt.wantUpdate.Status)
			}
			if !equalPtr(got.FinalPrice, tt.wantUpdate.FinalPrice) {
				t.Errorf("update price = %v, want %v", got.FinalPrice, tt.wantUpdate.FinalPrice)
			}
			if !equalPtr(got.Issues, tt.wantUpdate.Issues) {
				t.Errorf("update issues = %v, want %v", got.Issues, tt.wantUpdate.Issues)
			}
			if !equalPtr(got.Email, tt.wantUpdate.Email) {
				t.Errorf("update email = %v, want %v", got.Email, tt.wantUpdate.Email)
			}

			var res workflow.CallbackResult
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !res.OK || res.OrderID != 5 {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestHandlerReceiveMIS(t *testing.T) {
	h := workflow.NewHandler(&mockOrders{}, discard())
	mux := setupMux(h.MISRoutes())

	req := httptest.NewRequest("POST", "/mis/orders", strings.NewReader(`{"order_id":3,"final_price":19.2}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] != "Order received by MIS" {
		t.Errorf("message = %q", body["message"])
	}
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
