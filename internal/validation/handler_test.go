package validation_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/internal/validation"
)

func setupMux(h *validation.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerValidate(t *testing.T) {
	h := validation.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := setupMux(h)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult *validation.Result
	}{
		{
			name:       "complete spec",
			body:       `{"spec":{"product_type":"flyer","quantity":500,"size":"210x297mm","paper_type":"C350","color":"4/0","finishing":["spot_uv"],"turnaround_days":5,"rush":false,"missing_fields":[]}}`,
			wantStatus: http.StatusOK,
			wantResult: &validation.Result{Decision: printspec.AutoApproved, Issues: []string{}},
		},
		{
			name:       "loosely typed fields are coerced",
			body:       `{"spec":{"product_type":"flyer","quantity":"500","size":"210x297","finishing":"lamination","turnaround_days":"2"}}`,
			wantStatus: http.StatusOK,
			wantResult: &validation.Result{Decision: printspec.AutoApproved, Issues: []string{}},
		},
		{
			name:       "malformed turnaround",
			body:       `{"spec":{"product_type":"flyer","quantity":10,"size":"10x10","finishing":["die_cut"],"turnaround_days":"soon"}}`,
			wantStatus: http.StatusOK,
			wantResult: &validation.Result{Decision: printspec.Rejected, Issues: []string{"invalid_turnaround_format"}},
		},
		{
			name:       "missing spec",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{"spec":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/validate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantResult == nil {
				return
			}

			var got validation.Result
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Decision != tt.wantResult.Decision {
				t.Errorf("decision = %q, want %q", got.Decision, tt.wantResult.Decision)
			}
			if strings.Join(got.Issues, ",") != strings.Join(tt.wantResult.Issues, ",") {
				t.Errorf("issues = %v, want %v", got.Issues, tt.wantResult.Issues)
			}
		})
	}
}
