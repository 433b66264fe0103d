package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/estimator/pkg/handlers"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]int{"order_id": 42})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"order_id":42}` {
		t.Errorf("body = %s", got)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		status    int
		want      handlers.ErrorBody
	}{
		{
			name:   "client error without request id",
			status: http.StatusBadRequest,
			want:   handlers.ErrorBody{Error: "boom"},
		},
		{
			name:      "server error echoes request id",
			requestID: "req-1",
			status:    http.StatusBadGateway,
			want:      handlers.ErrorBody{Error: "boom", RequestID: "req-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if tt.requestID != "" {
				rec.Header().Set(handlers.RequestIDHeader, tt.requestID)
			}

			handlers.RespondError(rec, discard(), tt.status, errors.New("boom"))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var got handlers.ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type command struct {
		OrderID int64 `json:"order_id"`
	}

	tests := []struct {
		name    string
		body    string
		want    command
		wantErr bool
	}{
		{name: "valid", body: `{"order_id":7}`, want: command{OrderID: 7}},
		{name: "trailing whitespace", body: "{\"order_id\":7}\n", want: command{OrderID: 7}},
		{name: "empty", body: "", wantErr: true},
		{name: "malformed", body: `{"order_id":`, wantErr: true},
		{name: "trailing data", body: `{"order_id":7}{"order_id":8}`, wantErr: true},
		{name: "too large", body: `{"pad":"` + strings.Repeat("x", int(handlers.MaxBodySize)) + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var got command
			err := handlers.DecodeJSON(rec, req, &got)

			if tt.wantErr {
				if !errors.Is(err, handlers.ErrInvalidBody) {
					t.Fatalf("err = %v, want ErrInvalidBody", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
