package retryqueue_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/estimator/internal/retryqueue"
	"github.com/JaimeStill/estimator/pkg/routes"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueueAppend(t *testing.T) {
	failed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    retryqueue.Item
		wantErr bool
	}{
		{"valid item", retryqueue.Item{OrderID: "7", FailedAt: failed, Error: "timeout", RetryCount: 0}, false},
		{"negative retry count", retryqueue.Item{OrderID: "7", FailedAt: failed, RetryCount: -1}, true},
		{"missing order id", retryqueue.Item{FailedAt: failed}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := retryqueue.New(discard())
			err := q.Append(tt.item)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Append() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && len(q.List()) != 0 {
				t.Error("rejected item was stored")
			}
		})
	}
}

func TestQueueListOrder(t *testing.T) {
	q := retryqueue.New(discard())
	now := time.Now().UTC()

	var want []retryqueue.Item
	for i := range 5 {
		item := retryqueue.Item{OrderID: fmt.Sprint(i + 1), FailedAt: now, RetryCount: i}
		want = append(want, item)
		if err := q.Append(item); err != nil {
			t.Fatal(err)
		}
	}

	got := q.List()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	got[0].OrderID = "mutated"
	if q.List()[0].OrderID != "1" {
		t.Error("List exposed internal storage")
	}
}

func TestQueueConcurrentAppend(t *testing.T) {
	q := retryqueue.New(discard())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			q.Append(retryqueue.Item{OrderID: fmt.Sprint(i), FailedAt: time.Now()})
		})
	}
	wg.Wait()

	if got := len(q.List()); got != 50 {
		t.Errorf("len = %d, want 50", got)
	}
}

func TestHandler(t *testing.T) {
	q := retryqueue.New(discard())
	h := retryqueue.NewHandler(q, discard())
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())

	t.Run("empty list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/retry-queue", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("body = %s, want []", body)
		}
	})

	posts := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"order_id":"12","failed_at":"2026-03-01T12:00:00Z","error":"503","retry_count":2}`, http.StatusCreated},
		{"negative count", `{"order_id":"12","failed_at":"2026-03-01T12:00:00Z","error":"503","retry_count":-1}`, http.StatusBadRequest},
		{"missing failed_at", `{"order_id":"12","error":"503","retry_count":0}`, http.StatusBadRequest},
		{"invalid json", `nope`, http.StatusBadRequest},
	}

	for _, tt := range posts {
		t.Run("post "+tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", "/retry-queue", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	t.Run("list after post", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/retry-queue", nil))

		var items []retryqueue.Item
		if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(items) != 1 || items[0].OrderID != "12" || items[0].RetryCount != 2 {
			t.Errorf("items = %+v", items)
		}
	})
}
