package workflow_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/internal/workflow"
)

func ptr[T any](v T) *T { return &v }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want []string
	}{
		{
			name: "default webhook",
			url:  "http://n8n:5678/webhook-test/ai-estimator",
			want: []string{
				"http://n8n:5678/webhook-test/ai-estimator",
				"http://n8n:5678/webhook-test/ai-print-workflow",
				"http://n8n:5678/webhook/ai-estimator",
				"http://localhost:5678/webhook-test/ai-estimator",
				"http://n8n:5678/webhook/ai-print-workflow",
				"http://localhost:5678/webhook-test/ai-print-workflow",
			},
		},
		{
			name: "workflow token swaps to estimator",
			url:  "https://hooks.example.com/webhook/ai-print-workflow",
			want: []string{
				"https://hooks.example.com/webhook/ai-print-workflow",
				"https://hooks.example.com/webhook/ai-estimator",
				"https://hooks.example.com/webhook-test/ai-print-workflow",
				"https://hooks.example.com/webhook-test/ai-estimator",
			},
		},
		{
			name: "bare base gains both paths",
			url:  "https://hooks.example.com/",
			want: []string{
				"https://hooks.example.com/",
				"https://hooks.example.com/ai-estimator",
				"https://hooks.example.com/ai-print-workflow",
			},
		},
		{
			name: "both tokens present",
			url:  "https://hooks.example.com/ai-print-workflow/ai-estimator",
			want: []string{
				"https://hooks.example.com/ai-print-workflow/ai-estimator",
				"https://hooks.example.com/ai-print-workflow/ai-estimator/ai-print-workflow",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workflow.Candidates(tt.url)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCandidatesUnique(t *testing.T) {
	urls := []string{
		"http://n8n:5678/webhook-test/ai-estimator",
		"http://n8n:5678/webhook/ai-print-workflow",
		"http://n8n/",
		"https://example.com/hook",
	}

	for _, u := range urls {
		got := workflow.Candidates(u)
		if got[0] != u {
			t.Errorf("%s: first candidate = %s", u, got[0])
		}
		seen := map[string]bool{}
		for _, c := range got {
			if seen[c] {
				t.Errorf("%s: duplicate candidate %s", u, c)
			}
			seen[c] = true
		}
	}
}

func TestTriggerSuccess(t *testing.T) {
	var (
		gotBody   workflow.Payload
		gotHeader http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := workflow.NewNotifier(workflow.Config{
		WebhookURL: srv.URL + "/ai-estimator",
		MaxRetries: 3,
		Backoff:    time.Millisecond,
	}, discard())

	payload := workflow.Payload{
		OrderID:  42,
		Decision: printspec.NeedsReview,
		Price:    ptr(38.5),
		Issues:   []string{"urgent_turnaround"},
		Email:    ptr("buyer@example.com"),
	}

	if !n.Trigger(context.Background(), payload) {
		t.Fatal("Trigger returned false")
	}
	if got := gotHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := gotHeader.Get("Idempotency-Key"); got != "order-42" {
		t.Errorf("Idempotency-Key = %q, want order-42", got)
	}
	if diff := cmp.Diff(payload, gotBody); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestTriggerOmitsKeyWithoutOrder(t *testing.T) {
	var key atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key.Store(r.Header.Get("Idempotency-Key"))
	}))
	defer srv.Close()

	n := workflow.NewNotifier(workflow.Config{WebhookURL: srv.URL + "/ai-estimator"}, discard())

	if !n.Trigger(context.Background(), workflow.Payload{Decision: printspec.AutoApproved}) {
		t.Fatal("Trigger returned false")
	}
	if got := key.Load().(string); got != "" {
		t.Errorf("Idempotency-Key = %q, want empty", got)
	}
}

func TestTriggerFallsThroughCandidates(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/ai-estimator" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := workflow.NewNotifier(workflow.Config{WebhookURL: srv.URL + "/ai-estimator"}, discard())

	if !n.Trigger(context.Background(), workflow.Payload{OrderID: 1}) {
		t.Fatal("Trigger returned false")
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("hits = %d, want 2", got)
	}
}

func TestTriggerExhaustsBudget(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := workflow.NewNotifier(workflow.Config{
		WebhookURL: srv.URL + "/ai-estimator",
		MaxRetries: 3,
		Backoff:    time.Millisecond,
	}, discard())

	if n.Trigger(context.Background(), workflow.Payload{OrderID: 9}) {
		t.Fatal("Trigger returned true")
	}

	want := int32(3 * len(n.Candidates()))
	if got := hits.Load(); got != want {
		t.Errorf("hits = %d, want %d", got, want)
	}
}

func TestTriggerCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := workflow.NewNotifier(workflow.Config{
		WebhookURL: srv.URL + "/ai-estimator",
		MaxRetries: 5,
		Backoff:    time.Hour,
	}, discard())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if n.Trigger(ctx, workflow.Payload{OrderID: 3}) {
		t.Fatal("Trigger returned true")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Trigger ignored cancellation, took %v", elapsed)
	}
}
