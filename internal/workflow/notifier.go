// Package workflow delivers order dispositions to the downstream workflow
// engine and accepts its callbacks.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/estimator/internal/printspec"
)

const (
	tokenEstimator = "ai-estimator"
	tokenWorkflow  = "ai-print-workflow"
)

// Payload is the disposition summary delivered to the workflow engine.
type Payload struct {
	OrderID  int64              `json:"order_id"`
	Decision printspec.Decision `json:"decision"`
	Price    *float64           `json:"price"`
	Issues   []string           `json:"issues"`
	Email    *string            `json:"email,omitempty"`
}

// Config controls webhook delivery.
type Config struct {
	WebhookURL string
	MaxRetries int
	Timeout    time.Duration
	Backoff    time.Duration
}

// Notifier posts payloads to the workflow webhook, trying every candidate URL
// per round and sleeping Backoff × round between rounds.
type Notifier struct {
	cfg        Config
	candidates []string
	client     *http.Client
	logger     *slog.Logger
}

// NewNotifier creates a Notifier. Zero config values take the defaults of a
// three-round, five-second, half-second-backoff delivery.
func NewNotifier(cfg Config, logger *slog.Logger) *Notifier {
	if cfg.WebhookURL == "" {
		cfg.WebhookURL = "http://n8n:5678/webhook-test/ai-estimator"
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	return &Notifier{
		cfg:        cfg,
		candidates: Candidates(cfg.WebhookURL),
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("system", "workflow"),
	}
}

// Candidates returns the delivery URLs derived from a configured webhook URL,
// deduplicated in priority order.
func Candidates(webhook string) []string {
	candidates := []string{webhook}

	hasEstimator := strings.Contains(webhook, tokenEstimator)
	hasWorkflow := strings.Contains(webhook, tokenWorkflow)

	switch {
	case hasWorkflow && !hasEstimator:
		candidates = append(candidates, strings.ReplaceAll(webhook, tokenWorkflow, tokenEstimator))
	case hasEstimator && !hasWorkflow:
		candidates = append(candidates, strings.ReplaceAll(webhook, tokenEstimator, tokenWorkflow))
	default:
		base := strings.TrimRight(webhook, "/")
		if !strings.HasSuffix(base, "/"+tokenEstimator) {
			candidates = append(candidates, base+"/"+tokenEstimator)
		}
		if !strings.HasSuffix(base, "/"+tokenWorkflow) {
			candidates = append(candidates, base+"/"+tokenWorkflow)
		}
	}

	var extra []string
	for _, c := range candidates {
		if strings.Contains(c, "/webhook-test/") && !strings.Contains(c, "/webhook/") {
			extra = append(extra, strings.ReplaceAll(c, "/webhook-test/", "/webhook/"))
		}
		if strings.Contains(c, "/webhook/") && !strings.Contains(c, "/webhook-test/") {
			extra = append(extra, strings.ReplaceAll(c, "/webhook/", "/webhook-test/"))
		}
		if strings.Contains(c, "://n8n") {
			extra = append(extra, strings.ReplaceAll(c, "://n8n", "://localhost"))
		}
	}
	candidates = append(candidates, extra...)

	seen := make(map[string]bool, len(candidates))
	unique := candidates[:0]
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	return unique
}

// Candidates returns the notifier's delivery URLs.
func (n *Notifier) Candidates() []string {
	return append([]string(nil), n.candidates...)
}

// Trigger delivers payload and reports whether any candidate accepted it.
// A response status below 400 is success. Cancelling ctx abandons delivery.
func (n *Notifier) Trigger(ctx context.Context, payload Payload) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("encode payload failed", "error", err)
		return false
	}

	for attempt := 1; attempt <= n.cfg.MaxRetries; attempt++ {
		for _, url := range n.candidates {
			status, err := n.post(ctx, url, payload.OrderID, body)
			if err == nil {
				n.logger.Info("workflow triggered", "url", url, "status", status, "order_id", payload.OrderID)
				return true
			}
			n.logger.Warn("workflow trigger failed", "attempt", attempt, "url", url, "error", err)
			if ctx.Err() != nil {
				return false
			}
		}

		if attempt < n.cfg.MaxRetries {
			if !sleep(ctx, n.cfg.Backoff*time.Duration(attempt)) {
				return false
			}
		}
	}

	n.logger.Error("all workflow trigger attempts failed",
		"order_id", payload.OrderID,
		"candidates", n.candidates,
		"attempts", n.cfg.MaxRetries,
	)
	return false
}

func (n *Notifier) post(ctx context.Context, url string, orderID int64, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if orderID != 0 {
		req.Header.Set("Idempotency-Key", fmt.Sprintf("order-%d", orderID))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
