package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	EnvWorkflowWebhookURL = "ESTIMATOR_WORKFLOW_WEBHOOK_URL"
	EnvWorkflowMaxRetries = "ESTIMATOR_WORKFLOW_MAX_RETRIES"
	EnvWorkflowTimeout    = "ESTIMATOR_WORKFLOW_TIMEOUT"
	EnvWorkflowBackoff    = "ESTIMATOR_WORKFLOW_BACKOFF"

	EnvN8NWebhookURL = "N8N_WEBHOOK_URL"

	DefaultWebhookURL = "http://n8n:5678/webhook-test/ai-estimator"
)

// WorkflowConfig holds downstream workflow delivery settings.
// Backoff is the per-attempt unit of the linear sleep between delivery rounds.
type WorkflowConfig struct {
	WebhookURL string `toml:"webhook_url"`
	MaxRetries int    `toml:"max_retries"`
	Timeout    string `toml:"timeout"`
	Backoff    string `toml:"backoff"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *WorkflowConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// BackoffDuration returns Backoff as a time.Duration.
func (c *WorkflowConfig) BackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.Backoff)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.WebhookURL != "" {
		c.WebhookURL = overlay.WebhookURL
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Backoff != "" {
		c.Backoff = overlay.Backoff
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.WebhookURL == "" {
		c.WebhookURL = DefaultWebhookURL
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.Timeout == "" {
		c.Timeout = "5s"
	}
	if c.Backoff == "" {
		c.Backoff = "500ms"
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvN8NWebhookURL); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv(EnvWorkflowWebhookURL); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv(EnvWorkflowMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvWorkflowTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvWorkflowBackoff); v != "" {
		c.Backoff = v
	}
}

func (c *WorkflowConfig) validate() error {
	if _, err := url.ParseRequestURI(c.WebhookURL); err != nil {
		return fmt.Errorf("invalid webhook_url: %w", err)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Backoff); err != nil {
		return fmt.Errorf("invalid backoff: %w", err)
	}
	return nil
}
