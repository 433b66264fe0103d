// Package openai implements llm.Completer over an OpenAI-compatible
// chat/completions endpoint.
package openai

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the OpenAI client.
type Config struct {
	APIKey  string
	BaseURL string // default https://api.openai.com/v1
	Model   string
	Timeout time.Duration
	System  string // optional system message prepended by Submit
}

// Client calls the chat/completions endpoint with zero sampling temperature.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. A nil logger falls back to slog.Default.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("system", "openai"),
	}
}
