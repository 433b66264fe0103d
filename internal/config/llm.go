package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvLLMAPIKey      = "ESTIMATOR_LLM_API_KEY"
	EnvLLMBaseURL     = "ESTIMATOR_LLM_BASE_URL"
	EnvLLMModel       = "ESTIMATOR_LLM_MODEL"
	EnvLLMTimeout     = "ESTIMATOR_LLM_TIMEOUT"

	// Conventional variables honoured when the prefixed ones are unset.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvOpenAIModel  = "OPENAI_MODEL"
)

// LLMConfig holds the external text-completion backend settings.
// The backend is considered available only when both APIKey and Model are set.
// Sampling temperature is always zero and is not configurable.
type LLMConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// Enabled reports whether an external completion backend is configured.
func (c *LLMConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *LLMConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *LLMConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIModel); v != "" && c.Model == "" {
		c.Model = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvLLMBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvLLMTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *LLMConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
