package infrastructure_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/estimator/internal/config"
	"github.com/JaimeStill/estimator/internal/infrastructure"
)

func finalized(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvOpenAIAPIKey, "")
	t.Setenv(config.EnvLLMAPIKey, "")

	cfg := &config.Config{}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return cfg
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(finalized(t, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer infra.Database.Connection().Close()

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Database == nil {
		t.Fatal("core systems not initialized")
	}
	if infra.Content == nil || infra.Notifier == nil {
		t.Error("services not initialized")
	}
	if infra.Completer != nil || infra.Conversation != nil {
		t.Error("completion backend built without an api key")
	}
}

func TestNewInvalidDSN(t *testing.T) {
	cfg := finalized(t, nil)
	cfg.Database.DSN = "postgres://%zz"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for malformed dsn")
	}
}

func TestNewServicesWithCompletionBackend(t *testing.T) {
	cfg := finalized(t, func(c *config.Config) {
		c.LLM.APIKey = "sk-test"
		c.LLM.Model = "gpt-4o-mini"
	})

	s := infrastructure.NewServices(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s.Completer == nil || s.Conversation == nil {
		t.Fatal("completion backend not built")
	}
	if s.Notifier.Candidates()[0] != cfg.Workflow.WebhookURL {
		t.Errorf("first candidate = %s, want %s", s.Notifier.Candidates()[0], cfg.Workflow.WebhookURL)
	}
}
