// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, completion backend,
// content extraction, workflow delivery) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/estimator/internal/config"
	"github.com/JaimeStill/estimator/internal/content"
	"github.com/JaimeStill/estimator/internal/extraction"
	"github.com/JaimeStill/estimator/internal/llm"
	"github.com/JaimeStill/estimator/internal/llm/openai"
	"github.com/JaimeStill/estimator/internal/workflow"
	"github.com/JaimeStill/estimator/pkg/database"
	"github.com/JaimeStill/estimator/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// Completer and Conversation are nil when no completion backend is configured.
type Infrastructure struct {
	Lifecycle    *lifecycle.Coordinator
	Logger       *slog.Logger
	Database     database.System
	Completer    llm.Completer
	Conversation llm.Conversation
	Content      *content.Extractor
	Notifier     *workflow.Notifier
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	services := NewServices(cfg, logger)

	return &Infrastructure{
		Lifecycle:    lc,
		Logger:       logger,
		Database:     db,
		Completer:    services.Completer,
		Conversation: services.Conversation,
		Content:      services.Content,
		Notifier:     services.Notifier,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}

// Services are the database-free collaborators shared by the server and
// the command-line tool.
type Services struct {
	Completer    llm.Completer
	Conversation llm.Conversation
	Content      *content.Extractor
	Notifier     *workflow.Notifier
}

// NewServices builds the completion client, content extractor and notifier.
// The completion client is only built when the llm section is enabled.
func NewServices(cfg *config.Config, logger *slog.Logger) *Services {
	s := &Services{
		Content: content.New(content.Config{
			Tesseract:  cfg.Content.Tesseract,
			OCRTimeout: cfg.Content.OCRTimeoutDuration(),
		}, nil, logger),
		Notifier: workflow.NewNotifier(workflow.Config{
			WebhookURL: cfg.Workflow.WebhookURL,
			MaxRetries: cfg.Workflow.MaxRetries,
			Timeout:    cfg.Workflow.TimeoutDuration(),
			Backoff:    cfg.Workflow.BackoffDuration(),
		}, logger),
	}

	if cfg.LLM.Enabled() {
		client := openai.New(openai.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.TimeoutDuration(),
			System:  extraction.SystemPrompt,
		}, logger)
		s.Completer = client
		s.Conversation = client
		logger.Info("completion backend enabled", "model", cfg.LLM.Model, "base_url", cfg.LLM.BaseURL)
	} else {
		logger.Info("completion backend disabled, using heuristic extraction")
	}

	return s
}
