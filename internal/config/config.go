package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/estimator/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvEstimatorEnv             = "ESTIMATOR_ENV"
	EnvEstimatorShutdownTimeout = "ESTIMATOR_SHUTDOWN_TIMEOUT"
	EnvEstimatorVersion         = "ESTIMATOR_VERSION"
)

var databaseEnv = &database.Env{
	DSN:             "ESTIMATOR_DB_DSN",
	Host:            "ESTIMATOR_DB_HOST",
	Port:            "ESTIMATOR_DB_PORT",
	Name:            "ESTIMATOR_DB_NAME",
	User:            "ESTIMATOR_DB_USER",
	Password:        "ESTIMATOR_DB_PASSWORD",
	SSLMode:         "ESTIMATOR_DB_SSL_MODE",
	MaxOpenConns:    "ESTIMATOR_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ESTIMATOR_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ESTIMATOR_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ESTIMATOR_DB_CONN_TIMEOUT",
}

// Config is the root configuration for the estimator service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	API             APIConfig       `toml:"api"`
	LLM             LLMConfig       `toml:"llm"`
	Workflow        WorkflowConfig  `toml:"workflow"`
	Content         ContentConfig   `toml:"content"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the ESTIMATOR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEstimatorEnv); env != "" {
		return env
	}
	return "local"
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

// Load reads config.toml when present, merges the config.<ESTIMATOR_ENV>.toml
// overlay when present, and finalizes the result. Unknown keys in either file
// are an error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := decodeFile(BaseConfigFile, cfg); err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvEstimatorEnv); env != "" {
		overlay := &Config{}
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if err := decodeFile(path, overlay); err != nil {
			return nil, fmt.Errorf("overlay: %w", err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	mergeString(&c.Version, overlay.Version)
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.LLM.Merge(&overlay.LLM)
	c.Workflow.Merge(&overlay.Workflow)
	c.Content.Merge(&overlay.Content)
}

type section struct {
	name     string
	finalize func() error
}

// Finalize applies defaults, environment overrides, and validation to the
// root config and then to every section in order.
func (c *Config) Finalize() error {
	defaultString(&c.ShutdownTimeout, "30s")
	defaultString(&c.Version, "0.1.0")
	defaultString(&c.Database.Name, "estimator")
	defaultString(&c.Database.User, "estimator")
	envString(&c.ShutdownTimeout, EnvEstimatorShutdownTimeout)
	envString(&c.Version, EnvEstimatorVersion)

	if err := checkDurations(map[string]string{"shutdown_timeout": c.ShutdownTimeout}); err != nil {
		return err
	}

	sections := []section{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"api", c.API.Finalize},
		{"llm", c.LLM.Finalize},
		{"workflow", c.Workflow.Finalize},
		{"content", c.Content.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// decodeFile decodes path into cfg. A missing file leaves cfg untouched.
func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse %s: %s", path, strict.String())
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
