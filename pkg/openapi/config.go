package openapi

import "os"

const (
	defaultTitle       = "Print Estimator API"
	defaultDescription = "Print order intake, estimation, and disposition service."
)

// Config holds document metadata. Server, when set, replaces the API base
// path as the advertised server URL.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Server      string `toml:"server"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
	Server      string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}
	if env == nil {
		return nil
	}
	for _, f := range c.fields(env) {
		if f.env == "" {
			continue
		}
		if v := os.Getenv(f.env); v != "" {
			*f.value = v
		}
	}
	return nil
}

// Merge overwrites non-empty fields from overlay.
func (c *Config) Merge(overlay *Config) {
	src := overlay.fields(nil)
	for i, f := range c.fields(nil) {
		if v := *src[i].value; v != "" {
			*f.value = v
		}
	}
}

type field struct {
	value *string
	env   string
}

func (c *Config) fields(env *ConfigEnv) []field {
	if env == nil {
		env = &ConfigEnv{}
	}
	return []field{
		{&c.Title, env.Title},
		{&c.Description, env.Description},
		{&c.Server, env.Server},
	}
}
