package config

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/estimator/pkg/formatting"
	"github.com/JaimeStill/estimator/pkg/middleware"
	"github.com/JaimeStill/estimator/pkg/openapi"
	"github.com/JaimeStill/estimator/pkg/pagination"
)

const (
	EnvAPIBasePath      = "ESTIMATOR_API_BASE_PATH"
	EnvAPIMaxUploadSize = "ESTIMATOR_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ESTIMATOR_CORS_ENABLED",
	Origins:          "ESTIMATOR_CORS_ORIGINS",
	AllowedMethods:   "ESTIMATOR_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ESTIMATOR_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "ESTIMATOR_CORS_EXPOSED_HEADERS",
	AllowCredentials: "ESTIMATOR_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ESTIMATOR_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ESTIMATOR_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ESTIMATOR_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "ESTIMATOR_OPENAPI_TITLE",
	Description: "ESTIMATOR_OPENAPI_DESCRIPTION",
	Server:      "ESTIMATOR_OPENAPI_SERVER",
}

// APIConfig holds the API mount point, upload limit and the nested CORS,
// pagination and OpenAPI sections.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

const defaultMaxUploadSize = "20MB"

// MaxUploadSizeBytes returns the parsed upload limit, or the default when
// MaxUploadSize does not parse.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		size, _ = formatting.ParseBytes(defaultMaxUploadSize)
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	defaultString(&c.BasePath, "/api")
	defaultString(&c.MaxUploadSize, defaultMaxUploadSize)
	envString(&c.BasePath, EnvAPIBasePath)
	envString(&c.MaxUploadSize, EnvAPIMaxUploadSize)

	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("invalid base_path %q: want a single /segment", c.BasePath)
	}
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	mergeString(&c.BasePath, overlay.BasePath)
	mergeString(&c.MaxUploadSize, overlay.MaxUploadSize)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
