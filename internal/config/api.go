package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/detox/pkg/formatting"
	"github.com/JaimeStill/detox/pkg/middleware"
	"github.com/JaimeStill/detox/pkg/openapi"
)

const (
	EnvAPIBasePath    = "DETOX_API_BASE_PATH"
	EnvAPIMaxBodySize = "DETOX_API_MAX_BODY_SIZE"
)

const defaultMaxBodySize = formatting.ByteSize(1 << 20)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "DETOX_CORS_ENABLED",
	Origins:          "DETOX_CORS_ORIGINS",
	AllowedMethods:   "DETOX_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "DETOX_CORS_ALLOWED_HEADERS",
	AllowCredentials: "DETOX_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "DETOX_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "DETOX_OPENAPI_TITLE",
	Description: "DETOX_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, request limits, CORS, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize formatting.ByteSize   `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != 0 {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == 0 {
		c.MaxBodySize = defaultMaxBodySize
	}
}

func (c *APIConfig) loadEnv() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		if err := c.MaxBodySize.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvAPIMaxBodySize, err)
		}
	}
	return nil
}

func (c *APIConfig) validate() error {
	if c.MaxBodySize < 0 {
		return fmt.Errorf("invalid max_body_size: %d", c.MaxBodySize)
	}
	return nil
}
