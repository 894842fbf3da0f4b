package config

import (
	"fmt"
	"os"
)

const (
	EnvModelSource  = "DETOX_MODEL_SOURCE"
	EnvModelPath    = "DETOX_MODEL_PATH"
	EnvModelBlobKey = "DETOX_MODEL_BLOB_KEY"
)

// Model artifact sources.
const (
	ModelSourceEmbedded = "embedded"
	ModelSourceFile     = "file"
	ModelSourceBlob     = "blob"
)

// ModelConfig selects where the classifier artifact is loaded from.
type ModelConfig struct {
	Source  string `toml:"source"`
	Path    string `toml:"path"`
	BlobKey string `toml:"blob_key"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ModelConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ModelConfig) Merge(overlay *ModelConfig) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.BlobKey != "" {
		c.BlobKey = overlay.BlobKey
	}
}

func (c *ModelConfig) loadDefaults() {
	if c.Source == "" {
		c.Source = ModelSourceEmbedded
	}
}

func (c *ModelConfig) loadEnv() {
	if v := os.Getenv(EnvModelSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvModelPath); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvModelBlobKey); v != "" {
		c.BlobKey = v
	}
}

func (c *ModelConfig) validate() error {
	switch c.Source {
	case ModelSourceEmbedded:
	case ModelSourceFile:
		if c.Path == "" {
			return fmt.Errorf("path required for file source")
		}
	case ModelSourceBlob:
		if c.BlobKey == "" {
			return fmt.Errorf("blob_key required for blob source")
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	return nil
}
