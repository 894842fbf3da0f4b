// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, model, cache, storage) that domain systems require.
package infrastructure

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/pkg/cache"
	"github.com/JaimeStill/detox/pkg/lifecycle"
	"github.com/JaimeStill/detox/pkg/model"
	"github.com/JaimeStill/detox/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Storage is nil when no storage account is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Model     *model.Handle
	Cache     cache.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with an explicit logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	c, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	src, err := ModelSource(&cfg.Model, store)
	if err != nil {
		return nil, fmt.Errorf("model init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Model:     model.NewHandle(src, logger),
		Cache:     c,
		Storage:   store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The model loads during startup and gates readiness.
func (i *Infrastructure) Start() error {
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cache start failed: %w", err)
	}

	i.Lifecycle.Gate(i.Model)
	i.Lifecycle.OnStartup(func() {
		// Failures are logged by the handle and keep /readyz unavailable.
		_ = i.Model.Init(i.Lifecycle.Context())
	})
	return nil
}
