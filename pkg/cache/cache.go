// Package cache provides a byte-value cache with a Redis implementation
// and a no-op fallback used when no backend is configured.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/detox/pkg/lifecycle"
)

// System stores short-lived values by key. A miss is reported as
// (nil, false, nil); errors indicate backend faults.
type System interface {
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Key joins parts onto the configured prefix.
	Key(parts ...string) string
}

// New creates a Redis-backed System when cfg is enabled, otherwise a no-op System.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if !cfg.Enabled() {
		return NewNoop(cfg.KeyPrefix), nil
	}

	client, err := Connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	return &redisCache{
		client: client,
		ttl:    cfg.TTLDuration(),
		prefix: cfg.KeyPrefix,
		logger: logger.With("system", "cache"),
	}, nil
}

// Connect initializes a Redis client from a redis:// URL or a host:port address.
func Connect(url string) (*redis.Client, error) {
	if strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://") {
		opt, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: url}), nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache system")

	lc.OnStartup(func() {
		if err := c.client.Ping(lc.Context()).Err(); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}
		c.logger.Info("cache connected", "addr", c.client.Options().Addr)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}
		c.logger.Info("cache closed")
	})

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return data, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Key(parts ...string) string {
	return joinKey(c.prefix, parts)
}

type noop struct {
	prefix string
}

// NewNoop returns a System that never stores anything.
func NewNoop(prefix string) System {
	return noop{prefix: prefix}
}

func (noop) Start(*lifecycle.Coordinator) error { return nil }

func (noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (noop) Set(context.Context, string, []byte) error { return nil }

func (n noop) Key(parts ...string) string {
	return joinKey(n.prefix, parts)
}

func joinKey(prefix string, parts []string) string {
	if prefix == "" {
		return strings.Join(parts, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}
