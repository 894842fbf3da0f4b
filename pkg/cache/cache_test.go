package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/JaimeStill/detox/pkg/cache"
	"github.com/JaimeStill/detox/pkg/lifecycle"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &cache.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Enabled() {
		t.Error("cache should be disabled without url")
	}
	if cfg.TTLDuration() != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.TTLDuration())
	}
	if cfg.KeyPrefix != "detox" {
		t.Errorf("prefix = %s, want detox", cfg.KeyPrefix)
	}
}

func TestConfigEnv(t *testing.T) {
	env := &cache.Env{URL: "TEST_CACHE_URL", TTL: "TEST_CACHE_TTL", KeyPrefix: "TEST_CACHE_PREFIX"}
	t.Setenv("TEST_CACHE_URL", "redis://localhost:6379/0")
	t.Setenv("TEST_CACHE_TTL", "5m")
	t.Setenv("TEST_CACHE_PREFIX", "stage")

	cfg := &cache.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("cache should be enabled")
	}
	if cfg.TTLDuration() != 5*time.Minute {
		t.Errorf("ttl = %v", cfg.TTLDuration())
	}
	if cfg.KeyPrefix != "stage" {
		t.Errorf("prefix = %s", cfg.KeyPrefix)
	}
}

func TestConfigValidate(t *testing.T) {
	for _, ttl := range []string{"soon", "-1m", "0s"} {
		cfg := &cache.Config{TTL: ttl}
		if err := cfg.Finalize(nil); err == nil {
			t.Errorf("ttl %q: expected error", ttl)
		}
	}
}

func TestConfigMerge(t *testing.T) {
	base := &cache.Config{URL: "localhost:6379", TTL: "1h", KeyPrefix: "detox"}
	base.Merge(&cache.Config{TTL: "10m"})

	if base.URL != "localhost:6379" || base.TTL != "10m" || base.KeyPrefix != "detox" {
		t.Errorf("merged = %+v", base)
	}
}

func TestNoop(t *testing.T) {
	sys, err := cache.New(&cache.Config{KeyPrefix: "detox"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := sys.Start(lifecycle.New()); err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx := context.Background()
	if err := sys.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := sys.Get(ctx, "k"); ok || err != nil {
		t.Errorf("get = %v, %v; want miss", ok, err)
	}
	if got := sys.Key("risk", "v1"); got != "detox:risk:v1" {
		t.Errorf("key = %s", got)
	}
	if got := cache.NewNoop("").Key("a", "b"); got != "a:b" {
		t.Errorf("unprefixed key = %s", got)
	}
}

func TestConnect(t *testing.T) {
	tests := []struct {
		url      string
		wantAddr string
		wantErr  bool
	}{
		{"redis://cache.internal:6380/2", "cache.internal:6380", false},
		{"127.0.0.1:6379", "127.0.0.1:6379", false},
		{"redis://bad host:port", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			client, err := cache.Connect(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("connect: %v", err)
			}
			defer client.Close()
			if client.Options().Addr != tt.wantAddr {
				t.Errorf("addr = %s, want %s", client.Options().Addr, tt.wantAddr)
			}
		})
	}
}
