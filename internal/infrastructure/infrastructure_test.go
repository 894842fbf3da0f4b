package infrastructure_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/internal/infrastructure"
	"github.com/JaimeStill/detox/pkg/lifecycle"
	"github.com/JaimeStill/detox/pkg/model"
	"github.com/JaimeStill/detox/pkg/storage"
)

type mockStorage struct {
	downloadFn func(ctx context.Context, key string) (io.ReadCloser, error)
}

func (m *mockStorage) Start(*lifecycle.Coordinator) error { return nil }

func (m *mockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.downloadFn(ctx, key)
}

func (m *mockStorage) Exists(context.Context, string) (bool, error) { return true, nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	return cfg
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.NewWithLogger(defaultConfig(t), discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Model == nil || infra.Cache == nil {
		t.Fatalf("incomplete infrastructure: %+v", infra)
	}
	if infra.Storage != nil {
		t.Error("storage should be nil when unconfigured")
	}
}

func TestStartGatesReadinessOnModel(t *testing.T) {
	infra, err := infrastructure.NewWithLogger(defaultConfig(t), discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	if !infra.Model.Ready() {
		t.Fatal("embedded model should load during startup")
	}
	if !infra.Lifecycle.Ready() {
		t.Error("lifecycle should be ready after model load")
	}

	if err := infra.Lifecycle.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestStartWithBadModelStaysUnready(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Model = config.ModelConfig{
		Source: config.ModelSourceFile,
		Path:   filepath.Join(t.TempDir(), "absent.json"),
	}

	infra, err := infrastructure.NewWithLogger(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	if infra.Lifecycle.Ready() {
		t.Error("lifecycle should not be ready when the model fails to load")
	}
}

func TestModelSource(t *testing.T) {
	artifact, err := os.ReadFile(filepath.Join("..", "..", "pkg", "model", "artifacts", "default.json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	var requested string
	store := &mockStorage{
		downloadFn: func(_ context.Context, key string) (io.ReadCloser, error) {
			requested = key
			return io.NopCloser(bytes.NewReader(artifact)), nil
		},
	}

	t.Run("blob", func(t *testing.T) {
		src, err := infrastructure.ModelSource(&config.ModelConfig{
			Source:  config.ModelSourceBlob,
			BlobKey: "classifiers/v1/model.json",
		}, store)
		if err != nil {
			t.Fatalf("ModelSource() error = %v", err)
		}
		if src.Name() != "model.json" {
			t.Errorf("name: got %s, want model.json", src.Name())
		}

		p, err := model.Load(context.Background(), src)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if requested != "classifiers/v1/model.json" {
			t.Errorf("downloaded key: got %s", requested)
		}
		if p.Version() == "" {
			t.Error("pipeline version should be set")
		}
	})

	t.Run("blob without storage", func(t *testing.T) {
		_, err := infrastructure.ModelSource(&config.ModelConfig{
			Source:  config.ModelSourceBlob,
			BlobKey: "model.json",
		}, nil)
		if !errors.Is(err, storage.ErrNotConfigured) {
			t.Errorf("error: got %v, want ErrNotConfigured", err)
		}
	})

	t.Run("blob not found", func(t *testing.T) {
		missing := &mockStorage{
			downloadFn: func(context.Context, string) (io.ReadCloser, error) {
				return nil, storage.ErrNotFound
			},
		}
		src, err := infrastructure.ModelSource(&config.ModelConfig{
			Source:  config.ModelSourceBlob,
			BlobKey: "gone.json",
		}, missing)
		if err != nil {
			t.Fatalf("ModelSource() error = %v", err)
		}
		if _, err := model.Load(context.Background(), src); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("load error: got %v, want ErrNotFound", err)
		}
	})

	t.Run("embedded", func(t *testing.T) {
		src, err := infrastructure.ModelSource(&config.ModelConfig{Source: config.ModelSourceEmbedded}, nil)
		if err != nil {
			t.Fatalf("ModelSource() error = %v", err)
		}
		if src.Name() != model.EmbeddedSource().Name() {
			t.Errorf("name: got %s", src.Name())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := infrastructure.ModelSource(&config.ModelConfig{Source: "ftp"}, nil); err == nil {
			t.Error("expected error for unknown source")
		}
	})
}
