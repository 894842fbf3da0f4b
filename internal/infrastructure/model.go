package infrastructure

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/pkg/model"
	"github.com/JaimeStill/detox/pkg/storage"
)

// ModelSource resolves the configured artifact source. store may be nil
// unless the source is blob.
func ModelSource(cfg *config.ModelConfig, store storage.System) (model.Source, error) {
	switch cfg.Source {
	case config.ModelSourceFile:
		return model.FileSource(cfg.Path), nil
	case config.ModelSourceBlob:
		if store == nil {
			return nil, fmt.Errorf("blob source: %w", storage.ErrNotConfigured)
		}
		return &blobSource{store: store, key: cfg.BlobKey}, nil
	case config.ModelSourceEmbedded, "":
		return model.EmbeddedSource(), nil
	default:
		return nil, fmt.Errorf("unknown model source %q", cfg.Source)
	}
}

type blobSource struct {
	store storage.System
	key   string
}

func (b *blobSource) Name() string {
	return path.Base(b.key)
}

func (b *blobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return b.store.Download(ctx, b.key)
}
