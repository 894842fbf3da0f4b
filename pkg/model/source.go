package model

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source locates a serialized artifact. Name carries the extension that
// selects the decoder.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Load opens src, decodes its artifact, and builds a Pipeline.
func Load(ctx context.Context, src Source) (*Pipeline, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", src.Name(), err)
	}
	defer rc.Close()

	a, err := DecodeArtifact(src.Name(), rc)
	if err != nil {
		return nil, err
	}
	return NewPipeline(a)
}

type embedded struct{}

// EmbeddedSource returns the artifact compiled into the binary.
func EmbeddedSource() Source {
	return embedded{}
}

func (embedded) Name() string {
	return "default.json"
}

func (embedded) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(defaultArtifact)), nil
}

type file struct {
	path string
}

// FileSource returns an artifact read from the local filesystem.
func FileSource(path string) Source {
	return file{path: path}
}

func (f file) Name() string {
	return filepath.Base(f.path)
}

func (f file) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(f.path)
}
