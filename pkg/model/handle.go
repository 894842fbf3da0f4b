package model

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Handle is a read-only, load-once holder for a Classifier shared by every
// request. Init loads the model explicitly during startup; the first
// inference call loads it lazily if Init has not run. The loaded
// classifier is never replaced.
type Handle struct {
	src    Source
	logger *slog.Logger

	once  sync.Once
	clf   Classifier
	err   error
	ready atomic.Bool
}

// NewHandle creates a Handle that loads from src.
func NewHandle(src Source, logger *slog.Logger) *Handle {
	return &Handle{
		src:    src,
		logger: logger.With("system", "model"),
	}
}

// Preloaded wraps an existing Classifier in a ready Handle.
func Preloaded(clf Classifier) *Handle {
	h := &Handle{clf: clf}
	h.once.Do(func() {})
	h.ready.Store(true)
	return h
}

// Init loads the model if it has not been loaded. Subsequent calls return
// the result of the first load.
func (h *Handle) Init(ctx context.Context) error {
	h.once.Do(func() {
		start := time.Now()
		p, err := Load(ctx, h.src)
		if err != nil {
			h.err = err
			h.logger.Error("model load failed", "source", h.src.Name(), "error", err)
			return
		}
		h.clf = p
		h.ready.Store(true)
		h.logger.Info(
			"model loaded",
			"source", h.src.Name(),
			"version", p.Version(),
			"duration", time.Since(start),
		)
	})
	return h.err
}

// Ready reports whether a classifier is loaded.
func (h *Handle) Ready() bool {
	return h.ready.Load()
}

func (h *Handle) classifier() (Classifier, error) {
	if err := h.Init(context.Background()); err != nil {
		return nil, err
	}
	if h.clf == nil {
		return nil, ErrNotLoaded
	}
	return h.clf, nil
}

// Predict delegates to the loaded classifier.
func (h *Handle) Predict(features []float64) (int, error) {
	clf, err := h.classifier()
	if err != nil {
		return 0, err
	}
	return clf.Predict(features)
}

// Probabilities delegates to the loaded classifier.
func (h *Handle) Probabilities(features []float64) ([]float64, error) {
	clf, err := h.classifier()
	if err != nil {
		return nil, err
	}
	return clf.Probabilities(features)
}

// Version returns the loaded classifier's version, or "" before loading.
func (h *Handle) Version() string {
	if !h.Ready() {
		return ""
	}
	return h.clf.Version()
}
