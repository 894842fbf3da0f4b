package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/detox/internal/recommendations"
	"github.com/JaimeStill/detox/internal/usage"
)

type service struct {
	engine *recommendations.Engine
	logger *slog.Logger
}

// New creates the analysis System over engine.
func New(engine *recommendations.Engine, logger *slog.Logger) System {
	return &service{
		engine: engine,
		logger: logger.With("system", "analysis"),
	}
}

func (s *service) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, maxBodySize)
}

func (s *service) Analyze(ctx context.Context, values []float64) (*recommendations.Bundle, error) {
	return s.engine.Analyze(ctx, values)
}

func (s *service) Summarize(ctx context.Context, values []float64) (string, error) {
	return s.engine.Summarize(ctx, values)
}

func (s *service) Samples(ctx context.Context) ([]SampleResult, error) {
	samples := usage.Samples()
	results := make([]SampleResult, 0, len(samples))

	for _, sample := range samples {
		b, err := s.engine.Build(ctx, sample.Profile)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", sample.Description, err)
		}
		results = append(results, SampleResult{
			Description: sample.Description,
			Bundle:      b,
		})
	}

	return results, nil
}
