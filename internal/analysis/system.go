// Package analysis exposes the recommendation engine over HTTP.
package analysis

import (
	"context"

	"github.com/JaimeStill/detox/internal/recommendations"
)

// System defines the public contract for usage analysis operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	Analyze(ctx context.Context, values []float64) (*recommendations.Bundle, error)
	Summarize(ctx context.Context, values []float64) (string, error)
	Samples(ctx context.Context) ([]SampleResult, error)
}

// SampleResult pairs a reference user with its bundle.
type SampleResult struct {
	Description string                  `json:"description"`
	Bundle      *recommendations.Bundle `json:"bundle"`
}
