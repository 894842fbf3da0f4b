// Package model provides the pretrained binary risk classifier boundary
// and a standard-scaler plus logistic-regression implementation whose
// parameters are loaded from an artifact.
package model

import (
	"fmt"
	"math"
)

// Class labels produced by Predict.
const (
	ClassHealthy  = 0
	ClassAddicted = 1
)

// Classifier is a pretrained binary classifier over an ordered feature vector.
// Implementations must be safe for concurrent read-only use.
type Classifier interface {
	// Predict returns the predicted class label (ClassHealthy or ClassAddicted).
	Predict(features []float64) (int, error)
	// Probabilities returns [p_healthy, p_addicted], each in [0,1] and summing to 1.
	Probabilities(features []float64) ([]float64, error)
	// Version identifies the loaded model parameters. Used in cache keys.
	Version() string
}

// Pipeline standardizes features then applies a logistic regression.
type Pipeline struct {
	name         string
	version      string
	features     []string
	mean         []float64
	scale        []float64
	coefficients []float64
	intercept    float64
	threshold    float64
}

// NewPipeline builds a Pipeline from a validated artifact.
func NewPipeline(a *Artifact) (*Pipeline, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	threshold := a.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	return &Pipeline{
		name:         a.Name,
		version:      a.Version,
		features:     append([]string(nil), a.Features...),
		mean:         append([]float64(nil), a.Scaler.Mean...),
		scale:        append([]float64(nil), a.Scaler.Scale...),
		coefficients: append([]float64(nil), a.Coefficients...),
		intercept:    a.Intercept,
		threshold:    threshold,
	}, nil
}

// Name returns the artifact name.
func (p *Pipeline) Name() string {
	return p.name
}

// Version returns "name@version".
func (p *Pipeline) Version() string {
	return p.name + "@" + p.version
}

// Features returns the feature names the pipeline expects, in order.
func (p *Pipeline) Features() []string {
	return append([]string(nil), p.features...)
}

// Predict returns ClassAddicted when the class-1 probability reaches the threshold.
func (p *Pipeline) Predict(features []float64) (int, error) {
	prob, err := p.positive(features)
	if err != nil {
		return 0, err
	}
	if prob >= p.threshold {
		return ClassAddicted, nil
	}
	return ClassHealthy, nil
}

// Probabilities returns [p_healthy, p_addicted].
func (p *Pipeline) Probabilities(features []float64) ([]float64, error) {
	prob, err := p.positive(features)
	if err != nil {
		return nil, err
	}
	return []float64{1 - prob, prob}, nil
}

func (p *Pipeline) positive(features []float64) (float64, error) {
	if len(features) != len(p.coefficients) {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrFeatureMismatch, len(features), len(p.coefficients))
	}

	z := p.intercept
	for i, x := range features {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%w: feature %s is not finite", ErrInvalidInput, p.features[i])
		}
		z += p.coefficients[i] * (x - p.mean[i]) / p.scale[i]
	}

	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
