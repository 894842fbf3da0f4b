package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// DefaultThreshold is the class-1 probability at which Predict returns ClassAddicted.
const DefaultThreshold = 0.5

// FeatureNames is the feature order every artifact must declare.
var FeatureNames = []string{"screen_time", "session_duration", "app_switches", "night_activity"}

//go:embed artifacts/default.json
var defaultArtifact []byte

// Scaler holds per-feature standardization parameters.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// Artifact is the serialized form of a trained Pipeline.
type Artifact struct {
	Name         string    `json:"name" yaml:"name"`
	Version      string    `json:"version" yaml:"version"`
	Features     []string  `json:"features" yaml:"features"`
	Scaler       Scaler    `json:"scaler" yaml:"scaler"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Threshold    float64   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// Validate checks the artifact shape against FeatureNames.
func (a *Artifact) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidArtifact)
	}
	if a.Version == "" {
		return fmt.Errorf("%w: version required", ErrInvalidArtifact)
	}
	if !slices.Equal(a.Features, FeatureNames) {
		return fmt.Errorf("%w: features %v, want %v", ErrFeatureMismatch, a.Features, FeatureNames)
	}

	n := len(FeatureNames)
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n || len(a.Coefficients) != n {
		return fmt.Errorf("%w: scaler and coefficients must each hold %d values", ErrInvalidArtifact, n)
	}
	for i, s := range a.Scaler.Scale {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: scale[%d] must be positive", ErrInvalidArtifact, i)
		}
	}
	if a.Threshold < 0 || a.Threshold >= 1 {
		return fmt.Errorf("%w: threshold must be in [0,1)", ErrInvalidArtifact)
	}
	return nil
}

// DecodeArtifact reads an artifact whose format is chosen by the name's
// extension: .json, .yaml, or .yml, each optionally followed by .gz.
func DecodeArtifact(name string, r io.Reader) (*Artifact, error) {
	ext := strings.ToLower(path.Ext(name))

	if ext == ".gz" {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip artifact %s: %w", name, err)
		}
		defer zr.Close()

		r = zr
		name = strings.TrimSuffix(name, path.Ext(name))
		ext = strings.ToLower(path.Ext(name))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}

	var a Artifact
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parse artifact %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parse artifact %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// DefaultArtifact returns the artifact embedded in the binary.
func DefaultArtifact() (*Artifact, error) {
	return DecodeArtifact("default.json", bytes.NewReader(defaultArtifact))
}
