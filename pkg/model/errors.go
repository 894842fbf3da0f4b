package model

import "errors"

var (
	// ErrFeatureMismatch indicates a feature vector of the wrong arity or names.
	ErrFeatureMismatch = errors.New("feature mismatch")
	// ErrInvalidInput indicates a non-finite feature value.
	ErrInvalidInput = errors.New("invalid model input")
	// ErrInvalidArtifact indicates a malformed model artifact.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrNotLoaded indicates the model handle has not been initialized.
	ErrNotLoaded = errors.New("model not loaded")
	// ErrUnknownFormat indicates an artifact extension with no decoder.
	ErrUnknownFormat = errors.New("unknown artifact format")
)
