package usage

import (
	"errors"
	"fmt"
)

// ErrInvalidUsage is matched by every Defect through errors.Is.
var ErrInvalidUsage = errors.New("invalid usage data")

// DefectKind names a validation defect.
type DefectKind string

// Validation defect kinds.
const (
	DefectArityMismatch         DefectKind = "arity_mismatch"
	DefectInvalidNumber         DefectKind = "invalid_number"
	DefectZeroUsage             DefectKind = "zero_usage"
	DefectNegativeValues        DefectKind = "negative_values"
	DefectUnrealisticScreenTime DefectKind = "unrealistic_screen_time"
	DefectInvalidNightActivity  DefectKind = "invalid_night_activity"
)

type defectText struct {
	message    string
	suggestion string
}

var defects = map[DefectKind]defectText{
	DefectArityMismatch: {
		message:    "usage must be a list of 4 values: [screen_time, session_duration, app_switches, night_activity]",
		suggestion: "Send all four usage metrics in canonical order.",
	},
	DefectInvalidNumber: {
		message:    "Invalid data: usage values must be finite numbers.",
		suggestion: "Send plain numeric values for every metric.",
	},
	DefectZeroUsage: {
		message:    "No usage detected.",
		suggestion: "Start tracking your screen time for a few days, then analyze again.",
	},
	DefectNegativeValues: {
		message:    "Invalid data: usage values cannot be negative.",
		suggestion: "Check the tracked values and send non-negative numbers.",
	},
	DefectUnrealisticScreenTime: {
		message:    "Screen time exceeds 24 hours (1440 minutes); please check your input.",
		suggestion: "Enter daily screen time in minutes, between 0 and 1440.",
	},
	DefectInvalidNightActivity: {
		message:    "Night activity cannot exceed total screen time.",
		suggestion: "Verify your usage data: night activity is part of daily screen time.",
	},
}

// DefectKinds returns every defect kind in validation priority order.
func DefectKinds() []DefectKind {
	return []DefectKind{
		DefectArityMismatch,
		DefectInvalidNumber,
		DefectZeroUsage,
		DefectNegativeValues,
		DefectUnrealisticScreenTime,
		DefectInvalidNightActivity,
	}
}

// Defect is a named validation failure carrying a user-facing message
// and an actionable suggestion.
type Defect struct {
	Kind       DefectKind `json:"kind"`
	Message    string     `json:"message"`
	Suggestion string     `json:"suggestion"`
}

// NewDefect returns the Defect for kind. Panics on an unknown kind.
func NewDefect(kind DefectKind) *Defect {
	text, ok := defects[kind]
	if !ok {
		panic(fmt.Sprintf("usage: no defect text for %q", kind))
	}
	return &Defect{
		Kind:       kind,
		Message:    text.message,
		Suggestion: text.suggestion,
	}
}

func (d *Defect) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Is reports whether target is ErrInvalidUsage or a Defect of the same kind.
func (d *Defect) Is(target error) bool {
	if target == ErrInvalidUsage {
		return true
	}
	var other *Defect
	if errors.As(target, &other) {
		return other.Kind == d.Kind
	}
	return false
}

// AsDefect extracts a Defect from err.
func AsDefect(err error) (*Defect, bool) {
	var d *Defect
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
