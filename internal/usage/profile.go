// Package usage implements the usage snapshot domain for Detox.
// It provides the canonical four-feature profile, domain validation,
// weighted-score tier classification, and personalized insights.
package usage

import (
	"fmt"
	"math"
)

// Feature identifies one of the four usage metrics in canonical order.
type Feature int

// Features in canonical order. The order matches the feature vector
// expected by the risk model and drives deterministic output ordering.
const (
	ScreenTime Feature = iota
	SessionDuration
	AppSwitches
	NightActivity
)

// FeatureCount is the arity of a usage snapshot.
const FeatureCount = 4

// MaxScreenTime is the number of minutes in a day.
const MaxScreenTime = 1440.0

var featureNames = [FeatureCount]string{
	ScreenTime:      "screen_time",
	SessionDuration: "session_duration",
	AppSwitches:     "app_switches",
	NightActivity:   "night_activity",
}

// AllFeatures returns the features in canonical order.
func AllFeatures() []Feature {
	return []Feature{ScreenTime, SessionDuration, AppSwitches, NightActivity}
}

// String returns the snake_case feature name used in breakdowns and JSON.
func (f Feature) String() string {
	if f < 0 || int(f) >= FeatureCount {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return featureNames[f]
}

// FeatureNames returns the feature names in canonical order.
func FeatureNames() []string {
	return featureNames[:]
}

// Profile is a single-day usage snapshot. All durations are minutes;
// NightActivity is a subset of ScreenTime.
type Profile struct {
	ScreenTime      float64 `json:"screen_time"`
	SessionDuration float64 `json:"session_duration"`
	AppSwitches     float64 `json:"app_switches"`
	NightActivity   float64 `json:"night_activity"`
}

// Parse builds a Profile from a feature slice in canonical order.
// Returns an ArityMismatch defect when the slice does not hold exactly four values.
// Parse does not apply domain validation; call Validate on the result.
func Parse(values []float64) (Profile, error) {
	if len(values) != FeatureCount {
		return Profile{}, NewDefect(DefectArityMismatch)
	}
	return Profile{
		ScreenTime:      values[ScreenTime],
		SessionDuration: values[SessionDuration],
		AppSwitches:     values[AppSwitches],
		NightActivity:   values[NightActivity],
	}, nil
}

// Values returns the profile as a feature vector in canonical order.
func (p Profile) Values() []float64 {
	return []float64{p.ScreenTime, p.SessionDuration, p.AppSwitches, p.NightActivity}
}

// Value returns the value of a single feature.
func (p Profile) Value(f Feature) float64 {
	switch f {
	case ScreenTime:
		return p.ScreenTime
	case SessionDuration:
		return p.SessionDuration
	case AppSwitches:
		return p.AppSwitches
	case NightActivity:
		return p.NightActivity
	}
	panic(fmt.Sprintf("usage: unknown feature %d", int(f)))
}

// IsZero reports whether every feature is exactly zero.
func (p Profile) IsZero() bool {
	return p.ScreenTime == 0 && p.SessionDuration == 0 &&
		p.AppSwitches == 0 && p.NightActivity == 0
}

// HasNegative reports whether any feature is below zero.
func (p Profile) HasNegative() bool {
	return p.ScreenTime < 0 || p.SessionDuration < 0 ||
		p.AppSwitches < 0 || p.NightActivity < 0
}

// Validate checks the profile against the domain invariants and returns
// the first defect found, or nil. Checks run in priority order:
// non-finite values, zero usage, negative values, unrealistic screen time,
// then night activity exceeding screen time.
func (p Profile) Validate() error {
	for _, v := range p.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewDefect(DefectInvalidNumber)
		}
	}
	if p.IsZero() {
		return NewDefect(DefectZeroUsage)
	}
	if p.HasNegative() {
		return NewDefect(DefectNegativeValues)
	}
	if p.ScreenTime > MaxScreenTime {
		return NewDefect(DefectUnrealisticScreenTime)
	}
	if p.NightActivity > p.ScreenTime {
		return NewDefect(DefectInvalidNightActivity)
	}
	return nil
}
