// Package risk adapts the pretrained risk classifier to usage profiles.
// It short-circuits profiles with too little signal, soft-warns on
// inconsistent input, and absorbs model faults into a conservative default.
package risk

// Level bands the class-1 probability for display.
type Level string

// Risk levels.
const (
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelHigh     Level = "HIGH"
)

// Level band boundaries; a probability above the bound falls in the band.
const (
	highBound     = 0.7
	moderateBound = 0.4
)

// LevelFor maps a class-1 probability to its band.
func LevelFor(probability float64) Level {
	switch {
	case probability > highBound:
		return LevelHigh
	case probability > moderateBound:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Probabilities holds the per-class probabilities. Healthy + Addicted == 1.
type Probabilities struct {
	Healthy  float64 `json:"healthy"`
	Addicted float64 `json:"addicted"`
}

// Assessment is the canonical risk estimate for a single profile.
type Assessment struct {
	Prediction    bool          `json:"prediction"`
	Probability   float64       `json:"probability"`
	Probabilities Probabilities `json:"probabilities"`
	Level         Level         `json:"risk_level"`
	Note          string        `json:"note,omitempty"`
}

// Status returns "Addicted" for a positive prediction and "Healthy" otherwise.
func (a Assessment) Status() string {
	if a.Prediction {
		return "Addicted"
	}
	return "Healthy"
}

func conservative(note string) Assessment {
	return Assessment{
		Prediction:    false,
		Probability:   0,
		Probabilities: Probabilities{Healthy: 1, Addicted: 0},
		Level:         LevelLow,
		Note:          note,
	}
}
