package usage

import (
	"encoding/json"
	"fmt"
	"math"
)

// Tier is the overall severity classification of a usage profile.
// The numeric value doubles as the cluster index.
type Tier int

// Usage tiers in increasing severity.
const (
	TierLight Tier = iota
	TierModerate
	TierHeavy
)

var tierNames = map[Tier]string{
	TierLight:    "light",
	TierModerate: "moderate",
	TierHeavy:    "heavy",
}

// Tiers returns every tier in increasing severity.
func Tiers() []Tier {
	return []Tier{TierLight, TierModerate, TierHeavy}
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// MarshalText encodes the tier as its label.
func (t Tier) MarshalText() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a tier label.
func (t *Tier) UnmarshalText(text []byte) error {
	for tier, name := range tierNames {
		if name == string(text) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(text))
}

// Score weights in canonical feature order. Screen time dominates.
var Weights = [FeatureCount]float64{
	ScreenTime:      0.5,
	SessionDuration: 0.2,
	AppSwitches:     0.2,
	NightActivity:   0.1,
}

// Tier thresholds on the weighted score. A score below ModerateThreshold
// is light; below HeavyThreshold is moderate; anything else is heavy.
const (
	ModerateThreshold = 150.0
	HeavyThreshold    = 250.0
)

// ScoreScale is the nominal upper bound used when rendering a score.
const ScoreScale = 500

// Classification is the weighted-score classification of a profile.
type Classification struct {
	Cluster   int                `json:"cluster"`
	Label     Tier               `json:"label"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// MarshalJSON writes the breakdown in canonical feature order.
func (c Classification) MarshalJSON() ([]byte, error) {
	breakdown := make(orderedBreakdown, 0, FeatureCount)
	for _, f := range AllFeatures() {
		if v, ok := c.Breakdown[f.String()]; ok {
			breakdown = append(breakdown, breakdownEntry{name: f.String(), value: v})
		}
	}
	return json.Marshal(struct {
		Cluster   int              `json:"cluster"`
		Label     Tier             `json:"label"`
		Score     float64          `json:"score"`
		Breakdown orderedBreakdown `json:"breakdown"`
	}{c.Cluster, c.Label, c.Score, breakdown})
}

type breakdownEntry struct {
	name  string
	value float64
}

type orderedBreakdown []breakdownEntry

func (b orderedBreakdown) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, e := range b {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(e.name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// Classify computes the weighted usage score of p and maps it to a tier.
// The score is the sum of the rounded contributions, so the breakdown always
// adds up to it. The profile is assumed valid.
func Classify(p Profile) Classification {
	var score float64
	breakdown := make(map[string]float64, FeatureCount)

	for _, f := range AllFeatures() {
		contribution := Round2(p.Value(f) * Weights[f])
		score += contribution
		breakdown[f.String()] = contribution
	}

	score = Round2(score)
	tier := TierForScore(score)

	return Classification{
		Cluster:   int(tier),
		Label:     tier,
		Score:     score,
		Breakdown: breakdown,
	}
}

// TierForScore maps a weighted score to its tier.
func TierForScore(score float64) Tier {
	switch {
	case score < ModerateThreshold:
		return TierLight
	case score < HeavyThreshold:
		return TierModerate
	default:
		return TierHeavy
	}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
