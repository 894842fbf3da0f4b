package recommendations

import (
	"fmt"
	"math"

	"github.com/JaimeStill/detox/internal/usage"
)

// Goal planning constants.
const (
	MaintenanceScreenTime = 30.0
	MinTargetScreenTime   = 60
	MinTargetNight        = 15
	nightReduction        = 0.5
	sustainFactor         = 0.9
)

var reductionPct = map[usage.Tier]float64{
	usage.TierLight:    0.05,
	usage.TierModerate: 0.10,
	usage.TierHeavy:    0.15,
}

// Goals holds progressive short- and long-term goals.
type Goals struct {
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

var maintenanceGoals = Goals{
	ShortTerm: []string{
		"Keep your daily screen time under 30 minutes.",
		"Keep tracking your usage to stay aware of your habits.",
	},
	LongTerm: []string{
		"Maintain your healthy balance over the next month.",
		"Share the habits that work for you with friends and family.",
	},
}

// PlanGoals builds reduction goals for p at the given tier. Profiles under
// MaintenanceScreenTime get a fixed maintenance set.
func PlanGoals(p usage.Profile, tier usage.Tier) Goals {
	if p.ScreenTime < MaintenanceScreenTime {
		return Goals{
			ShortTerm: clone(maintenanceGoals.ShortTerm),
			LongTerm:  clone(maintenanceGoals.LongTerm),
		}
	}

	targetScreen := TargetScreenTime(p.ScreenTime, tier)
	targetNight := TargetNightActivity(p.NightActivity)
	sustain := roundInt(float64(targetScreen) * sustainFactor)

	return Goals{
		ShortTerm: []string{
			fmt.Sprintf("Reduce daily screen time from %s to %d minutes this week.", usage.FormatNumber(p.ScreenTime), targetScreen),
			fmt.Sprintf("Limit night-time screen use to %d minutes (currently %s).", targetNight, usage.FormatNumber(p.NightActivity)),
			"Take a 5-minute screen break after every 30 minutes of use.",
		},
		LongTerm: []string{
			fmt.Sprintf("Sustain a daily screen time of %d minutes or less for 2 weeks.", sustain),
			"Build a screen-free routine for the first hour of every morning.",
			"Replace one hour of daily scrolling with an offline hobby.",
		},
	}
}

// TargetScreenTime is the short-term screen-time target for a tier.
func TargetScreenTime(screen float64, tier usage.Tier) int {
	return max(MinTargetScreenTime, roundInt(screen*(1-reductionPct[tier])))
}

// TargetNightActivity is the short-term night-activity target.
func TargetNightActivity(night float64) int {
	return max(MinTargetNight, roundInt(night*nightReduction))
}

// roundInt rounds half to even.
func roundInt(v float64) int {
	return int(math.RoundToEven(v))
}
