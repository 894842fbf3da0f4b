package recommendations

import "github.com/JaimeStill/detox/internal/usage"

// Reclaimable time constants, in minutes.
const (
	DefaultReclaimable = 30
	MinReclaimable     = 15
	reclaimableShare   = 0.15
)

// ReclaimableTime estimates the minutes per day a user could redirect away
// from screens. Moderate and heavy tiers, or a positive risk prediction,
// scale with screen time; everyone else gets DefaultReclaimable.
func ReclaimableTime(p usage.Profile, tier usage.Tier, addicted bool) int {
	if tier == usage.TierHeavy || tier == usage.TierModerate || addicted {
		return max(MinReclaimable, roundInt(p.ScreenTime*reclaimableShare))
	}
	return DefaultReclaimable
}

// AlternativeActivities returns the suggestions for the bucket containing minutes.
func AlternativeActivities(minutes int) []string {
	selected := activityBuckets[0]
	for _, b := range activityBuckets {
		if minutes >= b.min {
			selected = b
		}
	}
	return clone(selected.activities)
}
