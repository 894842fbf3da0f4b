package usage

// Sample is a reference user with a short description of the pattern.
type Sample struct {
	Description string  `json:"description"`
	Profile     Profile `json:"profile"`
}

// Samples returns the reference users spanning light through extreme usage.
func Samples() []Sample {
	return []Sample{
		{
			Description: "Light User - Healthy habits",
			Profile:     Profile{ScreenTime: 120, SessionDuration: 10, AppSwitches: 15, NightActivity: 5},
		},
		{
			Description: "Moderate User - Manageable usage",
			Profile:     Profile{ScreenTime: 240, SessionDuration: 20, AppSwitches: 30, NightActivity: 20},
		},
		{
			Description: "Heavy User - High risk",
			Profile:     Profile{ScreenTime: 400, SessionDuration: 35, AppSwitches: 60, NightActivity: 50},
		},
		{
			Description: "Extreme User - Critical intervention needed",
			Profile:     Profile{ScreenTime: 500, SessionDuration: 45, AppSwitches: 70, NightActivity: 90},
		},
	}
}

// ReferencePatterns returns a representative profile per tier, each sitting
// inside its tier's score band.
func ReferencePatterns() map[Tier]Profile {
	return map[Tier]Profile{
		TierLight:    {ScreenTime: 120, SessionDuration: 10, AppSwitches: 15, NightActivity: 10},
		TierModerate: {ScreenTime: 300, SessionDuration: 25, AppSwitches: 35, NightActivity: 40},
		TierHeavy:    {ScreenTime: 480, SessionDuration: 40, AppSwitches: 60, NightActivity: 90},
	}
}
