package usage

import "fmt"

// Insight breakpoints on absolute feature values.
const (
	insightScreenVeryHigh = 300.0
	insightScreenHigh     = 180.0
	insightSessionLong    = 30.0
	insightSwitchesHigh   = 50.0
	insightNightHeavy     = 60.0
	insightNightSome      = 30.0
)

// Insights derives up to four observations from absolute feature values,
// independent of tier. Observations follow canonical feature order and each
// feature contributes at most one.
func Insights(p Profile) []string {
	insights := make([]string, 0, FeatureCount)

	switch {
	case p.ScreenTime > insightScreenVeryHigh:
		insights = append(insights, fmt.Sprintf(
			"Your daily screen time of %s minutes is very high (over 5 hours).",
			FormatNumber(p.ScreenTime),
		))
	case p.ScreenTime > insightScreenHigh:
		insights = append(insights, fmt.Sprintf(
			"Your daily screen time of %s minutes is above the recommended 3 hours.",
			FormatNumber(p.ScreenTime),
		))
	default:
		insights = append(insights, "Your daily screen time is within a healthy range.")
	}

	if p.SessionDuration > insightSessionLong {
		insights = append(insights, fmt.Sprintf(
			"Your average session lasts %s minutes; long sessions make it harder to stop.",
			FormatNumber(p.SessionDuration),
		))
	}

	if p.AppSwitches > insightSwitchesHigh {
		insights = append(insights, fmt.Sprintf(
			"You switch apps %s times a day, a sign of fragmented attention.",
			FormatNumber(p.AppSwitches),
		))
	}

	switch {
	case p.NightActivity > insightNightHeavy:
		insights = append(insights, fmt.Sprintf(
			"You spend %s minutes on screens late at night, which can disrupt your sleep.",
			FormatNumber(p.NightActivity),
		))
	case p.NightActivity > insightNightSome:
		insights = append(insights, fmt.Sprintf(
			"You have some late-night screen use (%s minutes); a wind-down routine could help.",
			FormatNumber(p.NightActivity),
		))
	}

	return insights
}
