package recommendations

import (
	"fmt"

	"github.com/JaimeStill/detox/internal/usage"
)

// Category selects the suggestion and encouragement pools for a bundle.
type Category int

// Pool categories. The first three mirror the usage tiers.
const (
	CategoryLight Category = iota
	CategoryModerate
	CategoryHeavy
	CategoryAddicted
	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryLight:    "light",
	CategoryModerate: "moderate",
	CategoryHeavy:    "heavy",
	CategoryAddicted: "addicted",
}

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText encodes the category as its name.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || c >= categoryCount {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// CategoryFor returns CategoryAddicted for a positive prediction and the
// tier's own category otherwise.
func CategoryFor(tier usage.Tier, addicted bool) Category {
	if addicted {
		return CategoryAddicted
	}
	switch tier {
	case usage.TierHeavy:
		return CategoryHeavy
	case usage.TierModerate:
		return CategoryModerate
	default:
		return CategoryLight
	}
}

// SuggestionCount is the number of primary suggestions in a bundle.
const SuggestionCount = 3

type pool struct {
	suggestions   []string
	encouragement []string
}

var pools = [categoryCount]pool{
	CategoryLight: {
		suggestions: []string{
			"Keep tracking your usage, you're in a healthy range!",
			"Try setting daily goals to maintain balance.",
			"Use your freed-up time for hobbies or exercise.",
		},
		encouragement: []string{
			"Great job! Your digital habits are well balanced.",
			"You're setting a great example. Keep it up!",
			"Your mindful approach to screen time is paying off.",
		},
	},
	CategoryModerate: {
		suggestions: []string{
			"Take a 15-min break every hour of screen time.",
			"Try the Pomodoro technique to stay productive.",
			"Reduce night-time scrolling by setting a bedtime reminder.",
		},
		encouragement: []string{
			"You're on the right track. Small changes make a big difference!",
			"A few adjustments will bring your usage into a healthy range.",
			"Awareness is the first step, and you've already taken it.",
		},
	},
	CategoryHeavy: {
		suggestions: []string{
			"Start with a digital detox challenge: 1 hour without social media daily.",
			"Replace evening scrolling with a short walk or reading.",
			"Mute non-essential notifications to reduce triggers.",
		},
		encouragement: []string{
			"Every minute you reclaim is a win. Start small and build momentum.",
			"Change takes time. Be patient with yourself and keep going.",
			"You have the power to reshape your habits, one day at a time.",
		},
	},
	CategoryAddicted: {
		suggestions: []string{
			"Set strict app usage limits using built-in tools.",
			"Try mindfulness or journaling to cope with urges.",
			"Consider professional guidance if usage affects daily life.",
		},
		encouragement: []string{
			"Recognizing the pattern takes courage. You're not alone in this.",
			"Progress, not perfection. Each screen-free hour counts.",
			"Reaching out for support is a sign of strength.",
		},
	},
}

// Suggestions returns the primary suggestions for a category.
func Suggestions(c Category) []string {
	return clone(pools[c].suggestions[:SuggestionCount])
}

// Encouragements returns the encouragement pool for a category.
func Encouragements(c Category) []string {
	return clone(pools[c].encouragement)
}

type tipPool struct {
	moderate  float64
	high      float64
	moderates []string
	highs     []string
}

// Tips drawn per feature: one from the moderate pool, up to two from the high pool.
const (
	moderateTipCount = 1
	highTipCount     = 2
)

// MaxTargetedTips bounds the targeted tips carried by a bundle.
const MaxTargetedTips = 3

// Tip pools overlap across features; TargetedTips drops repeats.
var tipPools = [usage.FeatureCount]tipPool{
	usage.ScreenTime: {
		moderate: 180,
		high:     300,
		moderates: []string{
			"Set a daily screen-time limit in your phone's wellbeing settings.",
		},
		highs: []string{
			"Set a daily screen-time limit in your phone's wellbeing settings.",
			"Turn off non-essential notifications.",
			"Switch your display to grayscale to make scrolling less rewarding.",
		},
	},
	usage.SessionDuration: {
		moderate: 25,
		high:     35,
		moderates: []string{
			"Set a 20-minute timer whenever you open a social app.",
		},
		highs: []string{
			"Set a 20-minute timer whenever you open a social app.",
			"Stand up and stretch at the end of every session.",
		},
	},
	usage.AppSwitches: {
		moderate: 35,
		high:     50,
		moderates: []string{
			"Batch your messages and check them at set times.",
		},
		highs: []string{
			"Turn off non-essential notifications.",
			"Move distracting apps off your home screen.",
			"Batch your messages and check them at set times.",
		},
	},
	usage.NightActivity: {
		moderate: 30,
		high:     60,
		moderates: []string{
			"Stop using screens 30 minutes before bed.",
		},
		highs: []string{
			"Keep your phone outside the bedroom at night.",
			"Enable bedtime mode to silence your phone overnight.",
		},
	},
}

type activityBucket struct {
	min        int
	activities []string
}

// MaxActivities bounds each activity bucket.
const MaxActivities = 4

// Buckets in ascending order of their lower bound; each covers [min, next.min).
var activityBuckets = []activityBucket{
	{
		min: 0,
		activities: []string{
			"Take a short walk around the block.",
			"Do a quick stretching routine.",
			"Drink a glass of water and take a few deep breaths.",
			"Tidy up your desk or room.",
		},
	},
	{
		min: 15,
		activities: []string{
			"Read a chapter of a book.",
			"Call a friend or family member.",
			"Do a 15-minute home workout.",
			"Practice a guided meditation.",
		},
	},
	{
		min: 30,
		activities: []string{
			"Go for a jog or a bike ride.",
			"Cook a healthy meal from scratch.",
			"Work on a creative hobby like drawing or music.",
			"Write in a journal about your day.",
		},
	},
	{
		min: 60,
		activities: []string{
			"Join a local sports club or fitness class.",
			"Volunteer in your community.",
			"Plan an outdoor trip with friends.",
			"Start a long-term project like gardening or learning an instrument.",
		},
	},
}

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

func validateTables() error {
	for c := range categoryCount {
		p := pools[c]
		if len(p.suggestions) < SuggestionCount {
			return fmt.Errorf("recommendations: %s pool has %d suggestions, need %d", c, len(p.suggestions), SuggestionCount)
		}
		if len(p.encouragement) == 0 {
			return fmt.Errorf("recommendations: %s pool has no encouragement", c)
		}
	}

	for _, f := range usage.AllFeatures() {
		tp := tipPools[f]
		if len(tp.moderates) < moderateTipCount || len(tp.highs) < highTipCount {
			return fmt.Errorf("recommendations: %s tip pool is undersized", f)
		}
		if tp.moderate <= 0 || tp.high <= tp.moderate {
			return fmt.Errorf("recommendations: %s tip thresholds out of order", f)
		}
	}

	for i, b := range activityBuckets {
		if len(b.activities) == 0 || len(b.activities) > MaxActivities {
			return fmt.Errorf("recommendations: activity bucket %d has %d entries", b.min, len(b.activities))
		}
		if i == 0 && b.min != 0 {
			return fmt.Errorf("recommendations: first activity bucket must start at 0")
		}
		if i > 0 && b.min <= activityBuckets[i-1].min {
			return fmt.Errorf("recommendations: activity buckets out of order at %d", b.min)
		}
	}

	return nil
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
