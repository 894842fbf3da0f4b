package recommendations

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/detox/internal/usage"
)

// Report section titles, in rendering order.
const (
	SectionClassification = "USAGE CLASSIFICATION"
	SectionRisk           = "ADDICTION RISK ASSESSMENT"
	SectionInsights       = "BEHAVIORAL INSIGHTS"
	SectionGoals          = "PERSONALIZED GOALS"
	SectionRecommendation = "PRIMARY RECOMMENDATIONS"
	SectionTips           = "TARGETED TIPS"
	SectionActivities     = "ALTERNATIVE ACTIVITIES"
	SectionEncouragement  = "ENCOURAGEMENT"
)

const (
	reportTitle = "DIGITAL WELLBEING REPORT"
	ruleWidth   = 70
	indent      = "   "
	bullet      = "   • "
	subBullet   = "      • "
	noTips      = "No targeted tips: every metric is below its warning threshold."
)

// FormatReport renders b as a fixed-layout text report.
func FormatReport(b *Bundle) string {
	var sb strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintln(&sb, rule)
	fmt.Fprintln(&sb, reportTitle)
	fmt.Fprintln(&sb, rule)

	c := b.Classification
	fmt.Fprintf(&sb, "\n%s\n", SectionClassification)
	fmt.Fprintf(&sb, "%sCategory: %s\n", indent, strings.ToUpper(c.Label.String()))
	fmt.Fprintf(&sb, "%sOverall Score: %s/%d\n", indent, usage.FormatNumber(c.Score), usage.ScoreScale)
	fmt.Fprintf(&sb, "%sScore Breakdown:\n", indent)
	for _, name := range usage.FeatureNames() {
		fmt.Fprintf(&sb, "%s%s: %s\n", subBullet, name, usage.FormatNumber(c.Breakdown[name]))
	}

	r := b.Risk
	fmt.Fprintf(&sb, "\n%s\n", SectionRisk)
	fmt.Fprintf(&sb, "%sStatus: %s\n", indent, strings.ToUpper(r.Status()))
	fmt.Fprintf(&sb, "%sRisk Level: %s\n", indent, r.Level)
	fmt.Fprintf(&sb, "%sProbability: %.1f%%\n", indent, r.Probability*100)
	fmt.Fprintf(&sb, "%sClass Probabilities: Healthy=%s, Addicted=%s\n", indent,
		usage.FormatNumber(r.Probabilities.Healthy), usage.FormatNumber(r.Probabilities.Addicted))
	if r.Note != "" {
		fmt.Fprintf(&sb, "%sNote: %s\n", indent, r.Note)
	}

	fmt.Fprintf(&sb, "\n%s\n", SectionInsights)
	for _, insight := range b.Insights {
		fmt.Fprintf(&sb, "%s%s\n", bullet, insight)
	}

	fmt.Fprintf(&sb, "\n%s\n", SectionGoals)
	fmt.Fprintf(&sb, "%sShort-term goals:\n", indent)
	for _, g := range b.Goals.ShortTerm {
		fmt.Fprintf(&sb, "%s%s\n", subBullet, g)
	}
	fmt.Fprintf(&sb, "%sLong-term goals:\n", indent)
	for _, g := range b.Goals.LongTerm {
		fmt.Fprintf(&sb, "%s%s\n", subBullet, g)
	}

	fmt.Fprintf(&sb, "\n%s\n", SectionRecommendation)
	for i, s := range b.Suggestions {
		fmt.Fprintf(&sb, "%s%d. %s\n", indent, i+1, s)
	}

	fmt.Fprintf(&sb, "\n%s\n", SectionTips)
	if len(b.TargetedTips) == 0 {
		fmt.Fprintf(&sb, "%s%s\n", bullet, noTips)
	}
	for _, tip := range b.TargetedTips {
		fmt.Fprintf(&sb, "%s%s\n", bullet, tip)
	}

	fmt.Fprintf(&sb, "\n%s (%d minutes available)\n", SectionActivities, b.ReclaimableTime)
	for _, a := range b.AlternativeActivities {
		fmt.Fprintf(&sb, "%s%s\n", bullet, a)
	}

	fmt.Fprintf(&sb, "\n%s\n", SectionEncouragement)
	fmt.Fprintf(&sb, "%s%s\n", indent, b.Encouragement)
	fmt.Fprintln(&sb, rule)

	return sb.String()
}
