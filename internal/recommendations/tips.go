package recommendations

import "github.com/JaimeStill/detox/internal/usage"

// TargetedTips returns feature-specific tips in canonical feature order.
// A feature at or above its high threshold contributes up to two tips from
// its high pool; one at or above its moderate threshold contributes one tip
// from its moderate pool. Tips already emitted for an earlier feature are
// dropped. Callers truncate to MaxTargetedTips.
func TargetedTips(p usage.Profile) []string {
	seen := make(map[string]struct{})
	tips := []string{}

	add := func(candidates []string) {
		for _, tip := range candidates {
			if _, ok := seen[tip]; ok {
				continue
			}
			seen[tip] = struct{}{}
			tips = append(tips, tip)
		}
	}

	for _, f := range usage.AllFeatures() {
		tp := tipPools[f]
		v := p.Value(f)

		switch {
		case v >= tp.high:
			add(tp.highs[:highTipCount])
		case v >= tp.moderate:
			add(tp.moderates[:moderateTipCount])
		}
	}

	return tips
}
