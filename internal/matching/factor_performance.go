// internal/matching/factor_performance.go
package matching

import "fmt"

// scorePerformance passes the externally computed performance score through
// clamped. A vendor with zero reviews gets the neutral score and an
// informational flag instead of a penalty, distinguishing "no data" from
// "bad data".
func (e *Engine) scorePerformance(_ *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Performance

	if v.Stats.TotalReviews == 0 {
		f := newFactor(FactorPerformance, e.cfg.Performance.Neutral, w,
			"New vendor with no reviews yet", IconInfo)
		return f, &MatchWarning{
			Severity: SeverityLow,
			Message:  "Vendor has no reviews yet",
			Factor:   FactorPerformance,
		}
	}

	score := clampScore(v.Stats.PerformanceScore)
	tier := e.performanceTier(score)
	reason := fmt.Sprintf("%s track record (%.0f/100 across %d reviews)",
		capitalize(tier.Label), score, v.Stats.TotalReviews)
	return newFactor(FactorPerformance, score, w, reason, tier.Icon), nil
}

// performanceTier scans the descending tier table; the first band whose
// MinScore is met wins.
func (e *Engine) performanceTier(score float64) PerformanceTier {
	for _, t := range e.cfg.PerformanceTiers {
		if score >= t.MinScore {
			return t
		}
	}
	return e.cfg.PerformanceTiers[len(e.cfg.PerformanceTiers)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
