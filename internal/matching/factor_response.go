// internal/matching/factor_response.go
package matching

import (
	"fmt"
	"math"
)

// scoreResponseTime buckets the historical average response time into the
// ordered tier table. A vendor with no history at all gets the neutral
// score; absence of data is never conflated with poor history.
func (e *Engine) scoreResponseTime(_ *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.ResponseTime

	if v.Stats.AvgResponseHours == nil {
		return newFactor(FactorResponseTime, e.cfg.Response.Neutral, w,
			"No response time data yet", IconInfo), nil
	}

	hours := *v.Stats.AvgResponseHours
	rounded := int(math.Round(hours))
	for _, t := range e.cfg.ResponseTiers {
		if hours <= t.MaxHours {
			return newFactor(FactorResponseTime, t.Score, w,
				responseReason(t.Label, rounded), responseIcon(t.Score)), nil
		}
	}
	// Unreachable with a well-formed table; the last tier is a catch-all.
	last := e.cfg.ResponseTiers[len(e.cfg.ResponseTiers)-1]
	return newFactor(FactorResponseTime, last.Score, w,
		responseReason(last.Label, rounded), responseIcon(last.Score)), nil
}

func responseReason(label string, hours int) string {
	if hours <= 1 {
		return fmt.Sprintf("Typically responds within an hour (%s)", label)
	}
	return fmt.Sprintf("Typically responds within %d hours (%s)", hours, label)
}

func responseIcon(score float64) Icon {
	switch {
	case score >= 85:
		return IconCheck
	case score >= 60:
		return IconInfo
	}
	return IconWarning
}
