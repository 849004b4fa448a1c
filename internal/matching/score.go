// internal/matching/score.go
package matching

// factorCalc is one factor calculator. Each returns a fully built factor and
// at most one warning.
type factorCalc func(*MatchingContext, *VendorMatchData) (MatchFactor, *MatchWarning)

// calculators returns the factor calculators in the fixed evaluation order.
// Result factor lists and warning accumulation follow this order.
func (e *Engine) calculators() []factorCalc {
	return []factorCalc{
		e.scoreService,
		e.scoreLocation,
		e.scorePerformance,
		e.scoreResponseTime,
		e.scoreAvailability,
		e.scoreSpecialty,
		e.scoreCapacity,
		e.scorePrice,
	}
}

// Score evaluates one vendor against a request context: all eight factors,
// their weighted sum clamped to [0,100], the confidence tier, and any
// warnings in factor order. Missing or malformed optional vendor data is
// absorbed by the individual factors' neutral fallbacks, so Score never
// fails.
func (e *Engine) Score(ctx *MatchingContext, v *VendorMatchData) *MatchScoreResult {
	calcs := e.calculators()
	factors := make([]MatchFactor, 0, len(calcs))
	warnings := make([]MatchWarning, 0, 2)

	total := 0.0
	for _, calc := range calcs {
		f, warn := calc(ctx, v)
		factors = append(factors, f)
		total += f.Weighted
		if warn != nil {
			warnings = append(warnings, *warn)
		}
	}
	total = clampScore(total)

	result := &MatchScoreResult{
		VendorID:   v.VendorID,
		TotalScore: total,
		Factors:    factors,
		Warnings:   warnings,
	}
	result.Confidence = e.confidence(total, result.HasHighSeverityWarning())
	return result
}

// confidence maps the total score to a tier, downgrading "high" to "medium"
// when a high-severity warning was raised: an otherwise-excellent vendor
// lacking emergency capability for an emergency request must not present as
// high confidence.
func (e *Engine) confidence(total float64, highWarning bool) Confidence {
	switch {
	case total >= e.cfg.Confidence.High:
		if highWarning {
			return ConfidenceMedium
		}
		return ConfidenceHigh
	case total >= e.cfg.Confidence.Medium:
		return ConfidenceMedium
	}
	return ConfidenceLow
}
