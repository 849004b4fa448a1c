// internal/matching/factor_availability.go
package matching

// scoreAvailability weighs the vendor's coverage against the request's
// urgency. This is the one factor whose failure surfaces as an actionable
// warning rather than just a low score: dispatching an emergency job to a
// non-emergency vendor is an operational risk a human must see.
func (e *Engine) scoreAvailability(ctx *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Availability

	if ctx.IsEmergency {
		if v.EmergencyServices {
			return newFactor(FactorAvailability, e.cfg.Availability.Emergency, w,
				"Offers emergency service", IconCheck), nil
		}
		f := newFactor(FactorAvailability, e.cfg.Availability.NoEmergency, w,
			"Does not offer emergency service", IconWarning)
		return f, &MatchWarning{
			Severity: SeverityHigh,
			Message:  "Vendor does not offer emergency service for an emergency request",
			Factor:   FactorAvailability,
		}
	}

	score := e.cfg.Availability.Base
	reason := "Standard availability"
	icon := IconInfo
	switch {
	case v.ServiceHours.AllDay:
		score += e.cfg.Availability.AllDayBonus
		reason = "Available 24/7"
		icon = IconCheck
	case ctx.IsWeekend && v.ServiceHours.Weekends:
		score += e.cfg.Availability.WeekendBonus
		reason = "Available on weekends"
		icon = IconCheck
	}
	return newFactor(FactorAvailability, score, w, reason, icon), nil
}
