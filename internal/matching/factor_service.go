// internal/matching/factor_service.go
package matching

import "fmt"

// scoreService is intentionally binary: an unrelated trade is not a
// fallback-worthy match regardless of other strengths, so there is no
// partial credit.
func (e *Engine) scoreService(ctx *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Service
	for _, svc := range v.Services {
		if svc == ctx.ServiceType {
			reason := fmt.Sprintf("Offers %s", humanizeService(ctx.ServiceType))
			return newFactor(FactorService, e.cfg.Service.Match, w, reason, IconCheck), nil
		}
	}
	return newFactor(FactorService, e.cfg.Service.NoMatch, w,
		"Does not offer this service", IconWarning), nil
}
