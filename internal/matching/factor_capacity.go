// internal/matching/factor_capacity.go
package matching

import "fmt"

// scoreCapacity maps the vendor's pending-job count onto the ordered tier
// table; the first tier whose MaxJobs bound is not exceeded wins. An unknown
// count is neutral, not penalized.
func (e *Engine) scoreCapacity(_ *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Capacity

	if v.Stats.PendingJobs == nil {
		return newFactor(FactorCapacity, e.cfg.Capacity.Neutral, w,
			"Current availability unknown", IconInfo), nil
	}

	pending := *v.Stats.PendingJobs
	for _, t := range e.cfg.CapacityTiers {
		if pending <= t.MaxJobs {
			return newFactor(FactorCapacity, t.Score, w,
				capacityReason(t.Label, pending), t.Icon), nil
		}
	}
	last := e.cfg.CapacityTiers[len(e.cfg.CapacityTiers)-1]
	return newFactor(FactorCapacity, last.Score, w,
		capacityReason(last.Label, pending), last.Icon), nil
}

func capacityReason(label string, pending int) string {
	switch pending {
	case 0:
		return fmt.Sprintf("No pending jobs, %s", label)
	case 1:
		return fmt.Sprintf("1 pending job, %s", label)
	}
	return fmt.Sprintf("%d pending jobs, %s", pending, label)
}
