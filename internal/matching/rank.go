// internal/matching/rank.go
package matching

import "sort"

// Rank scores every vendor in the pool against one request context and
// returns them sorted descending by total score. The pool is expected to be
// pre-filtered to active, service-eligible vendors by the caller.
//
// Ties break on performance score (descending) and then vendor ID
// (ascending), so repeated runs over unchanged data always produce the same
// ordering.
func (e *Engine) Rank(ctx *MatchingContext, pool []VendorMatchData) []RankedVendor {
	ranked := make([]RankedVendor, 0, len(pool))
	for i := range pool {
		ranked = append(ranked, RankedVendor{
			Vendor: pool[i],
			Result: e.Score(ctx, &pool[i]),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		ri, rj := ranked[i], ranked[j]
		if ri.Result.TotalScore != rj.Result.TotalScore {
			return ri.Result.TotalScore > rj.Result.TotalScore
		}
		if ri.Vendor.Stats.PerformanceScore != rj.Vendor.Stats.PerformanceScore {
			return ri.Vendor.Stats.PerformanceScore > rj.Vendor.Stats.PerformanceScore
		}
		return ri.Vendor.VendorID < rj.Vendor.VendorID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
