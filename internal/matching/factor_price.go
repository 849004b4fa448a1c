// internal/matching/factor_price.go
package matching

import "fmt"

// moneyRange is a numeric budget or job-size band in dollars.
type moneyRange struct {
	Min float64
	Max float64
}

// noUpperBound stands in for "and up" buckets.
const noUpperBound = 1e12

// budgetRanges maps request budget-range keys to numeric bands.
var budgetRanges = map[string]moneyRange{
	"under_1000": {Min: 0, Max: 1000},
	"1000_2500":  {Min: 1000, Max: 2500},
	"2500_5000":  {Min: 2500, Max: 5000},
	"5000_10000": {Min: 5000, Max: 10000},
	"over_10000": {Min: 10000, Max: noUpperBound},
}

// jobSizeRanges maps vendor job-size preference buckets to numeric bands.
var jobSizeRanges = map[string]moneyRange{
	"under_1k": {Min: 0, Max: 1000},
	"1k_5k":    {Min: 1000, Max: 5000},
	"5k_15k":   {Min: 5000, Max: 15000},
	"15k_50k":  {Min: 15000, Max: 50000},
	"over_50k": {Min: 50000, Max: noUpperBound},
}

// requestBudget resolves the request's budget-range key. "not_sure" and
// unknown keys resolve to nil, meaning no usable budget signal.
func requestBudget(key string) *moneyRange {
	r, ok := budgetRanges[key]
	if !ok {
		return nil
	}
	return &r
}

// vendorJobRange unions the vendor's declared job-size buckets into a single
// band. Unknown bucket keys are skipped; nil means nothing resolvable.
func vendorJobRange(buckets []string) *moneyRange {
	var union *moneyRange
	for _, b := range buckets {
		r, ok := jobSizeRanges[b]
		if !ok {
			continue
		}
		if union == nil {
			union = &moneyRange{Min: r.Min, Max: r.Max}
			continue
		}
		if r.Min < union.Min {
			union.Min = r.Min
		}
		if r.Max > union.Max {
			union.Max = r.Max
		}
	}
	return union
}

// priceOverlap classifies how the request budget relates to the vendor's
// range: "full" when one range contains the other, "partial" on any other
// overlap, "none" when disjoint.
type priceOverlap string

const (
	overlapFull    priceOverlap = "full"
	overlapPartial priceOverlap = "partial"
	overlapNone    priceOverlap = "none"
)

func classifyOverlap(budget, vendor moneyRange) priceOverlap {
	contained := budget.Min >= vendor.Min && budget.Max <= vendor.Max
	containing := vendor.Min >= budget.Min && vendor.Max <= budget.Max
	if contained || containing {
		return overlapFull
	}
	if budget.Min <= vendor.Max && budget.Max >= vendor.Min {
		return overlapPartial
	}
	return overlapNone
}

// scorePrice classifies budget-range overlap. A disjoint range still scores
// above zero: price mismatch is informative, not disqualifying, since
// vendors may negotiate.
func (e *Engine) scorePrice(ctx *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Price

	budget := requestBudget(ctx.BudgetRange)
	if budget == nil {
		return newFactor(FactorPrice, e.cfg.Price.Neutral, w,
			"No budget specified on the request", IconInfo), nil
	}
	vendor := vendorJobRange(v.JobSizeRanges)
	if vendor == nil {
		return newFactor(FactorPrice, e.cfg.Price.Neutral, w,
			"Vendor has no job size preferences declared", IconInfo), nil
	}

	switch classifyOverlap(*budget, *vendor) {
	case overlapFull:
		return newFactor(FactorPrice, e.cfg.Price.Full, w,
			"Budget fits the vendor's preferred job size", IconCheck), nil
	case overlapPartial:
		return newFactor(FactorPrice, e.cfg.Price.Partial, w,
			"Budget partially overlaps the vendor's preferred job size", IconInfo), nil
	}
	return newFactor(FactorPrice, e.cfg.Price.None, w,
		fmt.Sprintf("Budget range %s is outside the vendor's preferred job size",
			ctx.BudgetRange), IconWarning), nil
}
