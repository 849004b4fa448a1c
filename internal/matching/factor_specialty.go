// internal/matching/factor_specialty.go
package matching

import (
	"fmt"
	"strings"
)

// specialtyDetailFields is the fixed list of structured intake detail fields
// that may carry a requested specialty for a service category.
var specialtyDetailFields = []string{
	"Equipment Type",
	"Pest Type",
	"Issue Type",
	"Project Type",
	"System Type",
	"Appliance Type",
}

// requestedSpecialties extracts the requested specialty terms from the
// request's detail fields, skipping empty and "Other" values.
func requestedSpecialties(details map[string]string) []string {
	var terms []string
	for _, field := range specialtyDetailFields {
		v := strings.TrimSpace(details[field])
		if v == "" || strings.EqualFold(v, "Other") {
			continue
		}
		terms = append(terms, v)
	}
	return terms
}

// specialtyMatches compares a requested term against a declared tag using
// case-insensitive substring containment in either direction, tolerating
// phrasing differences like "Gas Furnace" vs. "furnace".
func specialtyMatches(requested, declared string) bool {
	a := strings.ToLower(strings.TrimSpace(requested))
	b := strings.ToLower(strings.TrimSpace(declared))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scoreSpecialty is a soft signal: a mismatch lowers the score without
// disqualifying the vendor, and a request with no specialty details at all
// is neutral.
func (e *Engine) scoreSpecialty(ctx *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Specialty

	requested := requestedSpecialties(ctx.Details)
	if len(requested) == 0 {
		return newFactor(FactorSpecialty, e.cfg.Specialty.Neutral, w,
			"No specific specialty required", IconInfo), nil
	}

	declared := v.Specialties[ctx.ServiceType]
	for _, term := range requested {
		for _, tag := range declared {
			if specialtyMatches(term, tag) {
				return newFactor(FactorSpecialty, e.cfg.Specialty.Match, w,
					fmt.Sprintf("Specializes in %s", tag), IconStar), nil
			}
		}
	}

	return newFactor(FactorSpecialty, e.cfg.Specialty.NoMatch, w,
		fmt.Sprintf("May not specialize in %s", strings.Join(requested, ", ")),
		IconInfo), nil
}
