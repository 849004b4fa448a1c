// internal/matching/factor_location.go
package matching

import (
	"fmt"
	"strconv"
	"strings"
)

// areaMatch orders resolution tiers by precedence: a higher value always
// beats a lower one when scanning a vendor's service-area entries.
type areaMatch int

const (
	areaMatchNone areaMatch = iota
	areaMatchState
	areaMatchPrefix3
	areaMatchPrefix4
	areaMatchExact
)

// statePrefixRanges maps 3-digit zip prefixes to states for the service
// region. This is a hand-maintained approximation of the USPS assignment,
// not a full postal database; it covers the PA/NJ/DE/MD footprint only.
var statePrefixRanges = []struct {
	lo, hi int
	state  string
}{
	{lo: 70, hi: 89, state: "NJ"},
	{lo: 150, hi: 196, state: "PA"},
	{lo: 197, hi: 199, state: "DE"},
	{lo: 206, hi: 219, state: "MD"},
}

// stateForZip resolves a 5-digit zip to a state code through the prefix
// table, or "" when the zip falls outside the covered region.
func stateForZip(zip string) string {
	if len(zip) != 5 {
		return ""
	}
	prefix, err := strconv.Atoi(zip[:3])
	if err != nil {
		return ""
	}
	for _, r := range statePrefixRanges {
		if prefix >= r.lo && prefix <= r.hi {
			return r.state
		}
	}
	return ""
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// classifyArea resolves one service-area entry against the request zip.
// Entries may be an exact 5-digit zip, a "prefix:NNN"/"prefix:NNNN" pattern
// (or a bare 3-4 digit prefix), a "state:XX" pattern, or a bare 2-letter
// state code.
func classifyArea(area, zip string) areaMatch {
	area = strings.TrimSpace(area)

	if p, ok := strings.CutPrefix(area, "prefix:"); ok {
		return classifyPrefix(p, zip)
	}
	if s, ok := strings.CutPrefix(area, "state:"); ok {
		return classifyState(s, zip)
	}

	switch {
	case len(area) == 5 && isDigits(area):
		if area == zip {
			return areaMatchExact
		}
		return areaMatchNone
	case (len(area) == 3 || len(area) == 4) && isDigits(area):
		return classifyPrefix(area, zip)
	case len(area) == 2:
		return classifyState(area, zip)
	}
	return areaMatchNone
}

func classifyPrefix(prefix, zip string) areaMatch {
	if !isDigits(prefix) || !strings.HasPrefix(zip, prefix) {
		return areaMatchNone
	}
	switch len(prefix) {
	case 4:
		return areaMatchPrefix4
	case 3:
		return areaMatchPrefix3
	}
	return areaMatchNone
}

func classifyState(state, zip string) areaMatch {
	if strings.EqualFold(strings.TrimSpace(state), stateForZip(zip)) && stateForZip(zip) != "" {
		return areaMatchState
	}
	return areaMatchNone
}

// scoreLocation picks the single best match type across all of the vendor's
// area entries. An exact hit short-circuits the scan. Missing geography on
// either side degrades to an explicit neutral score because intake data is
// frequently incomplete.
func (e *Engine) scoreLocation(ctx *MatchingContext, v *VendorMatchData) (MatchFactor, *MatchWarning) {
	w := e.cfg.Weights.Location

	if ctx.ZipCode == "" {
		f := newFactor(FactorLocation, e.cfg.Location.Neutral, w,
			"No zip code on the request; location could not be compared", IconInfo)
		return f, &MatchWarning{
			Severity: SeverityLow,
			Message:  "Request has no resolvable zip code",
			Factor:   FactorLocation,
		}
	}
	if len(v.ServiceAreas) == 0 {
		f := newFactor(FactorLocation, e.cfg.Location.Neutral, w,
			"Vendor has no service areas declared", IconInfo)
		return f, &MatchWarning{
			Severity: SeverityLow,
			Message:  "Vendor has not declared any service areas",
			Factor:   FactorLocation,
		}
	}

	best := areaMatchNone
	for _, area := range v.ServiceAreas {
		m := classifyArea(area, ctx.ZipCode)
		if m > best {
			best = m
		}
		if best == areaMatchExact {
			break
		}
	}

	switch best {
	case areaMatchExact:
		return newFactor(FactorLocation, e.cfg.Location.Exact, w,
			fmt.Sprintf("Serves zip code %s", ctx.ZipCode), IconCheck), nil
	case areaMatchPrefix4:
		return newFactor(FactorLocation, e.cfg.Location.Prefix4, w,
			fmt.Sprintf("Serves the %sx zip area", ctx.ZipCode[:4]), IconCheck), nil
	case areaMatchPrefix3:
		return newFactor(FactorLocation, e.cfg.Location.Prefix3, w,
			fmt.Sprintf("Serves the %sxx zip area", ctx.ZipCode[:3]), IconCheck), nil
	case areaMatchState:
		return newFactor(FactorLocation, e.cfg.Location.State, w,
			fmt.Sprintf("Serves %s statewide", stateForZip(ctx.ZipCode)), IconInfo), nil
	}
	return newFactor(FactorLocation, e.cfg.Location.NoMatch, w,
		fmt.Sprintf("Zip code %s is outside the vendor's service areas", ctx.ZipCode),
		IconWarning), nil
}
