// internal/matching/context.go
package matching

import (
	"regexp"
	"time"
)

// zipPattern finds the first standalone 5-digit run in free-text location
// strings like "Center City, Philadelphia 19103".
var zipPattern = regexp.MustCompile(`\b(\d{5})\b`)

// BuildContext derives the shared per-request signals once so every
// per-vendor factor call reuses them instead of recomputing. The returned
// context is read-only by convention; nothing mutates it after construction.
func BuildContext(req *ServiceRequest) *MatchingContext {
	return &MatchingContext{
		ServiceType: req.ServiceType,
		ZipCode:     resolveZip(req),
		Urgency:     req.Urgency,
		IsEmergency: req.Urgency == UrgencyEmergency,
		IsWeekend:   isWeekend(req.CreatedAt),
		BudgetRange: req.BudgetRange,
		Details:     req.Details,
	}
}

// resolveZip prefers the structured zip field and falls back to extracting a
// 5-digit pattern from the free-text location. Returns "" when neither
// yields one; factors treat that as missing data, not an error.
func resolveZip(req *ServiceRequest) string {
	if zipPattern.MatchString(req.ZipCode) {
		return zipPattern.FindString(req.ZipCode)
	}
	if m := zipPattern.FindString(req.Location); m != "" {
		return m
	}
	return ""
}

// isWeekend classifies the request's creation time, not the wall-clock time
// of scoring, so repeated scoring of the same request stays deterministic.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
