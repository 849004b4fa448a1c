// internal/matching/types.go
package matching

import "time"

// Icon indicates how a factor is rendered next to its reason in the admin UI.
type Icon string

const (
	IconCheck   Icon = "check"
	IconWarning Icon = "warning"
	IconInfo    Icon = "info"
	IconStar    Icon = "star"
)

// Severity classifies how actionable a warning is for human review.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Confidence is the coarse human-facing summary of a total score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Urgency is the request's timeline as captured at intake.
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencySoon      Urgency = "soon"
	UrgencyFlexible  Urgency = "flexible"
)

// Factor names, in the fixed evaluation order used by the aggregator.
const (
	FactorService      = "Service Match"
	FactorLocation     = "Location Match"
	FactorPerformance  = "Performance"
	FactorResponseTime = "Response Time"
	FactorAvailability = "Availability"
	FactorSpecialty    = "Specialty Match"
	FactorCapacity     = "Capacity"
	FactorPrice        = "Price Fit"
)

// MatchFactor is one independently scored signal. Produced fresh per
// calculation and never mutated afterwards.
type MatchFactor struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Reason   string  `json:"reason"`
	Icon     Icon    `json:"icon"`
}

// MatchWarning flags a risk not fully captured by the numeric score alone.
// At most one is emitted per factor calculation.
type MatchWarning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Factor   string   `json:"factor"`
}

// MatchScoreResult is the full explainable score for one vendor against one
// request. Owned by the caller that requested it; never cached across
// requests by the engine itself.
type MatchScoreResult struct {
	VendorID   string         `json:"vendorId"`
	TotalScore float64        `json:"totalScore"`
	Confidence Confidence     `json:"confidence"`
	Factors    []MatchFactor  `json:"factors"`
	Warnings   []MatchWarning `json:"warnings"`
}

// HasHighSeverityWarning reports whether any collected warning is high severity.
func (r *MatchScoreResult) HasHighSeverityWarning() bool {
	for _, w := range r.Warnings {
		if w.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// ServiceRequest is the intake record a pool of vendors is scored against.
type ServiceRequest struct {
	ID          string            `json:"id"`
	ServiceType string            `json:"serviceType"`
	Urgency     Urgency           `json:"urgency"`
	ZipCode     string            `json:"zipCode"`
	Location    string            `json:"location"`
	BudgetRange string            `json:"budgetRange"`
	Details     map[string]string `json:"details"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ServiceHours describes when a vendor takes jobs.
type ServiceHours struct {
	Weekdays bool `json:"weekdays"`
	Weekends bool `json:"weekends"`
	AllDay   bool `json:"allDay"` // 24/7 coverage
}

// VendorStats carries the externally computed historical statistics for a
// vendor. The engine consumes these as given; it never computes them.
// Nil pointers mean "no data yet", which is distinct from zero.
type VendorStats struct {
	AvgResponseHours *float64 `json:"avgResponseHours"`
	PendingJobs      *int     `json:"pendingJobs"`
	PerformanceScore float64  `json:"performanceScore"`
	TotalReviews     int      `json:"totalReviews"`
}

// VendorMatchData bundles a vendor's static profile with its historical
// statistics. Assembled by the data layer, not by the engine.
type VendorMatchData struct {
	VendorID          string              `json:"vendorId"`
	Name              string              `json:"name"`
	Services          []string            `json:"services"`
	ServiceAreas      []string            `json:"serviceAreas"`
	Specialties       map[string][]string `json:"specialties"` // service category -> tags
	LicensedInsured   bool                `json:"licensedInsured"`
	EmergencyServices bool                `json:"emergencyServices"`
	ServiceHours      ServiceHours        `json:"serviceHours"`
	JobSizeRanges     []string            `json:"jobSizeRanges"`
	Stats             VendorStats         `json:"stats"`
}

// MatchingContext is the request-derived snapshot built once per request and
// shared read-only across all vendor scoring calls for that request.
type MatchingContext struct {
	ServiceType string
	ZipCode     string // "" when no zip was resolvable
	Urgency     Urgency
	IsEmergency bool
	IsWeekend   bool
	BudgetRange string
	Details     map[string]string
}

// RankedVendor attaches a score result to a vendor record for display
// without mutating the vendor itself.
type RankedVendor struct {
	Vendor VendorMatchData   `json:"vendor"`
	Rank   int               `json:"rank"`
	Result *MatchScoreResult `json:"result"`
}
