// internal/workers/matching/score-vendor-match/models.go
package scorevendormatch

import "vendormatch-workers/internal/matching"

// Input carries the request plus either an inline vendor payload or a
// vendor ID to resolve from the store.
type Input struct {
	Request  matching.ServiceRequest   `json:"request"`
	Vendor   *matching.VendorMatchData `json:"vendor,omitempty"`
	VendorID string                    `json:"vendorId,omitempty"`
}

type Output struct {
	VendorID      string                    `json:"vendorId"`
	Result        matching.MatchScoreResult `json:"matchResult"`
	ConfigVersion string                    `json:"scoringConfigVersion"`
}
