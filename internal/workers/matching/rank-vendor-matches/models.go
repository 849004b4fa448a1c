// internal/workers/matching/rank-vendor-matches/models.go
package rankvendormatches

import "vendormatch-workers/internal/matching"

type Input struct {
	Request    matching.ServiceRequest    `json:"request"`
	VendorPool []matching.VendorMatchData `json:"vendorPool"`
	MaxResults int                        `json:"maxResults,omitempty"`
}

type Output struct {
	RankedVendors []matching.RankedVendor `json:"rankedVendors"`
	TopVendorID   string                  `json:"topVendorId,omitempty"`
	TotalScored   int                     `json:"totalScored"`
	ConfigVersion string                  `json:"scoringConfigVersion"`
}
