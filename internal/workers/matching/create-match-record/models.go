// internal/workers/matching/create-match-record/models.go
package creatematchrecord

import "vendormatch-workers/internal/matching"

type Input struct {
	RequestID     string                  `json:"requestId"`
	RankedVendors []matching.RankedVendor `json:"rankedVendors"`
}

type Output struct {
	MatchIDs    []string `json:"matchIds"`
	MatchCount  int      `json:"matchCount"`
	TopVendorID string   `json:"topVendorId,omitempty"`
	TopMatchID  string   `json:"topMatchId,omitempty"`
}
