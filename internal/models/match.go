// internal/models/match.go
package models

import "time"

// MatchRecord mirrors the vendor_matches table, one row per ranked
// vendor persisted for a service request.
type MatchRecord struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	VendorID    string    `json:"vendor_id"`
	Rank        int       `json:"rank"`
	TotalScore  float64   `json:"total_score"`
	Confidence  string    `json:"confidence"`
	FactorsJSON []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
