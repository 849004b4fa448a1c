// internal/workers/matching/fetch-vendor-pool/models.go
package fetchvendorpool

import "vendormatch-workers/internal/matching"

type Input struct {
	RequestID   string `json:"requestId"`
	ServiceType string `json:"serviceType"`
	MaxResults  int    `json:"maxResults,omitempty"`
}

type Output struct {
	VendorPool []matching.VendorMatchData `json:"vendorPool"`
	PoolSize   int                        `json:"poolSize"`
}
