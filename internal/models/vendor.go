// internal/models/vendor.go
package models

import (
	"encoding/json"

	"vendormatch-workers/internal/matching"
)

// VendorRow mirrors the vendors table. The JSONB columns (specialties,
// service hours) are scanned as raw bytes and decoded on conversion.
type VendorRow struct {
	ID               string
	Name             string
	Services         []string
	ServiceAreas     []string
	SpecialtiesJSON  []byte
	LicensedInsured  bool
	EmergencyService bool
	HoursJSON        []byte
	JobSizeRanges    []string
}

// VendorStatsRow mirrors the aggregated vendor_stats view. Nullable
// aggregates stay pointers so missing data is distinguishable from zero.
type VendorStatsRow struct {
	VendorID         string
	AvgResponseHours *float64
	PendingJobs      *int
	PerformanceScore float64
	TotalReviews     int
}

// vendorHours is the persisted shape of a vendor's service hours.
type vendorHours struct {
	Weekdays bool `json:"weekdays"`
	Weekends bool `json:"weekends"`
	AllDay   bool `json:"all_day"`
}

// ToMatchData converts a vendor row plus its stats into the scoring input.
// Malformed JSONB columns degrade to empty values rather than failing the
// whole pool.
func (v VendorRow) ToMatchData(stats VendorStatsRow) matching.VendorMatchData {
	specialties := map[string][]string{}
	if len(v.SpecialtiesJSON) > 0 {
		_ = json.Unmarshal(v.SpecialtiesJSON, &specialties)
	}

	var hours vendorHours
	if len(v.HoursJSON) > 0 {
		_ = json.Unmarshal(v.HoursJSON, &hours)
	}

	return matching.VendorMatchData{
		VendorID:          v.ID,
		Name:              v.Name,
		Services:          v.Services,
		ServiceAreas:      v.ServiceAreas,
		Specialties:       specialties,
		LicensedInsured:   v.LicensedInsured,
		EmergencyServices: v.EmergencyService,
		ServiceHours: matching.ServiceHours{
			Weekdays: hours.Weekdays,
			Weekends: hours.Weekends,
			AllDay:   hours.AllDay,
		},
		JobSizeRanges: v.JobSizeRanges,
		Stats: matching.VendorStats{
			AvgResponseHours: stats.AvgResponseHours,
			PendingJobs:      stats.PendingJobs,
			PerformanceScore: stats.PerformanceScore,
			TotalReviews:     stats.TotalReviews,
		},
	}
}
