// internal/matching/factors_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestScoreService(t *testing.T) {
	eng := testEngine(t)
	ctx := &MatchingContext{ServiceType: "plumber_sewer"}

	t.Run("exact category membership", func(t *testing.T) {
		f, warn := eng.scoreService(ctx, &VendorMatchData{
			Services: []string{"hvac", "plumber_sewer"},
		})
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Service.Match, f.Score)
		assert.Equal(t, "Offers plumber sewer", f.Reason)
		assert.Equal(t, IconCheck, f.Icon)
	})

	t.Run("no partial credit for an unrelated trade", func(t *testing.T) {
		f, warn := eng.scoreService(ctx, &VendorMatchData{
			Services: []string{"electrician", "roofer"},
		})
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Service.NoMatch, f.Score)
		assert.Equal(t, "Does not offer this service", f.Reason)
	})
}

func TestScorePerformance(t *testing.T) {
	eng := testEngine(t)
	ctx := &MatchingContext{}

	tests := []struct {
		name      string
		stats     VendorStats
		wantScore float64
		wantIcon  Icon
		wantLabel string
	}{
		{
			name:      "excellent tier",
			stats:     VendorStats{PerformanceScore: 92, TotalReviews: 30},
			wantScore: 92,
			wantIcon:  IconStar,
			wantLabel: "Excellent",
		},
		{
			name:      "good tier",
			stats:     VendorStats{PerformanceScore: 80, TotalReviews: 12},
			wantScore: 80,
			wantIcon:  IconCheck,
			wantLabel: "Good",
		},
		{
			name:      "poor tier",
			stats:     VendorStats{PerformanceScore: 35, TotalReviews: 4},
			wantScore: 35,
			wantIcon:  IconWarning,
			wantLabel: "Poor",
		},
		{
			name:      "score above 100 clamps",
			stats:     VendorStats{PerformanceScore: 130, TotalReviews: 5},
			wantScore: 100,
			wantIcon:  IconStar,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, warn := eng.scorePerformance(ctx, &VendorMatchData{Stats: tt.stats})
			assert.Nil(t, warn)
			assert.Equal(t, tt.wantScore, f.Score)
			assert.Equal(t, tt.wantIcon, f.Icon)
			if tt.wantLabel != "" {
				assert.Contains(t, f.Reason, tt.wantLabel)
			}
		})
	}

	t.Run("new vendor is flagged, not penalized", func(t *testing.T) {
		f, warn := eng.scorePerformance(ctx, &VendorMatchData{
			Stats: VendorStats{PerformanceScore: 0, TotalReviews: 0},
		})
		assert.Equal(t, eng.cfg.Performance.Neutral, f.Score)
		assert.Equal(t, IconInfo, f.Icon)
		assert.Contains(t, f.Reason, "New vendor")
		require.NotNil(t, warn)
		assert.Equal(t, SeverityLow, warn.Severity)
	})
}

func TestScoreResponseTime(t *testing.T) {
	eng := testEngine(t)
	ctx := &MatchingContext{}

	tests := []struct {
		name      string
		hours     *float64
		wantScore float64
	}{
		{"no data is neutral, not worst bucket", nil, eng.cfg.Response.Neutral},
		{"excellent", floatPtr(1.5), 100},
		{"good", floatPtr(4), 85},
		{"average", floatPtr(20), 65},
		{"poor", floatPtr(36), 40},
		{"very slow", floatPtr(96), 20},
		{"boundary lands in lower tier", floatPtr(24), 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, warn := eng.scoreResponseTime(ctx, &VendorMatchData{
				Stats: VendorStats{AvgResponseHours: tt.hours},
			})
			assert.Nil(t, warn)
			assert.Equal(t, tt.wantScore, f.Score)
		})
	}

	t.Run("reason includes rounded hour figure", func(t *testing.T) {
		f, _ := eng.scoreResponseTime(ctx, &VendorMatchData{
			Stats: VendorStats{AvgResponseHours: floatPtr(3.6)},
		})
		assert.Contains(t, f.Reason, "4 hours")
	})
}

func TestScoreAvailability(t *testing.T) {
	eng := testEngine(t)

	t.Run("emergency request, capable vendor", func(t *testing.T) {
		f, warn := eng.scoreAvailability(
			&MatchingContext{IsEmergency: true},
			&VendorMatchData{EmergencyServices: true},
		)
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Availability.Emergency, f.Score)
		assert.Equal(t, IconCheck, f.Icon)
	})

	t.Run("emergency request, non-capable vendor raises high severity warning", func(t *testing.T) {
		f, warn := eng.scoreAvailability(
			&MatchingContext{IsEmergency: true},
			&VendorMatchData{EmergencyServices: false},
		)
		assert.Equal(t, eng.cfg.Availability.NoEmergency, f.Score)
		require.NotNil(t, warn)
		assert.Equal(t, SeverityHigh, warn.Severity)
		assert.Equal(t, FactorAvailability, warn.Factor)
	})

	t.Run("standard availability baseline", func(t *testing.T) {
		f, warn := eng.scoreAvailability(&MatchingContext{}, &VendorMatchData{})
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Availability.Base, f.Score)
	})

	t.Run("24/7 coverage gets the largest bonus and caps at 100", func(t *testing.T) {
		f, _ := eng.scoreAvailability(&MatchingContext{}, &VendorMatchData{
			ServiceHours: ServiceHours{AllDay: true},
		})
		assert.Equal(t, 100.0, f.Score)
		assert.Contains(t, f.Reason, "24/7")
	})

	t.Run("weekend bonus only when the request falls on a weekend", func(t *testing.T) {
		vendor := &VendorMatchData{ServiceHours: ServiceHours{Weekends: true}}

		f, _ := eng.scoreAvailability(&MatchingContext{IsWeekend: true}, vendor)
		assert.Equal(t, eng.cfg.Availability.Base+eng.cfg.Availability.WeekendBonus, f.Score)

		f, _ = eng.scoreAvailability(&MatchingContext{IsWeekend: false}, vendor)
		assert.Equal(t, eng.cfg.Availability.Base, f.Score)
	})
}

func TestScoreSpecialty(t *testing.T) {
	eng := testEngine(t)

	vendor := &VendorMatchData{
		Specialties: map[string][]string{
			"hvac": {"furnace", "Heat Pump"},
		},
	}

	t.Run("no detail fields is neutral", func(t *testing.T) {
		f, warn := eng.scoreSpecialty(&MatchingContext{ServiceType: "hvac"}, vendor)
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Specialty.Neutral, f.Score)
		assert.Equal(t, "No specific specialty required", f.Reason)
	})

	t.Run("Other values are skipped", func(t *testing.T) {
		f, _ := eng.scoreSpecialty(&MatchingContext{
			ServiceType: "hvac",
			Details:     map[string]string{"Equipment Type": "Other"},
		}, vendor)
		assert.Equal(t, eng.cfg.Specialty.Neutral, f.Score)
	})

	t.Run("substring containment in either direction", func(t *testing.T) {
		// "Gas Furnace" contains the declared "furnace".
		f, warn := eng.scoreSpecialty(&MatchingContext{
			ServiceType: "hvac",
			Details:     map[string]string{"Equipment Type": "Gas Furnace"},
		}, vendor)
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Specialty.Match, f.Score)
		assert.Equal(t, IconStar, f.Icon)
		assert.Contains(t, f.Reason, "furnace")

		// Declared "Heat Pump" contains the requested "pump".
		f, _ = eng.scoreSpecialty(&MatchingContext{
			ServiceType: "hvac",
			Details:     map[string]string{"Equipment Type": "pump"},
		}, vendor)
		assert.Equal(t, eng.cfg.Specialty.Match, f.Score)
	})

	t.Run("mismatch is soft, not disqualifying", func(t *testing.T) {
		f, warn := eng.scoreSpecialty(&MatchingContext{
			ServiceType: "hvac",
			Details:     map[string]string{"Equipment Type": "Boiler"},
		}, vendor)
		assert.Nil(t, warn)
		assert.Equal(t, eng.cfg.Specialty.NoMatch, f.Score)
		assert.Contains(t, f.Reason, "Boiler")
	})

	t.Run("specialties scoped to the requested category", func(t *testing.T) {
		f, _ := eng.scoreSpecialty(&MatchingContext{
			ServiceType: "plumber_sewer",
			Details:     map[string]string{"Equipment Type": "furnace"},
		}, vendor)
		assert.Equal(t, eng.cfg.Specialty.NoMatch, f.Score)
	})
}

func TestScoreCapacity(t *testing.T) {
	eng := testEngine(t)
	ctx := &MatchingContext{}

	tests := []struct {
		name      string
		pending   *int
		wantScore float64
		wantIcon  Icon
	}{
		{"unknown count is neutral", nil, eng.cfg.Capacity.Neutral, IconInfo},
		{"zero jobs fully available", intPtr(0), 100, IconCheck},
		{"light workload", intPtr(2), 85, IconCheck},
		{"limited availability", intPtr(4), 65, IconInfo},
		{"busy", intPtr(9), 40, IconWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, warn := eng.scoreCapacity(ctx, &VendorMatchData{
				Stats: VendorStats{PendingJobs: tt.pending},
			})
			assert.Nil(t, warn)
			assert.Equal(t, tt.wantScore, f.Score)
			assert.Equal(t, tt.wantIcon, f.Icon)
		})
	}

	t.Run("reason escalates with pending count", func(t *testing.T) {
		f, _ := eng.scoreCapacity(ctx, &VendorMatchData{Stats: VendorStats{PendingJobs: intPtr(0)}})
		assert.Contains(t, f.Reason, "fully available")

		f, _ = eng.scoreCapacity(ctx, &VendorMatchData{Stats: VendorStats{PendingJobs: intPtr(9)}})
		assert.Contains(t, f.Reason, "busy")
	})
}
