// internal/matching/factor_price_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOverlap(t *testing.T) {
	tests := []struct {
		name   string
		budget moneyRange
		vendor moneyRange
		want   priceOverlap
	}{
		{
			name:   "partial overlap",
			budget: moneyRange{Min: 1000, Max: 2500},
			vendor: moneyRange{Min: 2000, Max: 5000},
			want:   overlapPartial,
		},
		{
			name:   "budget contains vendor range",
			budget: moneyRange{Min: 1000, Max: 5000},
			vendor: moneyRange{Min: 2000, Max: 3000},
			want:   overlapFull,
		},
		{
			name:   "budget contained in vendor range",
			budget: moneyRange{Min: 1500, Max: 2000},
			vendor: moneyRange{Min: 1000, Max: 5000},
			want:   overlapFull,
		},
		{
			name:   "disjoint ranges",
			budget: moneyRange{Min: 100, Max: 400},
			vendor: moneyRange{Min: 5000, Max: 10000},
			want:   overlapNone,
		},
		{
			name:   "touching endpoints still overlap",
			budget: moneyRange{Min: 1000, Max: 2500},
			vendor: moneyRange{Min: 2500, Max: 5000},
			want:   overlapPartial,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOverlap(tt.budget, tt.vendor))
		})
	}
}

func TestVendorJobRange(t *testing.T) {
	t.Run("union across declared buckets", func(t *testing.T) {
		r := vendorJobRange([]string{"1k_5k", "15k_50k"})
		assert.Equal(t, &moneyRange{Min: 1000, Max: 50000}, r)
	})

	t.Run("unknown buckets skipped", func(t *testing.T) {
		r := vendorJobRange([]string{"gigantic", "1k_5k"})
		assert.Equal(t, &moneyRange{Min: 1000, Max: 5000}, r)
	})

	t.Run("nothing resolvable", func(t *testing.T) {
		assert.Nil(t, vendorJobRange(nil))
		assert.Nil(t, vendorJobRange([]string{"gigantic"}))
	})
}

func TestScorePrice(t *testing.T) {
	eng := testEngine(t)

	tests := []struct {
		name      string
		budget    string
		buckets   []string
		wantScore float64
	}{
		{
			name:      "full fit",
			budget:    "1000_2500",
			buckets:   []string{"1k_5k"},
			wantScore: eng.cfg.Price.Full,
		},
		{
			name:      "partial overlap",
			budget:    "2500_5000",
			buckets:   []string{"5k_15k"},
			wantScore: eng.cfg.Price.Partial,
		},
		{
			name:      "disjoint but still nonzero",
			budget:    "under_1000",
			buckets:   []string{"15k_50k"},
			wantScore: eng.cfg.Price.None,
		},
		{
			name:      "not sure budget is neutral",
			budget:    "not_sure",
			buckets:   []string{"1k_5k"},
			wantScore: eng.cfg.Price.Neutral,
		},
		{
			name:      "missing budget is neutral",
			budget:    "",
			buckets:   []string{"1k_5k"},
			wantScore: eng.cfg.Price.Neutral,
		},
		{
			name:      "vendor without job sizes is neutral",
			budget:    "1000_2500",
			buckets:   nil,
			wantScore: eng.cfg.Price.Neutral,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, warn := eng.scorePrice(
				&MatchingContext{BudgetRange: tt.budget},
				&VendorMatchData{JobSizeRanges: tt.buckets},
			)
			assert.Nil(t, warn)
			assert.Equal(t, tt.wantScore, f.Score)
			assert.Greater(t, f.Score, 0.0)
		})
	}
}
