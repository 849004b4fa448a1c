// internal/matching/config_test.go
package matching

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), weightTolerance)
	assert.NotEmpty(t, cfg.Version)
}

func TestScoringConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScoringConfig)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(*ScoringConfig) {},
		},
		{
			name: "weights not summing to 1.0",
			mutate: func(c *ScoringConfig) {
				c.Weights.Service = 0.5
			},
			wantErr: "must sum to 1.0",
		},
		{
			name: "negative weight",
			mutate: func(c *ScoringConfig) {
				c.Weights.Service = -0.05
				c.Weights.Location = 0.45
			},
			wantErr: "negative weight",
		},
		{
			name: "confidence thresholds out of order",
			mutate: func(c *ScoringConfig) {
				c.Confidence = ConfidenceThresholds{High: 50, Medium: 70}
			},
			wantErr: "confidence thresholds out of order",
		},
		{
			name: "empty response tier table",
			mutate: func(c *ScoringConfig) {
				c.ResponseTiers = nil
			},
			wantErr: "response tier table is empty",
		},
		{
			name: "response tiers out of order",
			mutate: func(c *ScoringConfig) {
				c.ResponseTiers = []ResponseTier{
					{MaxHours: 24, Score: 65},
					{MaxHours: 2, Score: 100},
				}
			},
			wantErr: "ascending maxHours",
		},
		{
			name: "capacity tiers out of order",
			mutate: func(c *ScoringConfig) {
				c.CapacityTiers = []CapacityTier{
					{MaxJobs: 5, Score: 65},
					{MaxJobs: 0, Score: 100},
				}
			},
			wantErr: "ascending maxJobs",
		},
		{
			name: "performance tiers out of order",
			mutate: func(c *ScoringConfig) {
				c.PerformanceTiers = []PerformanceTier{
					{MinScore: 60, Label: "average"},
					{MinScore: 90, Label: "excellent"},
				}
			},
			wantErr: "descending minScore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// Redistributing weight between factors must keep the config valid as long
// as the sum stays at 1.0.
func TestScoringConfig_WeightRedistribution(t *testing.T) {
	for _, shift := range []float64{0.01, 0.05, 0.10} {
		cfg := DefaultConfig()
		cfg.Weights.Service -= shift
		cfg.Weights.Price += shift
		assert.NoError(t, cfg.Validate(), "shift %.2f", shift)
		assert.InDelta(t, 1.0, cfg.Weights.Sum(), weightTolerance)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadScoringConfig(t *testing.T) {
	t.Run("valid document overrides defaults", func(t *testing.T) {
		path := writeTempConfig(t, `{
			"version": "2.1.0",
			"weights": {
				"service": 0.25, "location": 0.20, "performance": 0.15,
				"responseTime": 0.10, "availability": 0.10, "specialty": 0.10,
				"capacity": 0.05, "price": 0.05
			},
			"confidence": {"high": 85, "medium": 65}
		}`)

		cfg, err := LoadScoringConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", cfg.Version)
		assert.Equal(t, 0.25, cfg.Weights.Service)
		assert.Equal(t, 85.0, cfg.Confidence.High)
		// Omitted sections fall back to defaults.
		assert.Equal(t, DefaultConfig().Location, cfg.Location)
	})

	t.Run("weights not summing to 1.0 rejected", func(t *testing.T) {
		path := writeTempConfig(t, `{
			"version": "2.0.0",
			"weights": {
				"service": 0.50, "location": 0.20, "performance": 0.15,
				"responseTime": 0.10, "availability": 0.15, "specialty": 0.10,
				"capacity": 0.05, "price": 0.05
			}
		}`)

		_, err := LoadScoringConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must sum to 1.0")
	})

	t.Run("malformed document rejected by schema", func(t *testing.T) {
		path := writeTempConfig(t, `{"version": "2.0.0", "weights": {"service": "a lot"}}`)

		_, err := LoadScoringConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scoring config invalid")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScoringConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		eng, err := NewEngine(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Version, eng.ConfigVersion())
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.Service = math.Pi
		_, err := NewEngine(cfg)
		assert.Error(t, err)
	})
}
