// internal/matching/engine.go

// Package matching scores candidate vendors against a service request along
// eight independent signals and aggregates them into a ranked, explainable
// 0-100 confidence score per vendor. Every calculation is a pure function of
// its inputs: no I/O, no shared mutable state, no randomness. Identical
// inputs always produce bit-identical results, so callers may cache results
// keyed by (request version, vendor version, config version).
package matching

import "strings"

// Engine evaluates vendors against requests using a validated scoring
// configuration. Safe for concurrent use; it holds no mutable state.
type Engine struct {
	cfg *ScoringConfig
}

// NewEngine builds an engine from the given configuration, or from
// DefaultConfig when cfg is nil. An invalid configuration is rejected here;
// the engine never half-operates on bad weights or tables.
func NewEngine(cfg *ScoringConfig) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's scoring configuration.
func (e *Engine) Config() *ScoringConfig {
	return e.cfg
}

// ConfigVersion returns the version string of the loaded configuration,
// used by callers as part of result cache keys.
func (e *Engine) ConfigVersion() string {
	return e.cfg.Version
}

// clampScore bounds a factor or total score to [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// newFactor builds a factor with its score clamped and weighted product
// computed. All factor calculators construct their output through this.
func newFactor(name string, score, weight float64, reason string, icon Icon) MatchFactor {
	score = clampScore(score)
	return MatchFactor{
		Name:     name,
		Score:    score,
		Weight:   weight,
		Weighted: score * weight,
		Reason:   reason,
		Icon:     icon,
	}
}

// humanizeService turns a service category key like "plumber_sewer" into
// display text.
func humanizeService(serviceType string) string {
	return strings.ReplaceAll(serviceType, "_", " ")
}
