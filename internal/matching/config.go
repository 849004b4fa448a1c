// internal/matching/config.go
package matching

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Weights holds the fraction of the total score each factor contributes.
// All eight must sum to 1.0 within a 0.001 tolerance.
type Weights struct {
	Service      float64 `json:"service" mapstructure:"service"`
	Location     float64 `json:"location" mapstructure:"location"`
	Performance  float64 `json:"performance" mapstructure:"performance"`
	ResponseTime float64 `json:"responseTime" mapstructure:"response_time"`
	Availability float64 `json:"availability" mapstructure:"availability"`
	Specialty    float64 `json:"specialty" mapstructure:"specialty"`
	Capacity     float64 `json:"capacity" mapstructure:"capacity"`
	Price        float64 `json:"price" mapstructure:"price"`
}

// Sum returns the total of all factor weights.
func (w Weights) Sum() float64 {
	return w.Service + w.Location + w.Performance + w.ResponseTime +
		w.Availability + w.Specialty + w.Capacity + w.Price
}

// ConfidenceThresholds maps a total score to a confidence tier: High at or
// above High, Medium at or above Medium, Low below that.
type ConfidenceThresholds struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
}

// ServiceScores are the two fixed outcomes of the binary service factor.
type ServiceScores struct {
	Match   float64 `json:"match"`
	NoMatch float64 `json:"noMatch"`
}

// LocationScores holds one fixed score per resolution tier plus the neutral
// score used when geography data is missing on either side.
type LocationScores struct {
	Exact   float64 `json:"exact"`
	Prefix4 float64 `json:"prefix4"`
	Prefix3 float64 `json:"prefix3"`
	State   float64 `json:"state"`
	NoMatch float64 `json:"noMatch"`
	Neutral float64 `json:"neutral"`
}

// ResponseTier is one bucket of the response-time table, scanned in
// ascending MaxHours order; the first tier not exceeded wins.
type ResponseTier struct {
	MaxHours float64 `json:"maxHours"`
	Score    float64 `json:"score"`
	Label    string  `json:"label"`
}

// CapacityTier is one bucket of the workload table, scanned in ascending
// MaxJobs order; the first tier whose bound is not exceeded wins.
type CapacityTier struct {
	MaxJobs int     `json:"maxJobs"`
	Score   float64 `json:"score"`
	Label   string  `json:"label"`
	Icon    Icon    `json:"icon"`
}

// PerformanceTier labels a performance score band. Scanned in descending
// MinScore order. The same table backs vendor-facing language elsewhere, so
// labels here are display strings.
type PerformanceTier struct {
	MinScore float64 `json:"minScore"`
	Label    string  `json:"label"`
	Icon     Icon    `json:"icon"`
}

// AvailabilityScores holds the fixed scores and additive bonuses of the
// availability factor. Bonuses only apply to non-emergency requests and the
// bonused score is capped at 100.
type AvailabilityScores struct {
	Emergency    float64 `json:"emergency"`
	NoEmergency  float64 `json:"noEmergency"`
	Base         float64 `json:"base"`
	AllDayBonus  float64 `json:"allDayBonus"`
	WeekendBonus float64 `json:"weekendBonus"`
}

// SpecialtyScores holds the soft-signal specialty outcomes.
type SpecialtyScores struct {
	Match   float64 `json:"match"`
	NoMatch float64 `json:"noMatch"`
	Neutral float64 `json:"neutral"`
}

// PriceScores maps a range-overlap classification to a score. None is the
// lowest but deliberately non-zero: price mismatch is informative, not
// disqualifying.
type PriceScores struct {
	Full    float64 `json:"full"`
	Partial float64 `json:"partial"`
	None    float64 `json:"none"`
	Neutral float64 `json:"neutral"`
}

// PerformanceScores holds the neutral score applied to vendors with no
// reviews, so "no data" is never conflated with "bad data".
type PerformanceScores struct {
	Neutral float64 `json:"neutral"`
}

// ResponseScores holds the neutral score for vendors with no response
// history yet.
type ResponseScores struct {
	Neutral float64 `json:"neutral"`
}

// CapacityScores holds the neutral score for vendors whose pending-job count
// is unknown.
type CapacityScores struct {
	Neutral float64 `json:"neutral"`
}

// ScoringConfig is the versioned scoring configuration: weights plus every
// per-factor threshold table. Pure data, loaded once at process start.
type ScoringConfig struct {
	Version          string               `json:"version"`
	Weights          Weights              `json:"weights"`
	Confidence       ConfidenceThresholds `json:"confidence"`
	Service          ServiceScores        `json:"service"`
	Location         LocationScores       `json:"location"`
	Performance      PerformanceScores    `json:"performance"`
	PerformanceTiers []PerformanceTier    `json:"performanceTiers"`
	Response         ResponseScores       `json:"response"`
	ResponseTiers    []ResponseTier       `json:"responseTiers"`
	Availability     AvailabilityScores   `json:"availability"`
	Specialty        SpecialtyScores      `json:"specialty"`
	Capacity         CapacityScores       `json:"capacity"`
	CapacityTiers    []CapacityTier       `json:"capacityTiers"`
	Price            PriceScores          `json:"price"`
}

// weightTolerance is the allowed deviation of the weight sum from 1.0.
const weightTolerance = 0.001

// DefaultConfig returns the built-in scoring configuration.
func DefaultConfig() *ScoringConfig {
	return &ScoringConfig{
		Version: "1.0.0",
		Weights: Weights{
			Service:      0.20,
			Location:     0.20,
			Performance:  0.15,
			ResponseTime: 0.10,
			Availability: 0.15,
			Specialty:    0.10,
			Capacity:     0.05,
			Price:        0.05,
		},
		Confidence: ConfidenceThresholds{High: 80, Medium: 60},
		Service:    ServiceScores{Match: 100, NoMatch: 0},
		Location: LocationScores{
			Exact:   100,
			Prefix4: 85,
			Prefix3: 70,
			State:   50,
			NoMatch: 20,
			Neutral: 50,
		},
		Performance: PerformanceScores{Neutral: 70},
		PerformanceTiers: []PerformanceTier{
			{MinScore: 90, Label: "excellent", Icon: IconStar},
			{MinScore: 75, Label: "good", Icon: IconCheck},
			{MinScore: 60, Label: "average", Icon: IconInfo},
			{MinScore: 0, Label: "poor", Icon: IconWarning},
		},
		Response: ResponseScores{Neutral: 50},
		ResponseTiers: []ResponseTier{
			{MaxHours: 2, Score: 100, Label: "excellent"},
			{MaxHours: 6, Score: 85, Label: "good"},
			{MaxHours: 24, Score: 65, Label: "average"},
			{MaxHours: 48, Score: 40, Label: "poor"},
			{MaxHours: math.MaxFloat64, Score: 20, Label: "very slow"},
		},
		Availability: AvailabilityScores{
			Emergency:    95,
			NoEmergency:  20,
			Base:         70,
			AllDayBonus:  30,
			WeekendBonus: 20,
		},
		Specialty: SpecialtyScores{Match: 95, NoMatch: 40, Neutral: 70},
		Capacity:  CapacityScores{Neutral: 50},
		CapacityTiers: []CapacityTier{
			{MaxJobs: 0, Score: 100, Label: "fully available", Icon: IconCheck},
			{MaxJobs: 2, Score: 85, Label: "light workload", Icon: IconCheck},
			{MaxJobs: 5, Score: 65, Label: "limited availability", Icon: IconInfo},
			{MaxJobs: int(math.MaxInt32), Score: 40, Label: "busy", Icon: IconWarning},
		},
		Price: PriceScores{Full: 100, Partial: 70, None: 30, Neutral: 50},
	}
}

// Validate checks the configuration invariants. A failing config must refuse
// to operate rather than silently miscompute.
func (c *ScoringConfig) Validate() error {
	if diff := math.Abs(c.Weights.Sum() - 1.0); diff > weightTolerance {
		return fmt.Errorf("factor weights sum to %.4f, must sum to 1.0", c.Weights.Sum())
	}
	for name, w := range map[string]float64{
		FactorService:      c.Weights.Service,
		FactorLocation:     c.Weights.Location,
		FactorPerformance:  c.Weights.Performance,
		FactorResponseTime: c.Weights.ResponseTime,
		FactorAvailability: c.Weights.Availability,
		FactorSpecialty:    c.Weights.Specialty,
		FactorCapacity:     c.Weights.Capacity,
		FactorPrice:        c.Weights.Price,
	} {
		if w < 0 {
			return fmt.Errorf("negative weight for %s: %f", name, w)
		}
	}

	if c.Confidence.High <= c.Confidence.Medium {
		return fmt.Errorf("confidence thresholds out of order: high %.1f <= medium %.1f",
			c.Confidence.High, c.Confidence.Medium)
	}

	if len(c.ResponseTiers) == 0 {
		return fmt.Errorf("response tier table is empty")
	}
	if !sort.SliceIsSorted(c.ResponseTiers, func(i, j int) bool {
		return c.ResponseTiers[i].MaxHours < c.ResponseTiers[j].MaxHours
	}) {
		return fmt.Errorf("response tiers must be ordered by ascending maxHours")
	}

	if len(c.CapacityTiers) == 0 {
		return fmt.Errorf("capacity tier table is empty")
	}
	if !sort.SliceIsSorted(c.CapacityTiers, func(i, j int) bool {
		return c.CapacityTiers[i].MaxJobs < c.CapacityTiers[j].MaxJobs
	}) {
		return fmt.Errorf("capacity tiers must be ordered by ascending maxJobs")
	}

	if len(c.PerformanceTiers) == 0 {
		return fmt.Errorf("performance tier table is empty")
	}
	if !sort.SliceIsSorted(c.PerformanceTiers, func(i, j int) bool {
		return c.PerformanceTiers[i].MinScore > c.PerformanceTiers[j].MinScore
	}) {
		return fmt.Errorf("performance tiers must be ordered by descending minScore")
	}

	return nil
}

// configSchema structurally validates a scoring configuration document before
// it is unmarshalled, so a malformed file fails loudly at load time.
const configSchema = `{
  "type": "object",
  "required": ["version", "weights"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "weights": {
      "type": "object",
      "required": ["service", "location", "performance", "responseTime",
                   "availability", "specialty", "capacity", "price"],
      "additionalProperties": {"type": "number", "minimum": 0, "maximum": 1}
    },
    "confidence": {
      "type": "object",
      "properties": {
        "high": {"type": "number", "minimum": 0, "maximum": 100},
        "medium": {"type": "number", "minimum": 0, "maximum": 100}
      }
    },
    "responseTiers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["maxHours", "score"],
        "properties": {
          "maxHours": {"type": "number", "minimum": 0},
          "score": {"type": "number", "minimum": 0, "maximum": 100},
          "label": {"type": "string"}
        }
      }
    },
    "capacityTiers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["maxJobs", "score"],
        "properties": {
          "maxJobs": {"type": "integer", "minimum": 0},
          "score": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    }
  }
}`

// LoadScoringConfig reads, schema-validates and unmarshals a scoring
// configuration document, applying defaults for any omitted section.
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring config: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("scoring config schema check: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("scoring config invalid: %s", strings.Join(msgs, "; "))
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
