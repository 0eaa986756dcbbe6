// Package decision maps plasma snapshots to named control-algorithm labels
// via ordered threshold rules, and tracks coarse per-bucket success patterns.
package decision

import (
	"time"

	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
	"github.com/danielpatrickdp/plasma-twin/internal/scoring"
)

// #region category

// Category identifies an independent control dimension.
type Category string

const (
	CategoryHeating  Category = "heating"
	CategoryFueling  Category = "fueling"
	CategoryMagnetic Category = "magnetic"
)

// Categories lists all control categories in a stable order.
var Categories = []Category{CategoryHeating, CategoryFueling, CategoryMagnetic}

// #endregion category

// #region labels

// Label names a control algorithm.
type Label string

const (
	HeatingAggressivePID Label = "aggressive_pid"
	HeatingMLEnhanced    Label = "ml_enhanced"
	HeatingAdaptiveBurn  Label = "adaptive_burn"
	HeatingStandardPID   Label = "standard_pid"

	FuelingPulsed     Label = "pulsed_injection"
	FuelingPredictive Label = "predictive"
	FuelingFeedback   Label = "feedback_stabilized"
	FuelingContinuous Label = "continuous"

	MagneticAIShaping Label = "ai_shaping"
	MagneticOptimized Label = "optimized_burn"
	MagneticStandard  Label = "standard_field"
)

// #endregion labels

// #region choice

// Choice pairs a chosen label with a human-readable rationale.
type Choice struct {
	Label  Label
	Reason string
}

// #endregion choice

// #region decision

// Decision is the immutable per-tick output of the selector.
type Decision struct {
	ID         string
	Tick       int
	Timestamp  time.Time
	Inputs     plasma.Snapshot
	Controls   map[Category]Choice
	Confidence float64 // (0,1), logistic score of the best pattern match
	ShouldAct  bool
}

// #endregion decision

// #region config

// Config holds selector thresholds.
type Config struct {
	ActThreshold float64        `yaml:"act_threshold" env:"TWIN_ACT_THRESHOLD"` // ShouldAct when confidence exceeds this
	Scoring      scoring.Params `yaml:"scoring"`                                // confidence scoring parameters
}

// DefaultConfig returns the selector defaults.
func DefaultConfig() Config {
	return Config{
		ActThreshold: 0.7,
		Scoring:      scoring.DefaultParams(),
	}
}

// #endregion config
