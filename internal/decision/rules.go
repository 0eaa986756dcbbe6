package decision

import "github.com/danielpatrickdp/plasma-twin/internal/plasma"

// #region rule

// rule is a single threshold predicate with its label and rationale.
type rule struct {
	match  func(plasma.Snapshot) bool
	label  Label
	reason string
}

// #endregion rule

// #region rule-tables

// Rules are evaluated in order; the first match wins. When nothing matches,
// the selector falls through to the category's current-best label.

var heatingRules = []rule{
	{
		match:  func(s plasma.Snapshot) bool { return s.Temperature < 5e7 },
		label:  HeatingAggressivePID,
		reason: "temperature below ramp threshold, driving hard toward ignition",
	},
	{
		match:  func(s plasma.Snapshot) bool { return s.Stability < 0.3 },
		label:  HeatingMLEnhanced,
		reason: "low stability, switching to model-assisted heating control",
	},
	{
		match:  func(s plasma.Snapshot) bool { return s.Phase == plasma.PhaseBurn },
		label:  HeatingAdaptiveBurn,
		reason: "burn phase reached, holding with adaptive power modulation",
	},
}

var fuelingRules = []rule{
	{
		match:  func(s plasma.Snapshot) bool { return s.Density < 5e19 },
		label:  FuelingPulsed,
		reason: "density below target, pulsed pellet injection",
	},
	{
		match:  func(s plasma.Snapshot) bool { return s.Stability < 0.4 },
		label:  FuelingPredictive,
		reason: "stability margin thin, predictive fueling ahead of demand",
	},
	{
		match:  func(s plasma.Snapshot) bool { return s.Phase == plasma.PhaseBurn },
		label:  FuelingFeedback,
		reason: "burn phase, density held by feedback loop",
	},
}

var magneticRules = []rule{
	{
		match:  func(s plasma.Snapshot) bool { return s.Stability < 0.3 },
		label:  MagneticAIShaping,
		reason: "low stability, learned field shaping engaged",
	},
	{
		match:  func(s plasma.Snapshot) bool { return s.Phase == plasma.PhaseBurn },
		label:  MagneticOptimized,
		reason: "burn phase, optimized equilibrium field",
	},
}

// rulesByCategory binds each category to its ordered rule list.
var rulesByCategory = map[Category][]rule{
	CategoryHeating:  heatingRules,
	CategoryFueling:  fuelingRules,
	CategoryMagnetic: magneticRules,
}

// #endregion rule-tables

// #region first-match

// firstMatch returns the first matching rule's choice, or fallback when no
// rule fires.
func firstMatch(rules []rule, s plasma.Snapshot, fallback Choice) Choice {
	for _, r := range rules {
		if r.match(s) {
			return Choice{Label: r.label, Reason: r.reason}
		}
	}
	return fallback
}

// #endregion first-match

// #region defaults

// defaultBest seeds the per-category current-best labels.
func defaultBest() map[Category]Choice {
	return map[Category]Choice{
		CategoryHeating:  {Label: HeatingStandardPID, Reason: "no rule matched, keeping current best"},
		CategoryFueling:  {Label: FuelingContinuous, Reason: "no rule matched, keeping current best"},
		CategoryMagnetic: {Label: MagneticStandard, Reason: "no rule matched, keeping current best"},
	}
}

// #endregion defaults
