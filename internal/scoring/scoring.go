// Package scoring provides the logistic scoring function shared by the
// plasma stability metric and the decision confidence metric.
package scoring

import "math"

// #region params
// Params holds the barrier position and steepness for a logistic score.
type Params struct {
	Barrier float64 `yaml:"barrier"` // inflection point, expected in [0,1]
	Gamma   float64 `yaml:"gamma"`   // steepness, must be > 0
}

// DefaultParams returns the barrier/steepness pair used throughout the twin.
func DefaultParams() Params {
	return Params{
		Barrier: 0.5,
		Gamma:   2.0,
	}
}

// #endregion params

// #region score
// Score maps an unbounded input to (0,1) via 1/(1+exp(-2*gamma*(input-barrier))).
// At input == barrier the output is exactly 0.5 for any gamma. Pathological
// gamma values (NaN, Inf) propagate into the result; callers own that risk.
func Score(input, barrier, gamma float64) float64 {
	return 1.0 / (1.0 + math.Exp(-2.0*gamma*(input-barrier)))
}

// ScoreWith applies Score using a Params value.
func ScoreWith(input float64, p Params) float64 {
	return Score(input, p.Barrier, p.Gamma)
}

// #endregion score

// #region clamp
// Clamp01 restricts v to [0, 1]. The plasma stability path clamps its input
// before scoring; the decision confidence path does not.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion clamp
