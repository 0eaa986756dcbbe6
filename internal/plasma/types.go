// Package plasma advances a single-species plasma parameter state with
// fixed-step explicit updates using hand-tuned empirical coefficients.
package plasma

import "github.com/danielpatrickdp/plasma-twin/internal/scoring"

// #region phase

// Phase labels the coarse simulation regime.
type Phase string

const (
	PhaseIgnition Phase = "ignition"
	PhaseRampUp   Phase = "ramp-up"
	PhaseBurn     Phase = "burn"
	// PhaseDecline is defined but unreachable under the current transition
	// rules; there is no rule that produces it.
	PhaseDecline Phase = "decline"
)

// phaseRank orders phases for the forward-only transition guard.
var phaseRank = map[Phase]int{
	PhaseIgnition: 0,
	PhaseRampUp:   1,
	PhaseBurn:     2,
	PhaseDecline:  3,
}

// #endregion phase

// #region state

// State is the full scalar plasma state. Mutated only by the step function.
// Temperature, density and confinement time are expected to stay finite and
// non-negative in practice; this is not enforced (see internal/diag).
type State struct {
	Temperature     float64 // K
	Density         float64 // m^-3
	ConfinementTime float64 // s
	FusionPower     float64 // W, power that drove this step's heating
	Stability       float64 // [0,1], always the logistic scorer's output
	Phase           Phase
	ElapsedTime     float64 // s
	MagneticField   float64 // T, overwritten by external control
}

// Snapshot is the per-tick history record.
type Snapshot struct {
	ElapsedTime float64
	Temperature float64
	Density     float64
	FusionPower float64
	Stability   float64
	Phase       Phase
}

// Snapshot projects the history fields out of a State.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		ElapsedTime: s.ElapsedTime,
		Temperature: s.Temperature,
		Density:     s.Density,
		FusionPower: s.FusionPower,
		Stability:   s.Stability,
		Phase:       s.Phase,
	}
}

// #endregion state

// #region physical-constants

// Physical constants of the simplified reactivity model.
const (
	kelvinPerKeV     = 1.16e7            // K per keV
	reactivityCoeff  = 1.1e-21           // m^3/s per keV^2
	reactivitySatKeV = 15.0              // keV saturation scale
	energyPerFusionJ = 17.6 * 1.602e-13  // 17.6 MeV in joules

	baseConfinement = 3.0  // s
	refTemperature  = 1e8  // K
	refDensity      = 1e20 // m^-3
)

// #endregion physical-constants

// #region config

// Config holds the empirical coefficients for the per-tick update.
type Config struct {
	HeatingPower  float64 `yaml:"heating_power"`  // W, fixed external heating
	CoolingFactor float64 `yaml:"cooling_factor"` // fraction of temperature lost per second
	FuelingRate   float64 `yaml:"fueling_rate"`   // m^-3 injected per second
	ExhaustFactor float64 `yaml:"exhaust_factor"` // fraction of density lost per second
	LawsonLimit   float64 `yaml:"lawson_limit"`   // triple-product normalization constant

	Stability scoring.Params `yaml:"stability"` // barrier/steepness for the stability score

	HistoryLimit int `yaml:"history_limit" env:"TWIN_HISTORY_LIMIT"` // bounded history length, oldest evicted

	InitialTemperature   float64 `yaml:"initial_temperature" env:"TWIN_INITIAL_TEMPERATURE"` // K
	InitialDensity       float64 `yaml:"initial_density" env:"TWIN_INITIAL_DENSITY"`         // m^-3
	InitialMagneticField float64 `yaml:"initial_magnetic_field"`                             // T
}

// DefaultConfig returns the hand-tuned defaults.
func DefaultConfig() Config {
	return Config{
		HeatingPower:  50e6,
		CoolingFactor: 0.01,
		FuelingRate:   1e18,
		ExhaustFactor: 0.001,
		LawsonLimit:   3e21,

		Stability: scoring.DefaultParams(),

		HistoryLimit: 1000,

		InitialTemperature:   1e7,
		InitialDensity:       5e19,
		InitialMagneticField: 5.3,
	}
}

// #endregion config

// #region control

// ControlAdjustment is an external control input applied between ticks.
// HeatingDelta is accepted but has no effect on the update; it is a dead
// parameter carried for interface compatibility.
type ControlAdjustment struct {
	FuelingDelta  float64 // scales density by (1 + FuelingDelta)
	HeatingDelta  float64 // no-op
	MagneticField float64 // overwrites the magnetic-field value
}

// #endregion control

// #region metrics

// StepMetrics captures telemetry from one update step.
type StepMetrics struct {
	FusionPower      float64 // pre-step power used for this tick's heating
	RawTripleProduct float64 // clamped triple product fed to the scorer
	PhaseChanged     bool
}

// #endregion metrics
