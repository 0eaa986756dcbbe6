package plasma

import (
	"math"

	"github.com/danielpatrickdp/plasma-twin/internal/scoring"
)

// #region reactivity

// fusionPower computes instantaneous fusion power from density n (m^-3) and
// temperature T (K) via the simplified reactivity model
// sigma-v = 1.1e-21 * T_keV^2 / (1 + T_keV/15), 17.6 MeV per event.
func fusionPower(temperature, density float64) float64 {
	tKeV := temperature / kelvinPerKeV
	sigmaV := reactivityCoeff * tKeV * tKeV / (1 + tKeV/reactivitySatKeV)
	return density * density * sigmaV * energyPerFusionJ
}

// confinementTime is an empirical function of temperature, not a time
// integral: 3.0 * (1 + 0.1*log10(T/1e8)).
func confinementTime(temperature float64) float64 {
	return baseConfinement * (1 + 0.1*math.Log10(temperature/refTemperature))
}

// tripleProduct returns the normalized Lawson triple product clamped to [0,1].
func tripleProduct(temperature, density, confinement float64, lawsonLimit float64) float64 {
	raw := (density / refDensity) * (temperature / refTemperature) * (confinement / baseConfinement) / lawsonLimit
	return scoring.Clamp01(raw)
}

// #endregion reactivity

// #region next

// Next computes the state after one explicit-Euler step of dt seconds. Pure:
// the old state is unchanged. The update order is load-bearing — additive
// heating before multiplicative cooling, both using the pre-step fusion
// power; confinement time and stability from the just-updated values.
// Repeated multiplicative decay under adversarial dt can drive temperature or
// density negative; this is a known numerical-robustness gap, not guarded.
func Next(old State, dt float64, cfg Config) (State, StepMetrics) {
	s := old

	// 1. Instantaneous fusion power from the pre-step state.
	power := fusionPower(s.Temperature, s.Density)

	// 2. Temperature: additive heating, then multiplicative cooling.
	s.Temperature += (cfg.HeatingPower + power) * dt / 1000
	s.Temperature *= 1 - cfg.CoolingFactor*dt

	// 3. Density: fixed fueling, then exhaust decay.
	s.Density += cfg.FuelingRate * dt
	s.Density *= 1 - cfg.ExhaustFactor*dt

	// 4. Confinement time from the updated temperature. Not fed back into
	// the power calculation this tick; it only feeds the triple product.
	s.ConfinementTime = confinementTime(s.Temperature)

	// 5. Report the power that drove this step's heating, not a recomputed
	// post-update value.
	s.FusionPower = power

	// 6-7. Stability is always the scorer's output, never the raw triple
	// product.
	raw := tripleProduct(s.Temperature, s.Density, s.ConfinementTime, cfg.LawsonLimit)
	s.Stability = scoring.ScoreWith(raw, cfg.Stability)

	// 8. Phase transition on the updated temperature and reported power.
	prevPhase := s.Phase
	s.Phase = nextPhase(s.Phase, s.Temperature, s.FusionPower)

	s.ElapsedTime += dt

	return s, StepMetrics{
		FusionPower:      power,
		RawTripleProduct: raw,
		PhaseChanged:     s.Phase != prevPhase,
	}
}

// #endregion next

// #region phase-transition

// nextPhase evaluates the threshold rules in precedence order and advances
// the phase. Transitions are forward-only: a candidate that ranks below the
// current phase leaves it unchanged, so the phase is monotonic and decline
// stays unreachable.
func nextPhase(current Phase, temperature, fusionPower float64) Phase {
	candidate := current
	switch {
	case temperature > 1e8 && fusionPower > 1e6:
		candidate = PhaseBurn
	case temperature > 5e7:
		candidate = PhaseRampUp
	}
	if phaseRank[candidate] > phaseRank[current] {
		return candidate
	}
	return current
}

// #endregion phase-transition
