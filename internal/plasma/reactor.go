package plasma

import "github.com/danielpatrickdp/plasma-twin/internal/scoring"

// #region reactor

// Reactor owns the current plasma state and its bounded snapshot history.
// Single-threaded by design: callers drive it one step at a time.
type Reactor struct {
	cfg     Config
	state   State
	history []Snapshot
}

// NewReactor builds a reactor in the ignition phase at the configured initial
// conditions. Confinement time and stability are derived from the initial
// temperature and density so the starting state is self-consistent.
func NewReactor(cfg Config) *Reactor {
	s := State{
		Temperature:   cfg.InitialTemperature,
		Density:       cfg.InitialDensity,
		Phase:         PhaseIgnition,
		MagneticField: cfg.InitialMagneticField,
	}
	s.ConfinementTime = confinementTime(s.Temperature)
	raw := tripleProduct(s.Temperature, s.Density, s.ConfinementTime, cfg.LawsonLimit)
	s.Stability = scoring.ScoreWith(raw, cfg.Stability)

	return &Reactor{cfg: cfg, state: s}
}

// #endregion reactor

// #region step

// Step advances the state one tick and appends a snapshot to the history,
// evicting the oldest entry when the bounded length is exceeded.
func (r *Reactor) Step(dt float64) (State, StepMetrics) {
	next, metrics := Next(r.state, dt, r.cfg)
	r.state = next

	r.history = append(r.history, next.Snapshot())
	if r.cfg.HistoryLimit > 0 && len(r.history) > r.cfg.HistoryLimit {
		r.history = r.history[1:]
	}

	return next, metrics
}

// #endregion step

// #region control

// ApplyControl applies an external control adjustment: density is scaled by
// (1 + FuelingDelta) and the magnetic-field value is overwritten. The heating
// delta is accepted but ignored.
func (r *Reactor) ApplyControl(adj ControlAdjustment) {
	r.state.Density *= 1 + adj.FuelingDelta
	r.state.MagneticField = adj.MagneticField
	_ = adj.HeatingDelta // dead parameter
}

// #endregion control

// #region accessors

// State returns a copy of the current plasma state.
func (r *Reactor) State() State {
	return r.state
}

// History returns an ordered copy of the snapshot history.
func (r *Reactor) History() []Snapshot {
	out := make([]Snapshot, len(r.history))
	copy(out, r.history)
	return out
}

// #endregion accessors
