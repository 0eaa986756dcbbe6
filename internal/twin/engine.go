// Package twin wires the plasma updater, the rule-based selector, and the
// key-value log into a single step-driven engine. One tick performs update,
// then decide, then log, in that order. Entirely single-threaded: no locks,
// no channels, no goroutines are warranted.
package twin

import (
	"errors"
	"fmt"

	"github.com/danielpatrickdp/plasma-twin/internal/config"
	"github.com/danielpatrickdp/plasma-twin/internal/decision"
	"github.com/danielpatrickdp/plasma-twin/internal/memory"
	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

// ErrNotInitialized is returned when the engine is ticked before Init.
var ErrNotInitialized = errors.New("twin: engine not initialized")

// #region types

// TickResult is the combined output of one tick.
type TickResult struct {
	Tick     int
	State    plasma.State
	Metrics  plasma.StepMetrics
	Decision *decision.Decision // nil when the selector is disabled
	LogKey   string             // empty when the memory log is disabled
}

// tickRecord is the value written to the memory log each tick.
type tickRecord struct {
	Snapshot plasma.Snapshot    `json:"snapshot"`
	Decision *decision.Decision `json:"decision,omitempty"`
}

// #endregion types

// #region engine

// Engine owns one reactor plus the optional selector and memory log slots.
// Disabled slots are nil and every call site handles the absent variant
// explicitly.
type Engine struct {
	cfg      config.Config
	reactor  *plasma.Reactor
	selector *decision.Selector
	log      *memory.Store

	tick        int
	initialized bool
}

// New returns an uninitialized engine; Tick fails until Init is called.
func New() *Engine {
	return &Engine{}
}

// Init wires the components per the configuration. Re-initializing resets
// all state, history, patterns, and the log.
func (e *Engine) Init(cfg config.Config) error {
	if cfg.Plasma.HistoryLimit <= 0 {
		return fmt.Errorf("twin: history limit must be positive, got %d", cfg.Plasma.HistoryLimit)
	}

	e.cfg = cfg
	e.reactor = plasma.NewReactor(cfg.Plasma)
	e.selector = nil
	e.log = nil
	if cfg.EnableDecision {
		e.selector = decision.NewSelector(cfg.Selector)
	}
	if cfg.EnableMemory {
		e.log = memory.NewStore()
	}
	e.tick = 0
	e.initialized = true
	return nil
}

// #endregion engine

// #region tick

// Tick advances the plasma one step, asks the selector for a decision, and
// appends a record to the memory log. Disabled sub-components yield an
// absent decision or log key, never an error.
func (e *Engine) Tick(dt float64) (TickResult, error) {
	if !e.initialized {
		return TickResult{}, ErrNotInitialized
	}

	e.tick++
	state, metrics := e.reactor.Step(dt)

	res := TickResult{
		Tick:    e.tick,
		State:   state,
		Metrics: metrics,
	}

	if e.selector != nil {
		d := e.selector.Decide(state.Snapshot(), e.tick)
		res.Decision = &d
	}

	if e.log != nil {
		key := fmt.Sprintf("tick-%d", e.tick)
		e.log.Put(key, tickRecord{Snapshot: state.Snapshot(), Decision: res.Decision}, map[string]string{
			"type":  "tick",
			"phase": string(state.Phase),
		})
		res.LogKey = key
	}

	return res, nil
}

// #endregion tick

// #region control

// ApplyControl forwards an external control adjustment to the reactor.
func (e *Engine) ApplyControl(adj plasma.ControlAdjustment) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	e.reactor.ApplyControl(adj)
	return nil
}

// #endregion control

// #region accessors

// CurrentState returns a read-only copy of the plasma state.
func (e *Engine) CurrentState() plasma.State {
	if !e.initialized {
		return plasma.State{}
	}
	return e.reactor.State()
}

// History returns an ordered copy of the snapshot history.
func (e *Engine) History() []plasma.Snapshot {
	if !e.initialized {
		return nil
	}
	return e.reactor.History()
}

// Decisions returns the decision history; ok is false when the selector is
// disabled.
func (e *Engine) Decisions() ([]decision.Decision, bool) {
	if e.selector == nil {
		return nil, false
	}
	return e.selector.History(), true
}

// Patterns returns learned patterns ranked by average success; ok is false
// when the selector is disabled.
func (e *Engine) Patterns() ([]decision.Pattern, bool) {
	if e.selector == nil {
		return nil, false
	}
	return e.selector.Patterns(), true
}

// Retrieve queries the memory log; ok is false when the log is disabled.
func (e *Engine) Retrieve(query string) ([]memory.Entry, bool) {
	if e.log == nil {
		return nil, false
	}
	return e.log.Retrieve(query), true
}

// LogLen returns the number of memory log entries; ok is false when the log
// is disabled.
func (e *Engine) LogLen() (int, bool) {
	if e.log == nil {
		return 0, false
	}
	return e.log.Len(), true
}

// #endregion accessors
