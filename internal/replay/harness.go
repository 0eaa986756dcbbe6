// Package replay re-runs scripted fixtures through a fresh engine. Updates
// are deterministic for fixed inputs, so a fixture pins down the exact
// per-tick phases a run must reproduce.
package replay

import (
	"fmt"

	"github.com/danielpatrickdp/plasma-twin/internal/twin"
)

// #region types

// Result captures one replayed tick.
type Result struct {
	Tick        int
	ElapsedTime float64
	Temperature float64
	Stability   float64
	Phase       string
	ShouldAct   bool
}

// Mismatch pairs an expectation with what the replay produced.
type Mismatch struct {
	Tick     int
	Expected string
	Actual   string
}

// #endregion types

// #region replay

// Replay runs every fixture step through a fresh engine and returns the
// per-tick results.
func Replay(f Fixture) ([]Result, error) {
	engine := twin.New()
	if err := engine.Init(f.Config.ToConfig()); err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}

	results := make([]Result, 0, len(f.Steps))
	for i, step := range f.Steps {
		if step.Control != nil {
			if err := engine.ApplyControl(step.Control.ToControl()); err != nil {
				return nil, fmt.Errorf("step %d control: %w", i+1, err)
			}
		}
		res, err := engine.Tick(step.DeltaTime)
		if err != nil {
			return nil, fmt.Errorf("step %d tick: %w", i+1, err)
		}

		r := Result{
			Tick:        res.Tick,
			ElapsedTime: res.State.ElapsedTime,
			Temperature: res.State.Temperature,
			Stability:   res.State.Stability,
			Phase:       string(res.State.Phase),
		}
		if res.Decision != nil {
			r.ShouldAct = res.Decision.ShouldAct
		}
		results = append(results, r)
	}
	return results, nil
}

// #endregion replay

// #region compare

// Compare checks replay results against the fixture's expected phases and
// returns any mismatches. Expectations referencing ticks the replay never
// reached are reported as mismatches against "(missing)".
func Compare(results []Result, expected []FixtureExpected) []Mismatch {
	byTick := make(map[int]Result, len(results))
	for _, r := range results {
		byTick[r.Tick] = r
	}

	var mismatches []Mismatch
	for _, e := range expected {
		r, ok := byTick[e.Tick]
		if !ok {
			mismatches = append(mismatches, Mismatch{Tick: e.Tick, Expected: e.Phase, Actual: "(missing)"})
			continue
		}
		if r.Phase != e.Phase {
			mismatches = append(mismatches, Mismatch{Tick: e.Tick, Expected: e.Phase, Actual: r.Phase})
		}
	}
	return mismatches
}

// #endregion compare
