// Package diag runs informational invariant checks on a plasma state. The
// update loop does not enforce these bounds; diag reports drift without ever
// blocking a run.
package diag

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

// #region types

// Check is a single invariant check result.
type Check struct {
	Name  string
	Value float64
	Pass  bool
}

// Result aggregates all checks for one state.
type Result struct {
	Passed bool
	Checks []Check
	Reason string
}

// #endregion types

// #region run

// Run checks finiteness and non-negativity of the scalar fields and that
// stability stays within [0,1].
func Run(s plasma.State) Result {
	var checks []Check
	passed := true
	var failReasons []string

	finite := []struct {
		name  string
		value float64
	}{
		{"temperature", s.Temperature},
		{"density", s.Density},
		{"confinement_time", s.ConfinementTime},
		{"fusion_power", s.FusionPower},
		{"elapsed_time", s.ElapsedTime},
	}
	for _, f := range finite {
		ok := !math.IsNaN(f.value) && !math.IsInf(f.value, 0) && f.value >= 0
		checks = append(checks, Check{Name: f.name + "_finite_nonneg", Value: f.value, Pass: ok})
		if !ok {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("%s = %v", f.name, f.value))
		}
	}

	stabilityOK := s.Stability >= 0 && s.Stability <= 1 && !math.IsNaN(s.Stability)
	checks = append(checks, Check{Name: "stability_range", Value: s.Stability, Pass: stabilityOK})
	if !stabilityOK {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("stability = %v", s.Stability))
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("diag failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("diag failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return Result{Passed: passed, Checks: checks, Reason: reason}
}

// #endregion run
