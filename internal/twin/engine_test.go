package twin

import (
	"errors"
	"testing"

	"github.com/danielpatrickdp/plasma-twin/internal/config"
	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

func newEngine(t *testing.T, cfg config.Config) *Engine {
	t.Helper()
	e := New()
	if err := e.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return e
}

func TestTickBeforeInitFails(t *testing.T) {
	e := New()
	_, err := e.Tick(1.0)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
	if err := e.ApplyControl(plasma.ControlAdjustment{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("ApplyControl err = %v, want ErrNotInitialized", err)
	}
}

func TestEndToEndTwentyTicks(t *testing.T) {
	e := newEngine(t, config.Default())

	var lastTick int
	for i := 0; i < 20; i++ {
		res, err := e.Tick(0.5)
		if err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
		if res.Tick != i+1 {
			t.Fatalf("tick index = %d, want %d", res.Tick, i+1)
		}
		lastTick = res.Tick
	}

	if got := e.CurrentState().ElapsedTime; got != 10.0 {
		t.Fatalf("elapsed = %v, want exactly 10.0", got)
	}
	if lastTick != 20 {
		t.Fatalf("last tick = %d, want 20", lastTick)
	}

	decisions, ok := e.Decisions()
	if !ok {
		t.Fatal("selector enabled, expected decisions")
	}
	if len(decisions) != 20 {
		t.Fatalf("decision count = %d, want 20", len(decisions))
	}
	for i := 1; i < len(decisions); i++ {
		if decisions[i].Tick <= decisions[i-1].Tick {
			t.Fatalf("decision ticks not strictly increasing at %d: %d then %d",
				i, decisions[i-1].Tick, decisions[i].Tick)
		}
	}

	if n, ok := e.LogLen(); !ok || n != 20 {
		t.Fatalf("log entries = %d (ok=%v), want 20", n, ok)
	}
}

func TestDisabledDecisionPropagatesAbsence(t *testing.T) {
	cfg := config.Default()
	cfg.EnableDecision = false
	e := newEngine(t, cfg)

	res, err := e.Tick(1.0)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res.Decision != nil {
		t.Fatal("disabled selector must yield a nil decision, not a value")
	}
	if _, ok := e.Decisions(); ok {
		t.Fatal("Decisions must report absent when the selector is disabled")
	}
	if _, ok := e.Patterns(); ok {
		t.Fatal("Patterns must report absent when the selector is disabled")
	}
	// Memory still logs the tick record.
	if res.LogKey == "" {
		t.Fatal("memory log still enabled, expected a log key")
	}
}

func TestDisabledMemoryPropagatesAbsence(t *testing.T) {
	cfg := config.Default()
	cfg.EnableMemory = false
	e := newEngine(t, cfg)

	res, err := e.Tick(1.0)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res.LogKey != "" {
		t.Fatalf("log key = %q, want empty with memory disabled", res.LogKey)
	}
	if _, ok := e.Retrieve("tick"); ok {
		t.Fatal("Retrieve must report absent when the log is disabled")
	}
	if res.Decision == nil {
		t.Fatal("selector still enabled, expected a decision")
	}
}

func TestTickRecordsRetrievable(t *testing.T) {
	e := newEngine(t, config.Default())
	for i := 0; i < 3; i++ {
		if _, err := e.Tick(1.0); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	entries, ok := e.Retrieve("tick-2")
	if !ok || len(entries) != 1 {
		t.Fatalf("Retrieve(tick-2) = %d entries (ok=%v), want 1", len(entries), ok)
	}
	// Substring query matches all tick keys.
	entries, _ = e.Retrieve("tick-")
	if len(entries) != 3 {
		t.Fatalf("Retrieve(tick-) = %d entries, want 3", len(entries))
	}
}

func TestApplyControlBetweenTicks(t *testing.T) {
	e := newEngine(t, config.Default())
	if _, err := e.Tick(1.0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	before := e.CurrentState()

	if err := e.ApplyControl(plasma.ControlAdjustment{FuelingDelta: 0.2, MagneticField: 6.0}); err != nil {
		t.Fatalf("ApplyControl: %v", err)
	}

	after := e.CurrentState()
	if after.Density != before.Density*1.2 {
		t.Fatalf("density = %v, want %v", after.Density, before.Density*1.2)
	}
	if after.MagneticField != 6.0 {
		t.Fatalf("magnetic field = %v, want 6.0", after.MagneticField)
	}
}

func TestInitRejectsNonPositiveHistoryLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Plasma.HistoryLimit = 0
	if err := New().Init(cfg); err == nil {
		t.Fatal("expected error for non-positive history limit")
	}
}

func TestReinitResets(t *testing.T) {
	e := newEngine(t, config.Default())
	for i := 0; i < 5; i++ {
		e.Tick(1.0)
	}
	if err := e.Init(config.Default()); err != nil {
		t.Fatalf("re-Init: %v", err)
	}
	if got := e.CurrentState().ElapsedTime; got != 0 {
		t.Fatalf("elapsed after re-init = %v, want 0", got)
	}
	if len(e.History()) != 0 {
		t.Fatal("history must be empty after re-init")
	}
	if n, _ := e.LogLen(); n != 0 {
		t.Fatalf("log entries after re-init = %d, want 0", n)
	}
}
