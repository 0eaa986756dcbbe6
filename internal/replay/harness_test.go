package replay

import (
	"path/filepath"
	"testing"
)

func defaultSteps(n int, dt float64) []FixtureStep {
	steps := make([]FixtureStep, n)
	for i := range steps {
		steps[i] = FixtureStep{DeltaTime: dt}
	}
	return steps
}

func TestReplayDeterministic(t *testing.T) {
	f := Fixture{
		Description: "twenty default ticks",
		Steps:       defaultSteps(20, 0.5),
	}

	r1, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	r2, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if len(r1) != 20 || len(r2) != 20 {
		t.Fatalf("result lengths = %d, %d, want 20", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i].Temperature != r2[i].Temperature || r1[i].Stability != r2[i].Stability {
			t.Fatalf("non-deterministic at tick %d: %+v vs %+v", i+1, r1[i], r2[i])
		}
	}
	if r1[19].ElapsedTime != 10.0 {
		t.Fatalf("final elapsed = %v, want 10.0", r1[19].ElapsedTime)
	}
}

func TestReplayHotStartReachesBurn(t *testing.T) {
	f := Fixture{
		Config: FixtureConfig{
			InitialTemperature: 2e8,
			InitialDensity:     1e20,
		},
		Steps: defaultSteps(3, 1.0),
		ExpectedResults: []FixtureExpected{
			{Tick: 1, Phase: "burn"},
			{Tick: 3, Phase: "burn"},
		},
	}

	results, err := Replay(f)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if m := Compare(results, f.ExpectedResults); len(m) != 0 {
		t.Fatalf("unexpected mismatches: %+v", m)
	}
}

func TestReplayAppliesControls(t *testing.T) {
	withControl := Fixture{
		Steps: []FixtureStep{
			{DeltaTime: 1.0},
			{DeltaTime: 1.0, Control: &FixtureControl{FuelingDelta: 0.5, MagneticField: 6.0}},
		},
	}
	plain := Fixture{Steps: defaultSteps(2, 1.0)}

	boosted, err := Replay(withControl)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	baseline, err := Replay(plain)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	// Fueling boost raises density, which raises the tick-2 stability.
	if boosted[1].Stability <= baseline[1].Stability {
		t.Fatalf("stability %v not above baseline %v after fueling boost",
			boosted[1].Stability, baseline[1].Stability)
	}
}

func TestCompareReportsMismatches(t *testing.T) {
	results := []Result{{Tick: 1, Phase: "ignition"}}
	expected := []FixtureExpected{
		{Tick: 1, Phase: "burn"},
		{Tick: 2, Phase: "burn"},
	}

	m := Compare(results, expected)
	if len(m) != 2 {
		t.Fatalf("mismatch count = %d, want 2", len(m))
	}
	if m[0].Actual != "ignition" || m[1].Actual != "(missing)" {
		t.Fatalf("unexpected mismatches: %+v", m)
	}
}

func TestLoadAndSaveFixtureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	f := Fixture{
		Description:     "round trip",
		Config:          FixtureConfig{InitialTemperature: 2e8},
		Steps:           defaultSteps(2, 0.5),
		ExpectedResults: []FixtureExpected{{Tick: 2, Phase: "ignition"}},
	}

	if err := SaveFixture(path, f); err != nil {
		t.Fatalf("SaveFixture: %v", err)
	}
	got, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if got.Description != f.Description || len(got.Steps) != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Config.InitialTemperature != 2e8 {
		t.Fatalf("config override lost: %+v", got.Config)
	}
}

func TestLoadFixtureRejectsEmptySteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := SaveFixture(path, Fixture{Description: "no steps"}); err != nil {
		t.Fatalf("SaveFixture: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected error for fixture without steps")
	}
}
