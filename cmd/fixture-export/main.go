package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/plasma-twin/internal/replay"
	"github.com/danielpatrickdp/plasma-twin/internal/runlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the run log database")
	runID := flag.String("run", "", "run to export (defaults to the most recent)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/runs.db --out path/to/fixture.json [--run id]")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, runID, outPath string) error {
	store, err := runlog.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	var rec *runlog.Run
	if runID == "" {
		rec, err = store.LatestRun()
		if err != nil {
			return fmt.Errorf("latest run: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("no runs recorded in %s", dbPath)
		}
	} else {
		runs, err := store.Runs()
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		for i := range runs {
			if runs[i].RunID == runID {
				rec = &runs[i]
				break
			}
		}
		if rec == nil {
			return fmt.Errorf("run %s not found", runID)
		}
	}

	ticks, err := store.Ticks(rec.RunID)
	if err != nil {
		return fmt.Errorf("read ticks: %w", err)
	}
	if len(ticks) == 0 {
		return fmt.Errorf("run %s has no recorded ticks", rec.RunID)
	}

	fixture, err := buildFixture(rec, ticks)
	if err != nil {
		return err
	}

	if err := replay.SaveFixture(outPath, fixture); err != nil {
		return err
	}
	fmt.Printf("Wrote fixture to %s (%d steps, %d expectations)\n",
		outPath, len(fixture.Steps), len(fixture.ExpectedResults))
	return nil
}

// #endregion export

// #region build

// recordedConfig is the subset of the stored run configuration the fixture
// carries forward.
type recordedConfig struct {
	Plasma struct {
		InitialTemperature float64 `json:"InitialTemperature"`
		InitialDensity     float64 `json:"InitialDensity"`
		HistoryLimit       int     `json:"HistoryLimit"`
	} `json:"Plasma"`
	Selector struct {
		ActThreshold float64 `json:"ActThreshold"`
	} `json:"Selector"`
	EnableDecision bool `json:"EnableDecision"`
	EnableMemory   bool `json:"EnableMemory"`
}

// buildFixture turns recorded ticks back into a scripted fixture. The time
// step per tick is recovered from consecutive elapsed-time differences, and
// every recorded phase becomes an expectation.
func buildFixture(rec *runlog.Run, ticks []runlog.TickRow) (replay.Fixture, error) {
	var cfg recordedConfig
	if rec.ConfigJSON != "" {
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
			return replay.Fixture{}, fmt.Errorf("parse recorded config: %w", err)
		}
	}

	steps := make([]replay.FixtureStep, len(ticks))
	expected := make([]replay.FixtureExpected, len(ticks))
	prevElapsed := 0.0
	for i, row := range ticks {
		steps[i] = replay.FixtureStep{DeltaTime: row.ElapsedTime - prevElapsed}
		prevElapsed = row.ElapsedTime
		expected[i] = replay.FixtureExpected{Tick: row.Tick, Phase: row.Phase}
	}

	fc := replay.FixtureConfig{
		InitialTemperature: cfg.Plasma.InitialTemperature,
		InitialDensity:     cfg.Plasma.InitialDensity,
		HistoryLimit:       cfg.Plasma.HistoryLimit,
		ActThreshold:       cfg.Selector.ActThreshold,
	}
	if rec.ConfigJSON != "" {
		fc.EnableDecision = &cfg.EnableDecision
		fc.EnableMemory = &cfg.EnableMemory
	}

	return replay.Fixture{
		Description:     fmt.Sprintf("Exported from run %s: %d recorded ticks", rec.RunID, len(ticks)),
		Config:          fc,
		Steps:           steps,
		ExpectedResults: expected,
	}, nil
}

// #endregion build
