package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danielpatrickdp/plasma-twin/internal/config"
	"github.com/danielpatrickdp/plasma-twin/internal/diag"
	"github.com/danielpatrickdp/plasma-twin/internal/runlog"
	"github.com/danielpatrickdp/plasma-twin/internal/twin"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to twin.yaml (optional, defaults + env otherwise)")
	ticks := flag.Int("ticks", 100, "number of ticks to run")
	dt := flag.Float64("dt", 1.0, "seconds per tick")
	dbPath := flag.String("db", "", "record the run into this SQLite database (optional)")
	describe := flag.String("describe", "", "run description stored alongside the recording")
	flag.Parse()

	if *ticks <= 0 || *dt <= 0 {
		fmt.Fprintln(os.Stderr, "usage: twin [--config twin.yaml] [--ticks N] [--dt seconds] [--db runs.db]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[TWIN] config: %v", err)
	}

	engine := twin.New()
	if err := engine.Init(cfg); err != nil {
		log.Fatalf("[TWIN] init: %v", err)
	}

	var store *runlog.Store
	var runID string
	if *dbPath != "" {
		store, err = runlog.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("[TWIN] open run log: %v", err)
		}
		defer store.Close()

		run, err := store.CreateRun(*describe, cfg)
		if err != nil {
			log.Fatalf("[TWIN] create run: %v", err)
		}
		runID = run.RunID
		log.Printf("[TWIN] recording run %s to %s", runID, *dbPath)
	}

	if err := runLoop(engine, store, runID, *ticks, *dt); err != nil {
		log.Fatalf("[TWIN] run: %v", err)
	}

	printSummary(engine)
}

// #endregion main

// #region run-loop

func runLoop(engine *twin.Engine, store *runlog.Store, runID string, ticks int, dt float64) error {
	for i := 0; i < ticks; i++ {
		res, err := engine.Tick(dt)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}

		line := fmt.Sprintf("[TWIN] tick=%-4d t=%7.1fs T=%.3e K n=%.3e m^-3 P=%.3e W stab=%.3f phase=%s",
			res.Tick, res.State.ElapsedTime, res.State.Temperature, res.State.Density,
			res.State.FusionPower, res.State.Stability, res.State.Phase)
		if res.Decision != nil && res.Decision.ShouldAct {
			line += fmt.Sprintf(" act=yes conf=%.3f", res.Decision.Confidence)
		}
		fmt.Println(line)

		if res.Metrics.PhaseChanged {
			log.Printf("[TWIN] phase transition at tick %d: now %s", res.Tick, res.State.Phase)
		}

		if health := diag.Run(res.State); !health.Passed {
			log.Printf("[TWIN] warning: %s", health.Reason)
		}

		if store != nil {
			if err := store.RecordTick(runID, res); err != nil {
				return fmt.Errorf("record tick %d: %w", res.Tick, err)
			}
		}
	}
	return nil
}

// #endregion run-loop

// #region summary

func printSummary(engine *twin.Engine) {
	state := engine.CurrentState()
	fmt.Printf("\nFinal state: phase=%s T=%.3e K n=%.3e m^-3 stability=%.3f elapsed=%.1fs\n",
		state.Phase, state.Temperature, state.Density, state.Stability, state.ElapsedTime)

	if patterns, ok := engine.Patterns(); ok {
		fmt.Printf("\nLearned patterns (%d):\n", len(patterns))
		for _, p := range patterns {
			fmt.Printf("  key=%v count=%d avg_success=%.2f stability=%.3f\n",
				p.Key, p.Count, p.AvgSuccess(), p.Stability)
		}
	}

	if n, ok := engine.LogLen(); ok {
		fmt.Printf("\nMemory log entries: %d\n", n)
	}
}

// #endregion summary
