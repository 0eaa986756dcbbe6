package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/plasma-twin/internal/diag"
	"github.com/danielpatrickdp/plasma-twin/internal/runlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the run log database")
	runID := flag.String("run", "", "show single run detail")
	last := flag.Int("last", 20, "show N most recent runs")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/runs.db [--run id] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := runlog.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID       string  `json:"run_id"`
	Description string  `json:"description,omitempty"`
	Ticks       int     `json:"ticks"`
	FinalPhase  string  `json:"final_phase,omitempty"`
	FinalStab   float64 `json:"final_stability"`
	CreatedAt   string  `json:"created_at"`
}

func runListMode(store *runlog.Store, last int, jsonOut bool) error {
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}
	if len(runs) > last {
		runs = runs[:last]
	}

	rows := make([]listRow, len(runs))
	for i, r := range runs {
		ticks, err := store.Ticks(r.RunID)
		if err != nil {
			return err
		}
		lr := listRow{
			RunID:       r.RunID,
			Description: r.Description,
			Ticks:       len(ticks),
			CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if len(ticks) > 0 {
			final := ticks[len(ticks)-1]
			lr.FinalPhase = final.Phase
			lr.FinalStab = final.Stability
		}
		rows[i] = lr
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %6s  %-10s  %9s  %-20s  %s\n",
		"Run", "Ticks", "Phase", "Stability", "Time", "Description")
	fmt.Printf("%-10s+-%6s+-%-10s+-%9s+-%-20s+-%s\n",
		"----------", "------", "----------", "---------", "--------------------", "-----------")
	for _, r := range rows {
		fmt.Printf("%-10s  %6d  %-10s  %9.3f  %-20s  %s\n",
			shortID(r.RunID), r.Ticks, r.FinalPhase, r.FinalStab, r.CreatedAt, r.Description)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	RunID       string        `json:"run_id"`
	Description string        `json:"description,omitempty"`
	CreatedAt   string        `json:"created_at"`
	Ticks       int           `json:"ticks"`
	Final       *finalDetail  `json:"final,omitempty"`
	Health      []healthCheck `json:"health,omitempty"`
}

type healthCheck struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

type finalDetail struct {
	ElapsedTime float64 `json:"elapsed_time"`
	Temperature float64 `json:"temperature"`
	Density     float64 `json:"density"`
	FusionPower float64 `json:"fusion_power"`
	Stability   float64 `json:"stability"`
	Phase       string  `json:"phase"`
}

func runDetailMode(store *runlog.Store, runID string, jsonOut bool) error {
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	var run *runlog.Run
	for i := range runs {
		if runs[i].RunID == runID {
			run = &runs[i]
			break
		}
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}

	ticks, err := store.Ticks(runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		RunID:       run.RunID,
		Description: run.Description,
		CreatedAt:   run.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Ticks:       len(ticks),
	}
	if len(ticks) > 0 {
		final := ticks[len(ticks)-1]
		out.Final = &finalDetail{
			ElapsedTime: final.ElapsedTime,
			Temperature: final.Temperature,
			Density:     final.Density,
			FusionPower: final.FusionPower,
			Stability:   final.Stability,
			Phase:       final.Phase,
		}
		for _, c := range diag.Run(final.State()).Checks {
			out.Health = append(out.Health, healthCheck{Name: c.Name, Value: c.Value, Pass: c.Pass})
		}
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:         %s\n", out.RunID)
	fmt.Printf("Description: %s\n", out.Description)
	fmt.Printf("Created:     %s\n", out.CreatedAt)
	fmt.Printf("Ticks:       %d\n", out.Ticks)

	if out.Final != nil {
		fmt.Printf("\nFinal state:\n")
		fmt.Printf("  Elapsed:      %.1fs\n", out.Final.ElapsedTime)
		fmt.Printf("  Temperature:  %.3e K\n", out.Final.Temperature)
		fmt.Printf("  Density:      %.3e m^-3\n", out.Final.Density)
		fmt.Printf("  Fusion Power: %.3e W\n", out.Final.FusionPower)
		fmt.Printf("  Stability:    %.3f\n", out.Final.Stability)
		fmt.Printf("  Phase:        %s\n", out.Final.Phase)

		fmt.Printf("\nHealth checks:\n")
		for _, c := range out.Health {
			status := "pass"
			if !c.Pass {
				status = "FAIL"
			}
			fmt.Printf("  %-18s %-6s %.4g\n", c.Name, status, c.Value)
		}
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
