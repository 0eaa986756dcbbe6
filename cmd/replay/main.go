package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/plasma-twin/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath))
}

// #endregion main

// #region run

func run(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	results, err := replay.Replay(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	mismatches := replay.Compare(results, f.ExpectedResults)
	return printComparison(f, results, mismatches)
}

// #endregion run

// #region output

// printComparison outputs a per-expectation comparison table and returns the
// exit code: 0 when everything matched, 1 on divergence.
func printComparison(f replay.Fixture, results []replay.Result, mismatches []replay.Mismatch) int {
	badTicks := make(map[int]string, len(mismatches))
	for _, m := range mismatches {
		badTicks[m.Tick] = m.Actual
	}

	fmt.Printf("%-6s| %-12s| %-12s| %s\n", "Tick", "Expected", "Replayed", "Match")
	fmt.Printf("%-6s+%-12s+%-12s+%s\n", "------", "-------------", "-------------", "------")

	for _, e := range f.ExpectedResults {
		got, diverged := badTicks[e.Tick]
		match := "OK"
		if diverged {
			match = "DIFF"
		} else {
			got = e.Phase
		}
		fmt.Printf("%-6d| %-12s| %-12s| %s\n", e.Tick, e.Phase, got, match)
	}

	total := len(f.ExpectedResults)
	fmt.Printf("\nSummary: %d ticks replayed, %d expectations, %d diverge\n",
		len(results), total, len(mismatches))

	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion output
