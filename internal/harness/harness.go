// Package harness runs many independent Autopilot-driven games
// concurrently and aggregates their outcomes into the pass/fail summary
// described by the snake autopilot spec's test harness binary.
//
// Each run owns its own Autopilot, its own seeded PRNG, and its own
// board state — nothing is shared between runs except read-only config
// — so the worker pool below is a plain fan-out over run indices, the
// same goroutines-plus-context-deadline shape the teacher project used
// for its concurrent tree search (mactssimul.go's MultiMCTS/MultiWorker),
// repurposed here for independent games instead of a shared search tree.
package harness

import (
	"context"
	"runtime"
	"sort"
	"sync"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/gerd03/snakepilot/internal/autopilot"
)

// Config is the harness's tunable run parameters. Each field but Workers
// and Autopilot mirrors a `snakepilot-harness` CLI flag; Autopilot carries
// the tuning loaded via `--config`, and Workers has no flag (Run falls
// back to runtime.NumCPU() when it is not positive).
type Config struct {
	Runs        int
	Steps       int
	Threshold   float64
	Difficulty  string
	Seed        int64
	RequireFill bool
	Width       int
	Height      int
	Workers     int
	Autopilot   autopilot.Config
}

// DefaultConfig mirrors the harness-level targets in spec.md §8: 200
// runs of up to 15000 steps on a 20x20 board, seed-varied.
func DefaultConfig() Config {
	return Config{
		Runs:       200,
		Steps:      15000,
		Threshold:  0.95,
		Difficulty: "default",
		Seed:       1,
		Width:      20,
		Height:     20,
		Workers:    runtime.NumCPU(),
		Autopilot:  autopilot.DefaultConfig(),
	}
}

// Summary is the harness's JSON report: `{config, results:{...}}` per
// spec.md §6.
type Summary struct {
	Config  Config         `json:"config"`
	Results ResultsSummary `json:"results"`
}

// ResultsSummary is the aggregate statistics block.
type ResultsSummary struct {
	PassRate    float64        `json:"pass_rate"`
	FullWinRate float64        `json:"full_win_rate"`
	AvgFruits   float64        `json:"avg_fruits"`
	AvgSteps    float64        `json:"avg_steps"`
	P95Survival float64        `json:"p95_survival"`
	Reasons     map[string]int `json:"reasons"`
}

// Run executes cfg.Runs independent games across a bounded worker pool
// and returns the aggregated Summary. It respects ctx cancellation,
// stopping early and summarizing whatever runs completed.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Runs; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{})
	defer close(done)

	var wg sync.WaitGroup
	resultChans := make([]<-chan RunResult, cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		out := make(chan RunResult)
		resultChans[w] = out
		wg.Add(1)
		go func(out chan<- RunResult) {
			defer wg.Done()
			defer close(out)
			for idx := range channerics.OrDone(done, jobs) {
				out <- simulateOneRun(cfg, idx)
			}
		}(out)
	}

	go func() {
		wg.Wait()
	}()

	var results []RunResult
	for r := range channerics.Merge(resultChans) {
		results = append(results, r)
	}

	return Summary{Config: cfg, Results: summarize(results, cfg.RequireFill)}, ctx.Err()
}

func summarize(results []RunResult, requireFill bool) ResultsSummary {
	n := len(results)
	if n == 0 {
		return ResultsSummary{Reasons: map[string]int{}}
	}

	reasons := make(map[string]int, len(results))
	var passes, fullWins int
	var fruitSum, stepSum float64
	steps := make([]int, 0, n)

	for _, r := range results {
		reasons[string(r.Outcome)]++
		fruitSum += float64(r.Fruits)
		stepSum += float64(r.Steps)
		steps = append(steps, r.Steps)

		if r.Outcome == OutcomeFilled {
			fullWins++
		}
		passed := r.Outcome == OutcomeFilled
		if !requireFill {
			passed = passed || r.Outcome == OutcomeSurvived
		}
		if passed {
			passes++
		}
	}

	sort.Ints(steps)

	return ResultsSummary{
		PassRate:    float64(passes) / float64(n),
		FullWinRate: float64(fullWins) / float64(n),
		AvgFruits:   fruitSum / float64(n),
		AvgSteps:    stepSum / float64(n),
		P95Survival: percentile(steps, 0.95),
		Reasons:     reasons,
	}
}

// percentile expects sorted ascending values.
func percentile(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return float64(sorted[idx])
}
