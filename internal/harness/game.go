package harness

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/gerd03/snakepilot/internal/autopilot"
	"github.com/gerd03/snakepilot/internal/grid"
	"github.com/gerd03/snakepilot/internal/simulate"
)

// Outcome labels why a single run ended, feeding the summary's
// `reasons` bag.
type Outcome string

const (
	OutcomeFilled      Outcome = "filled"
	OutcomeSurvived    Outcome = "survived"
	OutcomeCrashedWall Outcome = "crashed_wall"
	OutcomeCrashedSelf Outcome = "crashed_self"
	OutcomeStalled     Outcome = "stalled"
)

// RunResult is one game's terminal record.
type RunResult struct {
	ID      string
	Steps   int
	Fruits  int
	Outcome Outcome
}

// simulateOneRun plays one independent game to completion (fill,
// survive the step budget, or die) using its own seeded PRNG derived
// from cfg.Seed and the run index, so a given (seed, index) pair always
// replays identically regardless of which worker handles it.
func simulateOneRun(cfg Config, index int) RunResult {
	rng := rand.New(rand.NewSource(cfg.Seed + int64(index)))
	bounds, err := grid.New(cfg.Width, cfg.Height, 0, 0)
	if err != nil {
		return RunResult{ID: uuid.NewString(), Outcome: OutcomeStalled}
	}

	pilot := autopilot.NewWithConfig(bounds, cfg.Difficulty, cfg.Autopilot)

	start, ok := bounds.RandomFreeCell(nil, rng)
	if !ok {
		return RunResult{ID: uuid.NewString(), Outcome: OutcomeStalled}
	}
	body := []grid.Cell{start}
	currentDir := grid.None

	occupied := map[grid.Cell]struct{}{start: {}}
	fruit, hasFruit := bounds.RandomFreeCell(occupied, rng)
	fruitsEaten := 0

	for step := 0; step < cfg.Steps; step++ {
		var fruits []grid.Cell
		if hasFruit {
			fruits = []grid.Cell{fruit}
		}

		dir := pilot.NextDirection(body[0], currentDir, body, fruits)
		next := body[0].Add(dir)

		if !bounds.InBounds(next) {
			return RunResult{ID: uuid.NewString(), Steps: step, Fruits: fruitsEaten, Outcome: OutcomeCrashedWall}
		}

		grows := hasFruit && next == fruit
		newBody, ok := simulate.Simulate(bounds, body, next, nil, grows)
		if !ok {
			return RunResult{ID: uuid.NewString(), Steps: step, Fruits: fruitsEaten, Outcome: OutcomeCrashedSelf}
		}

		body = newBody
		currentDir = dir

		if grows {
			fruitsEaten++
			delete(occupied, fruit)
			occupied[next] = struct{}{}
			if len(body) >= bounds.CellCount {
				return RunResult{ID: uuid.NewString(), Steps: step + 1, Fruits: fruitsEaten, Outcome: OutcomeFilled}
			}
			fruit, hasFruit = bounds.RandomFreeCell(bodyOccupied(body), rng)
		}
	}

	return RunResult{ID: uuid.NewString(), Steps: cfg.Steps, Fruits: fruitsEaten, Outcome: OutcomeSurvived}
}

func bodyOccupied(body []grid.Cell) map[grid.Cell]struct{} {
	set := make(map[grid.Cell]struct{}, len(body))
	for _, c := range body {
		set[c] = struct{}{}
	}
	return set
}
