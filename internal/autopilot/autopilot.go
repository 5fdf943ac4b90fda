// Package autopilot is the snake's decision pipeline: it turns
// (head, current direction, body, fruits, hazards) into the next
// orthogonal move, layering a provably-safe Hamiltonian baseline under
// a validated shortcut planner and a survival-first emergency fallback.
//
// The pipeline structure — candidate enumeration, then cascading
// policies each validated by simulation before being trusted — mirrors
// how the teacher project's main.go picked a move from MCTS results and
// guarded it with determineBestMove/determineMoveDirection, adapted
// here into synchronous, deterministic policy evaluation instead of
// tree search.
package autopilot

import (
	"log/slog"
	"os"

	"github.com/gerd03/snakepilot/internal/grid"
	"github.com/gerd03/snakepilot/internal/hamilton"
	"github.com/gerd03/snakepilot/internal/pathfind"
	"github.com/gerd03/snakepilot/internal/simulate"
)

// Autopilot holds the immutable grid/cycle geometry plus the small
// amount of state that varies call to call: the step counter, the
// last-known hazard set, and debug counters.
type Autopilot struct {
	bounds      grid.Bounds
	cycle       *hamilton.Cycle
	difficulty  string
	hazards     map[grid.Cell]struct{}
	stepCounter uint64
	logger      *slog.Logger
	stats       DebugStats
	config      Config
}

// candidate is one of up to four legal next cells for a single tick.
type candidate struct {
	dir  grid.Direction
	cell grid.Cell
}

// scored is a policy's validated pick, carrying enough context for
// arbitration between the cycle baseline and a shortcut.
type scored struct {
	dir            grid.Direction
	cell           grid.Cell
	score          float64
	survivalBuffer int
	pathLen        int
	foodGain       int
}

// New builds an Autopilot for a fixed grid, attempting to construct a
// Hamiltonian cycle over it. The cycle may end up invalid (odd x odd, or
// a construction bug); callers must not assume cycle-dependent policies
// run.
func New(bounds grid.Bounds, difficulty string) *Autopilot {
	return NewWithConfig(bounds, difficulty, DefaultConfig())
}

// NewWithConfig is New with an explicit tunable Config. internal/harness
// uses it for every run, passing the Config that cmd/harness loaded (the
// defaults unless a `--config` file overrides them).
func NewWithConfig(bounds grid.Bounds, difficulty string, config Config) *Autopilot {
	return &Autopilot{
		bounds:     bounds,
		cycle:      hamilton.Build(bounds),
		difficulty: difficulty,
		hazards:    map[grid.Cell]struct{}{},
		logger:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
		config:     config,
	}
}

// SetLogger overrides the logger used to report recovered panics.
func (a *Autopilot) SetLogger(l *slog.Logger) {
	if l != nil {
		a.logger = l
	}
}

// SetDifficulty updates the opaque difficulty tag. The spec leaves its
// behavior as a non-normative extension point; this implementation
// stores it for diagnostics only.
func (a *Autopilot) SetDifficulty(tag string) {
	a.difficulty = tag
}

// SetHazards replaces the last-known hazard set, filtering out
// out-of-bounds cells.
func (a *Autopilot) SetHazards(cells []grid.Cell) {
	set := make(map[grid.Cell]struct{}, len(cells))
	for _, c := range cells {
		if a.bounds.InBounds(c) {
			set[c] = struct{}{}
		}
	}
	a.hazards = set
}

// ResetState clears the step counter and debug stats for a new game.
// The grid and cycle are unaffected.
func (a *Autopilot) ResetState() {
	a.stepCounter = 0
	a.stats = DebugStats{}
}

// DebugStats returns a snapshot of the autopilot's diagnostic counters.
func (a *Autopilot) DebugStats() DebugStats {
	stats := a.stats
	stats.Mode = a.difficulty
	stats.CycleAvailable = a.cycle.IsValid()
	stats.Step = a.stepCounter
	return stats
}

// NextDirection is the autopilot's main entry point. It always returns a
// direction; on malformed input or an internal panic it degrades rather
// than propagating, per the error-handling contract.
func (a *Autopilot) NextDirection(head grid.Cell, currentDir grid.Direction, body []grid.Cell, fruits []grid.Cell) (dir grid.Direction) {
	a.stepCounter++

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("autopilot: recovered panic in decision pipeline", slog.Any("panic", r))
			a.stats.LastDecision = "panic-recovered"
			dir = a.minimalFloodFillFallback(head, currentDir, body)
		}
	}()

	dir = a.decide(head, currentDir, body, fruits)
	return dir
}

// EmergencyDirection runs only Policy E (the survival-score fallback),
// skipping the cycle/shortcut machinery. The host calls this after its
// own primary move already resulted in a collision, for a same-tick
// retry.
func (a *Autopilot) EmergencyDirection(head grid.Cell, currentDir grid.Direction, body []grid.Cell, fruits []grid.Cell) (grid.Direction, bool) {
	a.stats.EmergencyCount++
	if len(body) == 0 || !a.bounds.InBounds(head) {
		return grid.Direction{}, false
	}
	fruitSet := sanitizeFruits(a.bounds, body, fruits)
	legal := a.legalMoves(head, currentDir, body)
	if len(legal) == 0 {
		return grid.Direction{}, false
	}
	best, ok := a.policyE(body, legal, fruitSet)
	if !ok {
		return grid.Direction{}, false
	}
	return best.dir, true
}

// HasReachableFood reports whether any of the nearest few fruits is
// reachable from head, used by the host to detect a stalled board.
func (a *Autopilot) HasReachableFood(head grid.Cell, body []grid.Cell, fruits []grid.Cell) bool {
	if len(body) == 0 {
		return false
	}
	fruitSet := sanitizeFruits(a.bounds, body, fruits)
	if len(fruitSet) == 0 {
		return false
	}
	obstacles := a.obstaclesWith(bodyMinusTail(body))
	for _, f := range nearestFruits(head, fruitSet, 6) {
		if _, ok := pathfind.FindPath(a.bounds, head, f, obstacles); ok {
			return true
		}
	}
	return false
}

// decide runs the full policy pipeline described in the package comment.
func (a *Autopilot) decide(head grid.Cell, currentDir grid.Direction, body []grid.Cell, fruits []grid.Cell) grid.Direction {
	if len(body) == 0 || !a.bounds.InBounds(head) {
		a.stats.LastDecision = "no-legal-move"
		return currentDir
	}

	fruitSet := sanitizeFruits(a.bounds, body, fruits)
	legal := a.legalMoves(head, currentDir, body)
	if len(legal) == 0 {
		a.stats.LastDecision = "no-legal-move"
		return currentDir
	}

	if best, ok := a.policyA(body, legal, fruitSet); ok {
		a.stats.LastDecision = "direct-fruit"
		a.stats.LastSurvivalBuffer = best.survivalBuffer
		return best.dir
	}

	if len(body) <= earlyGameLengthLimit {
		if best, ok := a.policyB(head, body, legal, fruitSet); ok {
			a.stats.LastDecision = "early-chase"
			a.stats.LastSurvivalBuffer = best.survivalBuffer
			return best.dir
		}
	}

	cBest, cOk := a.policyC(head, body, legal, fruitSet)
	dBest, dOk := a.policyD(head, body, legal, fruitSet)

	if dOk && a.preferShortcut(dBest, cOk, cBest, len(body)) {
		a.stats.ShortcutsAccepted++
		a.stats.LastDecision = "shortcut"
		a.stats.LastSurvivalBuffer = dBest.survivalBuffer
		return dBest.dir
	}
	if dOk {
		a.stats.ShortcutsRejected++
	}

	if cOk {
		a.stats.LastDecision = "cycle"
		a.stats.LastSurvivalBuffer = cBest.survivalBuffer
		return cBest.dir
	}

	a.stats.FallbackCount++
	if best, ok := a.policyE(body, legal, fruitSet); ok {
		a.stats.LastDecision = "fallback"
		a.stats.LastSurvivalBuffer = best.survivalBuffer
		return best.dir
	}

	a.stats.LastDecision = "no-legal-move"
	return currentDir
}

// legalMoves enumerates up to four candidate next cells per §4.5.1: no
// 180-degree reversal, in bounds, not on a hazard, and not on a body
// segment strictly between index 1 and length-2 inclusive (the head is
// overwritten and the tail vacates, so neither blocks here).
func (a *Autopilot) legalMoves(head grid.Cell, currentDir grid.Direction, body []grid.Cell) []candidate {
	var out []candidate
	reverse := currentDir.Reverse()
	for _, dir := range grid.AllDirections {
		if !currentDir.IsZero() && dir == reverse {
			continue
		}
		cell := head.Add(dir)
		if !a.bounds.InBounds(cell) {
			continue
		}
		if bodyBlocks(body, cell) {
			continue
		}
		if _, hazardous := a.hazards[cell]; hazardous {
			continue
		}
		out = append(out, candidate{dir: dir, cell: cell})
	}
	return out
}

func bodyBlocks(body []grid.Cell, cell grid.Cell) bool {
	for i := 1; i <= len(body)-2; i++ {
		if body[i] == cell {
			return true
		}
	}
	return false
}

// minimalFloodFillFallback is the last-resort safety net required by
// §7: pick whichever legal move maximizes open flood-filled space. It
// never itself panics.
func (a *Autopilot) minimalFloodFillFallback(head grid.Cell, currentDir grid.Direction, body []grid.Cell) (dir grid.Direction) {
	dir = currentDir
	defer func() { recover() }()

	if len(body) == 0 || !a.bounds.InBounds(head) {
		return currentDir
	}
	legal := a.legalMoves(head, currentDir, body)
	if len(legal) == 0 {
		return currentDir
	}

	obstacles := a.obstaclesWith(bodyObstacles(body))
	best := legal[0]
	bestSpace := -1
	for _, c := range legal {
		space := pathfind.FloodFill(a.bounds, c.cell, obstacles)
		if space > bestSpace {
			bestSpace = space
			best = c
		}
	}
	return best.dir
}

// sanitizeFruits drops duplicate, out-of-bounds, and on-body fruit
// cells per the external-interface input conventions.
func sanitizeFruits(bounds grid.Bounds, body []grid.Cell, fruits []grid.Cell) map[grid.Cell]struct{} {
	onBody := make(map[grid.Cell]struct{}, len(body))
	for _, c := range body {
		onBody[c] = struct{}{}
	}
	out := make(map[grid.Cell]struct{}, len(fruits))
	for _, f := range fruits {
		if !bounds.InBounds(f) {
			continue
		}
		if _, blocked := onBody[f]; blocked {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

func isFruitCell(cell grid.Cell, fruits map[grid.Cell]struct{}) bool {
	_, ok := fruits[cell]
	return ok
}

// bodyObstacles returns the body segments that block other cells:
// everything except the head (index 0, overwritten) and the tail
// (last index, vacates).
func bodyObstacles(body []grid.Cell) map[grid.Cell]struct{} {
	set := make(map[grid.Cell]struct{}, len(body))
	if len(body) > 2 {
		for _, c := range body[1 : len(body)-1] {
			set[c] = struct{}{}
		}
	}
	return set
}

// bodyMinusTail returns every body segment except the tail, used as the
// obstacle set for pathfinding toward a fruit (the tail will have
// vacated by the time a multi-step path reaches it).
func bodyMinusTail(body []grid.Cell) map[grid.Cell]struct{} {
	set := make(map[grid.Cell]struct{}, len(body))
	if len(body) > 0 {
		for _, c := range body[:len(body)-1] {
			set[c] = struct{}{}
		}
	}
	return set
}

// obstaclesWith merges extra with the autopilot's current hazard set
// into a single fresh map, scoped to one call per the allocation policy.
func (a *Autopilot) obstaclesWith(extra map[grid.Cell]struct{}) map[grid.Cell]struct{} {
	set := make(map[grid.Cell]struct{}, len(extra)+len(a.hazards))
	for c := range extra {
		set[c] = struct{}{}
	}
	for c := range a.hazards {
		set[c] = struct{}{}
	}
	return set
}
