package autopilot

import (
	"github.com/gerd03/snakepilot/internal/grid"
	"github.com/gerd03/snakepilot/internal/pathfind"
)

// tailBuffer returns the cycle-forward distance from newBody's head to
// its tail, or 0 when the cycle is invalid or either cell isn't on it.
func (a *Autopilot) tailBuffer(newBody []grid.Cell) int {
	if !a.cycle.IsValid() || len(newBody) == 0 {
		return 0
	}
	headIdx := a.cycle.IndexOf(newBody[0])
	tailIdx := a.cycle.IndexOf(newBody[len(newBody)-1])
	if headIdx < 0 || tailIdx < 0 {
		return 0
	}
	return a.cycle.DistanceForward(headIdx, tailIdx)
}

// cycleOrderOK checks the §4.5.3 cycle-order invariant against a
// simulated state. It is vacuously true when the cycle is invalid,
// since Policy A (the only caller that needs this without a valid
// cycle) still runs without one per §7.
func (a *Autopilot) cycleOrderOK(newBody []grid.Cell, grows bool) bool {
	if !a.cycle.IsValid() {
		return true
	}
	headIdx := a.cycle.IndexOf(newBody[0])
	tailIdx := a.cycle.IndexOf(newBody[len(newBody)-1])
	if headIdx < 0 || tailIdx < 0 {
		return false
	}
	gap := a.cycle.DistanceForward(headIdx, tailIdx)

	base := 1
	if grows {
		base = 2
	}
	required := base
	if scaled := int(float64(len(newBody)) * 0.08); scaled > required {
		required = scaled
	}
	return gap >= required
}



// escapeRoute reports whether the new head can still reach the new
// tail, treating every other body segment plus hazards as obstacles
// (§4.5.5). A single-segment body always has an escape route.
func (a *Autopilot) escapeRoute(newBody []grid.Cell) bool {
	if len(newBody) <= 1 {
		return true
	}
	obstacles := a.obstaclesWith(bodyObstacles(newBody))
	_, ok := pathfind.FindPath(a.bounds, newBody[0], newBody[len(newBody)-1], obstacles)
	return ok
}

// survivalScore implements §4.5.4 against a simulated successor state.
func (a *Autopilot) survivalScore(newBody []grid.Cell, fruits map[grid.Cell]struct{}) float64 {
	obstacles := a.obstaclesWith(bodyObstacles(newBody))
	head := newBody[0]

	openSpace := pathfind.FloodFill(a.bounds, head, obstacles)
	openNeighbors := pathfind.OpenNeighborCount(a.bounds, head, obstacles)
	buffer := a.tailBuffer(newBody)
	nearest := nearestFruitDistance(head, fruits)

	w := a.config.SurvivalWeights
	return float64(openSpace)*w.OpenSpace +
		float64(openNeighbors)*w.OpenNeighbors +
		float64(buffer)*w.TailBuffer -
		float64(nearest)*w.NearestFruit
}

func nearestFruitDistance(head grid.Cell, fruits map[grid.Cell]struct{}) int {
	best := 0
	first := true
	for f := range fruits {
		d := grid.Manhattan(head, f)
		if first || d < best {
			best = d
			first = false
		}
	}
	return best
}
