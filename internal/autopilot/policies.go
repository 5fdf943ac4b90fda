package autopilot

import (
	"sort"

	"github.com/gerd03/snakepilot/internal/grid"
	"github.com/gerd03/snakepilot/internal/pathfind"
	"github.com/gerd03/snakepilot/internal/simulate"
)

// nearestFruits returns up to n fruits sorted by Manhattan distance
// from head, breaking ties by cell coordinate for determinism.
func nearestFruits(head grid.Cell, fruits map[grid.Cell]struct{}, n int) []grid.Cell {
	list := make([]grid.Cell, 0, len(fruits))
	for f := range fruits {
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool {
		di, dj := grid.Manhattan(head, list[i]), grid.Manhattan(head, list[j])
		if di != dj {
			return di < dj
		}
		if list[i].X != list[j].X {
			return list[i].X < list[j].X
		}
		return list[i].Z < list[j].Z
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

func findCandidate(legal []candidate, cell grid.Cell) (candidate, bool) {
	for _, c := range legal {
		if c.cell == cell {
			return c, true
		}
	}
	return candidate{}, false
}

// policyA is the direct-safe fruit adjacency policy (§4.5.2 A).
func (a *Autopilot) policyA(body []grid.Cell, legal []candidate, fruits map[grid.Cell]struct{}) (scored, bool) {
	var best scored
	found := false

	for _, c := range legal {
		if !isFruitCell(c.cell, fruits) {
			continue
		}
		newBody, ok := simulate.Simulate(a.bounds, body, c.cell, a.hazards, true)
		if !ok {
			continue
		}
		if !a.cycleOrderOK(newBody, true) {
			continue
		}
		if !a.escapeRoute(newBody) {
			continue
		}
		sc := a.survivalScore(newBody, fruits)
		if !found || sc > best.score {
			best = scored{dir: c.dir, cell: c.cell, score: sc, survivalBuffer: a.tailBuffer(newBody)}
			found = true
		}
	}
	return best, found
}

// policyB is the early-game chase policy (§4.5.2 B), active only while
// length <= earlyGameLengthLimit.
func (a *Autopilot) policyB(head grid.Cell, body []grid.Cell, legal []candidate, fruits map[grid.Cell]struct{}) (scored, bool) {
	if len(fruits) == 0 {
		return scored{}, false
	}

	obstacles := a.obstaclesWith(bodyMinusTail(body))
	var best scored
	found := false

	for _, fruit := range nearestFruits(head, fruits, 4) {
		path, ok := pathfind.FindPath(a.bounds, head, fruit, obstacles)
		if !ok || len(path) == 0 {
			continue
		}
		matched, ok := findCandidate(legal, path[0])
		if !ok {
			continue
		}
		grows := isFruitCell(path[0], fruits)
		newBody, ok := simulate.Simulate(a.bounds, body, path[0], a.hazards, grows)
		if !ok {
			continue
		}
		if !a.escapeRoute(newBody) {
			continue
		}

		bonus := 14 - len(path)
		if bonus < 0 {
			bonus = 0
		}
		sc := a.survivalScore(newBody, fruits) + 300 + float64(bonus)*22

		if !found || sc > best.score {
			best = scored{dir: matched.dir, cell: path[0], score: sc, survivalBuffer: a.tailBuffer(newBody)}
			found = true
		}
	}
	return best, found
}

// policyC is the Hamiltonian baseline (§4.5.2 C): always safe by
// construction when the cycle is valid and its successor is legal.
func (a *Autopilot) policyC(head grid.Cell, body []grid.Cell, legal []candidate, fruits map[grid.Cell]struct{}) (scored, bool) {
	if !a.cycle.IsValid() {
		return scored{}, false
	}
	nextCell, ok := a.cycle.NextCell(head)
	if !ok {
		return scored{}, false
	}
	matched, ok := findCandidate(legal, nextCell)
	if !ok {
		return scored{}, false
	}
	grows := isFruitCell(nextCell, fruits)
	newBody, ok := simulate.Simulate(a.bounds, body, nextCell, a.hazards, grows)
	if !ok {
		return scored{}, false
	}

	buffer := a.tailBuffer(newBody)
	sc := 380 + float64(buffer)*1.2
	return scored{dir: matched.dir, cell: nextCell, score: sc, survivalBuffer: buffer}, true
}

// policyD is the validated shortcut policy (§4.5.2 D): A* routes to the
// nearest few fruits, accepted only when every intermediate step still
// satisfies the cycle-order invariant and the endpoint keeps an escape
// route.
func (a *Autopilot) policyD(head grid.Cell, body []grid.Cell, legal []candidate, fruits map[grid.Cell]struct{}) (scored, bool) {
	if !a.cycle.IsValid() {
		return scored{}, false
	}
	length := len(body)
	if a.stepCounter%uint64(a.config.cadenceSteps(length)) != 0 {
		return scored{}, false
	}
	limit := a.config.pathLimit(length)
	headIdx := a.cycle.IndexOf(head)
	obstacles := a.obstaclesWith(bodyMinusTail(body))

	var best scored
	found := false

	for _, fruit := range nearestFruits(head, fruits, 4) {
		path, ok := pathfind.FindPath(a.bounds, head, fruit, obstacles)
		if !ok || len(path) == 0 || len(path) > limit {
			continue
		}

		curBody := body
		stepsValid := true
		for _, step := range path {
			grows := isFruitCell(step, fruits)
			nextBody, ok := simulate.Simulate(a.bounds, curBody, step, a.hazards, grows)
			if !ok || !a.cycleOrderOK(nextBody, grows) {
				stepsValid = false
				break
			}
			curBody = nextBody
		}
		if !stepsValid || !a.escapeRoute(curBody) {
			continue
		}

		matched, ok := findCandidate(legal, path[0])
		if !ok {
			continue
		}

		fruitIdx := a.cycle.IndexOf(fruit)
		foodGain := a.cycle.DistanceForward(headIdx, fruitIdx) - len(path)
		bonus := 220 - len(path)*7
		if bonus < 0 {
			bonus = 0
		}
		sc := a.survivalScore(curBody, fruits) + float64(foodGain)*34 + float64(bonus)

		if !found || sc > best.score {
			best = scored{
				dir:            matched.dir,
				cell:           path[0],
				score:          sc,
				survivalBuffer: a.tailBuffer(curBody),
				pathLen:        len(path),
				foodGain:       foodGain,
			}
			found = true
		}
	}
	return best, found
}

// preferShortcut implements the §4.5.2 arbitration between Policy C and
// Policy D: take the shortcut only when its survival buffer clears the
// length-scaled minimum, one of the three urgency conditions holds, and
// (when a cycle candidate exists) its score doesn't trail the cycle's by
// more than the length-banded tolerance.
func (a *Autopilot) preferShortcut(d scored, cOk bool, c scored, length int) bool {
	requiredBuffer := 3
	if scaled := int(float64(length) * 0.05); scaled > requiredBuffer {
		requiredBuffer = scaled
	}
	if d.survivalBuffer <= requiredBuffer {
		return false
	}

	pathShort := d.pathLen <= a.config.shortPathLimit(length)
	foodGainPositive := d.foodGain >= 1
	proactive := a.stepCounter%uint64(a.config.cadenceSteps(length)) == 0
	if !pathShort && !foodGainPositive && !proactive {
		return false
	}

	if !cOk {
		return true
	}
	return d.score >= c.score-a.config.toleranceFor(length)
}

// policyE is the emergency fallback (§4.5.2 E / §4.5.6): the legal move
// that maximizes the survival score on its simulated successor state.
func (a *Autopilot) policyE(body []grid.Cell, legal []candidate, fruits map[grid.Cell]struct{}) (scored, bool) {
	var best scored
	found := false

	for _, c := range legal {
		grows := isFruitCell(c.cell, fruits)
		newBody, ok := simulate.Simulate(a.bounds, body, c.cell, a.hazards, grows)
		if !ok {
			continue
		}
		sc := a.survivalScore(newBody, fruits)
		if !found || sc > best.score {
			best = scored{dir: c.dir, cell: c.cell, score: sc, survivalBuffer: a.tailBuffer(newBody)}
			found = true
		}
	}
	return best, found
}
