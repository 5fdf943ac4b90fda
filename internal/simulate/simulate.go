// Package simulate is the sole oracle for "is this move legal?": a pure
// function applying one snake step against bounds, hazards and the
// snake's own body. Every policy in internal/autopilot routes candidate
// moves through Simulate before trusting them, mirroring how the teacher
// project's board.go applied moves and resolved collisions before
// advancing its board copy.
package simulate

import "github.com/gerd03/snakepilot/internal/grid"

// Simulate applies one step of a single snake: next is the candidate new
// head. It rejects out-of-bounds or hazardous cells, and self-collision
// against body[1:] — except the tail segment, which vacates this step
// unless grows is true. On success it returns the new body (head
// prepended, tail dropped unless grows) and ok=true.
func Simulate(b grid.Bounds, body []grid.Cell, next grid.Cell, hazards map[grid.Cell]struct{}, grows bool) ([]grid.Cell, bool) {
	if len(body) == 0 {
		return nil, false
	}
	if !b.InBounds(next) {
		return nil, false
	}
	if _, hazardous := hazards[next]; hazardous {
		return nil, false
	}

	tailIdx := len(body) - 1
	for i := 1; i < len(body); i++ {
		if body[i] != next {
			continue
		}
		if i == tailIdx && !grows {
			continue // tail vacates this step
		}
		return nil, false
	}

	newBody := make([]grid.Cell, 0, len(body)+1)
	newBody = append(newBody, next)
	if grows {
		newBody = append(newBody, body...)
	} else {
		newBody = append(newBody, body[:tailIdx]...)
	}
	return newBody, true
}
