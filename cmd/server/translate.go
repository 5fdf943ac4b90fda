package main

import "github.com/gerd03/snakepilot/internal/grid"

func pointToCell(p Point) grid.Cell {
	return grid.Cell{X: p.X, Z: p.Y}
}

func cellToPoint(c grid.Cell) Point {
	return Point{X: c.X, Y: c.Z}
}

func pointsToCells(pts []Point) []grid.Cell {
	cells := make([]grid.Cell, len(pts))
	for i, p := range pts {
		cells[i] = pointToCell(p)
	}
	return cells
}

// moveString derives the BattleSnake wire move name from a head and its
// successor, independent of any internal direction convention: X
// governs left/right, Y governs down/up (BattleSnake's Y increases
// upward), matching the teacher's determineMoveDirection.
func moveString(head, next Point) string {
	if next.X < head.X {
		return "left"
	}
	if next.X > head.X {
		return "right"
	}
	if next.Y < head.Y {
		return "down"
	}
	return "up"
}
