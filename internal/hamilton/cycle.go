// Package hamilton builds and queries a deterministic Hamiltonian cycle
// over a grid.Bounds: a circular traversal visiting every cell exactly
// once, used by the autopilot as its provably-safe baseline policy.
package hamilton

import "github.com/gerd03/snakepilot/internal/grid"

// Cycle is an immutable, ordered circular sequence covering every cell
// of a grid.Bounds exactly once, with an index for O(1) position lookup.
type Cycle struct {
	cells []grid.Cell
	index map[grid.Cell]int
	valid bool
}

// Build constructs the Hamiltonian cycle for b, if one of b.Width or
// b.Height is even. It always returns a non-nil *Cycle; callers must
// check IsValid before using it — construction (or its self-validation)
// can fail, in which case the Autopilot degrades to its fallback policy.
func Build(b grid.Bounds) *Cycle {
	var localOrder []grid.Cell

	switch {
	case b.Height%2 == 0:
		localOrder = serpentineRowMajor(b.Width, b.Height)
	case b.Width%2 == 0:
		localOrder = serpentineColumnMajor(b.Width, b.Height)
	default:
		return &Cycle{valid: false}
	}

	cells := make([]grid.Cell, len(localOrder))
	for i, c := range localOrder {
		cells[i] = grid.Cell{X: b.MinX + c.X, Z: b.MinZ + c.Z}
	}

	cyc := &Cycle{cells: cells, index: make(map[grid.Cell]int, len(cells))}
	for i, c := range cells {
		cyc.index[c] = i
	}
	cyc.valid = cyc.validate(b)
	if !cyc.valid {
		cyc.cells = nil
		cyc.index = nil
	}
	return cyc
}

// serpentineRowMajor builds the local (0-indexed) cycle order for an
// even height: a full top row, an alternating-direction serpentine
// through interior rows restricted to columns 1..width-1, and a return
// corridor down column 0.
func serpentineRowMajor(width, height int) []grid.Cell {
	order := make([]grid.Cell, 0, width*height)

	for x := 0; x < width; x++ {
		order = append(order, grid.Cell{X: x, Z: 0})
	}

	for z := 1; z < height; z++ {
		if z%2 == 1 {
			for x := width - 1; x >= 1; x-- {
				order = append(order, grid.Cell{X: x, Z: z})
			}
		} else {
			for x := 1; x < width; x++ {
				order = append(order, grid.Cell{X: x, Z: z})
			}
		}
	}

	for z := height - 1; z >= 1; z-- {
		order = append(order, grid.Cell{X: 0, Z: z})
	}

	return order
}

// serpentineColumnMajor is the axis-swapped construction used when width
// is even but height is odd: a full left column, an alternating-direction
// serpentine through interior columns restricted to rows 1..height-1, and
// a return corridor across row 0.
func serpentineColumnMajor(width, height int) []grid.Cell {
	order := make([]grid.Cell, 0, width*height)

	for z := 0; z < height; z++ {
		order = append(order, grid.Cell{X: 0, Z: z})
	}

	for x := 1; x < width; x++ {
		if x%2 == 1 {
			for z := height - 1; z >= 1; z-- {
				order = append(order, grid.Cell{X: x, Z: z})
			}
		} else {
			for z := 1; z < height; z++ {
				order = append(order, grid.Cell{X: x, Z: z})
			}
		}
	}

	for x := width - 1; x >= 1; x-- {
		order = append(order, grid.Cell{X: x, Z: 0})
	}

	return order
}

// validate checks the invariants required of a Hamiltonian cycle:
// correct length, every in-bounds cell visited exactly once, and every
// consecutive pair (including the wraparound last-to-first pair)
// Manhattan-adjacent.
func (c *Cycle) validate(b grid.Bounds) bool {
	if len(c.cells) != b.CellCount {
		return false
	}
	seen := make(map[grid.Cell]struct{}, len(c.cells))
	for _, cell := range c.cells {
		if !b.InBounds(cell) {
			return false
		}
		if _, dup := seen[cell]; dup {
			return false
		}
		seen[cell] = struct{}{}
	}
	for i, cell := range c.cells {
		next := c.cells[(i+1)%len(c.cells)]
		if grid.Manhattan(cell, next) != 1 {
			return false
		}
	}
	return true
}

// IsValid reports whether the cycle was built successfully.
func (c *Cycle) IsValid() bool {
	return c != nil && c.valid
}

// Len returns the number of cells in the cycle, or 0 if invalid.
func (c *Cycle) Len() int {
	return len(c.cells)
}

// IndexOf returns the cycle position of cell, or -1 if it is not a
// member (including when the cycle is invalid).
func (c *Cycle) IndexOf(cell grid.Cell) int {
	if !c.IsValid() {
		return -1
	}
	idx, ok := c.index[cell]
	if !ok {
		return -1
	}
	return idx
}

// CellAt returns the cell at the given index, modulo the cycle length;
// negative indices wrap backward.
func (c *Cycle) CellAt(index int) grid.Cell {
	n := len(c.cells)
	idx := ((index % n) + n) % n
	return c.cells[idx]
}

// NextCell returns the cycle's successor of cell, and true if cell is a
// member of a valid cycle.
func (c *Cycle) NextCell(cell grid.Cell) (grid.Cell, bool) {
	idx := c.IndexOf(cell)
	if idx < 0 {
		return grid.Cell{}, false
	}
	return c.CellAt(idx + 1), true
}

// DistanceForward returns the non-negative modular distance from
// fromIdx to toIdx walking forward around the cycle.
func (c *Cycle) DistanceForward(fromIdx, toIdx int) int {
	n := len(c.cells)
	if n == 0 {
		return 0
	}
	d := (toIdx - fromIdx) % n
	if d < 0 {
		d += n
	}
	return d
}
