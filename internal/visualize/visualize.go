// Package visualize renders an ASCII dump of a single snake's board
// state for tests and CLI debug output. It is adapted from the teacher
// project's visuals.go (visualizeBoard), trimmed to a single snake and
// the grid/simulate domain types, keeping the functional-options API and
// the boundary/food/hazard glyph conventions.
package visualize

import (
	"strings"
	"unicode"

	"github.com/gerd03/snakepilot/internal/grid"
)

type boardOptions struct {
	indent           string
	newlineCharacter string
	move             grid.Direction
}

// Option configures Board's rendering.
type Option func(*boardOptions)

// WithIndent prefixes every rendered line with indent.
func WithIndent(indent string) Option {
	return func(o *boardOptions) { o.indent = indent }
}

// WithNewlineCharacter overrides the line terminator (default "\n").
func WithNewlineCharacter(newline string) Option {
	return func(o *boardOptions) { o.newlineCharacter = newline }
}

// WithMove overlays the arrow for the given candidate move at the cell
// the snake's head would move to.
func WithMove(move grid.Direction) Option {
	return func(o *boardOptions) { o.move = move }
}

// Board renders b with the snake's body, fruits and hazards as an ASCII
// grid bordered by 'x', head capitalized, body segments lowercase 's',
// fruit '♥', hazard 'H'. Rows are laid out from MinZ at the top, so
// grid.Up (decreasing Z) renders toward the top of the output, matching
// on-screen intuition.
func Board(b grid.Bounds, body []grid.Cell, fruits, hazards map[grid.Cell]struct{}, options ...Option) string {
	opts := &boardOptions{newlineCharacter: "\n"}
	for _, opt := range options {
		opt(opts)
	}

	extendedWidth := b.Width + 2
	extendedHeight := b.Height + 2

	rows := make([][]rune, extendedHeight)
	for i := range rows {
		rows[i] = make([]rune, extendedWidth)
		for j := range rows[i] {
			if i == 0 || i == extendedHeight-1 || j == 0 || j == extendedWidth-1 {
				rows[i][j] = 'x'
			} else {
				rows[i][j] = '.'
			}
		}
	}

	rowFor := func(z int) int {
		if z < b.MinZ || z > b.MaxZ {
			return -1
		}
		return z - b.MinZ + 1
	}
	colFor := func(x int) int {
		if x < b.MinX || x > b.MaxX {
			return -1
		}
		return x - b.MinX + 1
	}

	place := func(c grid.Cell, r rune) {
		row, col := rowFor(c.Z), colFor(c.X)
		if row == -1 || col == -1 {
			return
		}
		rows[row][col] = r
	}

	for f := range fruits {
		place(f, '♥')
	}
	for h := range hazards {
		place(h, 'H')
	}
	for _, seg := range body[min(1, len(body)):] {
		place(seg, 's')
	}
	if len(body) > 0 {
		place(body[0], unicode.ToUpper('s'))
	}

	if !opts.move.IsZero() && len(body) > 0 {
		arrow := arrowFor(opts.move)
		place(body[0].Add(opts.move), arrow)
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(opts.indent)
		for _, cell := range row {
			sb.WriteRune(cell)
			sb.WriteString("  ")
		}
		sb.WriteString(opts.newlineCharacter)
	}
	return sb.String()
}

func arrowFor(d grid.Direction) rune {
	switch d {
	case grid.Up:
		return '↑'
	case grid.Down:
		return '↓'
	case grid.Left:
		return '←'
	case grid.Right:
		return '→'
	default:
		return '?'
	}
}
