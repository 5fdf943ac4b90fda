package visualize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerd03/snakepilot/internal/grid"
)

func TestBoardRendersBorderAndHead(t *testing.T) {
	b, err := grid.New(3, 3, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 1, Z: 1}, {X: 0, Z: 1}}
	out := Board(b, body, nil, nil)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5) // 3x3 board + 1 border row each side

	assert.True(t, strings.Contains(out, "S"), "head should render uppercase")
	assert.True(t, strings.Contains(out, "s"), "body segment should render lowercase")
}

func TestBoardRendersFruitAndHazard(t *testing.T) {
	b, err := grid.New(3, 3, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 0, Z: 0}}
	fruits := map[grid.Cell]struct{}{{X: 1, Z: 1}: {}}
	hazards := map[grid.Cell]struct{}{{X: 2, Z: 2}: {}}

	out := Board(b, body, fruits, hazards)
	assert.True(t, strings.Contains(out, "♥"))
	assert.True(t, strings.Contains(out, "H"))
}

func TestBoardWithMoveOverlaysArrow(t *testing.T) {
	b, err := grid.New(3, 3, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 1, Z: 1}}
	out := Board(b, body, nil, nil, WithMove(grid.Right))
	assert.True(t, strings.Contains(out, "→"))
}

func TestBoardWithIndentAndNewline(t *testing.T) {
	b, err := grid.New(2, 2, 0, 0)
	require.NoError(t, err)

	out := Board(b, nil, nil, nil, WithIndent("  "), WithNewlineCharacter("|"))
	assert.True(t, strings.HasPrefix(out, "  "))
	assert.True(t, strings.Contains(out, "|"))
	assert.False(t, strings.Contains(out, "\n"))
}

func TestBoardHandlesEmptyBody(t *testing.T) {
	b, err := grid.New(2, 2, 0, 0)
	require.NoError(t, err)

	out := Board(b, nil, nil, nil)
	assert.NotEmpty(t, out)
}
