package autopilot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerd03/snakepilot/internal/grid"
)

func TestLegalMovesExcludesReversalAndHazard(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")
	ap.SetHazards([]grid.Cell{{X: 3, Z: 2}})

	head := grid.Cell{X: 2, Z: 2}
	body := []grid.Cell{head, {X: 1, Z: 2}}

	legal := ap.legalMoves(head, grid.Right, body)
	var dirs []grid.Direction
	for _, c := range legal {
		dirs = append(dirs, c.dir)
	}

	assert.NotContains(t, dirs, grid.Left, "reversal must be excluded")
	assert.NotContains(t, dirs, grid.Right, "hazard cell must be excluded")
	assert.Contains(t, dirs, grid.Up)
	assert.Contains(t, dirs, grid.Down)
}

func TestLegalMovesAllowsReversalWhenCurrentDirIsZero(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 2, Z: 2}
	body := []grid.Cell{head}

	legal := ap.legalMoves(head, grid.None, body)
	assert.Len(t, legal, 4)
}

func TestSanitizeFruitsDropsOutOfBoundsDuplicateAndOnBody(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)
	body := []grid.Cell{{X: 1, Z: 1}, {X: 1, Z: 2}}

	fruits := []grid.Cell{
		{X: 1, Z: 1},  // on body
		{X: 99, Z: 1}, // out of bounds
		{X: 3, Z: 3},
		{X: 3, Z: 3}, // duplicate
	}

	set := sanitizeFruits(b, body, fruits)
	assert.Len(t, set, 1)
	_, ok := set[grid.Cell{X: 3, Z: 3}]
	assert.True(t, ok)
}

func TestSetHazardsFiltersOutOfBounds(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	ap.SetHazards([]grid.Cell{{X: 1, Z: 1}, {X: 99, Z: 99}})
	assert.Len(t, ap.hazards, 1)
}

func TestResetStateClearsCountersButKeepsCycle(t *testing.T) {
	b, err := grid.New(4, 4, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	ap.stepCounter = 42
	ap.stats.ShortcutsAccepted = 7
	ap.ResetState()

	assert.Equal(t, uint64(0), ap.DebugStats().Step)
	assert.Equal(t, 0, ap.DebugStats().ShortcutsAccepted)
	assert.True(t, ap.DebugStats().CycleAvailable)
}

func TestDebugStatsReportsDifficultyAsMode(t *testing.T) {
	b, err := grid.New(4, 4, 0, 0)
	require.NoError(t, err)
	ap := New(b, "hard")
	assert.Equal(t, "hard", ap.DebugStats().Mode)
	ap.SetDifficulty("easy")
	assert.Equal(t, "easy", ap.DebugStats().Mode)
}

// Determinism: identical inputs must always produce the identical output.
func TestNextDirectionIsDeterministic(t *testing.T) {
	b, err := grid.New(20, 20, -10, -10)
	require.NoError(t, err)

	head := grid.Cell{X: 0, Z: 0}
	body := []grid.Cell{head, {X: -1, Z: 0}, {X: -2, Z: 0}, {X: -2, Z: 1}}
	fruits := []grid.Cell{{X: 4, Z: 4}, {X: -6, Z: 2}}

	ap1 := New(b, "default")
	ap2 := New(b, "default")

	for i := 0; i < 25; i++ {
		d1 := ap1.NextDirection(head, grid.Right, body, fruits)
		d2 := ap2.NextDirection(head, grid.Right, body, fruits)
		assert.Equal(t, d1, d2)
	}
}

// No-reversal invariant on a fixed board: moving right, the pilot must
// not turn back left.
func TestNextDirectionNeverReverses(t *testing.T) {
	b, err := grid.New(20, 20, -10, -10)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 2, Z: -3}
	body := []grid.Cell{head, {X: 1, Z: -3}, {X: 0, Z: -3}}
	fruits := []grid.Cell{{X: 8, Z: 8}}

	dir := ap.NextDirection(head, grid.Right, body, fruits)
	assert.NotEqual(t, grid.Left, dir)
}

// Simulator soundness: every direction NextDirection returns for a
// non-degenerate state must be simulate-legal.
func TestNextDirectionAlwaysReturnsSimulateLegalMoveWhenPossible(t *testing.T) {
	b, err := grid.New(20, 20, -10, -10)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 0, Z: 0}
	body := []grid.Cell{head, {X: -1, Z: 0}, {X: -2, Z: 0}}

	dir := ap.NextDirection(head, grid.Right, body, nil)
	next := head.Add(dir)
	assert.True(t, b.InBounds(next))
	for _, seg := range body[1 : len(body)-1] {
		assert.NotEqual(t, seg, next)
	}
}

// Liveness on an even board: following the cycle baseline with no fruit
// forever keeps producing legal, in-bounds moves (it never gets stuck).
func TestCycleBaselineStaysAliveAcrossManySteps(t *testing.T) {
	b, err := grid.New(6, 6, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")
	require.True(t, ap.cycle.IsValid())

	head := grid.Cell{X: 0, Z: 0}
	body := []grid.Cell{head}
	dir := grid.None

	for i := 0; i < 100; i++ {
		dir = ap.NextDirection(head, dir, body, nil)
		next := head.Add(dir)
		require.True(t, b.InBounds(next), "step %d left the grid", i)
		body = []grid.Cell{next}
		head = next
	}
}

func TestEmergencyDirectionRunsPolicyEOnly(t *testing.T) {
	b, err := grid.New(6, 6, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 2, Z: 2}
	body := []grid.Cell{head, {X: 1, Z: 2}}

	dir, ok := ap.EmergencyDirection(head, grid.Right, body, nil)
	require.True(t, ok)
	assert.True(t, b.InBounds(head.Add(dir)))
	assert.Equal(t, 1, ap.DebugStats().EmergencyCount)
}

func TestEmergencyDirectionFailsWithNoLegalMove(t *testing.T) {
	b, err := grid.New(2, 2, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 0, Z: 0}
	body := []grid.Cell{head, {X: 1, Z: 0}, {X: 1, Z: 1}, {X: 0, Z: 1}}

	_, ok := ap.EmergencyDirection(head, grid.Up, body, nil)
	assert.False(t, ok)
}

func TestHasReachableFoodTrueWhenPathExists(t *testing.T) {
	b, err := grid.New(6, 6, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 0, Z: 0}
	body := []grid.Cell{head}
	fruits := []grid.Cell{{X: 5, Z: 5}}

	assert.True(t, ap.HasReachableFood(head, body, fruits))
}

func TestHasReachableFoodFalseWithNoFruit(t *testing.T) {
	b, err := grid.New(6, 6, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	head := grid.Cell{X: 0, Z: 0}
	body := []grid.Cell{head}

	assert.False(t, ap.HasReachableFood(head, body, nil))
}

func TestNextDirectionOnEmptyBodyReturnsCurrentDir(t *testing.T) {
	b, err := grid.New(6, 6, 0, 0)
	require.NoError(t, err)
	ap := New(b, "default")

	dir := ap.NextDirection(grid.Cell{X: 1, Z: 1}, grid.Up, nil, nil)
	assert.Equal(t, grid.Up, dir)
	assert.Equal(t, "no-legal-move", ap.DebugStats().LastDecision)
}
