package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerd03/snakepilot/internal/grid"
)

func TestSimulateRejectsOutOfBounds(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 0, Z: 0}}
	_, ok := Simulate(b, body, grid.Cell{X: -1, Z: 0}, nil, false)
	assert.False(t, ok)
}

func TestSimulateRejectsHazard(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 2, Z: 2}}
	hazards := map[grid.Cell]struct{}{{X: 2, Z: 3}: {}}
	_, ok := Simulate(b, body, grid.Cell{X: 2, Z: 3}, hazards, false)
	assert.False(t, ok)
}

func TestSimulateRejectsSelfCollisionExceptVacatingTail(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	// Head (2,2), body then (2,1) neck, (2,0) mid, (1,0) tail.
	body := []grid.Cell{{X: 2, Z: 2}, {X: 2, Z: 1}, {X: 2, Z: 0}, {X: 1, Z: 0}}

	// Moving onto the neck (always illegal regardless of growth).
	_, ok := Simulate(b, body, grid.Cell{X: 2, Z: 1}, nil, false)
	assert.False(t, ok)

	// Moving onto the tail is legal only when not growing.
	_, ok = Simulate(b, body, grid.Cell{X: 1, Z: 0}, nil, false)
	assert.True(t, ok, "tail vacates when the snake does not grow")

	_, ok = Simulate(b, body, grid.Cell{X: 1, Z: 0}, nil, true)
	assert.False(t, ok, "tail is still occupied if the snake grows")
}

func TestSimulateGrowthPrependsWithoutDroppingTail(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 2, Z: 2}, {X: 2, Z: 1}}
	next := grid.Cell{X: 2, Z: 3}

	newBody, ok := Simulate(b, body, next, nil, true)
	require.True(t, ok)
	assert.Equal(t, []grid.Cell{next, {X: 2, Z: 2}, {X: 2, Z: 1}}, newBody)
}

func TestSimulateNoGrowthDropsTail(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 2, Z: 2}, {X: 2, Z: 1}, {X: 2, Z: 0}}
	next := grid.Cell{X: 2, Z: 3}

	newBody, ok := Simulate(b, body, next, nil, false)
	require.True(t, ok)
	assert.Equal(t, []grid.Cell{next, {X: 2, Z: 2}, {X: 2, Z: 1}}, newBody)
}

func TestSimulateSingleSegmentBody(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	body := []grid.Cell{{X: 2, Z: 2}}
	newBody, ok := Simulate(b, body, grid.Cell{X: 2, Z: 3}, nil, false)
	require.True(t, ok)
	assert.Equal(t, []grid.Cell{{X: 2, Z: 3}}, newBody)
}

func TestSimulateEmptyBodyRejected(t *testing.T) {
	b, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)

	_, ok := Simulate(b, nil, grid.Cell{X: 0, Z: 0}, nil, false)
	assert.False(t, ok)
}
