package main

import (
	"sync"

	"github.com/gerd03/snakepilot/internal/autopilot"
	"github.com/gerd03/snakepilot/internal/grid"
)

// gameRegistry holds one Autopilot per in-flight game, keyed by game
// ID. The teacher's equivalent map (main.go's package-level
// gameStates) was read and written from concurrent request handlers
// with no synchronization; this version guards it with a mutex since
// net/http serves requests on separate goroutines.
type gameRegistry struct {
	mu         sync.Mutex
	difficulty string
	games      map[string]*autopilot.Autopilot
}

func newGameRegistry(difficulty string) *gameRegistry {
	return &gameRegistry{
		difficulty: difficulty,
		games:      make(map[string]*autopilot.Autopilot),
	}
}

func (r *gameRegistry) start(gameID string, bounds grid.Bounds) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[gameID] = autopilot.New(bounds, r.difficulty)
}

// get returns the Autopilot for gameID, building one from bounds if
// this is the first /move call the server has seen for it (the /start
// call is best-effort per the BattleSnake protocol).
func (r *gameRegistry) get(gameID string, bounds grid.Bounds) *autopilot.Autopilot {
	r.mu.Lock()
	defer r.mu.Unlock()
	pilot, ok := r.games[gameID]
	if !ok {
		pilot = autopilot.New(bounds, r.difficulty)
		r.games[gameID] = pilot
	}
	return pilot
}

func (r *gameRegistry) end(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, gameID)
}
