// Command server is a BattleSnake-protocol HTTP adapter around
// internal/autopilot: the same four endpoints the teacher's
// multiplayer bot exposed (/, /start, /move, /end), narrowed to
// single-snake scope. Rendering, Discord/Tidbyt posting, cloud storage
// uploads and leaderboard fetches are deliberately not carried over —
// see DESIGN.md.
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/gerd03/snakepilot/internal/grid"
	"github.com/gerd03/snakepilot/internal/pilotlog"
)

func main() {
	logger := slog.New(pilotlog.NewHandler(os.Stdout, slog.LevelInfo))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	difficulty := os.Getenv("SNAKEPILOT_DIFFICULTY")
	if difficulty == "" {
		difficulty = "default"
	}
	registry := newGameRegistry(difficulty)

	router := mux.NewRouter()
	router.HandleFunc("/", handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/start", registry.handleStart).Methods(http.MethodPost)
	router.HandleFunc("/move", registry.handleMove).Methods(http.MethodPost)
	router.HandleFunc("/end", registry.handleEnd).Methods(http.MethodPost)

	slog.Info("starting snakepilot server", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"apiversion": "1",
		"author":     "snakepilot",
		"color":      "#2e8b57",
		"head":       "default",
		"tail":       "default",
		"version":    "0.1.0",
	})
}

func (r *gameRegistry) handleStart(w http.ResponseWriter, req *http.Request) {
	var game MoveRequest
	if err := json.NewDecoder(req.Body).Decode(&game); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bounds, err := grid.New(game.Board.Width, game.Board.Height, 0, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	r.start(game.Game.ID, bounds)
	slog.Info("game started", "game_id", game.Game.ID, "width", game.Board.Width, "height", game.Board.Height)
	writeJSON(w, map[string]string{})
}

func (r *gameRegistry) handleMove(w http.ResponseWriter, req *http.Request) {
	var game MoveRequest
	if err := json.NewDecoder(req.Body).Decode(&game); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bounds, err := grid.New(game.Board.Width, game.Board.Height, 0, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pilot := r.get(game.Game.ID, bounds)
	pilot.SetHazards(pointsToCells(game.Board.Hazards))

	head := pointToCell(game.You.Head)
	body := pointsToCells(game.You.Body)
	fruits := pointsToCells(game.Board.Food)

	var currentDir grid.Direction
	if len(body) > 1 {
		currentDir = grid.Direction{X: body[0].X - body[1].X, Z: body[0].Z - body[1].Z}
	}

	dir := pilot.NextDirection(head, currentDir, body, fruits)
	next := cellToPoint(head.Add(dir))
	move := moveString(game.You.Head, next)

	writeJSON(w, MoveResponse{Move: move, Shout: "pathing the cycle"})
}

func (r *gameRegistry) handleEnd(w http.ResponseWriter, req *http.Request) {
	var game MoveRequest
	if err := json.NewDecoder(req.Body).Decode(&game); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome := describeOutcome(game.Board, game.You)
	slog.Info("game ended", "game_id", game.Game.ID, "turn", game.Turn, "outcome", outcome)
	r.end(game.Game.ID)
	writeJSON(w, map[string]string{})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
