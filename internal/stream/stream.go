// Package stream is the harness's optional `--stream` debug instrument:
// a websocket broadcaster that pushes each Snapshot handed to Publish,
// as JSON, to every connected spectator page or debugging client.
// cmd/harness serves it for --stream; the harness runs themselves do not
// call Publish. No pixels are rendered here, only the board's data model
// is serialized.
//
// The upgrade-and-publish shape is grounded on the niceyeti-tabular
// server's single-client websocket publisher, generalized to the
// multiple-clients case its own TODO comments flagged as unfinished:
// every registered connection gets the same snapshot, fanned out
// through a done-guarded goroutine per client.
package stream

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/gerd03/snakepilot/internal/grid"
)

// Snapshot is one tick's observable state, sent to every connected
// spectator as JSON.
type Snapshot struct {
	RunID   string      `json:"run_id"`
	Step    int         `json:"step"`
	Bounds  grid.Bounds `json:"bounds"`
	Head    grid.Cell   `json:"head"`
	Body    []grid.Cell `json:"body"`
	Fruits  []grid.Cell `json:"fruits"`
	Hazards []grid.Cell `json:"hazards"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Broadcaster fans a stream of Snapshots out to every currently
// connected websocket client. The zero value is not usable; construct
// with NewBroadcaster.
type Broadcaster struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Snapshot
}

// NewBroadcaster constructs an empty Broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		logger:  logger,
		clients: make(map[*websocket.Conn]chan Snapshot),
	}
}

// Publish sends snap to every currently connected client. Slow clients
// never block the run: a client whose buffer is full simply misses
// that tick.
func (b *Broadcaster) Publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.clients {
		select {
		case ch <- snap:
		default:
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams snapshots
// to it until the client disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("stream: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ch := make(chan Snapshot, 8)
	done := make(chan struct{})
	var closeOnce sync.Once
	stop := func() { closeOnce.Do(func() { close(done) }) }

	b.mu.Lock()
	b.clients[conn] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
		stop()
	}()

	// A blocking read is required so gorilla/websocket's control-frame
	// handling runs; its only job here is noticing disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				stop()
				return
			}
		}
	}()

	for snap := range channerics.OrDone(done, ch) {
		if err := conn.WriteJSON(snap); err != nil {
			b.logger.Debug("stream: write failed, dropping client", "error", err)
			return
		}
	}
}
