package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerd03/snakepilot/internal/grid"
)

func TestBroadcasterDeliversSnapshotToConnectedClient(t *testing.T) {
	b := NewBroadcaster(nil)
	server := httptest.NewServer(b)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server a moment to register the client before publishing.
	time.Sleep(20 * time.Millisecond)

	bounds, err := grid.New(5, 5, 0, 0)
	require.NoError(t, err)
	want := Snapshot{
		RunID:  "run-1",
		Step:   3,
		Bounds: bounds,
		Head:   grid.Cell{X: 1, Z: 1},
		Body:   []grid.Cell{{X: 1, Z: 1}, {X: 0, Z: 1}},
		Fruits: []grid.Cell{{X: 4, Z: 4}},
	}
	b.Publish(want)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Snapshot
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.Step, got.Step)
	assert.Equal(t, want.Head, got.Head)
	assert.Equal(t, want.Body, got.Body)
	assert.Equal(t, want.Fruits, got.Fruits)
}

func TestBroadcasterPublishWithNoClientsDoesNotBlock(t *testing.T) {
	b := NewBroadcaster(nil)
	done := make(chan struct{})
	go func() {
		b.Publish(Snapshot{RunID: "lonely"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no registered clients")
	}
}

func TestBroadcasterDropsClientAfterDisconnect(t *testing.T) {
	b := NewBroadcaster(nil)
	server := httptest.NewServer(b)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	conn.Close()
	time.Sleep(50 * time.Millisecond)

	b.mu.Lock()
	count := len(b.clients)
	b.mu.Unlock()
	assert.Equal(t, 0, count)
}
