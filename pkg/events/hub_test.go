package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_BroadcastsToClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, uuid.New())
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.Clients(ctx) == 1
	}, 2*time.Second, 10*time.Millisecond)

	event := RideEvent{Type: RideCreated, RideID: uuid.New(), Status: "pending"}
	require.NoError(t, hub.Publish(ctx, event))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got RideEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, event.RideID, got.RideID)
	assert.Equal(t, RideCreated, got.Type)

	conn.Close()
	assert.Eventually(t, func() bool {
		return hub.Clients(ctx) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	assert.Equal(t, 0, hub.Clients(ctx))
	assert.NoError(t, hub.Publish(ctx, RideEvent{Type: RideCreated}))

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.Clients(context.Background()))
}
