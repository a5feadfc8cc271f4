package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var msg map[string]any
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastsToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	deckClient := NewClient(nil, hub, "")
	otherClient := NewClient(nil, hub, "other")
	hub.Register(deckClient)
	hub.Register(otherClient)

	hub.Broadcast(DefaultRoom, "deck.shuffle", map[string]int{"deck_size": 52})

	msg := receive(t, deckClient)
	assert.Equal(t, "deck.shuffle", msg["type"])
	assert.Equal(t, map[string]any{"deck_size": float64(52)}, msg["payload"])
	assert.NotEmpty(t, msg["timestamp"])

	hub.Broadcast("other", "ping", nil)
	msg = receive(t, otherClient)
	assert.Equal(t, "ping", msg["type"])

	select {
	case <-deckClient.Send:
		t.Fatal("deck client received a message for another room")
	default:
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := NewClient(nil, hub, DefaultRoom)
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHubStop(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	c := NewClient(nil, hub, DefaultRoom)
	hub.Register(c)
	hub.Stop()
	hub.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	_, ok := <-c.Send
	assert.False(t, ok)

	late := NewClient(nil, hub, DefaultRoom)
	hub.Register(late)
	_, ok = <-late.Send
	assert.False(t, ok)

	hub.Unregister(late)
	hub.Broadcast(DefaultRoom, "ignored", nil)
}

func TestHubRef(t *testing.T) {
	first := NewHub()
	ref := NewHubRef(first)

	got, ok := ref.Get()
	require.True(t, ok)
	assert.Same(t, first, got)

	second := NewHub()
	ref.Set(second)
	got, _ = ref.Get()
	assert.Same(t, second, got)

	ref.Set(nil)
	_, ok = ref.Get()
	assert.False(t, ok)
	ref.Broadcast(DefaultRoom, "noop", nil)
}
