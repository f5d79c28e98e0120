package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastAttendeeCountReachesListeners(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	listener := make(chan *Message, 4)
	hub.AddMessageListener(listener)

	hub.BroadcastAttendeeCount(7, 12, 8)

	select {
	case msg := <-listener:
		assert.Equal(t, MessageTypeAttendeeCount, msg.Type)
		assert.Equal(t, int64(7), msg.EventID)
		assert.Equal(t, 12, msg.AttendeeCount)
		assert.Equal(t, 8, msg.SpotsRemaining)
		assert.False(t, msg.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("listener did not receive attendee count broadcast")
	}
}

func TestHub_BroadcastToEventReachesListeners(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	listener := make(chan *Message, 4)
	hub.AddMessageListener(listener)

	hub.BroadcastToEvent(&Message{
		Type:     MessageTypeChat,
		EventID:  3,
		SenderID: 42,
		Content:  "hello",
	})

	select {
	case msg := <-listener:
		assert.Equal(t, MessageTypeChat, msg.Type)
		assert.Equal(t, int64(3), msg.EventID)
		assert.Equal(t, "hello", msg.Content)
	case <-time.After(time.Second):
		t.Fatal("listener did not receive chat broadcast")
	}
}

func TestHub_RemoveMessageListener(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	listener := make(chan *Message, 4)
	hub.AddMessageListener(listener)
	hub.RemoveMessageListener(listener)

	hub.BroadcastAttendeeCount(7, 1, 9)

	select {
	case msg := <-listener:
		t.Fatalf("removed listener still received message: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SlowClientIsDroppedWithoutStallingBroadcasts(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	// A client that never drains its send buffer
	slow := &Client{
		hub:     hub,
		send:    make(chan []byte),
		userID:  42,
		eventID: 7,
		logger:  zerolog.Nop(),
	}
	hub.register <- slow

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 1
	}, time.Second, 10*time.Millisecond)

	// First broadcast hits the full buffer and evicts the client
	hub.BroadcastAttendeeCount(7, 1, 9)

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 0
	}, time.Second, 10*time.Millisecond)

	// The hub must still be serving broadcasts afterwards
	done := make(chan struct{})
	go func() {
		hub.BroadcastAttendeeCount(7, 2, 8)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting broadcasts after dropping a slow client")
	}
}

func TestHub_GetClientsCountEmpty(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	require.Equal(t, 0, hub.GetClientsCount(1))
}
