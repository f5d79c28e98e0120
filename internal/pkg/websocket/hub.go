package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message types broadcast over event channels
const (
	MessageTypeChat          = "chat"
	MessageTypeAttendeeCount = "attendee_count"
)

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients organized by event ID
	clients map[int64]map[*Client]bool

	// Channel for inbound messages from clients
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for message listeners
	listenersMu sync.RWMutex

	// Message listeners
	messageListeners []chan *Message

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message represents a message sent over WebSocket
type Message struct {
	// Type of message: "chat" or "attendee_count"
	Type string `json:"type"`

	// Event this message belongs to
	EventID int64 `json:"eventId"`

	// User who sent the message, zero for server-originated updates
	SenderID int64 `json:"senderId,omitempty"`

	// Chat message content
	Content string `json:"content,omitempty"`

	// Attendee count payload for "attendee_count" messages
	AttendeeCount  int `json:"attendeeCount,omitempty"`
	SpotsRemaining int `json:"spotsRemaining,omitempty"`

	// Timestamp when the message was sent
	Timestamp time.Time `json:"timestamp"`

	// Message ID from the database
	ID int64 `json:"id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:        make(chan *Message),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		clients:          make(map[int64]map[*Client]bool),
		messageListeners: []chan *Message{},
		logger:           logger,
	}
}

// Run starts the hub, handling client registrations, broadcasts, etc.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventID := client.eventID
	if _, ok := h.clients[eventID]; !ok {
		h.clients[eventID] = make(map[*Client]bool)
	}
	h.clients[eventID][client] = true

	h.logger.Info().
		Int64("eventID", eventID).
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventID := client.eventID
	if _, ok := h.clients[eventID]; ok {
		if _, ok := h.clients[eventID][client]; ok {
			delete(h.clients[eventID], client)
			close(client.send)

			// If no more clients for this event, clean up
			if len(h.clients[eventID]) == 0 {
				delete(h.clients, eventID)
			}

			h.logger.Info().
				Int64("eventID", eventID).
				Int64("userID", client.userID).
				Str("addr", client.remoteAddr()).
				Msg("Client unregistered")
		}
	}
}

// broadcastMessage broadcasts a message to all clients watching a specific event
func (h *Hub) broadcastMessage(message *Message) {
	// First, notify message listeners
	h.notifyMessageListeners(message)

	// Then broadcast to clients
	h.mu.RLock()

	eventID := message.EventID
	clients, ok := h.clients[eventID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Int64("eventID", eventID).
			Msg("No clients watching event for broadcast")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Int64("eventID", eventID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	// Clients whose send buffer is full are collected and dropped after the
	// read lock is released. Pushing them onto h.unregister from here would
	// block forever: Run is the only reader and it is inside this call.
	var slow []*Client
	sent := 0
	for client := range clients {
		select {
		case client.send <- data:
			sent++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn().
			Int64("eventID", eventID).
			Int64("userID", client.userID).
			Msg("Dropping slow client")
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Int64("eventID", eventID).
		Int("clientCount", sent).
		Msg("Message broadcasted to event watchers")
}

// notifyMessageListeners sends a message to all registered message listeners
func (h *Hub) notifyMessageListeners(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.messageListeners {
		// Use non-blocking send to avoid blocking on slow listeners
		select {
		case listener <- message:
			// Message sent successfully
		default:
			h.logger.Warn().Msg("Skipped slow message listener")
		}
	}
}

// BroadcastToEvent sends a message to all connected clients watching an event
func (h *Hub) BroadcastToEvent(message *Message) {
	h.broadcast <- message
}

// BroadcastAttendeeCount pushes an attendee count update to an event's watchers
func (h *Hub) BroadcastAttendeeCount(eventID int64, attendeeCount, spotsRemaining int) {
	h.broadcast <- &Message{
		Type:           MessageTypeAttendeeCount,
		EventID:        eventID,
		AttendeeCount:  attendeeCount,
		SpotsRemaining: spotsRemaining,
		Timestamp:      time.Now(),
	}
}

// GetClientsCount returns the number of connected clients for an event
func (h *Hub) GetClientsCount(eventID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[eventID]; ok {
		return len(clients)
	}
	return 0
}

// AddMessageListener registers a channel to receive all messages
func (h *Hub) AddMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.messageListeners = append(h.messageListeners, listener)
	h.logger.Info().Msg("Added new message listener")
}

// RemoveMessageListener removes a listener from the hub
func (h *Hub) RemoveMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.messageListeners {
		if l == listener {
			h.messageListeners[i] = h.messageListeners[len(h.messageListeners)-1]
			h.messageListeners = h.messageListeners[:len(h.messageListeners)-1]
			h.logger.Info().Msg("Removed message listener")
			break
		}
	}
}
