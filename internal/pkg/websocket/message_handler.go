package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
)

// MessageHandler processes WebSocket messages and persists them to the database
type MessageHandler struct {
	chatRepo *repositories.ChatRepository
	hub      *Hub
	logger   zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	chatRepo *repositories.ChatRepository,
	hub *Hub,
	logger zerolog.Logger,
) *MessageHandler {
	return &MessageHandler{
		chatRepo: chatRepo,
		hub:      hub,
		logger:   logger,
	}
}

// Start begins processing messages from the hub
func (h *MessageHandler) Start() {
	go h.processMessages()
}

// processMessages listens for messages and saves them to the database
func (h *MessageHandler) processMessages() {
	messageChan := make(chan *Message, 64)

	h.hub.AddMessageListener(messageChan)

	for message := range messageChan {
		if message.Type == MessageTypeChat {
			h.processChatMessage(message)
		}
		// attendee_count updates are transient and never persisted
	}
}

// processChatMessage saves a chat message to the database
func (h *MessageHandler) processChatMessage(message *Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chatMessage := &models.ChatMessage{
		EventID:  message.EventID,
		SenderID: message.SenderID,
		Content:  message.Content,
	}

	messageID, err := h.chatRepo.Create(ctx, chatMessage)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("eventID", message.EventID).
			Int64("senderID", message.SenderID).
			Msg("Failed to save WebSocket message to database")
		return
	}

	message.ID = messageID

	h.logger.Debug().
		Int64("messageID", messageID).
		Int64("eventID", message.EventID).
		Msg("WebSocket message saved to database")
}
