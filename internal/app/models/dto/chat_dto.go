package dto

import (
	"time"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

// --- Request DTOs ---

// CreateChatMessageRequest represents data for creating a new chat message
type CreateChatMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// GetChatMessagesRequest represents filter parameters for retrieving chat messages
type GetChatMessagesRequest struct {
	Before *time.Time `form:"before,omitempty"`
	After  *time.Time `form:"after,omitempty"`
	Limit  int        `form:"limit,default=50" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// ChatMessageResponse represents a chat message with sender information
type ChatMessageResponse struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"eventId"`
	SenderID     int64     `json:"senderId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	SenderName   string    `json:"senderName,omitempty"`
	SenderAvatar string    `json:"senderAvatar,omitempty"`
}

// ChatMessageListResponse represents a list of chat messages
type ChatMessageListResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ToChatMessageResponse maps a models.ChatMessage to its response shape
func ToChatMessageResponse(message *models.ChatMessage) ChatMessageResponse {
	response := ChatMessageResponse{
		ID:        message.ID,
		EventID:   message.EventID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
	if message.Sender != nil {
		response.SenderName = message.Sender.FullName()
		response.SenderAvatar = message.Sender.AvatarURL
	}
	return response
}
