package dto

import (
	"time"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

// NotificationResponse represents one notification
type NotificationResponse struct {
	ID             int64                   `json:"id"`
	Type           models.NotificationType `json:"type"`
	ActorID        int64                   `json:"actorId"`
	ActorName      string                  `json:"actorName"`
	ActorAvatar    string                  `json:"actorAvatar,omitempty"`
	EventID        *int64                  `json:"eventId,omitempty"`
	PostID         *int64                  `json:"postId,omitempty"`
	ConversationID *int64                  `json:"conversationId,omitempty"`
	ContentPreview string                  `json:"contentPreview,omitempty"`
	Read           bool                    `json:"read"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	PaginationInfo
}

// UnreadCountResponse represents the caller's unread notification count
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}
