package models

import "time"

// PreviewLimit caps the content preview carried on a notification.
const PreviewLimit = 100

// Notification represents a single recipient's copy of an activity event
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	Type        NotificationType `json:"type" db:"type"`

	ActorID     int64  `json:"actorId" db:"actor_id"`
	ActorName   string `json:"actorName" db:"actor_name"`
	ActorAvatar string `json:"actorAvatar" db:"actor_avatar"`

	// Optional subject references; at most one is normally set.
	EventID        *int64 `json:"eventId,omitempty" db:"event_id"`
	PostID         *int64 `json:"postId,omitempty" db:"post_id"`
	ConversationID *int64 `json:"conversationId,omitempty" db:"conversation_id"`

	ContentPreview string    `json:"contentPreview" db:"content_preview"`
	Read           bool      `json:"read" db:"read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// TruncatePreview shortens content to the preview limit, rune-safe.
func TruncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLimit {
		return content
	}
	return string(runes[:PreviewLimit])
}
