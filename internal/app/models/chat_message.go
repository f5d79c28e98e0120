package models

import "time"

// ChatMessage represents a message in an event's discussion thread
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"eventId" db:"event_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Sender *Member `json:"sender,omitempty"`
}
