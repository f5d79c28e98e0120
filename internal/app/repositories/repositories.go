package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	MemberRepository       *MemberRepository
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	NotificationRepository *NotificationRepository
	ChatRepository         *ChatRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories.
// previewLimit bounds the attendee preview strip maintained on events.
func NewRepositories(db *pgxpool.Pool, previewLimit int) *Repositories {
	return &Repositories{
		MemberRepository:       NewMemberRepository(db),
		EventRepository:        NewEventRepository(db),
		RegistrationRepository: NewRegistrationRepository(db, previewLimit),
		NotificationRepository: NewNotificationRepository(db),
		ChatRepository:         NewChatRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
