package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
	"github.com/emrekaya/clubsphere/internal/pkg/websocket"
)

// ChatService defines the interface for event chat operations
type ChatService interface {
	GetMessages(ctx context.Context, eventID, userID int64, req *dto.GetChatMessagesRequest) (*dto.ChatMessageListResponse, error)
	SendMessage(ctx context.Context, eventID, userID int64, req *dto.CreateChatMessageRequest) (*dto.ChatMessageResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo            *repositories.ChatRepository
	registrationRepo    *repositories.RegistrationRepository
	memberRepo          *repositories.MemberRepository
	hub                 *websocket.Hub
	notificationService NotificationService
	logger              zerolog.Logger
}

// NewChatService creates a new ChatService. hub may be nil when no live
// channel is wired.
func NewChatService(
	chatRepo *repositories.ChatRepository,
	registrationRepo *repositories.RegistrationRepository,
	memberRepo *repositories.MemberRepository,
	hub *websocket.Hub,
	notificationService NotificationService,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatRepo:            chatRepo,
		registrationRepo:    registrationRepo,
		memberRepo:          memberRepo,
		hub:                 hub,
		notificationService: notificationService,
		logger:              logger,
	}
}

// requireRegistered verifies the member holds a registration for the event
func (s *chatServiceImpl) requireRegistered(ctx context.Context, eventID, userID int64) error {
	registered, err := s.registrationRepo.IsRegistered(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("error checking registration: %w", err)
	}
	if !registered {
		return apperrors.NewForbiddenError("Only registered attendees can access the event chat")
	}
	return nil
}

// GetMessages retrieves an event's chat history for a registered attendee
func (s *chatServiceImpl) GetMessages(ctx context.Context, eventID, userID int64, req *dto.GetChatMessagesRequest) (*dto.ChatMessageListResponse, error) {
	if err := s.requireRegistered(ctx, eventID, userID); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := s.chatRepo.GetMessages(ctx, eventID, req.Before, req.After, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chat messages: %w", err)
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, dto.ToChatMessageResponse(message))
	}

	return &dto.ChatMessageListResponse{Messages: responses}, nil
}

// SendMessage persists a chat message and pushes it to the event's watchers
func (s *chatServiceImpl) SendMessage(ctx context.Context, eventID, userID int64, req *dto.CreateChatMessageRequest) (*dto.ChatMessageResponse, error) {
	s.logger.Debug().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Msg("Sending chat message")

	if err := s.requireRegistered(ctx, eventID, userID); err != nil {
		return nil, err
	}

	sender, err := s.memberRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		EventID:   eventID,
		SenderID:  userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
		Sender:    sender,
	}

	if _, err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToEvent(&websocket.Message{
			Type:      websocket.MessageTypeChat,
			EventID:   eventID,
			SenderID:  userID,
			Content:   req.Content,
			Timestamp: message.CreatedAt,
			ID:        message.ID,
		})
	}

	if s.notificationService != nil {
		recipients, err := s.registrationRepo.ListAttendeeIDs(ctx, eventID, userID)
		if err != nil {
			s.logger.Error().Err(err).Int64("eventID", eventID).Msg("Failed to list attendees for message notification")
		} else if len(recipients) > 0 {
			// Notification fan-out is best-effort and detached from the request lifetime
			go func() {
				notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := s.notificationService.NotifyMessage(notifyCtx, eventID, sender, recipients, req.Content); err != nil {
					s.logger.Error().Err(err).Int64("eventID", eventID).Msg("Message notification fan-out failed")
				}
			}()
		}
	}

	resp := dto.ToChatMessageResponse(message)
	return &resp, nil
}
