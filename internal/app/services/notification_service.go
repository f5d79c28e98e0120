package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/monitoring"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	FanOutEventCreated(ctx context.Context, event *models.Event, actor *models.Member) error
	NotifyMessage(ctx context.Context, eventID int64, actor *models.Member, recipientIDs []int64, content string) error
	List(ctx context.Context, recipientID int64, page, size int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
	UnreadCount(ctx context.Context, recipientID int64) (*dto.UnreadCountResponse, error)
}

// notificationStore is the slice of the notification repository the service needs
type notificationStore interface {
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	RecipientsWithoutEventNotification(ctx context.Context, candidateIDs []int64, eventID int64, nType models.NotificationType) ([]int64, error)
	ListByRecipient(ctx context.Context, recipientID int64, offset uint64, limit int) ([]*models.Notification, error)
	CountByRecipient(ctx context.Context, recipientID int64) (int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, notificationID, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
}

// memberLister enumerates fan-out recipients
type memberLister interface {
	ListMemberIDs(ctx context.Context, excludeMemberID int64) ([]int64, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo notificationStore
	memberLister     memberLister
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo notificationStore,
	memberLister memberLister,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		memberLister:     memberLister,
		logger:           logger,
	}
}

// FanOutEventCreated notifies every member except the event's creator that a
// new event was published. The fan-out is idempotent: members who already
// hold an event notification for this event are skipped, so retries after a
// partial failure never produce duplicates.
func (s *notificationServiceImpl) FanOutEventCreated(ctx context.Context, event *models.Event, actor *models.Member) error {
	s.logger.Debug().
		Int64("eventID", event.ID).
		Int64("actorID", actor.ID).
		Msg("Fanning out event notification")

	recipients, err := s.memberLister.ListMemberIDs(ctx, actor.ID)
	if err != nil {
		monitoring.RecordFanOut("error")
		return fmt.Errorf("error listing fan-out recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}

	remaining, err := s.notificationRepo.RecipientsWithoutEventNotification(ctx, recipients, event.ID, models.NotificationEvent)
	if err != nil {
		monitoring.RecordFanOut("error")
		return fmt.Errorf("error deduplicating fan-out recipients: %w", err)
	}
	if len(remaining) == 0 {
		s.logger.Debug().Int64("eventID", event.ID).Msg("Fan-out already complete, nothing to do")
		return nil
	}

	preview := models.TruncatePreview(event.Title)
	eventID := event.ID

	notifications := make([]*models.Notification, 0, len(remaining))
	for _, recipientID := range remaining {
		notifications = append(notifications, &models.Notification{
			RecipientID:    recipientID,
			Type:           models.NotificationEvent,
			ActorID:        actor.ID,
			ActorName:      actor.FullName(),
			ActorAvatar:    actor.AvatarURL,
			EventID:        &eventID,
			ContentPreview: preview,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		monitoring.RecordFanOut("failure")
		return fmt.Errorf("error creating fan-out notifications: %w", err)
	}

	monitoring.RecordFanOut("success")
	s.logger.Info().
		Int64("eventID", event.ID).
		Int("recipients", len(remaining)).
		Msg("Event notification fan-out complete")

	return nil
}

// NotifyMessage notifies an event's registered attendees about a new chat
// message. recipientIDs comes from the caller (the chat service knows who is
// registered); duplicates per message are acceptable, so no dedupe query runs.
func (s *notificationServiceImpl) NotifyMessage(ctx context.Context, eventID int64, actor *models.Member, recipientIDs []int64, content string) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	preview := models.TruncatePreview(content)

	notifications := make([]*models.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		if recipientID == actor.ID {
			continue
		}
		id := eventID
		notifications = append(notifications, &models.Notification{
			RecipientID:    recipientID,
			Type:           models.NotificationMessage,
			ActorID:        actor.ID,
			ActorName:      actor.FullName(),
			ActorAvatar:    actor.AvatarURL,
			EventID:        &id,
			ContentPreview: preview,
		})
	}
	if len(notifications) == 0 {
		return nil
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		monitoring.RecordFanOut("failure")
		return fmt.Errorf("error creating message notifications: %w", err)
	}

	monitoring.RecordFanOut("success")
	return nil
}

// List retrieves a member's notifications, newest first
func (s *notificationServiceImpl) List(ctx context.Context, recipientID int64, page, size int) (*dto.NotificationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	notifications, err := s.notificationRepo.ListByRecipient(ctx, recipientID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}

	total, err := s.notificationRepo.CountByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("error counting notifications: %w", err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("error counting unread notifications: %w", err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:             n.ID,
			Type:           n.Type,
			ActorID:        n.ActorID,
			ActorName:      n.ActorName,
			ActorAvatar:    n.ActorAvatar,
			EventID:        n.EventID,
			PostID:         n.PostID,
			ConversationID: n.ConversationID,
			ContentPreview: n.ContentPreview,
			Read:           n.Read,
			CreatedAt:      n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications:  responses,
		UnreadCount:    unread,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// MarkRead marks one notification as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, recipientID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, recipientID)
}

// MarkAllRead marks all of a member's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

// UnreadCount returns the member's unread notification count
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, recipientID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}
