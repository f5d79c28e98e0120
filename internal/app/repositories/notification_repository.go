package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateBatch inserts notifications in one statement. Used by event fan-out.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	insert := r.sb.Insert("notifications").
		Columns("recipient_id", "type", "actor_id", "actor_name", "actor_avatar",
			"event_id", "post_id", "conversation_id", "content_preview", "read")

	for _, n := range notifications {
		insert = insert.Values(n.RecipientID, n.Type, n.ActorID, n.ActorName, n.ActorAvatar,
			n.EventID, n.PostID, n.ConversationID, n.ContentPreview, false)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build batch insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating notifications: %w", err)
	}

	return nil
}

// RecipientsWithoutEventNotification filters candidate recipients down to
// those who do not yet have a notification of the given type for the event.
func (r *NotificationRepository) RecipientsWithoutEventNotification(ctx context.Context, candidateIDs []int64, eventID int64, nType models.NotificationType) ([]int64, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select("recipient_id").
		From("notifications").
		Where(squirrel.Eq{"recipient_id": candidateIDs, "event_id": eventID, "type": nType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	already := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		already[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	var remaining []int64
	for _, id := range candidateIDs {
		if !already[id] {
			remaining = append(remaining, id)
		}
	}

	return remaining, nil
}

// ListByRecipient retrieves a recipient's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, offset uint64, limit int) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select(
		"id", "recipient_id", "type", "actor_id", "actor_name", "actor_avatar",
		"event_id", "post_id", "conversation_id", "content_preview", "read", "created_at",
	).
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Type, &n.ActorID, &n.ActorName, &n.ActorAvatar,
			&n.EventID, &n.PostID, &n.ConversationID, &n.ContentPreview, &n.Read, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notifications, nil
}

// CountByRecipient returns the total number of notifications for a recipient
func (r *NotificationRepository) CountByRecipient(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`,
		recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting notifications: %w", err)
	}
	return count, nil
}

// CountUnread returns the number of unread notifications for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = false`,
		recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification as read. The recipient check prevents
// marking another member's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, recipientID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = true
		WHERE id = $1 AND recipient_id = $2`,
		notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks all of a recipient's notifications as read and returns
// how many were updated
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = true
		WHERE recipient_id = $1 AND read = false`,
		recipientID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// DeleteOldRead removes read notifications older than the cutoff
func (r *NotificationRepository) DeleteOldRead(ctx context.Context, olderThan time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM notifications WHERE read = true AND created_at < $1`,
		olderThan)
	if err != nil {
		return 0, fmt.Errorf("error deleting old notifications: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
