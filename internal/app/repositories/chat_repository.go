package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

// ChatRepository handles event chat message database operations
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a chat message and returns its ID
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (event_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`,
		message.EventID, message.SenderID, message.Content).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating chat message: %w", err)
	}

	message.ID = id
	return id, nil
}

// GetMessages retrieves messages for an event with sender info, newest first.
// Before/after bound the window for cursor-style paging.
func (r *ChatRepository) GetMessages(ctx context.Context, eventID int64, before, after *time.Time, limit int) ([]*models.ChatMessage, error) {
	query := r.sb.Select(
		"cm.id", "cm.event_id", "cm.sender_id", "cm.content", "cm.created_at",
		"m.id", "m.email", "m.first_name", "m.last_name", "m.role_type", "m.major", "m.avatar_url",
		"m.created_at", "m.updated_at",
	).
		From("chat_messages cm").
		Join("members m ON m.id = cm.sender_id").
		Where(squirrel.Eq{"cm.event_id": eventID}).
		OrderBy("cm.created_at DESC").
		Limit(uint64(limit))

	if before != nil {
		query = query.Where(squirrel.Lt{"cm.created_at": *before})
	}
	if after != nil {
		query = query.Where(squirrel.Gt{"cm.created_at": *after})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		var sender models.Member
		err := rows.Scan(
			&message.ID, &message.EventID, &message.SenderID, &message.Content, &message.CreatedAt,
			&sender.ID, &sender.Email, &sender.FirstName, &sender.LastName, &sender.RoleType,
			&sender.Major, &sender.AvatarURL, &sender.CreatedAt, &sender.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		message.Sender = &sender
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}
