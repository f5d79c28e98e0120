package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/db"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
)

const registrationColumns = "id, event_id, user_id, category, name, email, phone, major, student_year, details, created_at"

// RegisterOutcome reports the result of a register or cancel operation
type RegisterOutcome struct {
	// Changed is false when the operation was a no-op (already registered
	// on register, not registered on cancel)
	Changed bool

	// AttendeeCount is the authoritative count after the operation
	AttendeeCount int

	// SpotsRemaining derived from the event's capacity, 0 when unlimited
	SpotsRemaining int
}

// RegistrationRepository handles the event registration ledger and keeps the
// cached attendee counters on events in sync with it.
type RegistrationRepository struct {
	db           *pgxpool.Pool
	sb           squirrel.StatementBuilderType
	previewLimit int
}

// NewRegistrationRepository creates a new RegistrationRepository.
// previewLimit bounds the attendee preview strip stored on each event.
func NewRegistrationRepository(pool *pgxpool.Pool, previewLimit int) *RegistrationRepository {
	return &RegistrationRepository{
		db:           pool,
		sb:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		previewLimit: previewLimit,
	}
}

// Register inserts a registration for the event if one does not exist yet.
// The event row is locked for the duration of the transaction so the
// capacity check and counter update cannot race with concurrent callers.
// A second registration by the same member is a no-op, not an error.
func (r *RegistrationRepository) Register(ctx context.Context, reg *models.Registration) (RegisterOutcome, error) {
	var outcome RegisterOutcome

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var eventDate time.Time
		var spots, attendeeCount int
		var category models.EventCategory

		err := tx.QueryRow(ctx, `
			SELECT event_date, spots, attendee_count, category
			FROM events
			WHERE id = $1
			FOR UPDATE`,
			reg.EventID).Scan(&eventDate, &spots, &attendeeCount, &category)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event row: %w", err)
		}

		if !eventDate.After(time.Now()) {
			return apperrors.ErrEventStarted
		}

		// Capacity is enforced against the ledger-backed counter while the
		// event row is locked
		if spots > 0 && attendeeCount >= spots {
			return apperrors.ErrEventFull
		}

		// The ledger records the form variant that was active at
		// registration time
		reg.Category = category

		details, err := json.Marshal(reg.Details)
		if err != nil {
			return fmt.Errorf("error encoding registration details: %w", err)
		}

		var regID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO registrations (event_id, user_id, category, name, email, phone, major, student_year, details)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (event_id, user_id) DO NOTHING
			RETURNING id`,
			reg.EventID, reg.UserID, reg.Category, reg.Name, reg.Email,
			reg.Phone, reg.Major, reg.StudentYear, details).Scan(&regID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Already registered, leave the counter untouched
				outcome = newOutcome(false, attendeeCount, spots)
				return nil
			}
			return fmt.Errorf("error inserting registration: %w", err)
		}
		reg.ID = regID

		err = tx.QueryRow(ctx, `
			UPDATE events SET attendee_count = attendee_count + 1, updated_at = now()
			WHERE id = $1
			RETURNING attendee_count`,
			reg.EventID).Scan(&attendeeCount)
		if err != nil {
			return fmt.Errorf("error incrementing attendee count: %w", err)
		}

		if err := r.refreshPreview(ctx, tx, reg.EventID); err != nil {
			return err
		}

		outcome = newOutcome(true, attendeeCount, spots)
		return nil
	})

	return outcome, err
}

// Cancel removes a member's registration for an event. Cancelling when not
// registered is a no-op, not an error.
func (r *RegistrationRepository) Cancel(ctx context.Context, eventID, userID int64) (RegisterOutcome, error) {
	var outcome RegisterOutcome

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var spots, attendeeCount int

		err := tx.QueryRow(ctx, `
			SELECT spots, attendee_count
			FROM events
			WHERE id = $1
			FOR UPDATE`,
			eventID).Scan(&spots, &attendeeCount)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event row: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`,
			eventID, userID)
		if err != nil {
			return fmt.Errorf("error deleting registration: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			outcome = newOutcome(false, attendeeCount, spots)
			return nil
		}

		// GREATEST guards against a counter that drifted below the ledger
		err = tx.QueryRow(ctx, `
			UPDATE events SET attendee_count = GREATEST(attendee_count - 1, 0), updated_at = now()
			WHERE id = $1
			RETURNING attendee_count`,
			eventID).Scan(&attendeeCount)
		if err != nil {
			return fmt.Errorf("error decrementing attendee count: %w", err)
		}

		if err := r.refreshPreview(ctx, tx, eventID); err != nil {
			return err
		}

		outcome = newOutcome(true, attendeeCount, spots)
		return nil
	})

	return outcome, err
}

// refreshPreview recomputes the event's attendee preview strip from the
// ledger, earliest registrations first.
func (r *RegistrationRepository) refreshPreview(ctx context.Context, tx pgx.Tx, eventID int64) error {
	limit := r.previewLimit
	if limit <= 0 {
		limit = models.DefaultAttendeePreviewSize
	}

	rows, err := tx.Query(ctx, `
		SELECT m.id, m.first_name || ' ' || m.last_name, m.major, m.avatar_url
		FROM registrations r
		JOIN members m ON m.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
		LIMIT $2`,
		eventID, limit)
	if err != nil {
		return fmt.Errorf("error querying attendee preview: %w", err)
	}
	defer rows.Close()

	preview := make([]models.AttendeePreview, 0, limit)
	for rows.Next() {
		var p models.AttendeePreview
		if err := rows.Scan(&p.UserID, &p.Name, &p.Major, &p.AvatarURL); err != nil {
			return fmt.Errorf("error scanning preview row: %w", err)
		}
		preview = append(preview, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	data, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("error encoding attendee preview: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE events SET attendee_preview = $1 WHERE id = $2`, data, eventID); err != nil {
		return fmt.Errorf("error updating attendee preview: %w", err)
	}

	return nil
}

// IsRegistered checks if a member is registered for an event
func (r *RegistrationRepository) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking registration: %w", err)
	}
	return exists, nil
}

// ListAttendeeIDs returns the member IDs registered for an event, excluding
// excludeUserID.
func (r *RegistrationRepository) ListAttendeeIDs(ctx context.Context, eventID, excludeUserID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM registrations WHERE event_id = $1 AND user_id <> $2`,
		eventID, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendee IDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ids, nil
}

// CountByEventID returns the ledger count of registrations for an event
func (r *RegistrationRepository) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM registrations WHERE event_id = $1`,
		eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// CountAll returns the total number of registrations across all events
func (r *RegistrationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// ListByEventID retrieves registrations for an event, earliest first
func (r *RegistrationRepository) ListByEventID(ctx context.Context, eventID int64, offset uint64, limit int) ([]*models.Registration, error) {
	sql, args, err := r.sb.Select(registrationColumns).
		From("registrations").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at ASC").
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

	var registrations []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var details []byte
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Category, &reg.Name, &reg.Email,
			&reg.Phone, &reg.Major, &reg.StudentYear, &details, &reg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &reg.Details); err != nil {
				return nil, fmt.Errorf("error decoding registration details: %w", err)
			}
		}
		registrations = append(registrations, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return registrations, nil
}

// ListEventIDsByUserID returns the IDs of events the member is registered for
func (r *RegistrationRepository) ListEventIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT event_id FROM registrations WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing registered events: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

func newOutcome(changed bool, attendeeCount, spots int) RegisterOutcome {
	remaining := 0
	if spots > 0 {
		remaining = spots - attendeeCount
		if remaining < 0 {
			remaining = 0
		}
	}
	return RegisterOutcome{
		Changed:        changed,
		AttendeeCount:  attendeeCount,
		SpotsRemaining: remaining,
	}
}
