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
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
)

const eventColumns = "id, title, event_date, time_label, location, category, description, image_url, " +
	"spots, organizer, agenda, requirements, attendee_count, attendee_preview, created_by, created_at, updated_at"

// EventRepository handles event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new event and sets its ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	organizer, agenda, requirements, err := marshalEventJSON(event)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO events (title, event_date, time_label, location, category, description, image_url,
			spots, organizer, agenda, requirements, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		event.Title, event.Date, event.TimeLabel, event.Location, event.Category,
		event.Description, event.ImageURL, event.Spots, organizer, agenda, requirements,
		event.CreatedBy).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return event, nil
}

// Update persists event fields that can change after creation
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	organizer, agenda, requirements, err := marshalEventJSON(event)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("event_date", event.Date).
		Set("time_label", event.TimeLabel).
		Set("location", event.Location).
		Set("category", event.Category).
		Set("description", event.Description).
		Set("image_url", event.ImageURL).
		Set("spots", event.Spots).
		Set("organizer", organizer).
		Set("agenda", agenda).
		Set("requirements", requirements).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete removes an event. Registrations cascade at the database level.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// EventFilter narrows List and CountFiltered results
type EventFilter struct {
	Category *string
	Search   *string
	From     *time.Time
	To       *time.Time
}

// List retrieves events matching the filter, soonest first
func (r *EventRepository) List(ctx context.Context, filter EventFilter, offset uint64, limit int) ([]*models.Event, error) {
	query := r.applyFilter(r.sb.Select(eventColumns).From("events"), filter).
		OrderBy("event_date ASC").
		Offset(offset).
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

// CountFiltered returns the number of events matching the filter
func (r *EventRepository) CountFiltered(ctx context.Context, filter EventFilter) (int64, error) {
	query := r.applyFilter(r.sb.Select("COUNT(*)").From("events"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

func (r *EventRepository) applyFilter(query squirrel.SelectBuilder, filter EventFilter) squirrel.SelectBuilder {
	if filter.Category != nil && *filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"event_date": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"event_date": *filter.To})
	}
	return query
}

// CountAll returns the total number of events
func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}

// CountUpcoming returns the number of events that have not started yet
func (r *EventRepository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE event_date > $1`, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting upcoming events: %w", err)
	}
	return count, nil
}

// ReconcileAttendeeCounts recomputes every event's cached attendee_count from
// the registrations ledger and fixes any drift. Returns events checked and
// the number of counters corrected.
func (r *EventRepository) ReconcileAttendeeCounts(ctx context.Context) (checked int, corrected int, err error) {
	total, err := r.CountAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE events e
		SET attendee_count = sub.cnt
		FROM (
			SELECT e2.id, COUNT(r.id) AS cnt
			FROM events e2
			LEFT JOIN registrations r ON r.event_id = e2.id
			GROUP BY e2.id
		) sub
		WHERE sub.id = e.id AND e.attendee_count <> sub.cnt`)
	if err != nil {
		return 0, 0, fmt.Errorf("error reconciling attendee counts: %w", err)
	}

	return int(total), int(cmdTag.RowsAffected()), nil
}

// CountDriftedCounters reports how many events currently hold a cached
// attendee_count that disagrees with the registrations ledger.
func (r *EventRepository) CountDriftedCounters(ctx context.Context) (int64, error) {
	var drifted int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM (
			SELECT e.id
			FROM events e
			LEFT JOIN registrations r ON r.event_id = e.id
			GROUP BY e.id, e.attendee_count
			HAVING e.attendee_count <> COUNT(r.id)
		) drifted`).Scan(&drifted)
	if err != nil {
		return 0, fmt.Errorf("error counting drifted counters: %w", err)
	}
	return drifted, nil
}

// eventRowScanner is satisfied by both pgx.Row and pgx.Rows
type eventRowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row eventRowScanner) (*models.Event, error) {
	var event models.Event
	var organizer, agenda, requirements, preview []byte

	err := row.Scan(
		&event.ID, &event.Title, &event.Date, &event.TimeLabel, &event.Location,
		&event.Category, &event.Description, &event.ImageURL, &event.Spots,
		&organizer, &agenda, &requirements, &event.AttendeeCount, &preview,
		&event.CreatedBy, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(organizer) > 0 {
		if err := json.Unmarshal(organizer, &event.Organizer); err != nil {
			return nil, fmt.Errorf("error decoding organizer: %w", err)
		}
	}
	if len(agenda) > 0 {
		if err := json.Unmarshal(agenda, &event.Agenda); err != nil {
			return nil, fmt.Errorf("error decoding agenda: %w", err)
		}
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &event.Requirements); err != nil {
			return nil, fmt.Errorf("error decoding requirements: %w", err)
		}
	}
	if len(preview) > 0 {
		if err := json.Unmarshal(preview, &event.AttendeePreview); err != nil {
			return nil, fmt.Errorf("error decoding attendee preview: %w", err)
		}
	}

	event.Date = helpers.EnsureUTC(event.Date)

	return &event, nil
}

// marshalEventJSON encodes an event's JSONB columns. Absent values encode as
// empty JSON documents so the NOT NULL columns always receive a value.
func marshalEventJSON(event *models.Event) (organizer, agenda, requirements []byte, err error) {
	if event.Organizer == (models.Organizer{}) {
		organizer = []byte("{}")
	} else {
		organizer, err = json.Marshal(event.Organizer)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error encoding organizer: %w", err)
		}
	}
	if event.Agenda == nil {
		agenda = []byte("[]")
	} else {
		agenda, err = json.Marshal(event.Agenda)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error encoding agenda: %w", err)
		}
	}
	if event.Requirements == nil {
		requirements = []byte("[]")
	} else {
		requirements, err = json.Marshal(event.Requirements)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error encoding requirements: %w", err)
		}
	}
	return organizer, agenda, requirements, nil
}
