package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
	"github.com/emrekaya/clubsphere/internal/pkg/dberrors"
)

// MemberRepository handles member database operations
type MemberRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new member and sets its ID
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO members (email, password, first_name, last_name, role_type, major, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		member.Email, member.PasswordHash, member.FirstName, member.LastName,
		member.RoleType, member.Major, member.AvatarURL).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "members_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating member: %w", err)
	}

	member.ID = id
	return nil
}

// GetByEmail retrieves a member by email
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	member := &models.Member{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, first_name, last_name, role_type, major, avatar_url, created_at, updated_at
		FROM members
		WHERE email = $1`,
		email).Scan(
		&member.ID, &member.Email, &member.PasswordHash, &member.FirstName, &member.LastName,
		&member.RoleType, &member.Major, &member.AvatarURL, &member.CreatedAt, &member.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error retrieving member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	member := &models.Member{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, first_name, last_name, role_type, major, avatar_url, created_at, updated_at
		FROM members
		WHERE id = $1`,
		id).Scan(
		&member.ID, &member.Email, &member.PasswordHash, &member.FirstName, &member.LastName,
		&member.RoleType, &member.Major, &member.AvatarURL, &member.CreatedAt, &member.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error retrieving member: %w", err)
	}

	return member, nil
}

// EmailExists checks if an email already exists
func (r *MemberRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UpdateProfile updates a member's basic profile information
func (r *MemberRepository) UpdateProfile(ctx context.Context, memberID int64, firstName, lastName, major, avatarURL string) error {
	sql, args, err := r.sb.Update("members").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("major", major).
		Set("avatar_url", avatarURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": memberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}

// List retrieves members with optional search, newest first
func (r *MemberRepository) List(ctx context.Context, search string, offset uint64, limit int) ([]*models.Member, error) {
	query := r.sb.Select(
		"id", "email", "first_name", "last_name", "role_type", "major", "avatar_url", "created_at", "updated_at",
	).
		From("members").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit))

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
		})
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

	var members []*models.Member
	for rows.Next() {
		var member models.Member
		err := rows.Scan(
			&member.ID, &member.Email, &member.FirstName, &member.LastName,
			&member.RoleType, &member.Major, &member.AvatarURL, &member.CreatedAt, &member.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return members, nil
}

// ListMemberIDs returns the IDs of all members except the given one.
// Used for notification fan-out when a new event is published.
func (r *MemberRepository) ListMemberIDs(ctx context.Context, excludeMemberID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM members WHERE id <> $1`, excludeMemberID)
	if err != nil {
		return nil, fmt.Errorf("error listing member IDs: %w", err)
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

// Count returns the total number of members matching the search
func (r *MemberRepository) Count(ctx context.Context, search string) (int64, error) {
	query := r.sb.Select("COUNT(*)").From("members")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

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
