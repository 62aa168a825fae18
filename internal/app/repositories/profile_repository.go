package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
	"github.com/affan/clubsphere/internal/pkg/dberrors"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = "id, name, email, password_hash, role, created_at, updated_at"

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile and returns its generated id.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) (int64, error) {
	query := squirrel.Insert("profiles").
		Columns("name", "email", "password_hash", "role").
		Values(profile.Name, profile.Email, profile.PasswordHash, profile.Role).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a profile by id.
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	sql := fmt.Sprintf("SELECT %s FROM profiles WHERE id = $1", profileColumns)

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return profile, nil
}

// GetByEmail retrieves a profile by email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	sql := fmt.Sprintf("SELECT %s FROM profiles WHERE email = $1", profileColumns)

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return profile, nil
}

// GetByIDs retrieves profiles for a set of ids, keyed by id.
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Profile, error) {
	profiles := make(map[int64]*models.Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	query := squirrel.Select("id", "name", "email", "password_hash", "role", "created_at", "updated_at").
		From("profiles").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profiles[profile.ID] = profile
	}

	return profiles, rows.Err()
}
