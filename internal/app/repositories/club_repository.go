package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/db"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

var clubColumns = []string{
	"id", "name", "category", "description", "faculty_advisor",
	"logo_url", "whatsapp_link", "created_by", "approved",
	"created_at", "updated_at",
}

func scanClub(row pgx.Row) (*models.Club, error) {
	var c models.Club
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Category,
		&c.Description,
		&c.FacultyAdvisor,
		&c.LogoURL,
		&c.WhatsappLink,
		&c.CreatedBy,
		&c.Approved,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClubRepository) queryClubs(ctx context.Context, query squirrel.SelectBuilder) ([]models.Club, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := []models.Club{}
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, *club)
	}

	return clubs, rows.Err()
}

// ListApproved retrieves approved clubs, optionally filtered by exact
// category and case-insensitive substring match on name or description,
// ordered by name ascending.
func (r *ClubRepository) ListApproved(ctx context.Context, category *models.Category, search *string) ([]models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where(squirrel.Eq{"approved": true}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if category != nil {
		query = query.Where(squirrel.Eq{"category": *category})
	}

	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	return r.queryClubs(ctx, query)
}

// ListPending retrieves unapproved clubs in creation order, oldest first.
func (r *ClubRepository) ListPending(ctx context.Context) ([]models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where(squirrel.Eq{"approved": false}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryClubs(ctx, query)
}

// GetByID retrieves a club by id.
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	club, err := scanClub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return club, nil
}

// GetByIDs retrieves clubs for a set of ids, keyed by id.
func (r *ClubRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Club, error) {
	clubsByID := make(map[int64]*models.Club, len(ids))
	if len(ids) == 0 {
		return clubsByID, nil
	}

	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	clubs, err := r.queryClubs(ctx, query)
	if err != nil {
		return nil, err
	}

	for i := range clubs {
		clubsByID[clubs[i].ID] = &clubs[i]
	}

	return clubsByID, nil
}

// ListByIDs retrieves clubs for a set of ids, ordered by name ascending.
// Approval state is not filtered; the dashboard shows a head their own
// pending clubs.
func (r *ClubRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Club, error) {
	if len(ids) == 0 {
		return []models.Club{}, nil
	}

	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryClubs(ctx, query)
}

// CreateWithHead inserts a club row and its creator's head membership row
// in a single transaction. A failed membership insert aborts the club
// creation; the caller never observes a club without a head.
func (r *ClubRepository) CreateWithHead(ctx context.Context, club *models.Club) (int64, error) {
	var clubID int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insertClub := squirrel.Insert("clubs").
			Columns("name", "category", "description", "faculty_advisor",
				"logo_url", "whatsapp_link", "created_by", "approved").
			Values(club.Name, club.Category, club.Description, club.FacultyAdvisor,
				club.LogoURL, club.WhatsappLink, club.CreatedBy, false).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := insertClub.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&clubID); err != nil {
			return fmt.Errorf("error inserting club: %w", err)
		}

		insertHead := squirrel.Insert("club_members").
			Columns("club_id", "user_id", "role_in_club").
			Values(clubID, club.CreatedBy, models.ClubRoleHead).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err = insertHead.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting head membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return clubID, nil
}

// Approve marks a club approved. It is idempotent: approving an already
// approved club touches the row again with the same value. The returned
// bool reports whether the club exists.
func (r *ClubRepository) Approve(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE clubs SET approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes a club and its membership rows in one transaction. The
// foreign keys cascade as well; the explicit delete keeps the cleanup
// visible and ordered.
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM club_members WHERE club_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting memberships: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting club: %w", err)
		}

		if result.RowsAffected() == 0 {
			return apperrors.ErrClubNotFound
		}

		return nil
	})
}

// CountApproved returns the number of approved clubs.
func (r *ClubRepository) CountApproved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clubs WHERE approved = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
