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
)

// ClubMemberRepository handles database operations for club memberships
type ClubMemberRepository struct {
	db *pgxpool.Pool
}

// NewClubMemberRepository creates a new ClubMemberRepository
func NewClubMemberRepository(db *pgxpool.Pool) *ClubMemberRepository {
	return &ClubMemberRepository{db: db}
}

// Toggle atomically joins or leaves a club: insert the membership row if
// absent, delete it otherwise. The INSERT leans on the unique
// (club_id, user_id) constraint, so two concurrent toggles can never leave
// two rows behind; the losing insert falls through to the delete branch.
// Returns the resulting state: true if the user is now a member.
func (r *ClubMemberRepository) Toggle(ctx context.Context, clubID, userID int64) (bool, error) {
	var isMember bool

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			INSERT INTO club_members (club_id, user_id, role_in_club)
			VALUES ($1, $2, $3)
			ON CONFLICT ON CONSTRAINT club_members_club_user_key DO NOTHING`,
			clubID, userID, models.ClubRoleMember)
		if err != nil {
			return fmt.Errorf("error inserting membership: %w", err)
		}

		if result.RowsAffected() > 0 {
			isMember = true
			return nil
		}

		// Row already present: this toggle is a leave.
		if _, err := tx.Exec(ctx,
			`DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`,
			clubID, userID); err != nil {
			return fmt.Errorf("error deleting membership: %w", err)
		}

		isMember = false
		return nil
	})
	if err != nil {
		return false, err
	}

	return isMember, nil
}

// IsMember checks if a user is a member of a specific club.
func (r *ClubMemberRepository) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx,
		`SELECT 1 FROM club_members WHERE club_id = $1 AND user_id = $2`,
		clubID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// IsHead checks if a user heads a specific club.
func (r *ClubMemberRepository) IsHead(ctx context.Context, clubID, userID int64) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx,
		`SELECT 1 FROM club_members WHERE club_id = $1 AND user_id = $2 AND role_in_club = $3`,
		clubID, userID, models.ClubRoleHead).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// CountByClub returns the number of members in a club.
func (r *ClubMemberRepository) CountByClub(ctx context.Context, clubID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM club_members WHERE club_id = $1`, clubID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// HeadClubIDs retrieves the ids of all clubs the user heads.
func (r *ClubMemberRepository) HeadClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := squirrel.Select("club_id").
		From("club_members").
		Where(squirrel.Eq{"user_id": userID, "role_in_club": models.ClubRoleHead}).
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

	var clubIDs []int64
	for rows.Next() {
		var clubID int64
		if err := rows.Scan(&clubID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubIDs = append(clubIDs, clubID)
	}

	return clubIDs, rows.Err()
}

// ListByClub retrieves all membership rows for a club, newest first.
func (r *ClubMemberRepository) ListByClub(ctx context.Context, clubID int64) ([]*models.ClubMember, error) {
	query := squirrel.Select("id", "club_id", "user_id", "role_in_club", "joined_at").
		From("club_members").
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("joined_at DESC").
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

	var members []*models.ClubMember
	for rows.Next() {
		var m models.ClubMember
		if err := rows.Scan(&m.ID, &m.ClubID, &m.UserID, &m.RoleInClub, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, &m)
	}

	return members, rows.Err()
}
