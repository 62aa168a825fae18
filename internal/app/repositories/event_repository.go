package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var eventColumns = []string{
	"id", "title", "description", "date", "venue", "organizer_club",
	"banner_url", "approved", "created_at", "updated_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.Venue,
		&e.OrganizerClub,
		&e.BannerURL,
		&e.Approved,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query squirrel.SelectBuilder) ([]models.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

// ListUpcomingApproved retrieves approved events dated at or after the
// given instant, soonest first.
func (r *EventRepository) ListUpcomingApproved(ctx context.Context, from time.Time) ([]models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"approved": true}).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// ListPending retrieves unapproved events in creation order, oldest first.
func (r *EventRepository) ListPending(ctx context.Context) ([]models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"approved": false}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// ListApprovedByClub retrieves a club's approved events, soonest first.
func (r *EventRepository) ListApprovedByClub(ctx context.Context, clubID int64) ([]models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"organizer_club": clubID, "approved": true}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// ListByClubIDs retrieves all events organized by the given clubs, newest
// date first. Approval state is not filtered; the dashboard shows heads
// their own pending events.
func (r *EventRepository) ListByClubIDs(ctx context.Context, clubIDs []int64) ([]models.Event, error) {
	if len(clubIDs) == 0 {
		return []models.Event{}, nil
	}

	query := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"organizer_club": clubIDs}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// GetByID retrieves an event by id.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return event, nil
}

// Create inserts a new event and returns its generated id. The approved
// flag is forced false; only the review workflow sets it.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := squirrel.Insert("events").
		Columns("title", "description", "date", "venue", "organizer_club", "banner_url", "approved").
		Values(event.Title, event.Description, event.Date, event.Venue,
			event.OrganizerClub, event.BannerURL, false).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// Approve marks an event approved. Idempotent; the returned bool reports
// whether the event exists.
func (r *EventRepository) Approve(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE events SET approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes an event. Participant rows cascade via the foreign key.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// CountUpcomingApproved returns the number of approved events dated at or
// after the given instant.
func (r *EventRepository) CountUpcomingApproved(ctx context.Context, from time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE approved = TRUE AND date >= $1`, from).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
