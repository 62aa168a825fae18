package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/affan/clubsphere/internal/db"
)

// EventParticipantRepository handles database operations for event registrations
type EventParticipantRepository struct {
	db *pgxpool.Pool
}

// NewEventParticipantRepository creates a new EventParticipantRepository
func NewEventParticipantRepository(pool *pgxpool.Pool) *EventParticipantRepository {
	return &EventParticipantRepository{db: pool}
}

// Toggle flips a user's registration for an event and returns the
// resulting state. The insert relies on the (event_id, user_id) unique
// constraint so that two concurrent toggles for the same pair serialize:
// exactly one insert wins and the loser falls through to the delete.
func (r *EventParticipantRepository) Toggle(ctx context.Context, eventID, userID int64) (bool, error) {
	var isRegistered bool

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`INSERT INTO event_participants (event_id, user_id)
			 VALUES ($1, $2)
			 ON CONFLICT ON CONSTRAINT event_participants_event_user_key DO NOTHING`,
			eventID, userID)
		if err != nil {
			return fmt.Errorf("error inserting registration: %w", err)
		}

		if result.RowsAffected() > 0 {
			isRegistered = true
			return nil
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`,
			eventID, userID); err != nil {
			return fmt.Errorf("error deleting registration: %w", err)
		}

		isRegistered = false
		return nil
	})
	if err != nil {
		return false, err
	}

	return isRegistered, nil
}

// IsRegistered reports whether the user is registered for the event.
func (r *EventParticipantRepository) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	var registered bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID).Scan(&registered)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return registered, nil
}

// RegisteredEventIDs returns, for the given events, which ones the user
// is registered for. Used to decorate event listings in one round trip.
func (r *EventParticipantRepository) RegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error) {
	registered := make(map[int64]bool, len(eventIDs))
	if len(eventIDs) == 0 {
		return registered, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT event_id FROM event_participants WHERE user_id = $1 AND event_id = ANY($2)`,
		userID, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		if err := rows.Scan(&eventID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		registered[eventID] = true
	}

	return registered, rows.Err()
}

// CountByEvent returns the number of registrations for an event.
func (r *EventParticipantRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
