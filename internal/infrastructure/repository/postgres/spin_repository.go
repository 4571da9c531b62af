package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/spin"
)

type SpinRepository struct {
	db *sqlx.DB
}

func NewSpinRepository(db *sqlx.DB) *SpinRepository {
	return &SpinRepository{db: db}
}

func (r *SpinRepository) Increment(ctx context.Context, attendeeID, eventID string, limit int) (spin.Counter, bool, error) {
	// The WHERE on the conflict update makes limit enforcement atomic: a
	// counter at the ceiling matches no row and the RETURNING set is empty.
	const query = `
INSERT INTO event_spins (attendee_id, event_id, total_spins, last_spin_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (attendee_id, event_id)
DO UPDATE SET
    total_spins = event_spins.total_spins + 1,
    last_spin_at = now()
WHERE event_spins.total_spins < $3
RETURNING attendee_id, event_id, total_spins, last_spin_at`

	var row spinTableModel
	err := r.db.GetContext(ctx, &row, query, attendeeID, eventID, limit)
	if err == nil {
		return counterFromRow(row), true, nil
	}
	if !isNotFound(err) {
		return spin.Counter{}, false, fmt.Errorf("increment spin counter: %w", err)
	}

	// Limit reached. Read the stored row so the caller can report usage.
	counter, ok, getErr := r.Get(ctx, attendeeID, eventID)
	if getErr != nil {
		return spin.Counter{}, false, getErr
	}
	if !ok {
		return spin.Counter{}, false, fmt.Errorf("spin counter vanished for attendee %s event %s", attendeeID, eventID)
	}
	return counter, false, nil
}

func (r *SpinRepository) Get(ctx context.Context, attendeeID, eventID string) (spin.Counter, bool, error) {
	const query = `
SELECT attendee_id, event_id, total_spins, last_spin_at
FROM event_spins
WHERE attendee_id = $1 AND event_id = $2`

	var row spinTableModel
	if err := r.db.GetContext(ctx, &row, query, attendeeID, eventID); err != nil {
		if isNotFound(err) {
			return spin.Counter{}, false, nil
		}
		return spin.Counter{}, false, fmt.Errorf("get spin counter: %w", err)
	}

	return counterFromRow(row), true, nil
}

type spinTableModel struct {
	AttendeeID string    `db:"attendee_id"`
	EventID    string    `db:"event_id"`
	TotalSpins int       `db:"total_spins"`
	LastSpinAt time.Time `db:"last_spin_at"`
}

func counterFromRow(row spinTableModel) spin.Counter {
	return spin.Counter{
		AttendeeID: row.AttendeeID,
		EventID:    row.EventID,
		TotalSpins: row.TotalSpins,
		LastSpinAt: row.LastSpinAt,
	}
}
