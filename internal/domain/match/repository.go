package match

import (
	"context"
	"time"
)

type Repository interface {
	// ListByEvent returns the event's matches ordered by kickoff, then ID.
	ListByEvent(ctx context.Context, eventID string) ([]Match, error)

	// GetByEventAndID resolves a match only when it belongs to the event.
	GetByEventAndID(ctx context.Context, eventID, matchID string) (Match, bool, error)

	Create(ctx context.Context, item Match) error

	// ListPendingResults returns matches that kicked off before now and have
	// no final score yet, across all events.
	ListPendingResults(ctx context.Context, now time.Time) ([]Match, error)

	// SetFinalScore records the full-time result. Both components are written
	// in one statement so a match is never half-concluded.
	SetFinalScore(ctx context.Context, matchID string, home, away int) error
}
