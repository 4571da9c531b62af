package spin

import "context"

type Repository interface {
	// Increment atomically bumps the (attendee, event) counter, creating it
	// on first spin. When the counter is already at the ceiling no write
	// happens and ok is false; the returned counter reflects the stored row
	// either way.
	Increment(ctx context.Context, attendeeID, eventID string, limit int) (Counter, bool, error)

	Get(ctx context.Context, attendeeID, eventID string) (Counter, bool, error)
}
