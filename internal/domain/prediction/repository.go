package prediction

import "context"

type Repository interface {
	// Upsert creates the prediction for (registration, match) or overwrites
	// its scores in place, preserving CreatedAt. The create-or-update
	// decision is resolved atomically by the store's conflict handling; the
	// returned bool is true when a new row was created.
	Upsert(ctx context.Context, item Prediction) (Prediction, bool, error)

	// ListByEvent returns every prediction for the event joined with the
	// submitting attendee's identity.
	ListByEvent(ctx context.Context, eventID string) ([]Row, error)

	// ListByRegistration returns one attendee's predictions for an event,
	// empty when none exist.
	ListByRegistration(ctx context.Context, registrationID string) ([]Prediction, error)
}
