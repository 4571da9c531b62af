package registration

import "context"

type Repository interface {
	// GetAttendeeByEmail looks an attendee up by their stable identity.
	GetAttendeeByEmail(ctx context.Context, email string) (Attendee, bool, error)

	// UpsertAttendee creates the attendee on first contact or refreshes
	// name/phone on subsequent registrations, keyed by email.
	UpsertAttendee(ctx context.Context, item Attendee) (Attendee, error)

	// GetByAttendeeAndEvent returns the registration for one (attendee, event)
	// pair, if any.
	GetByAttendeeAndEvent(ctx context.Context, attendeeID, eventID string) (Registration, bool, error)

	// Create inserts a registration. The store enforces uniqueness on
	// (event, attendee).
	Create(ctx context.Context, item Registration) (Registration, error)

	ListByEvent(ctx context.Context, eventID string) ([]Record, error)
}
