package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrPredictionsClosed rejects submissions at or after kickoff.
	ErrPredictionsClosed = errors.New("predictions are closed for this match")

	// ErrNotRegistered rejects predictions and spins from attendees without a
	// registration for the event.
	ErrNotRegistered = errors.New("attendee is not registered for this event")

	// ErrEventClosed rejects registrations once the event started or is not
	// published.
	ErrEventClosed = errors.New("event is not accepting registrations")

	// ErrSpinLimitReached rejects reward-wheel spins past the per-event cap.
	ErrSpinLimitReached = errors.New("spin limit reached for this event")
)
