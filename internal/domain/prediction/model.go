package prediction

import "time"

// Prediction is one attendee's score pick for one match. The store enforces
// at most one row per (registration, match); resubmission overwrites the
// scores and keeps the original CreatedAt, which the leaderboard uses as the
// fast-fingers tie-break.
type Prediction struct {
	ID             string
	RegistrationID string
	EventID        string
	MatchID        string
	HomeScore      int
	AwayScore      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Row is a prediction joined with the submitting attendee's identity, the
// shape the aggregator consumes.
type Row struct {
	AttendeeEmail string
	AttendeeName  string
	MatchID       string
	HomeScore     int
	AwayScore     int
	CreatedAt     time.Time
}
