package registration

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"

	SourceOnline = "online"
	SourceOnsite = "onsite"
)

// Attendee is a person identified stably by email across events.
type Attendee struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Registration ties one attendee to one event. At most one exists per
// (attendee, event) pair.
type Registration struct {
	ID         string
	EventID    string
	AttendeeID string
	Source     string
	Status     string
	CreatedAt  time.Time
}

// Record is a registration joined with its attendee, the shape operator
// listings and exports consume.
type Record struct {
	Registration Registration
	Attendee     Attendee
}
