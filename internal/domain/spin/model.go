package spin

import "time"

// Counter tracks reward-wheel spins for one attendee at one event.
type Counter struct {
	AttendeeID string
	EventID    string
	TotalSpins int
	LastSpinAt time.Time
}
