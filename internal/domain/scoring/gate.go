package scoring

import "time"

// GateOpen reports whether a prediction may still be written for a match
// kicking off at the given instant. Open strictly before kickoff; a
// submission at exactly kickoff is closed. Both instants are compared as
// absolute points in time.
func GateOpen(kickoffAt, now time.Time) bool {
	return now.Before(kickoffAt)
}
