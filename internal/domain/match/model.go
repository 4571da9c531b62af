package match

import "time"

// Match is one fixture attached to an event. Final scores stay nil until the
// result-sync process records the full-time result; they are populated
// together or not at all.
type Match struct {
	ID                string
	EventID           string
	HomeTeam          string
	AwayTeam          string
	KickoffAt         time.Time
	ExternalFixtureID int64
	FinalHomeScore    *int
	FinalAwayScore    *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Concluded reports whether the full-time result is known.
func (m Match) Concluded() bool {
	return m.FinalHomeScore != nil && m.FinalAwayScore != nil
}

// Label is the display name used for leaderboard export columns.
func (m Match) Label() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}
