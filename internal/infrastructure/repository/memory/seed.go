package memory

import (
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
)

const (
	EventIDJakarta  = "md-jakarta-2026"
	EventIDBandung  = "md-bandung-2026"
	EventIDSurabaya = "md-surabaya-2026"
)

// SeedEvents backs the in-memory store used for local development and demos.
func SeedEvents() []event.Event {
	return []event.Event{
		{
			ID:       EventIDJakarta,
			Name:     "Match Day Jakarta",
			City:     "Jakarta",
			Status:   event.StatusPublished,
			StartsAt: time.Date(2026, 6, 13, 18, 0, 0, 0, time.UTC),
		},
		{
			ID:       EventIDBandung,
			Name:     "Match Day Bandung",
			City:     "Bandung",
			Status:   event.StatusPublished,
			StartsAt: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		},
		{
			ID:       EventIDSurabaya,
			Name:     "Match Day Surabaya",
			City:     "Surabaya",
			Status:   event.StatusDraft,
			StartsAt: time.Date(2026, 6, 27, 18, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMatches() []match.Match {
	finalTwo := 2
	finalOne := 1

	return []match.Match{
		{
			ID:                "mt-jkt-001",
			EventID:           EventIDJakarta,
			HomeTeam:          "Indonesia",
			AwayTeam:          "Japan",
			KickoffAt:         time.Date(2026, 6, 13, 19, 0, 0, 0, time.UTC),
			ExternalFixtureID: 537001,
		},
		{
			ID:                "mt-jkt-002",
			EventID:           EventIDJakarta,
			HomeTeam:          "Argentina",
			AwayTeam:          "France",
			KickoffAt:         time.Date(2026, 6, 13, 22, 0, 0, 0, time.UTC),
			ExternalFixtureID: 537002,
		},
		{
			ID:                "mt-bdg-001",
			EventID:           EventIDBandung,
			HomeTeam:          "Brazil",
			AwayTeam:          "Germany",
			KickoffAt:         time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC),
			ExternalFixtureID: 537003,
		},
		{
			// Already concluded, useful for demoing a settled leaderboard.
			ID:                "mt-bdg-002",
			EventID:           EventIDBandung,
			HomeTeam:          "Spain",
			AwayTeam:          "England",
			KickoffAt:         time.Date(2026, 6, 6, 19, 0, 0, 0, time.UTC),
			ExternalFixtureID: 537004,
			FinalHomeScore:    &finalTwo,
			FinalAwayScore:    &finalOne,
		},
	}
}
