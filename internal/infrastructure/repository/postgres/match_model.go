package postgres

import (
	"database/sql"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
)

type matchTableModel struct {
	ID                string        `db:"id"`
	EventID           string        `db:"event_id"`
	HomeTeam          string        `db:"home_team"`
	AwayTeam          string        `db:"away_team"`
	KickoffAt         time.Time     `db:"kickoff_at"`
	ExternalFixtureID sql.NullInt64 `db:"external_fixture_id"`
	FinalHomeScore    sql.NullInt64 `db:"final_home_score"`
	FinalAwayScore    sql.NullInt64 `db:"final_away_score"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:                row.ID,
		EventID:           row.EventID,
		HomeTeam:          row.HomeTeam,
		AwayTeam:          row.AwayTeam,
		KickoffAt:         row.KickoffAt,
		ExternalFixtureID: row.ExternalFixtureID.Int64,
		FinalHomeScore:    nullInt(row.FinalHomeScore),
		FinalAwayScore:    nullInt(row.FinalAwayScore),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
