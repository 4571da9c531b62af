package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByEvent(ctx context.Context, eventID string) ([]match.Match, error) {
	const query = `
SELECT id, event_id, home_team, away_team, kickoff_at, external_fixture_id,
       final_home_score, final_away_score, created_at, updated_at
FROM matches
WHERE event_id = $1
ORDER BY kickoff_at, id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("select matches by event: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByEventAndID(ctx context.Context, eventID, matchID string) (match.Match, bool, error) {
	const query = `
SELECT id, event_id, home_team, away_team, kickoff_at, external_fixture_id,
       final_home_score, final_away_score, created_at, updated_at
FROM matches
WHERE event_id = $1 AND id = $2`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, eventID, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	const query = `
INSERT INTO matches (id, event_id, home_team, away_team, kickoff_at, external_fixture_id)
VALUES ($1, $2, $3, $4, $5, $6)`

	externalID := sql.NullInt64{Int64: item.ExternalFixtureID, Valid: item.ExternalFixtureID != 0}
	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.EventID, item.HomeTeam, item.AwayTeam, item.KickoffAt, externalID,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListPendingResults(ctx context.Context, now time.Time) ([]match.Match, error) {
	const query = `
SELECT id, event_id, home_team, away_team, kickoff_at, external_fixture_id,
       final_home_score, final_away_score, created_at, updated_at
FROM matches
WHERE kickoff_at < $1
  AND final_home_score IS NULL
ORDER BY kickoff_at, id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("select pending matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) SetFinalScore(ctx context.Context, matchID string, home, away int) error {
	const query = `
UPDATE matches
SET final_home_score = $2,
    final_away_score = $3,
    updated_at = now()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, matchID, home, away)
	if err != nil {
		return fmt.Errorf("update match final score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match final score rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s not found", matchID)
	}
	return nil
}
