package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/prediction"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) (prediction.Prediction, bool, error) {
	// xmax = 0 only on freshly inserted tuples, which distinguishes the
	// create path from an overwrite without a second round trip.
	const query = `
INSERT INTO predictions (id, registration_id, event_id, match_id, home_score, away_score)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (registration_id, match_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = now()
RETURNING id, registration_id, event_id, match_id, home_score, away_score,
          created_at, updated_at, (xmax = 0) AS is_new`

	var row struct {
		ID             string    `db:"id"`
		RegistrationID string    `db:"registration_id"`
		EventID        string    `db:"event_id"`
		MatchID        string    `db:"match_id"`
		HomeScore      int       `db:"home_score"`
		AwayScore      int       `db:"away_score"`
		CreatedAt      time.Time `db:"created_at"`
		UpdatedAt      time.Time `db:"updated_at"`
		IsNew          bool      `db:"is_new"`
	}
	if err := r.db.GetContext(ctx, &row, query,
		item.ID, item.RegistrationID, item.EventID, item.MatchID, item.HomeScore, item.AwayScore,
	); err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("upsert prediction: %w", err)
	}

	return prediction.Prediction{
		ID:             row.ID,
		RegistrationID: row.RegistrationID,
		EventID:        row.EventID,
		MatchID:        row.MatchID,
		HomeScore:      row.HomeScore,
		AwayScore:      row.AwayScore,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, row.IsNew, nil
}

func (r *PredictionRepository) ListByEvent(ctx context.Context, eventID string) ([]prediction.Row, error) {
	const query = `
SELECT a.email AS attendee_email, a.name AS attendee_name,
       p.match_id, p.home_score, p.away_score, p.created_at
FROM predictions p
JOIN registrations r ON r.id = p.registration_id
JOIN attendees a ON a.id = r.attendee_id
WHERE p.event_id = $1
ORDER BY a.email, p.match_id`

	var rows []struct {
		AttendeeEmail string    `db:"attendee_email"`
		AttendeeName  string    `db:"attendee_name"`
		MatchID       string    `db:"match_id"`
		HomeScore     int       `db:"home_score"`
		AwayScore     int       `db:"away_score"`
		CreatedAt     time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("select predictions by event: %w", err)
	}

	out := make([]prediction.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Row{
			AttendeeEmail: row.AttendeeEmail,
			AttendeeName:  row.AttendeeName,
			MatchID:       row.MatchID,
			HomeScore:     row.HomeScore,
			AwayScore:     row.AwayScore,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

func (r *PredictionRepository) ListByRegistration(ctx context.Context, registrationID string) ([]prediction.Prediction, error) {
	const query = `
SELECT id, registration_id, event_id, match_id, home_score, away_score, created_at, updated_at
FROM predictions
WHERE registration_id = $1
ORDER BY match_id`

	var rows []struct {
		ID             string    `db:"id"`
		RegistrationID string    `db:"registration_id"`
		EventID        string    `db:"event_id"`
		MatchID        string    `db:"match_id"`
		HomeScore      int       `db:"home_score"`
		AwayScore      int       `db:"away_score"`
		CreatedAt      time.Time `db:"created_at"`
		UpdatedAt      time.Time `db:"updated_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, registrationID); err != nil {
		return nil, fmt.Errorf("select predictions by registration: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Prediction{
			ID:             row.ID,
			RegistrationID: row.RegistrationID,
			EventID:        row.EventID,
			MatchID:        row.MatchID,
			HomeScore:      row.HomeScore,
			AwayScore:      row.AwayScore,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return out, nil
}
