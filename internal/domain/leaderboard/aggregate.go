package leaderboard

import (
	"math"
	"sort"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/domain/scoring"
)

// Summary is the per-attendee aggregate over one event's predictions.
// FirstPredictedAt is the earliest submission instant across the attendee's
// predictions and drives the fast-fingers tie-break.
type Summary struct {
	Email            string
	Name             string
	TotalPoints      int
	TotalPredictions int
	Percentage       float64
	FirstPredictedAt time.Time
}

// Aggregate folds an event's prediction rows into one Summary per attendee,
// keyed by email. Rows whose match is missing from the lookup are skipped
// rather than failing the whole aggregation. Unconcluded matches contribute
// zero points but still count toward the prediction total. Input order does
// not affect any output value; the returned slice is sorted by email so the
// result is reproducible before ranking.
func Aggregate(rows []prediction.Row, matchesByID map[string]match.Match) []Summary {
	byEmail := make(map[string]*Summary)

	for _, row := range rows {
		m, ok := matchesByID[row.MatchID]
		if !ok {
			continue
		}

		agg := byEmail[row.AttendeeEmail]
		if agg == nil {
			agg = &Summary{
				Email:            row.AttendeeEmail,
				Name:             row.AttendeeName,
				FirstPredictedAt: row.CreatedAt,
			}
			byEmail[row.AttendeeEmail] = agg
		}

		agg.TotalPredictions++
		agg.TotalPoints += scoring.Score(row.HomeScore, row.AwayScore, m.FinalHomeScore, m.FinalAwayScore).Points
		if row.CreatedAt.Before(agg.FirstPredictedAt) {
			agg.FirstPredictedAt = row.CreatedAt
		}
	}

	out := make([]Summary, 0, len(byEmail))
	for _, agg := range byEmail {
		agg.Percentage = accuracyPercentage(agg.TotalPoints, agg.TotalPredictions)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// accuracyPercentage is points over the maximum attainable for the attendee's
// prediction count, as a percentage rounded to two decimals. Zero predictions
// yields zero; the aggregator never produces that case but callers may.
func accuracyPercentage(points, predictions int) float64 {
	if predictions == 0 {
		return 0
	}
	max := float64(predictions * scoring.MaxPointsPerPrediction)
	return math.Round(float64(points)/max*100*100) / 100
}
