package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/domain/registration"
)

// PredictionRepository joins against a RegistrationRepository for attendee
// identity, mirroring how the SQL store joins predictions to registrations.
type PredictionRepository struct {
	mu            sync.RWMutex
	items         map[string]prediction.Prediction
	registrations *RegistrationRepository
}

func NewPredictionRepository(registrations *RegistrationRepository) *PredictionRepository {
	return &PredictionRepository{
		items:         make(map[string]prediction.Prediction),
		registrations: registrations,
	}
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) (prediction.Prediction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := predictionKey(item.RegistrationID, item.MatchID)
	now := time.Now().UTC()

	existing, ok := r.items[key]
	if !ok {
		item.CreatedAt = now
		item.UpdatedAt = now
		r.items[key] = item
		return item, true, nil
	}

	existing.HomeScore = item.HomeScore
	existing.AwayScore = item.AwayScore
	existing.UpdatedAt = now
	r.items[key] = existing
	return existing, false, nil
}

func (r *PredictionRepository) ListByEvent(ctx context.Context, eventID string) ([]prediction.Row, error) {
	records, err := r.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendeeByRegistration := make(map[string]registration.Attendee, len(records))
	for _, record := range records {
		attendeeByRegistration[record.Registration.ID] = record.Attendee
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Row, 0)
	for _, item := range r.items {
		if item.EventID != eventID {
			continue
		}
		attendee, ok := attendeeByRegistration[item.RegistrationID]
		if !ok {
			continue
		}
		out = append(out, prediction.Row{
			AttendeeEmail: attendee.Email,
			AttendeeName:  attendee.Name,
			MatchID:       item.MatchID,
			HomeScore:     item.HomeScore,
			AwayScore:     item.AwayScore,
			CreatedAt:     item.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AttendeeEmail != out[j].AttendeeEmail {
			return out[i].AttendeeEmail < out[j].AttendeeEmail
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

func (r *PredictionRepository) ListByRegistration(_ context.Context, registrationID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if item.RegistrationID == registrationID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

func predictionKey(registrationID, matchID string) string {
	return registrationID + "::" + matchID
}
