package memory

import (
	"context"
	"sync"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/spin"
)

type SpinRepository struct {
	mu    sync.Mutex
	items map[string]spin.Counter
}

func NewSpinRepository() *SpinRepository {
	return &SpinRepository{items: make(map[string]spin.Counter)}
}

func (r *SpinRepository) Increment(_ context.Context, attendeeID, eventID string, limit int) (spin.Counter, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := spinKey(attendeeID, eventID)
	counter, ok := r.items[key]
	if !ok {
		counter = spin.Counter{AttendeeID: attendeeID, EventID: eventID}
	}

	if limit > 0 && counter.TotalSpins >= limit {
		return counter, false, nil
	}

	counter.TotalSpins++
	counter.LastSpinAt = time.Now().UTC()
	r.items[key] = counter
	return counter, true, nil
}

func (r *SpinRepository) Get(_ context.Context, attendeeID, eventID string) (spin.Counter, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counter, ok := r.items[spinKey(attendeeID, eventID)]
	return counter, ok, nil
}

func spinKey(attendeeID, eventID string) string {
	return attendeeID + "::" + eventID
}
