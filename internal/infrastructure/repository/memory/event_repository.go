package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/event"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventRepository(events []event.Event) *EventRepository {
	items := make(map[string]event.Event, len(events))
	for _, item := range events {
		items[item.ID] = item
	}

	return &EventRepository{items: items}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[eventID]
	return item, ok, nil
}

func (r *EventRepository) Create(_ context.Context, item event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
