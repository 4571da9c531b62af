package cache

import (
	"context"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
	basecache "github.com/matchdayhq/matchday/internal/platform/cache"
)

// EventRepository caches event reads. Events change rarely relative to how
// often handlers resolve them, so writes simply invalidate.
type EventRepository struct {
	next  event.Repository
	cache *basecache.Store
}

func NewEventRepository(next event.Repository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	v, err := r.cache.GetOrLoad(ctx, "event:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	key := "event:id:" + eventID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return cachedEventByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return event.Event{}, false, err
	}

	cached, _ := v.(cachedEventByID)
	return cached.value, cached.exists, nil
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "event:list")
	r.cache.Delete(ctx, "event:id:"+item.ID)
	return nil
}

type cachedEventByID struct {
	value  event.Event
	exists bool
}

// MatchRepository caches per-event match lists and lookups. Result writes
// invalidate the event's keys so the next leaderboard read rescores against
// fresh finals. Pending-result scans bypass the cache: the sync job needs
// the stored truth.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) ListByEvent(ctx context.Context, eventID string) ([]match.Match, error) {
	key := "match:list:event:" + eventID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByEventAndID(ctx context.Context, eventID, matchID string) (match.Match, bool, error) {
	key := "match:id:" + eventID + ":" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByEventAndID(ctx, eventID, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidateEvent(ctx, item.EventID)
	return nil
}

func (r *MatchRepository) ListPendingResults(ctx context.Context, now time.Time) ([]match.Match, error) {
	return r.next.ListPendingResults(ctx, now)
}

func (r *MatchRepository) SetFinalScore(ctx context.Context, matchID string, home, away int) error {
	if err := r.next.SetFinalScore(ctx, matchID, home, away); err != nil {
		return err
	}
	// The match ID alone does not identify the event, so drop every match key.
	r.cache.DeletePrefix(ctx, "match:")
	return nil
}

func (r *MatchRepository) invalidateEvent(ctx context.Context, eventID string) {
	r.cache.Delete(ctx, "match:list:event:"+eventID)
	r.cache.DeletePrefix(ctx, "match:id:"+eventID+":")
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}
