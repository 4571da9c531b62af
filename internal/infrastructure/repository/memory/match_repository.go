package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		items[item.ID] = cloneMatch(item)
	}

	return &MatchRepository{items: items}
}

func (r *MatchRepository) ListByEvent(_ context.Context, eventID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.items {
		if item.EventID == eventID {
			out = append(out, cloneMatch(item))
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) GetByEventAndID(_ context.Context, eventID, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok || item.EventID != eventID {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneMatch(item)
	return nil
}

func (r *MatchRepository) ListPendingResults(_ context.Context, now time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.items {
		if item.Concluded() || !item.KickoffAt.Before(now) {
			continue
		}
		out = append(out, cloneMatch(item))
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) SetFinalScore(_ context.Context, matchID string, home, away int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}

	item.FinalHomeScore = &home
	item.FinalAwayScore = &away
	item.UpdatedAt = time.Now().UTC()
	r.items[matchID] = item
	return nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.FinalHomeScore != nil {
		v := *m.FinalHomeScore
		copied.FinalHomeScore = &v
	}
	if m.FinalAwayScore != nil {
		v := *m.FinalAwayScore
		copied.FinalAwayScore = &v
	}
	return copied
}
