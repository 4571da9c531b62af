package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

func newMatchServiceFixture(t *testing.T) (*MatchService, event.Event) {
	t.Helper()

	ev := event.Event{
		ID:       "ev-medan",
		Name:     "Match Day Medan",
		City:     "Medan",
		Status:   "published",
		StartsAt: time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC),
	}
	events := memory.NewEventRepository([]event.Event{ev})
	matches := memory.NewMatchRepository(nil)
	return NewMatchService(events, matches, id.NewUUIDGenerator()), ev
}

func TestMatchService_CreateAndList(t *testing.T) {
	service, ev := newMatchServiceFixture(t)

	kickoff := time.Date(2026, 7, 4, 19, 30, 0, 0, time.UTC)
	created, err := service.CreateMatch(t.Context(), CreateMatchInput{
		EventID:           ev.ID,
		HomeTeam:          "Indonesia",
		AwayTeam:          "Vietnam",
		KickoffAt:         kickoff,
		ExternalFixtureID: 537010,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created match must carry an id")
	}
	if !created.KickoffAt.Equal(kickoff) {
		t.Fatalf("kickoff not preserved: %v", created.KickoffAt)
	}

	listed, err := service.ListMatchesByEvent(t.Context(), ev.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected listing %+v", listed)
	}
}

func TestMatchService_ListOrderedByKickoff(t *testing.T) {
	service, ev := newMatchServiceFixture(t)

	base := time.Date(2026, 7, 4, 16, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{4 * time.Hour, 0, 2 * time.Hour} {
		if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
			EventID:   ev.ID,
			HomeTeam:  "Indonesia",
			AwayTeam:  "Vietnam",
			KickoffAt: base.Add(offset),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	listed, err := service.ListMatchesByEvent(t.Context(), ev.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].KickoffAt.Before(listed[i-1].KickoffAt) {
			t.Fatalf("matches out of kickoff order: %v then %v", listed[i-1].KickoffAt, listed[i].KickoffAt)
		}
	}
}

func TestMatchService_CreateMatch_Validation(t *testing.T) {
	service, ev := newMatchServiceFixture(t)
	kickoff := time.Date(2026, 7, 4, 19, 30, 0, 0, time.UTC)

	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		EventID: ev.ID, HomeTeam: "Indonesia", KickoffAt: kickoff,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing away team: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		EventID: ev.ID, HomeTeam: "Indonesia", AwayTeam: "Vietnam",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing kickoff: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		EventID: "ev-unknown", HomeTeam: "Indonesia", AwayTeam: "Vietnam", KickoffAt: kickoff,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown event: expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_ListMatchesByEvent_UnknownEvent(t *testing.T) {
	service, _ := newMatchServiceFixture(t)

	if _, err := service.ListMatchesByEvent(t.Context(), "ev-unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
