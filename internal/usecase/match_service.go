package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

type MatchService struct {
	eventRepo event.Repository
	matchRepo match.Repository
	idGen     id.Generator
	now       func() time.Time
}

func NewMatchService(eventRepo event.Repository, matchRepo match.Repository, idGen id.Generator) *MatchService {
	return &MatchService{
		eventRepo: eventRepo,
		matchRepo: matchRepo,
		idGen:     idGen,
		now:       time.Now,
	}
}

func (s *MatchService) ListMatchesByEvent(ctx context.Context, eventID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListMatchesByEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	matches, err := s.matchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list matches by event: %w", err)
	}

	return matches, nil
}

type CreateMatchInput struct {
	EventID           string
	HomeTeam          string
	AwayTeam          string
	KickoffAt         time.Time
	ExternalFixtureID int64
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.CreateMatch")
	defer span.End()

	eventID := strings.TrimSpace(input.EventID)
	homeTeam := strings.TrimSpace(input.HomeTeam)
	awayTeam := strings.TrimSpace(input.AwayTeam)
	switch {
	case eventID == "":
		return match.Match{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	case homeTeam == "" || awayTeam == "":
		return match.Match{}, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	case input.KickoffAt.IsZero():
		return match.Match{}, fmt.Errorf("%w: kickoff time is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	item := match.Match{
		ID:                matchID,
		EventID:           eventID,
		HomeTeam:          homeTeam,
		AwayTeam:          awayTeam,
		KickoffAt:         input.KickoffAt.UTC(),
		ExternalFixtureID: input.ExternalFixtureID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return item, nil
}
