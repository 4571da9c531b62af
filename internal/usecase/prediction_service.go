package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/domain/registration"
	"github.com/matchdayhq/matchday/internal/domain/scoring"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

const maxPredictedGoals = 10

type PredictionService struct {
	eventRepo        event.Repository
	matchRepo        match.Repository
	registrationRepo registration.Repository
	predictionRepo   prediction.Repository
	idGen            id.Generator
	now              func() time.Time
}

func NewPredictionService(
	eventRepo event.Repository,
	matchRepo match.Repository,
	registrationRepo registration.Repository,
	predictionRepo prediction.Repository,
	idGen id.Generator,
) *PredictionService {
	return &PredictionService{
		eventRepo:        eventRepo,
		matchRepo:        matchRepo,
		registrationRepo: registrationRepo,
		predictionRepo:   predictionRepo,
		idGen:            idGen,
		now:              time.Now,
	}
}

type SubmitPredictionInput struct {
	EventID   string
	MatchID   string
	Email     string
	HomeScore int
	AwayScore int
}

type SubmitPredictionOutput struct {
	Prediction prediction.Prediction
	// Created is false when an earlier pick for the same match was
	// overwritten.
	Created bool
}

// Submit records or overwrites one attendee's score pick for a match. The
// submission window closes exactly at kickoff; a pick arriving at or after
// kickoff is rejected no matter what it contains.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (SubmitPredictionOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.Submit")
	defer span.End()

	eventID := strings.TrimSpace(input.EventID)
	matchID := strings.TrimSpace(input.MatchID)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case eventID == "":
		return SubmitPredictionOutput{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	case matchID == "":
		return SubmitPredictionOutput{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	case email == "":
		return SubmitPredictionOutput{}, fmt.Errorf("%w: attendee email is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return SubmitPredictionOutput{}, fmt.Errorf("%w: predicted scores must not be negative", ErrInvalidInput)
	}
	if input.HomeScore > maxPredictedGoals || input.AwayScore > maxPredictedGoals {
		return SubmitPredictionOutput{}, fmt.Errorf("%w: predicted scores must be at most %d", ErrInvalidInput, maxPredictedGoals)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return SubmitPredictionOutput{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return SubmitPredictionOutput{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	item, exists, err := s.matchRepo.GetByEventAndID(ctx, eventID, matchID)
	if err != nil {
		return SubmitPredictionOutput{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return SubmitPredictionOutput{}, fmt.Errorf("%w: match=%s event=%s", ErrNotFound, matchID, eventID)
	}

	if !scoring.GateOpen(item.KickoffAt, s.now()) {
		return SubmitPredictionOutput{}, fmt.Errorf("%w: match=%s", ErrPredictionsClosed, matchID)
	}

	reg, err := s.resolveRegistration(ctx, email, eventID)
	if err != nil {
		return SubmitPredictionOutput{}, err
	}

	predictionID, err := s.idGen.NewID()
	if err != nil {
		return SubmitPredictionOutput{}, fmt.Errorf("generate prediction id: %w", err)
	}
	stored, created, err := s.predictionRepo.Upsert(ctx, prediction.Prediction{
		ID:             predictionID,
		RegistrationID: reg.ID,
		EventID:        eventID,
		MatchID:        matchID,
		HomeScore:      input.HomeScore,
		AwayScore:      input.AwayScore,
	})
	if err != nil {
		return SubmitPredictionOutput{}, fmt.Errorf("upsert prediction: %w", err)
	}

	return SubmitPredictionOutput{Prediction: stored, Created: created}, nil
}

// ListForAttendee returns one attendee's picks for an event, empty when they
// have not predicted yet.
func (s *PredictionService) ListForAttendee(ctx context.Context, eventID, email string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.ListForAttendee")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case eventID == "":
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	case email == "":
		return nil, fmt.Errorf("%w: attendee email is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	// An unknown or unregistered email reads as "no picks yet", not an
	// error; registration is only enforced when writing.
	attendee, found, err := s.registrationRepo.GetAttendeeByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get attendee by email: %w", err)
	}
	if !found {
		return []prediction.Prediction{}, nil
	}

	reg, found, err := s.registrationRepo.GetByAttendeeAndEvent(ctx, attendee.ID, eventID)
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if !found {
		return []prediction.Prediction{}, nil
	}

	items, err := s.predictionRepo.ListByRegistration(ctx, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by registration: %w", err)
	}

	return items, nil
}

func (s *PredictionService) resolveRegistration(ctx context.Context, email, eventID string) (registration.Registration, error) {
	attendee, found, err := s.registrationRepo.GetAttendeeByEmail(ctx, email)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get attendee by email: %w", err)
	}
	if !found {
		return registration.Registration{}, fmt.Errorf("%w: event=%s", ErrNotRegistered, eventID)
	}

	reg, found, err := s.registrationRepo.GetByAttendeeAndEvent(ctx, attendee.ID, eventID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !found {
		return registration.Registration{}, fmt.Errorf("%w: event=%s", ErrNotRegistered, eventID)
	}

	return reg, nil
}
