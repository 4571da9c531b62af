package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/registration"
	"github.com/matchdayhq/matchday/internal/domain/spin"
)

type SpinService struct {
	eventRepo        event.Repository
	registrationRepo registration.Repository
	spinRepo         spin.Repository
	maxSpinsPerEvent int
}

func NewSpinService(
	eventRepo event.Repository,
	registrationRepo registration.Repository,
	spinRepo spin.Repository,
	maxSpinsPerEvent int,
) *SpinService {
	if maxSpinsPerEvent < 1 {
		maxSpinsPerEvent = 1
	}
	return &SpinService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		spinRepo:         spinRepo,
		maxSpinsPerEvent: maxSpinsPerEvent,
	}
}

type SpinOutput struct {
	Counter        spin.Counter
	SpinsRemaining int
}

// Spin consumes one reward-wheel spin for a registered attendee. The counter
// increment and the limit check are a single storage operation, so two
// simultaneous last spins cannot both succeed.
func (s *SpinService) Spin(ctx context.Context, eventID, email string) (SpinOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "SpinService.Spin")
	defer span.End()

	attendeeID, err := s.resolveAttendee(ctx, eventID, email)
	if err != nil {
		return SpinOutput{}, err
	}

	counter, ok, err := s.spinRepo.Increment(ctx, attendeeID, strings.TrimSpace(eventID), s.maxSpinsPerEvent)
	if err != nil {
		return SpinOutput{}, fmt.Errorf("increment spin counter: %w", err)
	}
	if !ok {
		return SpinOutput{}, fmt.Errorf("%w: used %d of %d", ErrSpinLimitReached, counter.TotalSpins, s.maxSpinsPerEvent)
	}

	return SpinOutput{
		Counter:        counter,
		SpinsRemaining: s.maxSpinsPerEvent - counter.TotalSpins,
	}, nil
}

// Usage reports how many spins the attendee has used at the event.
func (s *SpinService) Usage(ctx context.Context, eventID, email string) (SpinOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "SpinService.Usage")
	defer span.End()

	attendeeID, err := s.resolveAttendee(ctx, eventID, email)
	if err != nil {
		return SpinOutput{}, err
	}

	counter, ok, err := s.spinRepo.Get(ctx, attendeeID, strings.TrimSpace(eventID))
	if err != nil {
		return SpinOutput{}, fmt.Errorf("get spin counter: %w", err)
	}
	if !ok {
		counter = spin.Counter{AttendeeID: attendeeID, EventID: strings.TrimSpace(eventID)}
	}

	return SpinOutput{
		Counter:        counter,
		SpinsRemaining: s.maxSpinsPerEvent - counter.TotalSpins,
	}, nil
}

func (s *SpinService) resolveAttendee(ctx context.Context, eventID, email string) (string, error) {
	eventID = strings.TrimSpace(eventID)
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case eventID == "":
		return "", fmt.Errorf("%w: event id is required", ErrInvalidInput)
	case email == "":
		return "", fmt.Errorf("%w: attendee email is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	attendee, found, err := s.registrationRepo.GetAttendeeByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("get attendee by email: %w", err)
	}
	if !found {
		return "", fmt.Errorf("%w: event=%s", ErrNotRegistered, eventID)
	}

	_, found, err = s.registrationRepo.GetByAttendeeAndEvent(ctx, attendee.ID, eventID)
	if err != nil {
		return "", fmt.Errorf("get registration: %w", err)
	}
	if !found {
		return "", fmt.Errorf("%w: event=%s", ErrNotRegistered, eventID)
	}

	return attendee.ID, nil
}
