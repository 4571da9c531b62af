package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

type EventService struct {
	eventRepo event.Repository
	idGen     id.Generator
	now       func() time.Time
}

func NewEventService(eventRepo event.Repository, idGen id.Generator) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		idGen:     idGen,
		now:       time.Now,
	}
}

func (s *EventService) ListEvents(ctx context.Context) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ListEvents")
	defer span.End()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.GetEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return event.Event{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return event.Event{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return item, nil
}

type CreateEventInput struct {
	Name     string
	City     string
	Status   string
	StartsAt time.Time
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.CreateEvent")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return event.Event{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	if input.StartsAt.IsZero() {
		return event.Event{}, fmt.Errorf("%w: event start time is required", ErrInvalidInput)
	}

	status := event.NormalizeStatus(input.Status)
	switch status {
	case event.StatusDraft, event.StatusPublished, event.StatusArchived:
	default:
		return event.Event{}, fmt.Errorf("%w: unknown event status %q", ErrInvalidInput, input.Status)
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	now := s.now().UTC()
	item := event.Event{
		ID:        eventID,
		Name:      name,
		City:      strings.TrimSpace(input.City),
		Status:    status,
		StartsAt:  input.StartsAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.eventRepo.Create(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("create event: %w", err)
	}

	return item, nil
}
