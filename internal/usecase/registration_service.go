package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/registration"
	"github.com/matchdayhq/matchday/internal/infrastructure/export"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

type RegistrationService struct {
	eventRepo        event.Repository
	registrationRepo registration.Repository
	idGen            id.Generator
	now              func() time.Time
}

func NewRegistrationService(
	eventRepo event.Repository,
	registrationRepo registration.Repository,
	idGen id.Generator,
) *RegistrationService {
	return &RegistrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		idGen:            idGen,
		now:              time.Now,
	}
}

type RegisterInput struct {
	EventID string
	Name    string
	Email   string
	Phone   string
	Source  string
}

type RegisterOutput struct {
	Registration registration.Registration
	Attendee     registration.Attendee
	// AlreadyRegistered is true when the attendee had registered before and
	// the existing registration was returned unchanged.
	AlreadyRegistered bool
}

// Register creates or refreshes the attendee by email, then attaches them to
// the event. Replaying a registration is not an error.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (RegisterOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "RegistrationService.Register")
	defer span.End()

	eventID := strings.TrimSpace(input.EventID)
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case eventID == "":
		return RegisterOutput{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	case name == "":
		return RegisterOutput{}, fmt.Errorf("%w: attendee name is required", ErrInvalidInput)
	case email == "":
		return RegisterOutput{}, fmt.Errorf("%w: attendee email is required", ErrInvalidInput)
	}

	source := strings.TrimSpace(input.Source)
	switch source {
	case "":
		source = registration.SourceOnline
	case registration.SourceOnline, registration.SourceOnsite:
	default:
		return RegisterOutput{}, fmt.Errorf("%w: unknown registration source %q", ErrInvalidInput, input.Source)
	}

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return RegisterOutput{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	if !item.AcceptsRegistrations(s.now()) {
		return RegisterOutput{}, fmt.Errorf("%w: event=%s", ErrEventClosed, eventID)
	}

	attendeeID, err := s.idGen.NewID()
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("generate attendee id: %w", err)
	}
	attendee, err := s.registrationRepo.UpsertAttendee(ctx, registration.Attendee{
		ID:    attendeeID,
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(input.Phone),
	})
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("upsert attendee: %w", err)
	}

	existing, found, err := s.registrationRepo.GetByAttendeeAndEvent(ctx, attendee.ID, eventID)
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("get registration: %w", err)
	}
	if found {
		return RegisterOutput{Registration: existing, Attendee: attendee, AlreadyRegistered: true}, nil
	}

	registrationID, err := s.idGen.NewID()
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("generate registration id: %w", err)
	}
	created, err := s.registrationRepo.Create(ctx, registration.Registration{
		ID:         registrationID,
		EventID:    eventID,
		AttendeeID: attendee.ID,
		Source:     source,
		Status:     registration.StatusConfirmed,
	})
	if err != nil {
		// A concurrent replay may have won the insert; fall back to the row
		// it created.
		existing, found, getErr := s.registrationRepo.GetByAttendeeAndEvent(ctx, attendee.ID, eventID)
		if getErr == nil && found {
			return RegisterOutput{Registration: existing, Attendee: attendee, AlreadyRegistered: true}, nil
		}
		return RegisterOutput{}, fmt.Errorf("create registration: %w", err)
	}

	return RegisterOutput{Registration: created, Attendee: attendee}, nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]registration.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "RegistrationService.ListByEvent")
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

	records, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}

	return records, nil
}

// ExportTable renders the event's registrations as a spreadsheet-ready table
// for the operator download.
func (s *RegistrationService) ExportTable(ctx context.Context, eventID string) (export.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "RegistrationService.ExportTable")
	defer span.End()

	records, err := s.ListByEvent(ctx, eventID)
	if err != nil {
		return export.Table{}, err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Attendee.Name,
			record.Attendee.Email,
			record.Attendee.Phone,
			record.Registration.ID,
			record.Registration.CreatedAt.UTC().Format(time.RFC3339),
			record.Registration.Status,
			record.Registration.Source,
			record.Registration.AttendeeID,
		})
	}

	return export.Table{
		SheetName: "Registrations",
		Header: []string{
			"Name", "Email", "Phone", "Registration ID",
			"Created At", "Status", "Source", "Attendee ID",
		},
		Rows: rows,
	}, nil
}
