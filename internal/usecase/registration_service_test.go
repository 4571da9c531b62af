package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

func newRegistrationFixture(t *testing.T, now time.Time) (*RegistrationService, *memory.RegistrationRepository) {
	t.Helper()

	events := memory.NewEventRepository([]event.Event{
		{
			ID:       "ev-1",
			Name:     "Match Day Jakarta",
			Status:   event.StatusPublished,
			StartsAt: testEventStart,
		},
		{
			ID:       "ev-draft",
			Name:     "Match Day Surabaya",
			Status:   event.StatusDraft,
			StartsAt: testEventStart.Add(14 * 24 * time.Hour),
		},
	})
	registrations := memory.NewRegistrationRepository()

	service := NewRegistrationService(events, registrations, id.NewUUIDGenerator())
	service.now = func() time.Time { return now }
	return service, registrations
}

func TestRegistrationService_Register(t *testing.T) {
	service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))

	out, err := service.Register(t.Context(), RegisterInput{
		EventID: "ev-1",
		Name:    "Ayu Lestari",
		Email:   "  Ayu@Example.com ",
		Phone:   "+62811111111",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if out.AlreadyRegistered {
		t.Fatal("first registration should not report a replay")
	}
	if out.Attendee.Email != "ayu@example.com" {
		t.Fatalf("email not normalized: %q", out.Attendee.Email)
	}
	if out.Registration.EventID != "ev-1" || out.Registration.AttendeeID != out.Attendee.ID {
		t.Fatalf("registration not linked: %+v", out.Registration)
	}
}

func TestRegistrationService_Register_ReplayReturnsExisting(t *testing.T) {
	service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))

	first, err := service.Register(t.Context(), RegisterInput{
		EventID: "ev-1", Name: "Ayu Lestari", Email: "ayu@example.com",
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second, err := service.Register(t.Context(), RegisterInput{
		EventID: "ev-1", Name: "Ayu L.", Email: "AYU@example.com",
	})
	if err != nil {
		t.Fatalf("replay register failed: %v", err)
	}
	if !second.AlreadyRegistered {
		t.Fatal("replay should report the existing registration")
	}
	if second.Registration.ID != first.Registration.ID {
		t.Fatalf("replay created a second registration: %s vs %s", second.Registration.ID, first.Registration.ID)
	}
	if second.Attendee.Name != "Ayu L." {
		t.Fatalf("attendee name should refresh on replay, got %q", second.Attendee.Name)
	}
}

func TestRegistrationService_Register_ClosedEvents(t *testing.T) {
	t.Run("draft event", func(t *testing.T) {
		service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))
		_, err := service.Register(t.Context(), RegisterInput{
			EventID: "ev-draft", Name: "Ayu", Email: "ayu@example.com",
		})
		if !errors.Is(err, ErrEventClosed) {
			t.Fatalf("expected ErrEventClosed, got %v", err)
		}
	})

	t.Run("event already started", func(t *testing.T) {
		service, _ := newRegistrationFixture(t, testEventStart.Add(time.Minute))
		_, err := service.Register(t.Context(), RegisterInput{
			EventID: "ev-1", Name: "Ayu", Email: "ayu@example.com",
		})
		if !errors.Is(err, ErrEventClosed) {
			t.Fatalf("expected ErrEventClosed, got %v", err)
		}
	})
}

func TestRegistrationService_Register_Validation(t *testing.T) {
	service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))

	if _, err := service.Register(t.Context(), RegisterInput{EventID: "ev-1", Email: "a@b.c"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Register(t.Context(), RegisterInput{EventID: "ev-1", Name: "Ayu"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing email: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Register(t.Context(), RegisterInput{
		EventID: "ev-1", Name: "Ayu", Email: "a@b.c", Source: "carrier-pigeon",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad source: expected ErrInvalidInput, got %v", err)
	}
}

func TestRegistrationService_ListByEvent(t *testing.T) {
	service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))

	for _, email := range []string{"ayu@example.com", "budi@example.com"} {
		if _, err := service.Register(t.Context(), RegisterInput{
			EventID: "ev-1", Name: email, Email: email,
		}); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	records, err := service.ListByEvent(t.Context(), "ev-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
}

func TestRegistrationService_ExportTable(t *testing.T) {
	service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))

	out, err := service.Register(t.Context(), RegisterInput{
		EventID: "ev-1",
		Name:    "Ayu Lestari",
		Email:   "ayu@example.com",
		Phone:   "+62811111111",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	table, err := service.ExportTable(t.Context(), "ev-1")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	wantHeader := []string{
		"Name", "Email", "Phone", "Registration ID",
		"Created At", "Status", "Source", "Attendee ID",
	}
	for i, col := range wantHeader {
		if table.Header[i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, table.Header[i], col)
		}
	}

	if len(table.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if row[0] != "Ayu Lestari" || row[1] != "ayu@example.com" || row[2] != "+62811111111" {
		t.Fatalf("unexpected identity cells: %v", row)
	}
	if row[3] != out.Registration.ID || row[7] != out.Attendee.ID {
		t.Fatalf("unexpected id cells: %v", row)
	}
}

func TestRegistrationService_ExportTable_UnknownEvent(t *testing.T) {
	service, _ := newRegistrationFixture(t, testEventStart.Add(-24*time.Hour))

	if _, err := service.ExportTable(t.Context(), "ev-unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
