package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/registration"
)

type RegistrationRepository struct {
	mu               sync.RWMutex
	attendeesByEmail map[string]registration.Attendee
	registrations    map[string]registration.Registration
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		attendeesByEmail: make(map[string]registration.Attendee),
		registrations:    make(map[string]registration.Registration),
	}
}

func (r *RegistrationRepository) GetAttendeeByEmail(_ context.Context, email string) (registration.Attendee, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attendee, ok := r.attendeesByEmail[normalizeEmail(email)]
	return attendee, ok, nil
}

func (r *RegistrationRepository) UpsertAttendee(_ context.Context, item registration.Attendee) (registration.Attendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(item.Email)
	now := time.Now().UTC()

	existing, ok := r.attendeesByEmail[key]
	if !ok {
		item.Email = key
		item.CreatedAt = now
		item.UpdatedAt = now
		r.attendeesByEmail[key] = item
		return item, nil
	}

	existing.Name = item.Name
	if item.Phone != "" {
		existing.Phone = item.Phone
	}
	existing.UpdatedAt = now
	r.attendeesByEmail[key] = existing
	return existing, nil
}

func (r *RegistrationRepository) GetByAttendeeAndEvent(_ context.Context, attendeeID, eventID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.registrations {
		if item.AttendeeID == attendeeID && item.EventID == eventID {
			return item, true, nil
		}
	}
	return registration.Registration{}, false, nil
}

func (r *RegistrationRepository) Create(_ context.Context, item registration.Registration) (registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.registrations {
		if existing.AttendeeID == item.AttendeeID && existing.EventID == item.EventID {
			return registration.Registration{}, fmt.Errorf("attendee %s already registered for event %s", item.AttendeeID, item.EventID)
		}
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.registrations[item.ID] = item
	return item, nil
}

func (r *RegistrationRepository) ListByEvent(_ context.Context, eventID string) ([]registration.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attendeesByID := make(map[string]registration.Attendee, len(r.attendeesByEmail))
	for _, attendee := range r.attendeesByEmail {
		attendeesByID[attendee.ID] = attendee
	}

	out := make([]registration.Record, 0)
	for _, item := range r.registrations {
		if item.EventID != eventID {
			continue
		}
		out = append(out, registration.Record{
			Registration: item,
			Attendee:     attendeesByID[item.AttendeeID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Registration.CreatedAt.Equal(out[j].Registration.CreatedAt) {
			return out[i].Registration.CreatedAt.Before(out[j].Registration.CreatedAt)
		}
		return out[i].Registration.ID < out[j].Registration.ID
	})
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
