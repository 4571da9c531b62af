package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/registration"
)

// ErrDuplicateRegistration surfaces the unique constraint on
// (event_id, attendee_id) so callers can treat a replay as a conflict
// instead of a storage failure.
var ErrDuplicateRegistration = fmt.Errorf("registration already exists")

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) GetAttendeeByEmail(ctx context.Context, email string) (registration.Attendee, bool, error) {
	const query = `
SELECT id, name, email, phone, created_at, updated_at
FROM attendees
WHERE email = $1`

	var row attendeeTableModel
	if err := r.db.GetContext(ctx, &row, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		if isNotFound(err) {
			return registration.Attendee{}, false, nil
		}
		return registration.Attendee{}, false, fmt.Errorf("get attendee by email: %w", err)
	}

	return attendeeFromRow(row), true, nil
}

func (r *RegistrationRepository) UpsertAttendee(ctx context.Context, item registration.Attendee) (registration.Attendee, error) {
	const query = `
INSERT INTO attendees (id, name, email, phone)
VALUES ($1, $2, $3, NULLIF($4, ''))
ON CONFLICT (email)
DO UPDATE SET
    name = EXCLUDED.name,
    phone = COALESCE(EXCLUDED.phone, attendees.phone),
    updated_at = now()
RETURNING id, name, email, phone, created_at, updated_at`

	email := strings.ToLower(strings.TrimSpace(item.Email))

	var row attendeeTableModel
	if err := r.db.GetContext(ctx, &row, query, item.ID, item.Name, email, item.Phone); err != nil {
		return registration.Attendee{}, fmt.Errorf("upsert attendee: %w", err)
	}

	return attendeeFromRow(row), nil
}

func (r *RegistrationRepository) GetByAttendeeAndEvent(ctx context.Context, attendeeID, eventID string) (registration.Registration, bool, error) {
	const query = `
SELECT id, event_id, attendee_id, source, status, created_at
FROM registrations
WHERE attendee_id = $1 AND event_id = $2`

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query, attendeeID, eventID); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("get registration: %w", err)
	}

	return registrationFromRow(row), true, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, item registration.Registration) (registration.Registration, error) {
	const query = `
INSERT INTO registrations (id, event_id, attendee_id, source, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, event_id, attendee_id, source, status, created_at`

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query,
		item.ID, item.EventID, item.AttendeeID, item.Source, item.Status,
	); err != nil {
		if isUniqueViolation(err) {
			return registration.Registration{}, ErrDuplicateRegistration
		}
		return registration.Registration{}, fmt.Errorf("insert registration: %w", err)
	}

	return registrationFromRow(row), nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]registration.Record, error) {
	const query = `
SELECT r.id, r.event_id, r.attendee_id, r.source, r.status, r.created_at,
       a.name AS attendee_name, a.email AS attendee_email, a.phone AS attendee_phone
FROM registrations r
JOIN attendees a ON a.id = r.attendee_id
WHERE r.event_id = $1
ORDER BY r.created_at, r.id`

	var rows []registrationRecordModel
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("select registrations by event: %w", err)
	}

	out := make([]registration.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, registration.Record{
			Registration: registrationFromRow(row.registrationTableModel),
			Attendee: registration.Attendee{
				ID:    row.AttendeeID,
				Name:  row.AttendeeName,
				Email: row.AttendeeEmail,
				Phone: row.AttendeePhone.String,
			},
		})
	}
	return out, nil
}
