package postgres

import (
	"database/sql"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/registration"
)

type attendeeTableModel struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type registrationTableModel struct {
	ID         string    `db:"id"`
	EventID    string    `db:"event_id"`
	AttendeeID string    `db:"attendee_id"`
	Source     string    `db:"source"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

// registrationRecordModel is the joined shape used by operator listings.
type registrationRecordModel struct {
	registrationTableModel
	AttendeeName  string         `db:"attendee_name"`
	AttendeeEmail string         `db:"attendee_email"`
	AttendeePhone sql.NullString `db:"attendee_phone"`
}

func attendeeFromRow(row attendeeTableModel) registration.Attendee {
	return registration.Attendee{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func registrationFromRow(row registrationTableModel) registration.Registration {
	return registration.Registration{
		ID:         row.ID,
		EventID:    row.EventID,
		AttendeeID: row.AttendeeID,
		Source:     row.Source,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
	}
}
