package event

import (
	"strings"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Event is one Match Day viewing event hosted in a city.
type Event struct {
	ID        string
	Name      string
	City      string
	Status    string
	StartsAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusDraft
	}
	return status
}

// AcceptsRegistrations reports whether attendees may still register.
func (e Event) AcceptsRegistrations(now time.Time) bool {
	if e.Status != StatusPublished {
		return false
	}
	return now.Before(e.StartsAt)
}
