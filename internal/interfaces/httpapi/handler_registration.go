package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/registration"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterAttendee")
	defer span.End()

	eventID := r.PathValue("eventID")
	var req registerAttendeeRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.registrationService.Register(ctx, usecase.RegisterInput{
		EventID: eventID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Source:  req.Source,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register attendee failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// Replays return the existing registration rather than an error, so the
	// status code distinguishes the two outcomes for the caller.
	status := http.StatusCreated
	if out.AlreadyRegistered {
		status = http.StatusOK
	}

	writeSuccess(ctx, w, status, registrationToDTO(ctx, out.Registration, out.Attendee))
}

func (h *Handler) ListRegistrationsByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegistrationsByEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	records, err := h.registrationService.ListByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list registrations failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]registrationDTO, 0, len(records))
	for _, record := range records {
		items = append(items, registrationToDTO(ctx, record.Registration, record.Attendee))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ExportRegistrations streams the event's registrations as a downloadable
// file. The format query parameter selects csv or xlsx, defaulting to csv.
func (h *Handler) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportRegistrations")
	defer span.End()

	eventID := r.PathValue("eventID")
	format, err := parseExportFormat(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.registrationService.ExportTable(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "export registrations failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeExportFile(ctx, w, format, table, fmt.Sprintf("registrations-%s", eventID))
}

type registerAttendeeRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"omitempty,max=32"`
	Source string `json:"source" validate:"omitempty,oneof=online onsite"`
}

type registrationDTO struct {
	ID           string `json:"id"`
	EventID      string `json:"eventId"`
	AttendeeID   string `json:"attendeeId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Source       string `json:"source"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registeredAt"`
}

func registrationToDTO(ctx context.Context, reg registration.Registration, attendee registration.Attendee) registrationDTO {
	ctx, span := startSpan(ctx, "httpapi.registrationToDTO")
	defer span.End()

	return registrationDTO{
		ID:           reg.ID,
		EventID:      reg.EventID,
		AttendeeID:   reg.AttendeeID,
		Name:         attendee.Name,
		Email:        attendee.Email,
		Phone:        attendee.Phone,
		Source:       reg.Source,
		Status:       reg.Status,
		RegisteredAt: reg.CreatedAt.UTC().Format(time.RFC3339),
	}
}
