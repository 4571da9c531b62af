package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) SpinWheel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SpinWheel")
	defer span.End()

	eventID := r.PathValue("eventID")
	var req spinRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.spinService.Spin(ctx, eventID, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "spin failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, spinOutputToDTO(ctx, out))
}

func (h *Handler) GetSpinUsage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSpinUsage")
	defer span.End()

	eventID := r.PathValue("eventID")
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(ctx, w, fmt.Errorf("%w: email query parameter is required", usecase.ErrInvalidInput))
		return
	}

	out, err := h.spinService.Usage(ctx, eventID, email)
	if err != nil {
		h.logger.WarnContext(ctx, "get spin usage failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, spinOutputToDTO(ctx, out))
}

type spinRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type spinDTO struct {
	EventID        string `json:"eventId"`
	AttendeeID     string `json:"attendeeId"`
	TotalSpins     int    `json:"totalSpins"`
	SpinsRemaining int    `json:"spinsRemaining"`
	LastSpinAt     string `json:"lastSpinAt,omitempty"`
}

func spinOutputToDTO(ctx context.Context, out usecase.SpinOutput) spinDTO {
	ctx, span := startSpan(ctx, "httpapi.spinOutputToDTO")
	defer span.End()

	dto := spinDTO{
		EventID:        out.Counter.EventID,
		AttendeeID:     out.Counter.AttendeeID,
		TotalSpins:     out.Counter.TotalSpins,
		SpinsRemaining: out.SpinsRemaining,
	}
	if !out.Counter.LastSpinAt.IsZero() {
		dto.LastSpinAt = out.Counter.LastSpinAt.UTC().Format(time.RFC3339)
	}
	return dto
}
