package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.eventService.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(ctx, e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	item, err := h.eventService.GetEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(ctx, item))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent")
	defer span.End()

	var req createEventRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.eventService.CreateEvent(ctx, usecase.CreateEventInput{
		Name:     req.Name,
		City:     req.City,
		Status:   req.Status,
		StartsAt: req.StartsAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create event failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(ctx, item))
}

type createEventRequest struct {
	Name     string    `json:"name" validate:"required,max=200"`
	City     string    `json:"city" validate:"required,max=100"`
	Status   string    `json:"status" validate:"omitempty,oneof=draft published archived"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
}

type eventDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Status    string `json:"status"`
	StartsAt  string `json:"startsAt"`
	CreatedAt string `json:"createdAt"`
}

func eventToDTO(ctx context.Context, v event.Event) eventDTO {
	ctx, span := startSpan(ctx, "httpapi.eventToDTO")
	defer span.End()

	return eventDTO{
		ID:        v.ID,
		Name:      v.Name,
		City:      v.City,
		Status:    v.Status,
		StartsAt:  v.StartsAt.UTC().Format(time.RFC3339),
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
