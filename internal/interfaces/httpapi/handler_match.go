package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) ListMatchesByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	matches, err := h.matchService.ListMatchesByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	eventID := r.PathValue("eventID")
	var req createMatchRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		EventID:           eventID,
		HomeTeam:          req.HomeTeam,
		AwayTeam:          req.AwayTeam,
		KickoffAt:         req.KickoffAt,
		ExternalFixtureID: req.ExternalFixtureID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, item))
}

type createMatchRequest struct {
	HomeTeam          string    `json:"homeTeam" validate:"required,max=100"`
	AwayTeam          string    `json:"awayTeam" validate:"required,max=100"`
	KickoffAt         time.Time `json:"kickoffAt" validate:"required"`
	ExternalFixtureID int64     `json:"externalFixtureId" validate:"omitempty,min=1"`
}

type matchDTO struct {
	ID                string `json:"id"`
	EventID           string `json:"eventId"`
	HomeTeam          string `json:"homeTeam"`
	AwayTeam          string `json:"awayTeam"`
	KickoffAt         string `json:"kickoffAt"`
	ExternalFixtureID int64  `json:"externalFixtureId,omitempty"`
	FinalHomeScore    *int   `json:"finalHomeScore"`
	FinalAwayScore    *int   `json:"finalAwayScore"`
	Concluded         bool   `json:"concluded"`
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:                v.ID,
		EventID:           v.EventID,
		HomeTeam:          v.HomeTeam,
		AwayTeam:          v.AwayTeam,
		KickoffAt:         v.KickoffAt.UTC().Format(time.RFC3339),
		ExternalFixtureID: v.ExternalFixtureID,
		FinalHomeScore:    v.FinalHomeScore,
		FinalAwayScore:    v.FinalAwayScore,
		Concluded:         v.Concluded(),
	}
}
