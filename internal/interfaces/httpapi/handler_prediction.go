package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	var req submitPredictionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionInput{
		EventID:   req.EventID,
		MatchID:   req.MatchID,
		Email:     req.Email,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed",
			"event_id", req.EventID,
			"match_id", req.MatchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}

	writeSuccess(ctx, w, status, predictionToDTO(ctx, out.Prediction))
}

func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictions")
	defer span.End()

	eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if eventID == "" || email == "" {
		writeError(ctx, w, fmt.Errorf("%w: event_id and email query parameters are required", usecase.ErrInvalidInput))
		return
	}

	predictions, err := h.predictionService.ListForAttendee(ctx, eventID, email)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, predictionToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// Scores are pointers so a missing field is distinguishable from an explicit
// zero; 0-0 is a legitimate pick.
type submitPredictionRequest struct {
	EventID   string `json:"eventId" validate:"required"`
	MatchID   string `json:"matchId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	HomeScore *int   `json:"homeScore" validate:"required,min=0,max=10"`
	AwayScore *int   `json:"awayScore" validate:"required,min=0,max=10"`
}

type predictionDTO struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	MatchID     string `json:"matchId"`
	HomeScore   int    `json:"homeScore"`
	AwayScore   int    `json:"awayScore"`
	SubmittedAt string `json:"submittedAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func predictionToDTO(ctx context.Context, v prediction.Prediction) predictionDTO {
	ctx, span := startSpan(ctx, "httpapi.predictionToDTO")
	defer span.End()

	return predictionDTO{
		ID:          v.ID,
		EventID:     v.EventID,
		MatchID:     v.MatchID,
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
		SubmittedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
