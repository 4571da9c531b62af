package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/matchdayhq/matchday/internal/usecase"
)

type Handler struct {
	eventService        *usecase.EventService
	matchService        *usecase.MatchService
	registrationService *usecase.RegistrationService
	predictionService   *usecase.PredictionService
	leaderboardService  *usecase.LeaderboardService
	spinService         *usecase.SpinService
	resultSyncService   *usecase.ResultSyncService
	logger              *slog.Logger
	validator           *validator.Validate
}

func NewHandler(
	eventService *usecase.EventService,
	matchService *usecase.MatchService,
	registrationService *usecase.RegistrationService,
	predictionService *usecase.PredictionService,
	leaderboardService *usecase.LeaderboardService,
	spinService *usecase.SpinService,
	resultSyncService *usecase.ResultSyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		eventService:        eventService,
		matchService:        matchService,
		registrationService: registrationService,
		predictionService:   predictionService,
		leaderboardService:  leaderboardService,
		spinService:         spinService,
		resultSyncService:   resultSyncService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest strictly decodes the JSON body into dst; unknown fields are
// rejected so client typos surface as 400s instead of silent drops.
func decodeRequest(r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
