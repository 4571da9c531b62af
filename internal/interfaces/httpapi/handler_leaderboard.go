package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/leaderboard"
	"github.com/matchdayhq/matchday/internal/infrastructure/export"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	eventID := r.PathValue("eventID")
	entries, err := h.leaderboardService.Leaderboard(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ExportLeaderboard streams the standings as a downloadable file. The format
// query parameter selects csv or xlsx, defaulting to csv.
func (h *Handler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportLeaderboard")
	defer span.End()

	eventID := r.PathValue("eventID")
	format, err := parseExportFormat(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.leaderboardService.ExportTable(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "export leaderboard failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeExportFile(ctx, w, format, table, fmt.Sprintf("leaderboard-%s", eventID))
}

// parseExportFormat reads the format query parameter, defaulting to csv.
func parseExportFormat(r *http.Request) (export.Format, error) {
	format := export.Format(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
	if format == "" {
		return export.FormatCSV, nil
	}
	if !format.Valid() {
		return "", fmt.Errorf("%w: unknown export format %q", usecase.ErrInvalidInput, format)
	}
	return format, nil
}

// writeExportFile renders the table in the requested format and streams it
// as an attachment.
func (h *Handler) writeExportFile(ctx context.Context, w http.ResponseWriter, format export.Format, table export.Table, baseName string) {
	var (
		payload []byte
		err     error
	)
	switch format {
	case export.FormatXLSX:
		payload, err = export.RenderXLSX(table)
	default:
		payload, err = export.RenderCSV(table)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "render export failed",
			"file", baseName,
			"format", string(format),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", baseName, format.FileExtension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

type leaderboardEntryDTO struct {
	Rank             int     `json:"rank"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	TotalPoints      int     `json:"totalPoints"`
	TotalPredictions int     `json:"totalPredictions"`
	Percentage       float64 `json:"percentage"`
	FirstPredictedAt string  `json:"firstPredictedAt"`
}

func leaderboardEntryToDTO(ctx context.Context, v leaderboard.Entry) leaderboardEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardEntryToDTO")
	defer span.End()

	return leaderboardEntryDTO{
		Rank:             v.Rank,
		Name:             v.Name,
		Email:            v.Email,
		TotalPoints:      v.TotalPoints,
		TotalPredictions: v.TotalPredictions,
		Percentage:       v.Percentage,
		FirstPredictedAt: v.FirstPredictedAt.UTC().Format(time.RFC3339),
	}
}
