package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func (h *Handler) RunSyncResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncResultsJob")
	defer span.End()

	if h.resultSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: result sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeSyncResultsRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resultSyncService.SyncResults(ctx, usecase.SyncResultsInput{
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run sync results job failed", "dry_run", req.DryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type syncResultsRequest struct {
	MaxWorkers int  `json:"maxWorkers"`
	DryRun     bool `json:"dryRun"`
}

// An empty body means default settings; the job is routinely triggered by a
// bare curl from the scheduler.
func decodeSyncResultsRequest(r *http.Request) (syncResultsRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req syncResultsRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return syncResultsRequest{}, nil
		}
		return syncResultsRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
