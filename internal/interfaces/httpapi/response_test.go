package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/matchdayhq/matchday/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_ConflictSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
		wantCode   string
	}{
		{name: "predictions closed", err: usecase.ErrPredictionsClosed, wantStatus: http.StatusConflict, wantReason: "predictionsClosed", wantCode: "FAILED_PRECONDITION"},
		{name: "event closed", err: usecase.ErrEventClosed, wantStatus: http.StatusConflict, wantReason: "eventClosed", wantCode: "FAILED_PRECONDITION"},
		{name: "not registered", err: usecase.ErrNotRegistered, wantStatus: http.StatusConflict, wantReason: "notRegistered", wantCode: "FAILED_PRECONDITION"},
		{name: "spin limit", err: usecase.ErrSpinLimitReached, wantStatus: http.StatusConflict, wantReason: "spinLimitReached", wantCode: "RESOURCE_EXHAUSTED"},
		{name: "wrapped sentinel", err: fmt.Errorf("%w: used 5 of 5", usecase.ErrSpinLimitReached), wantStatus: http.StatusConflict, wantReason: "spinLimitReached", wantCode: "RESOURCE_EXHAUSTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(context.Background(), tt.err)
			if mapped.HTTPStatus != tt.wantStatus {
				t.Fatalf("http status: got=%d want=%d", mapped.HTTPStatus, tt.wantStatus)
			}
			if mapped.Reason != tt.wantReason {
				t.Fatalf("reason: got=%q want=%q", mapped.Reason, tt.wantReason)
			}
			if mapped.Status != tt.wantCode {
				t.Fatalf("status: got=%q want=%q", mapped.Status, tt.wantCode)
			}
		})
	}
}
