package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday/internal/platform/id"
	"github.com/matchdayhq/matchday/internal/usecase"
)

const testJobToken = "job-token-for-tests"

type staticFeed struct {
	results []usecase.ExternalMatchResult
}

func (f *staticFeed) FetchResults(_ context.Context, _ []int64) ([]usecase.ExternalMatchResult, error) {
	return f.results, nil
}

// newTestRouter wires the full middleware chain against in-memory storage.
// The seeded event is published with kickoffs in the future, so prediction
// and registration windows are open relative to the wall clock.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Now().UTC()
	events := memory.NewEventRepository([]event.Event{
		{
			ID:       "ev-1",
			Name:     "Match Day Jakarta",
			City:     "Jakarta",
			Status:   event.StatusPublished,
			StartsAt: now.Add(2 * time.Hour),
		},
	})
	matches := memory.NewMatchRepository([]match.Match{
		{
			ID:                "mt-1",
			EventID:           "ev-1",
			HomeTeam:          "Indonesia",
			AwayTeam:          "Japan",
			KickoffAt:         now.Add(3 * time.Hour),
			ExternalFixtureID: 537001,
		},
	})
	registrations := memory.NewRegistrationRepository()
	predictions := memory.NewPredictionRepository(registrations)
	spins := memory.NewSpinRepository()
	idGen := id.NewUUIDGenerator()

	handler := NewHandler(
		usecase.NewEventService(events, idGen),
		usecase.NewMatchService(events, matches, idGen),
		usecase.NewRegistrationService(events, registrations, idGen),
		usecase.NewPredictionService(events, matches, registrations, predictions, idGen),
		usecase.NewLeaderboardService(events, matches, predictions),
		usecase.NewSpinService(events, registrations, spins, 2),
		usecase.NewResultSyncService(matches, &staticFeed{}, nil),
		slog.New(slog.DiscardHandler),
	)

	return NewRouter(handler, slog.New(slog.DiscardHandler), false, nil, testJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal response body: %v", err)
		}
	}
	return rec, envelope
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestRouter_RegistrationFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Ayu Lestari","email":"Ayu@Example.com","source":"onsite"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["email"].(string); got != "ayu@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}

	// Replaying the same registration is not an error, but the status code
	// drops to 200.
	rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Ayu Lestari","email":"ayu@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on replay, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/v1/events/ev-1/registrations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected exactly one registration, got %d", len(items))
	}
}

func TestRouter_RegistrationValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Ayu","email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", errorObj)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Ayu","email":"ayu@example.com","unexpected":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", rec.Code)
	}
}

func TestRouter_PredictionFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Budi","email":"budi@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d", rec.Code)
	}

	rec, body := doJSON(t, router, http.MethodPost, "/v1/predictions",
		`{"eventId":"ev-1","matchId":"mt-1","email":"budi@example.com","homeScore":2,"awayScore":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["homeScore"].(float64); got != 2 {
		t.Fatalf("unexpected home score: %v", data)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/predictions",
		`{"eventId":"ev-1","matchId":"mt-1","email":"budi@example.com","homeScore":0,"awayScore":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("overwrite: expected status 200, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/v1/predictions?event_id=ev-1&email=budi@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected status 200, got %d", rec.Code)
	}
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one prediction, got %d", len(items))
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["homeScore"].(float64); got != 0 {
		t.Fatalf("expected overwritten score, got %v", first)
	}
}

func TestRouter_PredictionRequiresRegistration(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/v1/predictions",
		`{"eventId":"ev-1","matchId":"mt-1","email":"ghost@example.com","homeScore":1,"awayScore":1}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	errorItems, _ := errorObj["errors"].([]any)
	if len(errorItems) == 0 {
		t.Fatalf("expected error details, got %v", body)
	}
	detail, _ := errorItems[0].(map[string]any)
	if got, _ := detail["reason"].(string); got != "notRegistered" {
		t.Fatalf("expected reason notRegistered, got %q", got)
	}

	// The read side has no such gate: an unknown email lists as empty.
	rec, body = doJSON(t, router, http.MethodGet, "/v1/predictions?event_id=ev-1&email=ghost@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if items, ok := body["data"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty prediction list, got %v", body["data"])
	}
}

func TestRouter_LeaderboardAndExport(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Citra","email":"citra@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodPost, "/v1/predictions",
		`{"eventId":"ev-1","matchId":"mt-1","email":"citra@example.com","homeScore":1,"awayScore":0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected status 201, got %d", rec.Code)
	}

	rec, body := doJSON(t, router, http.MethodGet, "/v1/events/ev-1/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: expected status 200, got %d", rec.Code)
	}
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one leaderboard entry, got %d", len(items))
	}
	entry, _ := items[0].(map[string]any)
	if got, _ := entry["rank"].(float64); got != 1 {
		t.Fatalf("expected rank 1, got %v", entry)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-1/leaderboard/export?format=csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected export content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "leaderboard-ev-1.csv") {
		t.Fatalf("unexpected content disposition: %q", got)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-1/leaderboard/export?format=pdf", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown format, got %d", rec.Code)
	}
}

func TestRouter_RegistrationExport(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Eka","email":"eka@example.com","phone":"+62812222222"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected export content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "registrations-ev-1.csv") {
		t.Fatalf("unexpected content disposition: %q", got)
	}
	payload := rec.Body.String()
	if !strings.Contains(payload, "eka@example.com") {
		t.Fatalf("exported csv missing registration row: %q", payload)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-missing/registrations/export", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown event, got %d", rec.Code)
	}
}

func TestRouter_SpinLimit(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/registrations",
		`{"name":"Dewi","email":"dewi@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d", rec.Code)
	}

	for i := 0; i < 2; i++ {
		rec, _ = doJSON(t, router, http.MethodPost, "/v1/events/ev-1/spins",
			`{"email":"dewi@example.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("spin %d: expected status 200, got %d", i+1, rec.Code)
		}
	}

	rec, body := doJSON(t, router, http.MethodPost, "/v1/events/ev-1/spins",
		`{"email":"dewi@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 past the limit, got %d", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "RESOURCE_EXHAUSTED" {
		t.Fatalf("expected RESOURCE_EXHAUSTED, got %v", errorObj)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/v1/events/ev-1/spins?email=dewi@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("usage: expected status 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["totalSpins"].(float64); got != 2 {
		t.Fatalf("expected 2 spins used, got %v", data)
	}
}

func TestRouter_InternalJobRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-results", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-results", strings.NewReader(""))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	data, _ := body["data"].(map[string]any)
	if _, ok := data["match_count"]; !ok {
		t.Fatalf("expected sync result payload, got %v", body)
	}
}

func TestRouter_EventNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/v1/events/ev-missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", errorObj)
	}
}
