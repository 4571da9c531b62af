package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
)

func newLeaderboardFixture(t *testing.T) (*LeaderboardService, *memory.RegistrationRepository, *memory.PredictionRepository) {
	t.Helper()

	finalTwo := 2
	finalOne := 1

	events := memory.NewEventRepository([]event.Event{{
		ID:       "ev-1",
		Name:     "Match Day Jakarta",
		Status:   event.StatusPublished,
		StartsAt: testEventStart,
	}})
	matches := memory.NewMatchRepository([]match.Match{
		{
			ID:             "mt-1",
			EventID:        "ev-1",
			HomeTeam:       "Indonesia",
			AwayTeam:       "Japan",
			KickoffAt:      testKickoff,
			FinalHomeScore: &finalTwo,
			FinalAwayScore: &finalOne,
		},
		{
			ID:        "mt-2",
			EventID:   "ev-1",
			HomeTeam:  "Argentina",
			AwayTeam:  "France",
			KickoffAt: testKickoff.Add(3 * time.Hour),
		},
	})
	registrations := memory.NewRegistrationRepository()
	predictions := memory.NewPredictionRepository(registrations)

	return NewLeaderboardService(events, matches, predictions), registrations, predictions
}

func submitPick(t *testing.T, predictions *memory.PredictionRepository, registrationID, matchID string, home, away int) {
	t.Helper()

	if _, _, err := predictions.Upsert(t.Context(), prediction.Prediction{
		ID:             "pd-" + registrationID + "-" + matchID,
		RegistrationID: registrationID,
		EventID:        "ev-1",
		MatchID:        matchID,
		HomeScore:      home,
		AwayScore:      away,
	}); err != nil {
		t.Fatalf("upsert prediction: %v", err)
	}
}

func TestLeaderboardService_Leaderboard_RanksByAccuracyThenPoints(t *testing.T) {
	service, registrations, predictions := newLeaderboardFixture(t)

	ayu := registerAttendee(t, registrations, "ev-1", "Ayu Lestari", "ayu@example.com")
	budi := registerAttendee(t, registrations, "ev-1", "Budi Santoso", "budi@example.com")

	// Ayu nails the exact score on the concluded match and has one pending
	// pick: 3 of 6 possible points. Budi only got the outcome right on his
	// single pick: 1 of 3.
	submitPick(t, predictions, ayu.ID, "mt-1", 2, 1)
	submitPick(t, predictions, ayu.ID, "mt-2", 1, 1)
	submitPick(t, predictions, budi.ID, "mt-1", 3, 0)

	entries, err := service.Leaderboard(t.Context(), "ev-1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}

	top := entries[0]
	if top.Email != "ayu@example.com" || top.Rank != 1 {
		t.Fatalf("expected ayu on top, got %s rank %d", top.Email, top.Rank)
	}
	if top.TotalPoints != 3 || top.Percentage != 50.00 {
		t.Fatalf("unexpected top line: points=%d percentage=%.2f", top.TotalPoints, top.Percentage)
	}

	second := entries[1]
	if second.Email != "budi@example.com" || second.Rank != 2 {
		t.Fatalf("expected budi second, got %s rank %d", second.Email, second.Rank)
	}
	if second.TotalPoints != 1 || second.Percentage != 33.33 {
		t.Fatalf("unexpected second line: points=%d percentage=%.2f", second.TotalPoints, second.Percentage)
	}
}

func TestLeaderboardService_Leaderboard_UnknownEvent(t *testing.T) {
	service, _, _ := newLeaderboardFixture(t)

	if _, err := service.Leaderboard(t.Context(), "ev-unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardService_ExportTable(t *testing.T) {
	service, registrations, predictions := newLeaderboardFixture(t)

	ayu := registerAttendee(t, registrations, "ev-1", "Ayu Lestari", "ayu@example.com")
	submitPick(t, predictions, ayu.ID, "mt-1", 2, 1)

	table, err := service.ExportTable(t.Context(), "ev-1")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	wantHeader := []string{"Name", "Email", "Indonesia vs Japan", "Argentina vs France", "Accuracy (%)", "Total Points"}
	if len(table.Header) != len(wantHeader) {
		t.Fatalf("unexpected header %v", table.Header)
	}
	for i, col := range wantHeader {
		if table.Header[i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, table.Header[i], col)
		}
	}

	if len(table.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if row[0] != "Ayu Lestari" || row[1] != "ayu@example.com" {
		t.Fatalf("unexpected identity cells: %q %q", row[0], row[1])
	}
	if row[2] != "2-1 (prediction) / 2-1 (final)" {
		t.Fatalf("unexpected concluded cell %q", row[2])
	}
	if row[3] != "" {
		t.Fatalf("missing pick should render empty, got %q", row[3])
	}
	if row[4] != "100.00" || row[5] != "3" {
		t.Fatalf("unexpected accuracy/points cells: %q %q", row[4], row[5])
	}
}
