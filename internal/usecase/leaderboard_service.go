package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/leaderboard"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/infrastructure/export"
)

type LeaderboardService struct {
	eventRepo      event.Repository
	matchRepo      match.Repository
	predictionRepo prediction.Repository
}

func NewLeaderboardService(
	eventRepo event.Repository,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
) *LeaderboardService {
	return &LeaderboardService{
		eventRepo:      eventRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
	}
}

// Leaderboard scores every stored prediction against the current finals and
// returns attendees in winner order. Nothing is precomputed: a result landing
// between two calls simply changes the next ranking.
func (s *LeaderboardService) Leaderboard(ctx context.Context, eventID string) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Leaderboard")
	defer span.End()

	matches, rows, err := s.loadScoringInputs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	matchesByID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		matchesByID[item.ID] = item
	}

	summaries := leaderboard.Aggregate(rows, matchesByID)
	return leaderboard.Rank(summaries), nil
}

// ExportTable renders the current standings as a spreadsheet-ready table,
// one column per match showing each attendee's pick against the final.
func (s *LeaderboardService) ExportTable(ctx context.Context, eventID string) (export.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.ExportTable")
	defer span.End()

	matches, rows, err := s.loadScoringInputs(ctx, eventID)
	if err != nil {
		return export.Table{}, err
	}

	matchesByID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		matchesByID[item.ID] = item
	}

	entries := leaderboard.Rank(leaderboard.Aggregate(rows, matchesByID))

	picksByEmail := make(map[string]map[string]prediction.Row, len(entries))
	for _, row := range rows {
		byMatch, ok := picksByEmail[row.AttendeeEmail]
		if !ok {
			byMatch = make(map[string]prediction.Row)
			picksByEmail[row.AttendeeEmail] = byMatch
		}
		byMatch[row.MatchID] = row
	}

	// Column order is fixed: identity, one column per match, accuracy, then
	// total points last. Rank is implied by row order.
	header := []string{"Name", "Email"}
	for _, item := range matches {
		header = append(header, item.Label())
	}
	header = append(header, "Accuracy (%)", "Total Points")

	tableRows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		row := []string{
			entry.Name,
			entry.Email,
		}
		for _, item := range matches {
			row = append(row, exportCell(picksByEmail[entry.Email][item.ID], item))
		}
		row = append(row,
			strconv.FormatFloat(entry.Percentage, 'f', 2, 64),
			strconv.Itoa(entry.TotalPoints),
		)
		tableRows = append(tableRows, row)
	}

	return export.Table{
		SheetName: "Leaderboard",
		Header:    header,
		Rows:      tableRows,
	}, nil
}

func (s *LeaderboardService) loadScoringInputs(ctx context.Context, eventID string) ([]match.Match, []prediction.Row, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	var (
		matches []match.Match
		rows    []prediction.Row
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.ListByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list matches by event: %w", err)
		}
		matches = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.predictionRepo.ListByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list predictions by event: %w", err)
		}
		rows = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	return matches, rows, nil
}

func exportCell(pick prediction.Row, item match.Match) string {
	// No pick for this match leaves the cell empty.
	if pick.AttendeeEmail == "" {
		return ""
	}

	cell := fmt.Sprintf("%d-%d (prediction)", pick.HomeScore, pick.AwayScore)
	if item.Concluded() {
		cell = fmt.Sprintf("%s / %d-%d (final)", cell, *item.FinalHomeScore, *item.FinalAwayScore)
	}
	return cell
}
