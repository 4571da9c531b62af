package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/platform/logging"
)

const (
	defaultSyncWorkers = 4
	maxSyncWorkers     = 16

	syncStatusUpdated = "updated"
	syncStatusPending = "pending"
	syncStatusSkipped = "skipped"
	syncStatusFailed  = "failed"
)

// ResultsFeed is the slice of the external provider the sync job needs.
type ResultsFeed interface {
	FetchResults(ctx context.Context, fixtureIDs []int64) ([]ExternalMatchResult, error)
}

type ResultSyncService struct {
	matchRepo match.Repository
	feed      ResultsFeed
	logger    *logging.Logger
	now       func() time.Time
}

func NewResultSyncService(matchRepo match.Repository, feed ResultsFeed, logger *logging.Logger) *ResultSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultSyncService{
		matchRepo: matchRepo,
		feed:      feed,
		logger:    logger,
		now:       time.Now,
	}
}

type SyncResultsInput struct {
	MaxWorkers int
	// DryRun reports what would change without writing finals.
	DryRun bool
}

type SyncResultsResult struct {
	MatchCount   int              `json:"match_count"`
	UpdatedCount int              `json:"updated_count"`
	PendingCount int              `json:"pending_count"`
	SkippedCount int              `json:"skipped_count"`
	FailedCount  int              `json:"failed_count"`
	WorkerCount  int              `json:"worker_count"`
	Matches      []SyncMatchEntry `json:"matches"`
}

type SyncMatchEntry struct {
	MatchID   string `json:"match_id"`
	EventID   string `json:"event_id"`
	FixtureID int64  `json:"fixture_id,omitempty"`
	Status    string `json:"status"`
	Score     string `json:"score,omitempty"`
	Message   string `json:"message,omitempty"`
}

// SyncResults pulls full-time scores for every kicked-off match that has no
// final yet and stores them. Writes fan out over a worker pool; a match whose
// fixture the provider has not settled is left pending for the next run.
func (s *ResultSyncService) SyncResults(ctx context.Context, input SyncResultsInput) (SyncResultsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultSyncService.SyncResults")
	defer span.End()

	pending, err := s.matchRepo.ListPendingResults(ctx, s.now().UTC())
	if err != nil {
		return SyncResultsResult{}, fmt.Errorf("list pending matches: %w", err)
	}

	result := SyncResultsResult{MatchCount: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	fixtureIDs := make([]int64, 0, len(pending))
	matchesByFixture := make(map[int64][]match.Match, len(pending))
	entries := make(chan SyncMatchEntry, len(pending))
	for _, item := range pending {
		if item.ExternalFixtureID == 0 {
			entries <- SyncMatchEntry{
				MatchID: item.ID,
				EventID: item.EventID,
				Status:  syncStatusSkipped,
				Message: "no external fixture mapped",
			}
			continue
		}
		if len(matchesByFixture[item.ExternalFixtureID]) == 0 {
			fixtureIDs = append(fixtureIDs, item.ExternalFixtureID)
		}
		matchesByFixture[item.ExternalFixtureID] = append(matchesByFixture[item.ExternalFixtureID], item)
	}

	resultsByFixture := make(map[int64]ExternalMatchResult, len(fixtureIDs))
	if len(fixtureIDs) > 0 {
		feedResults, err := s.feed.FetchResults(ctx, fixtureIDs)
		if err != nil {
			return SyncResultsResult{}, fmt.Errorf("fetch results: %w", err)
		}
		for _, item := range feedResults {
			resultsByFixture[item.FixtureID] = item
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultSyncWorkers
	}
	if workerCount > maxSyncWorkers {
		workerCount = maxSyncWorkers
	}
	result.WorkerCount = workerCount

	var updatedCount, pendingCount, failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncResultsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for fixtureID, fixtureMatches := range matchesByFixture {
		fixtureID := fixtureID
		fixtureMatches := fixtureMatches
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			feedResult, known := resultsByFixture[fixtureID]
			for _, item := range fixtureMatches {
				entry := SyncMatchEntry{
					MatchID:   item.ID,
					EventID:   item.EventID,
					FixtureID: fixtureID,
				}

				switch {
				case !known:
					entry.Status = syncStatusPending
					entry.Message = "fixture unknown to provider"
				case !feedResult.Finished():
					entry.Status = syncStatusPending
					entry.Message = "fixture not finished, status=" + feedResult.Status
				case input.DryRun:
					entry.Status = syncStatusUpdated
					entry.Score = fmt.Sprintf("%d-%d", *feedResult.HomeGoals, *feedResult.AwayGoals)
				default:
					if err := s.matchRepo.SetFinalScore(ctx, item.ID, *feedResult.HomeGoals, *feedResult.AwayGoals); err != nil {
						entry.Status = syncStatusFailed
						entry.Message = err.Error()
						s.logger.ErrorContext(ctx, "store final score failed",
							"match_id", item.ID, "fixture_id", fixtureID, "error", err)
					} else {
						entry.Status = syncStatusUpdated
						entry.Score = fmt.Sprintf("%d-%d", *feedResult.HomeGoals, *feedResult.AwayGoals)
					}
				}

				switch entry.Status {
				case syncStatusUpdated:
					updatedCount.Add(1)
				case syncStatusPending:
					pendingCount.Add(1)
				case syncStatusFailed:
					failedCount.Add(1)
				}
				entries <- entry
			}
		}); err != nil {
			workers.Done()
			return SyncResultsResult{}, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(entries)

	for entry := range entries {
		result.Matches = append(result.Matches, entry)
		if entry.Status == syncStatusSkipped {
			result.SkippedCount++
		}
	}
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchID < result.Matches[j].MatchID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.PendingCount = int(pendingCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
