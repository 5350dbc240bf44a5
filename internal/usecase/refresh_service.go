package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	concpool "github.com/sourcegraph/conc/pool"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

// PointsFeed is the upstream scoring source the refresh job pulls
// from. An empty contest code asks for the global pool.
type PointsFeed interface {
	GlobalPoints(ctx context.Context) ([]FeedPoints, error)
	ContestPoints(ctx context.Context, contestID string) ([]FeedPoints, error)
}

// FeedPoints is one upstream score row.
type FeedPoints struct {
	PlayerID string
	Points   float64
}

// RefreshService pulls the points feed for the global pool and every
// live contest, then hands the rows to the ingestion service. Feed
// pulls run concurrently; ingestion fans out over a bounded worker
// pool.
type RefreshService struct {
	contestRepo contest.Repository
	feed        PointsFeed
	ingestion   *IngestionService
	logger      *logging.Logger
	maxWorkers  int
}

const defaultRefreshWorkers = 4

// RefreshScopeResult is the outcome for one scope (global or one
// contest).
type RefreshScopeResult struct {
	ContestID  string
	Records    int
	Status     string
	Message    string
	DurationMs int64
}

type RefreshResult struct {
	ScopeCount   int
	SuccessCount int
	FailedCount  int
	Scopes       []RefreshScopeResult
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
)

func NewRefreshService(
	contestRepo contest.Repository,
	feed PointsFeed,
	ingestion *IngestionService,
	logger *logging.Logger,
	maxWorkers int,
) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultRefreshWorkers
	}
	return &RefreshService{
		contestRepo: contestRepo,
		feed:        feed,
		ingestion:   ingestion,
		logger:      logger,
		maxWorkers:  maxWorkers,
	}
}

type feedBatch struct {
	contestID string
	rows      []FeedPoints
	err       error
	duration  time.Duration
}

func (s *RefreshService) RefreshPoints(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshPoints")
	defer span.End()

	contests, err := s.contestRepo.ListByStatus(ctx, contest.StatusLive)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list live contests for refresh: %w", err)
	}

	batches := s.pullFeed(ctx, contests)

	result := RefreshResult{
		ScopeCount: len(batches),
		Scopes:     make([]RefreshScopeResult, 0, len(batches)),
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create refresh worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan RefreshScopeResult, len(batches))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, batch := range batches {
		batch := batch
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshScopeResult{ContestID: batch.contestID}
			row.Records, row.Status, row.Message = s.ingestBatch(ctx, batch)
			row.DurationMs = (batch.duration + time.Since(start)).Milliseconds()

			if row.Status == refreshStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			rows <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit refresh scope to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Scopes = append(result.Scopes, row)
	}
	sort.SliceStable(result.Scopes, func(i, j int) bool {
		return result.Scopes[i].ContestID < result.Scopes[j].ContestID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

// pullFeed fetches every scope concurrently. A failed pull becomes a
// failed scope, it never aborts the other pulls.
func (s *RefreshService) pullFeed(ctx context.Context, contests []contest.Contest) []feedBatch {
	fetchers := concpool.NewWithResults[feedBatch]().
		WithContext(ctx).
		WithMaxGoroutines(s.maxWorkers)

	fetchers.Go(func(ctx context.Context) (feedBatch, error) {
		start := time.Now()
		rows, err := s.feed.GlobalPoints(ctx)
		return feedBatch{rows: rows, err: err, duration: time.Since(start)}, nil
	})
	for _, c := range contests {
		contestID := c.ID
		fetchers.Go(func(ctx context.Context) (feedBatch, error) {
			start := time.Now()
			rows, err := s.feed.ContestPoints(ctx, contestID)
			return feedBatch{contestID: contestID, rows: rows, err: err, duration: time.Since(start)}, nil
		})
	}

	batches, err := fetchers.Wait()
	if err != nil {
		// Pull errors ride inside each batch; Wait only fails on
		// context cancellation.
		s.logger.WarnContext(ctx, "points feed pull interrupted", "error", err)
	}
	return batches
}

func (s *RefreshService) ingestBatch(ctx context.Context, batch feedBatch) (int, string, string) {
	if batch.err != nil {
		return 0, refreshStatusFailed, batch.err.Error()
	}
	if len(batch.rows) == 0 {
		return 0, refreshStatusSuccess, "no feed rows"
	}

	records := make([]PointsRecord, 0, len(batch.rows))
	for _, row := range batch.rows {
		records = append(records, PointsRecord{
			PlayerID:  row.PlayerID,
			ContestID: batch.contestID,
			Points:    row.Points,
		})
	}

	ingested, err := s.ingestion.IngestPlayerPoints(ctx, records)
	if err != nil {
		return 0, refreshStatusFailed, err.Error()
	}
	return ingested.GlobalUpserts + ingested.ContestUpserts, refreshStatusSuccess, ""
}
