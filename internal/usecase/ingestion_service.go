package usecase

import (
	"context"
	"fmt"

	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

// IngestionService is the single writer of point values. Records with
// a contest id upsert the per-contest score, records without one
// overwrite the player's cumulative global score.
type IngestionService struct {
	playerRepo        player.Repository
	contestPointsRepo contestpoints.Repository
	logger            *logging.Logger
}

// PointsRecord is one ingested score.
type PointsRecord struct {
	PlayerID  string
	ContestID string
	Points    float64
}

// IngestResult summarizes one ingestion batch.
type IngestResult struct {
	GlobalUpserts  int
	ContestUpserts int
	Skipped        int
}

func NewIngestionService(
	playerRepo player.Repository,
	contestPointsRepo contestpoints.Repository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		playerRepo:        playerRepo,
		contestPointsRepo: contestPointsRepo,
		logger:            logger,
	}
}

func (s *IngestionService) IngestPlayerPoints(ctx context.Context, records []PointsRecord) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestPlayerPoints")
	defer span.End()

	if len(records) == 0 {
		return IngestResult{}, fmt.Errorf("%w: at least one record is required", ErrInvalidInput)
	}

	result := IngestResult{}
	for _, record := range records {
		if record.PlayerID == "" {
			return IngestResult{}, fmt.Errorf("%w: record player id is required", ErrInvalidInput)
		}

		_, found, err := s.playerRepo.GetByID(ctx, record.PlayerID)
		if err != nil {
			return IngestResult{}, fmt.Errorf("resolve player for ingestion: %w", err)
		}
		if !found {
			result.Skipped++
			s.logger.WarnContext(ctx, "skipping points for unknown player",
				"player_id", record.PlayerID,
				"contest_id", record.ContestID,
			)
			continue
		}

		if record.ContestID == "" {
			if err := s.playerRepo.UpsertPoints(ctx, record.PlayerID, record.Points); err != nil {
				return IngestResult{}, fmt.Errorf("upsert global points player=%s: %w", record.PlayerID, err)
			}
			result.GlobalUpserts++
			continue
		}

		if err := s.contestPointsRepo.Upsert(ctx, contestpoints.Record{
			ContestID: record.ContestID,
			PlayerID:  record.PlayerID,
			Points:    record.Points,
		}); err != nil {
			return IngestResult{}, fmt.Errorf("upsert contest points player=%s contest=%s: %w",
				record.PlayerID, record.ContestID, err)
		}
		result.ContestUpserts++
	}

	return result, nil
}
