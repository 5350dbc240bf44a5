package usecase

import (
	"context"
	"fmt"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
)

// ContestService exposes public contest reads.
type ContestService struct {
	contestRepo contest.Repository
}

func NewContestService(contestRepo contest.Repository) *ContestService {
	return &ContestService{contestRepo: contestRepo}
}

func (s *ContestService) ListContests(ctx context.Context) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListContests")
	defer span.End()

	contests, err := s.contestRepo.List(ctx, contest.VisibilityPublic)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}
	return contests, nil
}

func (s *ContestService) GetContest(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetContest")
	defer span.End()

	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest %q", ErrNotFound, contestID)
	}
	c, found, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !found {
		return contest.Contest{}, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}
	return c, nil
}
