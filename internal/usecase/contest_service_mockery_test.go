package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	contestmock "github.com/daffahmad/fantasy-contest/internal/mocks/domain/contest"
	"github.com/stretchr/testify/mock"
)

func TestContestService_ListContests_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	contestRepo := contestmock.NewRepository(t)
	service := NewContestService(contestRepo)

	expected := []contest.Contest{
		{ID: "idn-daily-2026-08-31", Name: "Daily Sprint", Status: contest.StatusLive, Visibility: contest.VisibilityPublic, IsDaily: true},
		{ID: "idn-super-cup-2026", Name: "Super Cup", Status: contest.StatusOngoing, Visibility: contest.VisibilityPublic},
	}

	contestRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), contest.VisibilityPublic).
		Return(expected, nil).
		Once()

	got, err := service.ListContests(ctx)
	if err != nil {
		t.Fatalf("list contests: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("unexpected contest count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("unexpected contest id: got=%s want=%s", got[0].ID, expected[0].ID)
	}
}

func TestContestService_GetContest_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	contestRepo := contestmock.NewRepository(t)
	service := NewContestService(contestRepo)
	contestID := "missing-contest"

	contestRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), contestID).
		Return(contest.Contest{}, false, nil).
		Once()

	_, err := service.GetContest(ctx, contestID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContestService_GetContest_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	contestRepo := contestmock.NewRepository(t)
	service := NewContestService(contestRepo)
	repoErr := errors.New("connection reset")

	contestRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "idn-super-cup-2026").
		Return(contest.Contest{}, false, repoErr).
		Once()

	_, err := service.GetContest(ctx, "idn-super-cup-2026")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestContestService_GetContest_EmptyID(t *testing.T) {
	t.Parallel()

	service := NewContestService(contestmock.NewRepository(t))
	_, err := service.GetContest(context.Background(), "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}
