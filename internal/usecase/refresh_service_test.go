package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

type stubPointsFeed struct {
	global      []FeedPoints
	globalErr   error
	contests    map[string][]FeedPoints
	contestErrs map[string]error
}

func (s *stubPointsFeed) GlobalPoints(context.Context) ([]FeedPoints, error) {
	return s.global, s.globalErr
}

func (s *stubPointsFeed) ContestPoints(_ context.Context, contestID string) ([]FeedPoints, error) {
	if err, ok := s.contestErrs[contestID]; ok {
		return nil, err
	}
	return s.contests[contestID], nil
}

type refreshFixture struct {
	service           *RefreshService
	feed              *stubPointsFeed
	playerRepo        *stubPlayerRepository
	contestPointsRepo *stubContestPointsRepository
}

func newRefreshFixture(contests map[string]contest.Contest, feed *stubPointsFeed) *refreshFixture {
	playerRepo := &stubPlayerRepository{players: map[string]player.Player{
		"p-1": {ID: "p-1", Name: "Arjun", IsAvailable: true},
		"p-2": {ID: "p-2", Name: "Bela", IsAvailable: true},
	}}
	contestPointsRepo := &stubContestPointsRepository{}
	ingestion := NewIngestionService(playerRepo, contestPointsRepo, logging.NewNop())
	service := NewRefreshService(&stubContestRepository{contests: contests}, feed, ingestion, logging.NewNop(), 2)
	return &refreshFixture{
		service:           service,
		feed:              feed,
		playerRepo:        playerRepo,
		contestPointsRepo: contestPointsRepo,
	}
}

func TestRefreshService_GlobalAndLiveContests(t *testing.T) {
	t.Parallel()

	contests := map[string]contest.Contest{
		"contest-live":   {ID: "contest-live", Status: contest.StatusLive},
		"contest-closed": {ID: "contest-closed", Status: contest.StatusCompleted},
	}
	feed := &stubPointsFeed{
		global: []FeedPoints{{PlayerID: "p-1", Points: 30}, {PlayerID: "p-2", Points: 12}},
		contests: map[string][]FeedPoints{
			"contest-live": {{PlayerID: "p-1", Points: 7}},
		},
	}
	fx := newRefreshFixture(contests, feed)

	result, err := fx.service.RefreshPoints(context.Background())
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if result.ScopeCount != 2 || result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected result counts: %+v", result)
	}

	// The global scope sorts first on its empty contest id.
	if result.Scopes[0].ContestID != "" || result.Scopes[0].Records != 2 {
		t.Fatalf("unexpected global scope: %+v", result.Scopes[0])
	}
	if result.Scopes[1].ContestID != "contest-live" || result.Scopes[1].Records != 1 {
		t.Fatalf("unexpected contest scope: %+v", result.Scopes[1])
	}

	if !almostEqual(fx.playerRepo.upserted["p-1"], 30) || !almostEqual(fx.playerRepo.upserted["p-2"], 12) {
		t.Fatalf("unexpected global writes: %v", fx.playerRepo.upserted)
	}
	if len(fx.contestPointsRepo.upserts) != 1 || fx.contestPointsRepo.upserts[0].ContestID != "contest-live" {
		t.Fatalf("unexpected contest writes: %+v", fx.contestPointsRepo.upserts)
	}
}

func TestRefreshService_FailedPullDoesNotAbortOthers(t *testing.T) {
	t.Parallel()

	contests := map[string]contest.Contest{
		"contest-live": {ID: "contest-live", Status: contest.StatusLive},
	}
	feed := &stubPointsFeed{
		global:      []FeedPoints{{PlayerID: "p-1", Points: 5}},
		contestErrs: map[string]error{"contest-live": errors.New("feed unavailable")},
	}
	fx := newRefreshFixture(contests, feed)

	result, err := fx.service.RefreshPoints(context.Background())
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 1 {
		t.Fatalf("unexpected result counts: %+v", result)
	}
	failed := result.Scopes[1]
	if failed.ContestID != "contest-live" || failed.Status != "failed" {
		t.Fatalf("unexpected failed scope: %+v", failed)
	}
	if !strings.Contains(failed.Message, "feed unavailable") {
		t.Fatalf("expected pull error in scope message, got %q", failed.Message)
	}
	if !almostEqual(fx.playerRepo.upserted["p-1"], 5) {
		t.Fatalf("global scope must still ingest: %v", fx.playerRepo.upserted)
	}
}

func TestRefreshService_EmptyFeedIsSuccess(t *testing.T) {
	t.Parallel()

	fx := newRefreshFixture(nil, &stubPointsFeed{})
	result, err := fx.service.RefreshPoints(context.Background())
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if result.ScopeCount != 1 || result.SuccessCount != 1 {
		t.Fatalf("unexpected result counts: %+v", result)
	}
	got := result.Scopes[0]
	if got.Status != "success" || got.Records != 0 || got.Message != "no feed rows" {
		t.Fatalf("unexpected empty scope: %+v", got)
	}
}

func TestRefreshService_ScopesSortedByContestID(t *testing.T) {
	t.Parallel()

	contests := map[string]contest.Contest{
		"contest-b": {ID: "contest-b", Status: contest.StatusLive},
		"contest-a": {ID: "contest-a", Status: contest.StatusLive},
	}
	feed := &stubPointsFeed{contests: map[string][]FeedPoints{
		"contest-a": {{PlayerID: "p-1", Points: 1}},
		"contest-b": {{PlayerID: "p-2", Points: 2}},
	}}
	fx := newRefreshFixture(contests, feed)

	result, err := fx.service.RefreshPoints(context.Background())
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	got := make([]string, 0, len(result.Scopes))
	for _, scope := range result.Scopes {
		got = append(got, scope.ContestID)
	}
	want := []string{"", "contest-a", "contest-b"}
	if len(got) != len(want) {
		t.Fatalf("unexpected scope count: %v", got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("unexpected scope order: got=%v want=%v", got, want)
		}
	}
}

func TestRefreshService_IngestionErrorMarksScopeFailed(t *testing.T) {
	t.Parallel()

	feed := &stubPointsFeed{
		global: []FeedPoints{{PlayerID: "", Points: 9}},
	}
	fx := newRefreshFixture(nil, feed)

	result, err := fx.service.RefreshPoints(context.Background())
	if err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if result.FailedCount != 1 || result.SuccessCount != 0 {
		t.Fatalf("unexpected result counts: %+v", result)
	}
	if result.Scopes[0].Status != "failed" || result.Scopes[0].Message == "" {
		t.Fatalf("unexpected failed scope: %+v", result.Scopes[0])
	}
}

func TestRefreshService_ListContestsErrorAborts(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("db down")
	ingestion := NewIngestionService(&stubPlayerRepository{}, &stubContestPointsRepository{}, logging.NewNop())
	service := NewRefreshService(&stubContestRepository{err: repoErr}, &stubPointsFeed{}, ingestion, logging.NewNop(), 2)

	_, err := service.RefreshPoints(context.Background())
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
