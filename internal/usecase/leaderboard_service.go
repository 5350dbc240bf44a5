package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/domain/user"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

// LeaderboardService ranks every team by its multiplier-aware total.
// The same scoring formula backs the board and the single-team detail
// view, so a team's rank and its displayed score never drift apart.
type LeaderboardService struct {
	teamRepo team.Repository
	userRepo user.Repository
	points   *PointsService
	logger   *logging.Logger
}

type LeaderboardEntry struct {
	Rank          int
	TeamID        string
	TeamName      string
	UserID        string
	Username      string
	Points        float64
	IsCurrentUser bool
}

type Leaderboard struct {
	Entries          []LeaderboardEntry
	CurrentUserEntry *LeaderboardEntry
	IsPlaceholder    bool
}

func NewLeaderboardService(
	teamRepo team.Repository,
	userRepo user.Repository,
	points *PointsService,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		points:   points,
		logger:   logger,
	}
}

// BuildLeaderboard ranks all teams against the global points pool.
// Any unexpected failure degrades to a seeded placeholder board so the
// endpoint keeps rendering; the failure itself is logged at error
// level rather than silently absorbed.
func (s *LeaderboardService) BuildLeaderboard(ctx context.Context, principal user.Principal) Leaderboard {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.BuildLeaderboard")
	defer span.End()

	board, err := s.buildLeaderboard(ctx, principal)
	if err != nil {
		s.logger.ErrorContext(ctx, "leaderboard build failed, serving placeholder", "error", err)
		return placeholderLeaderboard()
	}
	return board
}

func (s *LeaderboardService) buildLeaderboard(ctx context.Context, principal user.Principal) (Leaderboard, error) {
	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list teams for leaderboard: %w", err)
	}
	if len(teams) == 0 {
		return Leaderboard{Entries: []LeaderboardEntry{}}, nil
	}

	totals, err := s.points.ComputeTotals(ctx, teams, "")
	if err != nil {
		return Leaderboard{}, err
	}

	userIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		userIDs = append(userIDs, t.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("resolve team owners: %w", err)
	}

	ranked := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if _, ok := users[t.UserID]; !ok {
			// Orphaned team, owner no longer resolves.
			continue
		}
		ranked = append(ranked, t)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if totals[ranked[i].ID] != totals[ranked[j].ID] {
			return totals[ranked[i].ID] > totals[ranked[j].ID]
		}
		return ranked[i].ID < ranked[j].ID
	})

	board := Leaderboard{Entries: make([]LeaderboardEntry, 0, len(ranked))}
	for idx, t := range ranked {
		owner := users[t.UserID]
		entry := LeaderboardEntry{
			Rank:          idx + 1,
			TeamID:        t.ID,
			TeamName:      t.Name,
			UserID:        t.UserID,
			Username:      owner.Username,
			Points:        totals[t.ID],
			IsCurrentUser: !principal.IsAnonymous() && t.UserID == principal.UserID,
		}
		board.Entries = append(board.Entries, entry)
		if entry.IsCurrentUser && board.CurrentUserEntry == nil {
			current := entry
			board.CurrentUserEntry = &current
		}

		s.points.SyncCachedTotal(ctx, t, totals[t.ID])
	}

	return board, nil
}

func placeholderLeaderboard() Leaderboard {
	entries := []LeaderboardEntry{
		{Rank: 1, TeamID: "demo-team-1", TeamName: "Thunder XI", Username: "player_one", Points: 124.5},
		{Rank: 2, TeamID: "demo-team-2", TeamName: "Desert Storm", Username: "player_two", Points: 118},
		{Rank: 3, TeamID: "demo-team-3", TeamName: "Night Riders", Username: "player_three", Points: 97.5},
	}
	return Leaderboard{
		Entries:       entries,
		IsPlaceholder: true,
	}
}
