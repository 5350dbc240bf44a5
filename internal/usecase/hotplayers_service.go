package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
)

// Hot-player sort modes accepted by the listing endpoint.
const (
	HotSortCountDesc = "count_desc"
	HotSortNameAsc   = "name_asc"
)

// HotPlayersConfig carries the tunables the aggregator needs. Zero
// values fall back to the listed defaults at construction.
type HotPlayersConfig struct {
	Threshold int
	ListLimit int
	IDsLimit  int
}

const (
	defaultHotThreshold = 10
	defaultHotListLimit = 200
	defaultHotIDsLimit  = 1000
)

// HotPlayersService counts how many teams picked each player, globally
// or inside one contest's active enrollments. A player crossing the
// selection threshold (inclusive) is "hot".
type HotPlayersService struct {
	teamRepo       team.Repository
	playerRepo     player.Repository
	enrollmentRepo enrollment.Repository
	contestRepo    contest.Repository
	cfg            HotPlayersConfig
}

type HotPlayer struct {
	Player         player.Player
	SelectionCount int
	IsHot          bool
}

type HotPlayersQuery struct {
	ContestID string
	Threshold int
	Skip      int
	Limit     int
	Sort      string
}

// PlayerHotDetail is one player's popularity, globally and optionally
// inside one contest.
type PlayerHotDetail struct {
	Player           player.Player
	GlobalCount      int
	GlobalHot        bool
	ContestID        string
	ContestCount     int
	ContestHot       bool
	ThresholdApplied int
}

func NewHotPlayersService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	enrollmentRepo enrollment.Repository,
	contestRepo contest.Repository,
	cfg HotPlayersConfig,
) *HotPlayersService {
	if cfg.Threshold <= 0 {
		cfg.Threshold = defaultHotThreshold
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultHotListLimit
	}
	if cfg.IDsLimit <= 0 {
		cfg.IDsLimit = defaultHotIDsLimit
	}
	return &HotPlayersService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		enrollmentRepo: enrollmentRepo,
		contestRepo:    contestRepo,
		cfg:            cfg,
	}
}

// CountGlobal reports how many teams picked the player, across every
// team regardless of enrollment.
func (s *HotPlayersService) CountGlobal(ctx context.Context, playerID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HotPlayersService.CountGlobal")
	defer span.End()

	count, err := s.teamRepo.CountByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("count player selections: %w", err)
	}
	return count, nil
}

// CountInContest restricts the count to teams actively enrolled in the
// contest. Unknown or malformed contest ids count as zero, and a
// contest with no active enrollments short-circuits before any team
// query runs.
func (s *HotPlayersService) CountInContest(ctx context.Context, playerID, contestID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HotPlayersService.CountInContest")
	defer span.End()

	teamIDs, ok, err := s.activeTeamIDs(ctx, contestID)
	if err != nil {
		return 0, err
	}
	if !ok || len(teamIDs) == 0 {
		return 0, nil
	}

	count, err := s.teamRepo.CountByPlayerInTeams(ctx, playerID, teamIDs)
	if err != nil {
		return 0, fmt.Errorf("count player selections in contest: %w", err)
	}
	return count, nil
}

// ListHotPlayers returns the selection-count aggregation, resolved to
// player records. Pagination always applies after sorting. Aggregated
// ids whose player record no longer exists are dropped.
func (s *HotPlayersService) ListHotPlayers(ctx context.Context, q HotPlayersQuery) ([]HotPlayer, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HotPlayersService.ListHotPlayers")
	defer span.End()

	threshold := s.threshold(q.Threshold)
	skip, limit, err := s.pagination(q.Skip, q.Limit, s.cfg.ListLimit)
	if err != nil {
		return nil, threshold, err
	}
	sortMode := q.Sort
	if sortMode == "" {
		sortMode = HotSortCountDesc
	}
	if sortMode != HotSortCountDesc && sortMode != HotSortNameAsc {
		return nil, threshold, fmt.Errorf("%w: unsupported sort %q", ErrInvalidInput, q.Sort)
	}

	var scopedTeamIDs []string
	if q.ContestID != "" {
		teamIDs, ok, err := s.activeTeamIDs(ctx, q.ContestID)
		if err != nil {
			return nil, threshold, err
		}
		if !ok || len(teamIDs) == 0 {
			return []HotPlayer{}, threshold, nil
		}
		scopedTeamIDs = teamIDs
	}

	// Name sort needs every row before the window can be cut, count
	// sort pushes the window down into the store.
	aggSkip, aggLimit := skip, limit
	if sortMode == HotSortNameAsc {
		aggSkip, aggLimit = 0, 0
	}
	selections, err := s.teamRepo.AggregateSelections(ctx, scopedTeamIDs, aggSkip, aggLimit)
	if err != nil {
		return nil, threshold, fmt.Errorf("aggregate player selections: %w", err)
	}
	if len(selections) == 0 {
		return []HotPlayer{}, threshold, nil
	}

	playerIDs := make([]string, 0, len(selections))
	for _, sel := range selections {
		playerIDs = append(playerIDs, sel.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, threshold, fmt.Errorf("resolve hot players: %w", err)
	}

	out := make([]HotPlayer, 0, len(selections))
	for _, sel := range selections {
		p, ok := players[sel.PlayerID]
		if !ok {
			continue
		}
		out = append(out, HotPlayer{
			Player:         p,
			SelectionCount: sel.Count,
			IsHot:          sel.Count >= threshold,
		})
	}

	if sortMode == HotSortNameAsc {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Player.Name != out[j].Player.Name {
				return out[i].Player.Name < out[j].Player.Name
			}
			return out[i].Player.ID < out[j].Player.ID
		})
		out = window(out, skip, limit)
	}

	return out, threshold, nil
}

// ListHotPlayerIDs returns only the ids at or above the threshold,
// count-descending.
func (s *HotPlayersService) ListHotPlayerIDs(ctx context.Context, contestID string, thresholdOverride int) ([]string, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HotPlayersService.ListHotPlayerIDs")
	defer span.End()

	threshold := s.threshold(thresholdOverride)

	hot, _, err := s.ListHotPlayers(ctx, HotPlayersQuery{
		ContestID: contestID,
		Threshold: threshold,
		Limit:     s.cfg.IDsLimit,
		Sort:      HotSortCountDesc,
	})
	if err != nil {
		return nil, threshold, err
	}

	ids := make([]string, 0, len(hot))
	for _, item := range hot {
		if !item.IsHot {
			continue
		}
		ids = append(ids, item.Player.ID)
	}
	return ids, threshold, nil
}

// GetPlayerHot reports one player's counts and hot flags. The global
// scope is always present; the contest scope only when requested.
func (s *HotPlayersService) GetPlayerHot(ctx context.Context, playerID, contestID string) (PlayerHotDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HotPlayersService.GetPlayerHot")
	defer span.End()

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerHotDetail{}, fmt.Errorf("get player for hot detail: %w", err)
	}
	if !found {
		return PlayerHotDetail{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	globalCount, err := s.CountGlobal(ctx, playerID)
	if err != nil {
		return PlayerHotDetail{}, err
	}

	detail := PlayerHotDetail{
		Player:           p,
		GlobalCount:      globalCount,
		GlobalHot:        globalCount >= s.cfg.Threshold,
		ThresholdApplied: s.cfg.Threshold,
	}

	if contestID != "" {
		contestCount, err := s.CountInContest(ctx, playerID, contestID)
		if err != nil {
			return PlayerHotDetail{}, err
		}
		detail.ContestID = contestID
		detail.ContestCount = contestCount
		detail.ContestHot = contestCount >= s.cfg.Threshold
	}

	return detail, nil
}

// activeTeamIDs resolves the contest scope. The bool is false when the
// contest id does not resolve at all, which callers treat as an empty
// scope rather than an error.
func (s *HotPlayersService) activeTeamIDs(ctx context.Context, contestID string) ([]string, bool, error) {
	_, found, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, false, fmt.Errorf("get contest for hot scope: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	teamIDs, err := s.enrollmentRepo.ListActiveTeamIDs(ctx, contestID)
	if err != nil {
		return nil, false, fmt.Errorf("list active enrollments contest=%s: %w", contestID, err)
	}
	return teamIDs, true, nil
}

func (s *HotPlayersService) threshold(override int) int {
	if override > 0 {
		return override
	}
	return s.cfg.Threshold
}

func (s *HotPlayersService) pagination(skip, limit, fallbackLimit int) (int, int, error) {
	if skip < 0 {
		return 0, 0, fmt.Errorf("%w: skip must not be negative", ErrInvalidInput)
	}
	if limit < 0 {
		return 0, 0, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = fallbackLimit
	}
	return skip, limit, nil
}

func window(items []HotPlayer, skip, limit int) []HotPlayer {
	if skip >= len(items) {
		return []HotPlayer{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
