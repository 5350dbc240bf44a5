package usecase

import (
	"context"
	"fmt"

	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

const (
	womenSlotMultiplier   = 2.0
	captainMultiplier     = 2.0
	viceCaptainMultiplier = 1.5
)

// PointsService computes multiplier-stacked team totals. Multipliers
// stack in a fixed order: women's-slot bonus first, then captain or
// vice-captain. The order matters the day a non-multiplicative rule
// joins the chain, so both stages stay explicit.
type PointsService struct {
	playerRepo        player.Repository
	slotRepo          slot.Repository
	contestPointsRepo contestpoints.Repository
	teamRepo          team.Repository
	logger            *logging.Logger
}

// PlayerPointsRow is one player's contribution to a team total.
type PlayerPointsRow struct {
	PlayerID      string
	Name          string
	SlotID        string
	IsCaptain     bool
	IsViceCaptain bool
	BasePoints    float64
	Multiplier    float64
	CountedPoints float64
}

// TeamPointsBreakdown is a team total with per-player detail.
type TeamPointsBreakdown struct {
	TeamID      string
	ContestID   string
	TotalPoints float64
	Players     []PlayerPointsRow
}

func NewPointsService(
	playerRepo player.Repository,
	slotRepo slot.Repository,
	contestPointsRepo contestpoints.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
) *PointsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PointsService{
		playerRepo:        playerRepo,
		slotRepo:          slotRepo,
		contestPointsRepo: contestPointsRepo,
		teamRepo:          teamRepo,
		logger:            logger,
	}
}

// ComputeTeamPoints aggregates one team against the global pool
// (contestID empty) or a contest-scoped points source. Player ids that
// no longer resolve contribute nothing.
func (s *PointsService) ComputeTeamPoints(ctx context.Context, t team.Team, contestID string) (TeamPointsBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ComputeTeamPoints")
	defer span.End()

	breakdown := TeamPointsBreakdown{
		TeamID:    t.ID,
		ContestID: contestID,
		Players:   []PlayerPointsRow{},
	}
	if len(t.PlayerIDs) == 0 {
		return breakdown, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, t.PlayerIDs)
	if err != nil {
		return TeamPointsBreakdown{}, fmt.Errorf("resolve team players: %w", err)
	}
	slots, err := s.slotsByID(ctx)
	if err != nil {
		return TeamPointsBreakdown{}, err
	}

	base := basePointsOf(players)
	if contestID != "" {
		base, err = s.contestBasePoints(ctx, contestID, t.PlayerIDs)
		if err != nil {
			return TeamPointsBreakdown{}, err
		}
	}

	for _, playerID := range t.PlayerIDs {
		p, ok := players[playerID]
		if !ok {
			continue
		}
		row := scorePlayer(t, p, slots, base[playerID])
		breakdown.TotalPoints += row.CountedPoints
		breakdown.Players = append(breakdown.Players, row)
	}

	return breakdown, nil
}

// ComputeTotals aggregates many teams in O(1) store round trips:
// every distinct player and every slot is resolved exactly once no
// matter how many teams are in play.
func (s *PointsService) ComputeTotals(ctx context.Context, teams []team.Team, contestID string) (map[string]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ComputeTotals")
	defer span.End()

	totals := make(map[string]float64, len(teams))
	if len(teams) == 0 {
		return totals, nil
	}

	playerIDs := distinctPlayerIDs(teams)
	players := map[string]player.Player{}
	var err error
	if len(playerIDs) > 0 {
		players, err = s.playerRepo.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve leaderboard players: %w", err)
		}
	}
	slots, err := s.slotsByID(ctx)
	if err != nil {
		return nil, err
	}

	base := basePointsOf(players)
	if contestID != "" && len(playerIDs) > 0 {
		base, err = s.contestBasePoints(ctx, contestID, playerIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, t := range teams {
		total := 0.0
		for _, playerID := range t.PlayerIDs {
			p, ok := players[playerID]
			if !ok {
				continue
			}
			total += scorePlayer(t, p, slots, base[playerID]).CountedPoints
		}
		totals[t.ID] = total
	}

	return totals, nil
}

// SyncCachedTotal refreshes the denormalized team total. Best effort:
// a failed write is logged and swallowed, never surfaced to the read
// path that triggered it.
func (s *PointsService) SyncCachedTotal(ctx context.Context, t team.Team, computed float64) {
	if t.TotalPoints == computed {
		return
	}
	if err := s.teamRepo.UpdateTotalPoints(ctx, t.ID, computed); err != nil {
		s.logger.WarnContext(ctx, "team total cache sync failed",
			"team_id", t.ID,
			"error", err,
		)
	}
}

func (s *PointsService) slotsByID(ctx context.Context) (map[string]slot.Slot, error) {
	all, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots for scoring: %w", err)
	}
	out := make(map[string]slot.Slot, len(all))
	for _, item := range all {
		out[item.ID] = item
	}
	return out, nil
}

func (s *PointsService) contestBasePoints(ctx context.Context, contestID string, playerIDs []string) (map[string]float64, error) {
	records, err := s.contestPointsRepo.GetByContestAndPlayers(ctx, contestID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve contest points contest=%s: %w", contestID, err)
	}
	out := make(map[string]float64, len(records))
	for playerID, record := range records {
		out[playerID] = record.Points
	}
	return out, nil
}

func scorePlayer(t team.Team, p player.Player, slots map[string]slot.Slot, base float64) PlayerPointsRow {
	multiplier := 1.0
	if p.SlotID != "" {
		if s, ok := slots[p.SlotID]; ok && s.IsWomenSlot {
			multiplier *= womenSlotMultiplier
		}
	}
	isCaptain := p.ID == t.CaptainID
	isVice := p.ID == t.ViceCaptainID
	if isCaptain {
		multiplier *= captainMultiplier
	} else if isVice {
		multiplier *= viceCaptainMultiplier
	}

	return PlayerPointsRow{
		PlayerID:      p.ID,
		Name:          p.Name,
		SlotID:        p.SlotID,
		IsCaptain:     isCaptain,
		IsViceCaptain: isVice,
		BasePoints:    base,
		Multiplier:    multiplier,
		CountedPoints: base * multiplier,
	}
}

func basePointsOf(players map[string]player.Player) map[string]float64 {
	out := make(map[string]float64, len(players))
	for id, p := range players {
		out[id] = p.Points
	}
	return out
}

func distinctPlayerIDs(teams []team.Team) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, t := range teams {
		for _, playerID := range t.PlayerIDs {
			if _, ok := seen[playerID]; ok {
				continue
			}
			seen[playerID] = struct{}{}
			out = append(out, playerID)
		}
	}
	return out
}
