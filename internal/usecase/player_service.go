package usecase

import (
	"context"
	"fmt"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
)

// PlayerService serves the player catalog. Contest-scoped listings of
// daily contests narrow the pool to the contest's allowed franchises.
type PlayerService struct {
	playerRepo  player.Repository
	contestRepo contest.Repository
	listLimit   int
}

const defaultPlayerListLimit = 200

func NewPlayerService(playerRepo player.Repository, contestRepo contest.Repository, listLimit int) *PlayerService {
	if listLimit <= 0 {
		listLimit = defaultPlayerListLimit
	}
	return &PlayerService{
		playerRepo:  playerRepo,
		contestRepo: contestRepo,
		listLimit:   listLimit,
	}
}

// PlayerListQuery narrows a catalog listing.
type PlayerListQuery struct {
	SlotID    string
	Gender    string
	ContestID string
	Skip      int
	Limit     int
}

func (s *PlayerService) ListPlayers(ctx context.Context, q PlayerListQuery) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if q.Skip < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("%w: skip and limit must not be negative", ErrInvalidInput)
	}
	if q.Limit == 0 {
		q.Limit = s.listLimit
	}

	filter := player.ListFilter{
		SlotID: q.SlotID,
		Skip:   q.Skip,
		Limit:  q.Limit,
	}
	if q.Gender != "" {
		gender := player.Gender(q.Gender)
		if _, ok := player.AllGenders[gender]; !ok {
			return nil, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, q.Gender)
		}
		filter.Gender = gender
	}

	if q.ContestID != "" {
		c, found, err := s.contestRepo.GetByID(ctx, q.ContestID)
		if err != nil {
			return nil, fmt.Errorf("get contest for player listing: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: contest %s", ErrNotFound, q.ContestID)
		}
		if c.IsDaily {
			filter.Franchises = c.AllowedFranchises
		}
	}

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// GetPlayer treats malformed ids the same as unknown ones.
func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player %q", ErrNotFound, playerID)
	}
	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}
