package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/daffahmad/fantasy-contest/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}
	return &PlayerRepository{players: byID}
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := map[string]struct{}{}
	for _, franchise := range filter.Franchises {
		allowed[franchise] = struct{}{}
	}

	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		if filter.SlotID != "" && item.SlotID != filter.SlotID {
			continue
		}
		if filter.Gender != "" && item.Gender != filter.Gender {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[item.Franchise]; !ok {
				continue
			}
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Franchise != out[j].Franchise {
			return out[i].Franchise < out[j].Franchise
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	if filter.Skip >= len(out) {
		return []player.Player{}, nil
	}
	out = out[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) (map[string]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]player.Player, len(playerIDs))
	for _, playerID := range playerIDs {
		if item, ok := r.players[playerID]; ok {
			out[playerID] = item
		}
	}
	return out, nil
}

func (r *PlayerRepository) UpsertPoints(_ context.Context, playerID string, points float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.players[playerID]
	if !ok {
		return nil
	}
	item.Points = points
	r.players[playerID] = item
	return nil
}
