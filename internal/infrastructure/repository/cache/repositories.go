package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	basecache "github.com/daffahmad/fantasy-contest/internal/platform/cache"
)

// Decorators for the read-heavy, near-static reference repositories.
// Writes go straight through and invalidate the affected keys.

type SlotRepository struct {
	next  slot.Repository
	cache *basecache.Store
}

func NewSlotRepository(next slot.Repository, cache *basecache.Store) *SlotRepository {
	return &SlotRepository{next: next, cache: cache}
}

func (r *SlotRepository) List(ctx context.Context) ([]slot.Slot, error) {
	v, err := r.cache.GetOrLoad(ctx, "slot:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]slot.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]slot.Slot)
	return append([]slot.Slot(nil), items...), nil
}

func (r *SlotRepository) GetByID(ctx context.Context, slotID string) (slot.Slot, bool, error) {
	key := "slot:id:" + slotID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, slotID)
		if err != nil {
			return nil, err
		}
		return cachedSlotByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return slot.Slot{}, false, err
	}

	cached, _ := v.(cachedSlotByID)
	return cached.value, cached.exists, nil
}

type cachedSlotByID struct {
	value  slot.Slot
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	key := playerListKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

// GetByIDs bypasses the cache: point values ride on the player record
// and batch reads back scoring paths that need fresh numbers.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) (map[string]player.Player, error) {
	return r.next.GetByIDs(ctx, playerIDs)
}

func (r *PlayerRepository) UpsertPoints(ctx context.Context, playerID string, points float64) error {
	if err := r.next.UpsertPoints(ctx, playerID, points); err != nil {
		return err
	}
	r.cache.Delete(ctx, "player:id:"+playerID)
	r.cache.DeletePrefix(ctx, "player:list:")
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func playerListKey(filter player.ListFilter) string {
	var b strings.Builder
	b.WriteString("player:list:")
	b.WriteString(filter.SlotID)
	b.WriteString(":")
	b.WriteString(string(filter.Gender))
	b.WriteString(":")
	b.WriteString(strings.Join(filter.Franchises, ","))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(filter.Skip))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(filter.Limit))
	return b.String()
}

type ContestRepository struct {
	next  contest.Repository
	cache *basecache.Store
}

func NewContestRepository(next contest.Repository, cache *basecache.Store) *ContestRepository {
	return &ContestRepository{next: next, cache: cache}
}

func (r *ContestRepository) List(ctx context.Context, visibility contest.Visibility) ([]contest.Contest, error) {
	key := "contest:list:" + string(visibility)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, visibility)
		if err != nil {
			return nil, err
		}
		return append([]contest.Contest(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]contest.Contest)
	return append([]contest.Contest(nil), items...), nil
}

func (r *ContestRepository) ListByStatus(ctx context.Context, status contest.Status) ([]contest.Contest, error) {
	key := "contest:status:" + string(status)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		return append([]contest.Contest(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]contest.Contest)
	return append([]contest.Contest(nil), items...), nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	key := "contest:id:" + contestID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, contestID)
		if err != nil {
			return nil, err
		}
		return cachedContestByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return contest.Contest{}, false, err
	}

	cached, _ := v.(cachedContestByID)
	return cached.value, cached.exists, nil
}

type cachedContestByID struct {
	value  contest.Contest
	exists bool
}
