package memory

import (
	"context"
	"sync"

	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
)

type ContestPointsRepository struct {
	mu      sync.RWMutex
	records map[string]map[string]contestpoints.Record
}

func NewContestPointsRepository(records []contestpoints.Record) *ContestPointsRepository {
	byContest := make(map[string]map[string]contestpoints.Record)
	for _, item := range records {
		if byContest[item.ContestID] == nil {
			byContest[item.ContestID] = make(map[string]contestpoints.Record)
		}
		byContest[item.ContestID][item.PlayerID] = item
	}
	return &ContestPointsRepository{records: byContest}
}

func (r *ContestPointsRepository) GetByContestAndPlayers(_ context.Context, contestID string, playerIDs []string) (map[string]contestpoints.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]contestpoints.Record, len(playerIDs))
	byPlayer := r.records[contestID]
	for _, playerID := range playerIDs {
		if record, ok := byPlayer[playerID]; ok {
			out[playerID] = record
		}
	}
	return out, nil
}

func (r *ContestPointsRepository) Upsert(_ context.Context, record contestpoints.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.records[record.ContestID] == nil {
		r.records[record.ContestID] = make(map[string]contestpoints.Record)
	}
	r.records[record.ContestID][record.PlayerID] = record
	return nil
}
