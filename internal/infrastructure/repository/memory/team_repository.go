package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/daffahmad/fantasy-contest/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}
	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if item, ok := r.teams[teamID]; ok {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByUser(_ context.Context, userID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.teams))
	for id := range r.teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.teams[id].UserID == userID {
			return r.teams[id], true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[t.ID]; exists {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	r.teams[t.ID] = t
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[t.ID]; !exists {
		return fmt.Errorf("team %s does not exist", t.ID)
	}
	r.teams[t.ID] = t
	return nil
}

func (r *TeamRepository) UpdateTotalPoints(_ context.Context, teamID string, points float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s does not exist", teamID)
	}
	item.TotalPoints = points
	r.teams[teamID] = item
	return nil
}

func (r *TeamRepository) CountByPlayer(_ context.Context, playerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.teams {
		if item.HasPlayer(playerID) {
			count++
		}
	}
	return count, nil
}

func (r *TeamRepository) CountByPlayerInTeams(_ context.Context, playerID string, teamIDs []string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, teamID := range teamIDs {
		if item, ok := r.teams[teamID]; ok && item.HasPlayer(playerID) {
			count++
		}
	}
	return count, nil
}

func (r *TeamRepository) AggregateSelections(_ context.Context, teamIDs []string, skip, limit int) ([]team.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scoped := make([]team.Team, 0, len(r.teams))
	if teamIDs == nil {
		for _, item := range r.teams {
			scoped = append(scoped, item)
		}
	} else {
		for _, teamID := range teamIDs {
			if item, ok := r.teams[teamID]; ok {
				scoped = append(scoped, item)
			}
		}
	}

	counts := make(map[string]int)
	for _, item := range scoped {
		for _, playerID := range item.PlayerIDs {
			counts[playerID]++
		}
	}

	out := make([]team.Selection, 0, len(counts))
	for playerID, count := range counts {
		out = append(out, team.Selection{PlayerID: playerID, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	if skip >= len(out) {
		return []team.Selection{}, nil
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
