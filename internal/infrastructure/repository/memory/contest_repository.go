package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
)

type ContestRepository struct {
	mu       sync.RWMutex
	contests []contest.Contest
}

func NewContestRepository(contests []contest.Contest) *ContestRepository {
	return &ContestRepository{contests: append([]contest.Contest(nil), contests...)}
}

func (r *ContestRepository) List(_ context.Context, visibility contest.Visibility) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0, len(r.contests))
	for _, item := range r.contests {
		if visibility != "" && item.Visibility != visibility {
			continue
		}
		out = append(out, item)
	}
	sortContests(out)
	return out, nil
}

func (r *ContestRepository) ListByStatus(_ context.Context, status contest.Status) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0, len(r.contests))
	for _, item := range r.contests {
		if item.Status != status {
			continue
		}
		out = append(out, item)
	}
	sortContests(out)
	return out, nil
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.contests {
		if item.ID == contestID {
			return item, true, nil
		}
	}
	return contest.Contest{}, false, nil
}

func sortContests(items []contest.Contest) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].StartsAt.Equal(items[j].StartsAt) {
			return items[i].StartsAt.After(items[j].StartsAt)
		}
		return items[i].ID < items[j].ID
	})
}
