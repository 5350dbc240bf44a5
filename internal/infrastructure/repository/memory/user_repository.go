package memory

import (
	"context"
	"sync"

	"github.com/daffahmad/fantasy-contest/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	byID := make(map[string]user.User, len(users))
	for _, item := range users {
		byID[item.ID] = item
	}
	return &UserRepository{users: byID}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.users[userID]
	return item, ok, nil
}

func (r *UserRepository) GetByIDs(_ context.Context, userIDs []string) (map[string]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]user.User, len(userIDs))
	for _, userID := range userIDs {
		if item, ok := r.users[userID]; ok {
			out[userID] = item
		}
	}
	return out, nil
}
