package user

import "context"

// Repository describes user lookups used by use cases. GetByIDs
// resolves a batch in one round trip; unknown ids are absent from the
// result.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByIDs(ctx context.Context, userIDs []string) (map[string]User, error)
}
