package player

import "context"

// Repository describes player persistence needs from use cases.
// GetByIDs resolves a batch in one round trip; ids that do not exist
// are simply absent from the result, never an error.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) (map[string]Player, error)
	UpsertPoints(ctx context.Context, playerID string, points float64) error
}
