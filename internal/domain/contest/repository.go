package contest

import "context"

// Repository describes contest reads used by use cases.
type Repository interface {
	List(ctx context.Context, visibility Visibility) ([]Contest, error)
	ListByStatus(ctx context.Context, status Status) ([]Contest, error)
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
}
