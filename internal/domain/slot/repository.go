package slot

import "context"

// Repository describes slot reference-data reads used by use cases.
type Repository interface {
	List(ctx context.Context) ([]Slot, error)
	GetByID(ctx context.Context, slotID string) (Slot, bool, error)
}
