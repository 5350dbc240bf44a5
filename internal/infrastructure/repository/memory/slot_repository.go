package memory

import (
	"context"
	"sync"

	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
)

type SlotRepository struct {
	mu    sync.RWMutex
	slots []slot.Slot
}

func NewSlotRepository(slots []slot.Slot) *SlotRepository {
	return &SlotRepository{slots: append([]slot.Slot(nil), slots...)}
}

func (r *SlotRepository) List(_ context.Context) ([]slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]slot.Slot(nil), r.slots...), nil
}

func (r *SlotRepository) GetByID(_ context.Context, slotID string) (slot.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.slots {
		if item.ID == slotID {
			return item, true, nil
		}
	}
	return slot.Slot{}, false, nil
}
