package usecase

import (
	"context"
	"fmt"

	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
)

// SlotService exposes the slot registry.
type SlotService struct {
	slotRepo slot.Repository
}

func NewSlotService(slotRepo slot.Repository) *SlotService {
	return &SlotService{slotRepo: slotRepo}
}

func (s *SlotService) ListSlots(ctx context.Context) ([]slot.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.ListSlots")
	defer span.End()

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}
