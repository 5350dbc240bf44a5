package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

type SlotRepository struct {
	db *sqlx.DB
}

func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

var slotSelectColumns = []string{
	"id",
	"code",
	"name",
	"min_select",
	"max_select",
	"is_women_slot",
}

func (r *SlotRepository) List(ctx context.Context) ([]slot.Slot, error) {
	query, args, err := qb.Select(slotSelectColumns...).From("slots").
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select slots query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select slots: %w", err)
	}

	out := make([]slot.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, slotID string) (slot.Slot, bool, error) {
	query, args, err := qb.Select(slotSelectColumns...).From("slots").
		Where(qb.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return slot.Slot{}, false, fmt.Errorf("build select slot query: %w", err)
	}

	var row slotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return slot.Slot{}, false, nil
		}
		return slot.Slot{}, false, fmt.Errorf("select slot: %w", err)
	}
	return row.toDomain(), true, nil
}
