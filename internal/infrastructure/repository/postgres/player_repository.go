package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"franchise",
	"slot_id",
	"points",
	"gender",
	"is_available",
	"image_url",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	builder := qb.Select(playerSelectColumns...).From("players").
		Where(qb.IsNull("deleted_at"))
	if filter.SlotID != "" {
		builder = builder.Where(qb.Eq("slot_id", filter.SlotID))
	}
	if filter.Gender != "" {
		builder = builder.Where(qb.Eq("gender", string(filter.Gender)))
	}
	if len(filter.Franchises) > 0 {
		builder = builder.Where(qb.In("franchise", stringSliceToAny(filter.Franchises)))
	}

	query, args, err := builder.
		OrderBy("franchise", "name", "id").
		Limit(filter.Limit).
		Offset(filter.Skip).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) (map[string]player.Player, error) {
	if len(playerIDs) == 0 {
		return map[string]player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.In("id", stringSliceToAny(playerIDs)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make(map[string]player.Player, len(rows))
	for _, row := range rows {
		out[row.ID] = row.toDomain()
	}
	return out, nil
}

func (r *PlayerRepository) UpsertPoints(ctx context.Context, playerID string, points float64) error {
	query, args, err := qb.Update("players").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player points: %w", err)
	}
	return nil
}
