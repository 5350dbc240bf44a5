package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

type ContestPointsRepository struct {
	db *sqlx.DB
}

func NewContestPointsRepository(db *sqlx.DB) *ContestPointsRepository {
	return &ContestPointsRepository{db: db}
}

func (r *ContestPointsRepository) GetByContestAndPlayers(ctx context.Context, contestID string, playerIDs []string) (map[string]contestpoints.Record, error) {
	if len(playerIDs) == 0 {
		return map[string]contestpoints.Record{}, nil
	}

	query, args, err := qb.Select("contest_id", "player_id", "points").
		From("player_contest_points").
		Where(
			qb.Eq("contest_id", contestID),
			qb.In("player_id", stringSliceToAny(playerIDs)),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contest points query: %w", err)
	}

	var rows []struct {
		ContestID string  `db:"contest_id"`
		PlayerID  string  `db:"player_id"`
		Points    float64 `db:"points"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contest points: %w", err)
	}

	out := make(map[string]contestpoints.Record, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = contestpoints.Record{
			ContestID: row.ContestID,
			PlayerID:  row.PlayerID,
			Points:    row.Points,
		}
	}
	return out, nil
}

func (r *ContestPointsRepository) Upsert(ctx context.Context, record contestpoints.Record) error {
	type row struct {
		ContestID string  `db:"contest_id"`
		PlayerID  string  `db:"player_id"`
		Points    float64 `db:"points"`
	}
	query, args, err := qb.InsertModel("player_contest_points", row{
		ContestID: record.ContestID,
		PlayerID:  record.PlayerID,
		Points:    record.Points,
	}, "ON CONFLICT (contest_id, player_id) DO UPDATE SET points = EXCLUDED.points, updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert contest points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert contest points: %w", err)
	}
	return nil
}
