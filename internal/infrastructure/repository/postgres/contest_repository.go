package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

type ContestRepository struct {
	db *sqlx.DB
}

var contestSelectColumns = []string{
	"id",
	"name",
	"status",
	"visibility",
	"is_daily",
	"allowed_franchises",
	"starts_at",
	"ends_at",
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) List(ctx context.Context, visibility contest.Visibility) ([]contest.Contest, error) {
	builder := qb.Select(contestSelectColumns...).From("contests")
	if visibility != "" {
		builder = builder.Where(qb.Eq("visibility", string(visibility)))
	}

	query, args, err := builder.OrderBy("starts_at DESC", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contests query: %w", err)
	}
	return r.selectContests(ctx, query, args)
}

func (r *ContestRepository) ListByStatus(ctx context.Context, status contest.Status) ([]contest.Contest, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		Where(qb.Eq("status", string(status))).
		OrderBy("starts_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contests by status query: %w", err)
	}
	return r.selectContests(ctx, query, args)
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		Where(qb.Eq("id", contestID)).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build select contest query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("select contest: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ContestRepository) selectContests(ctx context.Context, query string, args []any) ([]contest.Contest, error) {
	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contests: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
