package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/user"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

var userSelectColumns = []string{
	"id",
	"username",
	"email",
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select(userSelectColumns...).From("users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("select user: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) (map[string]user.User, error) {
	if len(userIDs) == 0 {
		return map[string]user.User{}, nil
	}

	query, args, err := qb.Select(userSelectColumns...).From("users").
		Where(qb.In("id", stringSliceToAny(userIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users by ids query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users by ids: %w", err)
	}

	out := make(map[string]user.User, len(rows))
	for _, row := range rows {
		out[row.ID] = row.toDomain()
	}
	return out, nil
}
