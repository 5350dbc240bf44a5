package team

import "context"

// Repository describes fantasy-team persistence needs from use cases.
// UpdateTotalPoints is the best-effort cache sync target; callers may
// ignore its error by policy.
type Repository interface {
	ListAll(ctx context.Context) ([]Team, error)
	ListByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByUser(ctx context.Context, userID string) (Team, bool, error)
	Create(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error
	UpdateTotalPoints(ctx context.Context, teamID string, points float64) error
	CountByPlayer(ctx context.Context, playerID string) (int, error)
	CountByPlayerInTeams(ctx context.Context, playerID string, teamIDs []string) (int, error)
	AggregateSelections(ctx context.Context, teamIDs []string, skip, limit int) ([]Selection, error)
}

// Selection is one row of the hot-players group-by: how many teams
// picked a player. TeamIDs scoping comes from contest enrollment; a
// nil slice means all teams.
type Selection struct {
	PlayerID string
	Count    int
}
