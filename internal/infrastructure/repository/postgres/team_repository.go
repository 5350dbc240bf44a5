package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

// TeamRepository persists fantasy teams across two tables: the team
// row and an ordered team_players join table. The join table is also
// what the hot-players aggregation groups over.
type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"user_id",
	"name",
	"captain_id",
	"vice_captain_id",
	"total_points",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}
	return r.selectTeams(ctx, query, args, nil)
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return []team.Team{}, nil
	}

	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.In("id", stringSliceToAny(teamIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by ids query: %w", err)
	}
	return r.selectTeams(ctx, query, args, teamIDs)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}
	return r.getTeam(ctx, query, args)
}

func (r *TeamRepository) GetByUser(ctx context.Context, userID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by user query: %w", err)
	}
	return r.getTeam(ctx, query, args)
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.InsertInto("teams").
		Columns("id", "user_id", "name", "captain_id", "vice_captain_id", "total_points").
		Values(t.ID, t.UserID, t.Name, stringToNullString(t.CaptainID), stringToNullString(t.ViceCaptainID), t.TotalPoints).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	if err := insertTeamPlayers(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update team tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.Update("teams").
		Set("name", t.Name).
		Set("captain_id", stringToNullString(t.CaptainID)).
		Set("vice_captain_id", stringToNullString(t.ViceCaptainID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_players WHERE team_id = $1", t.ID); err != nil {
		return fmt.Errorf("clear team players: %w", err)
	}
	if err := insertTeamPlayers(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update team tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpdateTotalPoints(ctx context.Context, teamID string, points float64) error {
	query, args, err := qb.Update("teams").
		Set("total_points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team total query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team total: %w", err)
	}
	return nil
}

func (r *TeamRepository) CountByPlayer(ctx context.Context, playerID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("team_players").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player selections query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count player selections: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) CountByPlayerInTeams(ctx context.Context, playerID string, teamIDs []string) (int, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}

	query, args, err := qb.Select("COUNT(*)").From("team_players").
		Where(
			qb.Eq("player_id", playerID),
			qb.In("team_id", stringSliceToAny(teamIDs)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player selections in teams query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count player selections in teams: %w", err)
	}
	return count, nil
}

// AggregateSelections groups team_players by player, count descending
// with player id as the deterministic tie-break, windowed after the
// sort. A nil teamIDs slice aggregates every team.
func (r *TeamRepository) AggregateSelections(ctx context.Context, teamIDs []string, skip, limit int) ([]team.Selection, error) {
	builder := qb.Select("player_id", "COUNT(*) AS picks").From("team_players")
	if teamIDs != nil {
		builder = builder.Where(qb.In("team_id", stringSliceToAny(teamIDs)))
	}

	query, args, err := builder.
		GroupBy("player_id").
		OrderBy("picks DESC", "player_id ASC").
		Limit(limit).
		Offset(skip).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build aggregate selections query: %w", err)
	}

	var rows []struct {
		PlayerID string `db:"player_id"`
		Picks    int    `db:"picks"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate selections: %w", err)
	}

	out := make([]team.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Selection{PlayerID: row.PlayerID, Count: row.Picks})
	}
	return out, nil
}

func insertTeamPlayers(ctx context.Context, tx *sqlx.Tx, t team.Team) error {
	if len(t.PlayerIDs) == 0 {
		return nil
	}

	builder := qb.InsertInto("team_players").Columns("team_id", "player_id", "position")
	for idx, playerID := range t.PlayerIDs {
		builder = builder.Values(t.ID, playerID, idx)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team players: %w", err)
	}
	return nil
}

func (r *TeamRepository) getTeam(ctx context.Context, query string, args []any) (team.Team, bool, error) {
	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	playersByTeam, err := r.teamPlayersByTeam(ctx, []string{row.ID})
	if err != nil {
		return team.Team{}, false, err
	}
	return row.toDomain(playersByTeam[row.ID]), true, nil
}

func (r *TeamRepository) selectTeams(ctx context.Context, query string, args []any, teamIDs []string) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	if teamIDs == nil {
		teamIDs = make([]string, 0, len(rows))
		for _, row := range rows {
			teamIDs = append(teamIDs, row.ID)
		}
	}
	playersByTeam, err := r.teamPlayersByTeam(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(playersByTeam[row.ID]))
	}
	return out, nil
}

func (r *TeamRepository) teamPlayersByTeam(ctx context.Context, teamIDs []string) (map[string][]string, error) {
	query, args, err := qb.Select("team_id", "player_id", "position").
		From("team_players").
		Where(qb.In("team_id", stringSliceToAny(teamIDs))).
		OrderBy("team_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team players query: %w", err)
	}

	var rows []struct {
		TeamID   string `db:"team_id"`
		PlayerID string `db:"player_id"`
		Position int    `db:"position"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team players: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TeamID != rows[j].TeamID {
			return rows[i].TeamID < rows[j].TeamID
		}
		return rows[i].Position < rows[j].Position
	})

	out := make(map[string][]string)
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], row.PlayerID)
	}
	return out, nil
}
