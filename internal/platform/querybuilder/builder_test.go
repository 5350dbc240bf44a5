package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectGroupByHavingOffset(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("player_id", "COUNT(*) AS picks").
		From("team_players tp").
		Join("JOIN teams t ON t.id = tp.team_id").
		Where(In("tp.team_id", []any{"t1", "t2"})).
		GroupBy("player_id").
		Having(Expr("COUNT(*) >= ?", 10)).
		OrderBy("picks DESC", "player_id ASC").
		Limit(50).
		Offset(100).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT player_id, COUNT(*) AS picks FROM team_players tp " +
		"JOIN teams t ON t.id = tp.team_id WHERE tp.team_id IN ($1, $2) " +
		"GROUP BY player_id HAVING COUNT(*) >= $3 " +
		"ORDER BY picks DESC, player_id ASC LIMIT 50 OFFSET 100"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"t1", "t2", 10}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestSelectEmptyInIsAlwaysFalse(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("teams").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if sql != "SELECT id FROM teams WHERE 1=0" {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestInsertModelUpsertSuffix(t *testing.T) {
	t.Parallel()

	type row struct {
		ContestID string  `db:"contest_id"`
		PlayerID  string  `db:"player_id"`
		Points    float64 `db:"points"`
	}

	sql, args, err := InsertModel("player_contest_points", row{
		ContestID: "c1",
		PlayerID:  "p1",
		Points:    12.5,
	}, "ON CONFLICT (contest_id, player_id) DO UPDATE SET points = EXCLUDED.points")
	if err != nil {
		t.Fatalf("InsertModel: %v", err)
	}

	want := "INSERT INTO player_contest_points (contest_id, player_id, points) VALUES ($1, $2, $3) " +
		"ON CONFLICT (contest_id, player_id) DO UPDATE SET points = EXCLUDED.points"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"c1", "p1", 12.5}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestUpdateSetExprAndWhere(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("teams").
		Set("total_points", 42.0).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "t1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "UPDATE teams SET total_points = $1, updated_at = NOW() WHERE id = $2"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{42.0, "t1"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}
