package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	qb "github.com/daffahmad/fantasy-contest/internal/platform/querybuilder"
)

type EnrollmentRepository struct {
	db *sqlx.DB
}

var enrollmentSelectColumns = []string{
	"id",
	"team_id",
	"user_id",
	"contest_id",
	"status",
	"enrolled_at",
	"removed_at",
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) GetByTeamAndContest(ctx context.Context, teamID, contestID string) (enrollment.Enrollment, bool, error) {
	query, args, err := qb.Select(enrollmentSelectColumns...).
		From("team_contest_enrollments").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("contest_id", contestID),
		).
		ToSQL()
	if err != nil {
		return enrollment.Enrollment{}, false, fmt.Errorf("build select enrollment query: %w", err)
	}

	var row enrollmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return enrollment.Enrollment{}, false, nil
		}
		return enrollment.Enrollment{}, false, fmt.Errorf("select enrollment: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EnrollmentRepository) ListActiveTeamIDs(ctx context.Context, contestID string) ([]string, error) {
	query, args, err := qb.Select("team_id").
		From("team_contest_enrollments").
		Where(
			qb.Eq("contest_id", contestID),
			qb.EqLiteral("status", string(enrollment.StatusActive)),
		).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active enrollments query: %w", err)
	}

	var teamIDs []string
	if err := r.db.SelectContext(ctx, &teamIDs, query, args...); err != nil {
		return nil, fmt.Errorf("select active enrollments: %w", err)
	}
	return teamIDs, nil
}

func (r *EnrollmentRepository) Create(ctx context.Context, e enrollment.Enrollment) error {
	query, args, err := qb.InsertInto("team_contest_enrollments").
		Columns("id", "team_id", "user_id", "contest_id", "status", "enrolled_at").
		Values(e.ID, e.TeamID, e.UserID, e.ContestID, string(e.Status), e.EnrolledAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert enrollment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// UpdateStatus flips a record between active and removed, stamping or
// clearing removed_at to match.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, enrollmentID string, status enrollment.Status) error {
	builder := qb.Update("team_contest_enrollments").
		Set("status", string(status))
	if status == enrollment.StatusRemoved {
		builder = builder.SetExpr("removed_at", "NOW()")
	} else {
		builder = builder.SetExpr("removed_at", "NULL")
	}

	query, args, err := builder.
		Where(qb.Eq("id", enrollmentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update enrollment status query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}
