package enrollment

import "context"

// Repository describes enrollment persistence needs from use cases.
// At most one record exists per (team, contest) pair; enrolling again
// after removal flips the existing record back to active.
type Repository interface {
	GetByTeamAndContest(ctx context.Context, teamID, contestID string) (Enrollment, bool, error)
	ListActiveTeamIDs(ctx context.Context, contestID string) ([]string, error)
	Create(ctx context.Context, e Enrollment) error
	UpdateStatus(ctx context.Context, enrollmentID string, status Status) error
}
