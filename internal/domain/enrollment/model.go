package enrollment

import (
	"fmt"
	"time"
)

// Status of a team's linkage to a contest. Only active enrollments
// count toward contest-scoped aggregation.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusRemoved Status = "REMOVED"
)

// Enrollment joins a team to a contest. UserID is denormalized off the
// team so leaderboard scoping never needs an extra hop.
type Enrollment struct {
	ID         string
	TeamID     string
	UserID     string
	ContestID  string
	Status     Status
	EnrolledAt time.Time
	RemovedAt  *time.Time
}

func (e Enrollment) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("enrollment id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("enrollment team id is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("enrollment user id is required")
	}
	if e.ContestID == "" {
		return fmt.Errorf("enrollment contest id is required")
	}
	if e.Status != StatusActive && e.Status != StatusRemoved {
		return fmt.Errorf("invalid enrollment status: %s", e.Status)
	}

	return nil
}
