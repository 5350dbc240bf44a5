package contest

import (
	"fmt"
	"time"
)

// Status is a contest lifecycle phase.
type Status string

const (
	StatusLive      Status = "live"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

var AllStatuses = map[Status]struct{}{
	StatusLive:      {},
	StatusOngoing:   {},
	StatusCompleted: {},
	StatusArchived:  {},
}

// Visibility controls whether a contest shows up in public listings.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Contest is an event teams enroll into. Daily contests restrict the
// eligible player pool to AllowedFranchises.
type Contest struct {
	ID                string
	Name              string
	Status            Status
	Visibility        Visibility
	IsDaily           bool
	AllowedFranchises []string
	StartsAt          time.Time
	EndsAt            time.Time
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("contest name is required")
	}
	if _, ok := AllStatuses[c.Status]; !ok {
		return fmt.Errorf("invalid contest status: %s", c.Status)
	}
	if c.IsDaily && len(c.AllowedFranchises) == 0 {
		return fmt.Errorf("daily contest requires allowed franchises")
	}

	return nil
}

// AcceptsEnrollment reports whether teams may still join.
func (c Contest) AcceptsEnrollment() bool {
	return c.Status == StatusLive || c.Status == StatusOngoing
}
