package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
)

type EnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[string]enrollment.Enrollment
	now         func() time.Time
}

func NewEnrollmentRepository(enrollments []enrollment.Enrollment) *EnrollmentRepository {
	byID := make(map[string]enrollment.Enrollment, len(enrollments))
	for _, item := range enrollments {
		byID[item.ID] = item
	}
	return &EnrollmentRepository{
		enrollments: byID,
		now:         time.Now,
	}
}

func (r *EnrollmentRepository) GetByTeamAndContest(_ context.Context, teamID, contestID string) (enrollment.Enrollment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.enrollments {
		if item.TeamID == teamID && item.ContestID == contestID {
			return item, true, nil
		}
	}
	return enrollment.Enrollment{}, false, nil
}

func (r *EnrollmentRepository) ListActiveTeamIDs(_ context.Context, contestID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for _, item := range r.enrollments {
		if item.ContestID == contestID && item.Status == enrollment.StatusActive {
			out = append(out, item.TeamID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *EnrollmentRepository) Create(_ context.Context, e enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.enrollments[e.ID]; exists {
		return fmt.Errorf("enrollment %s already exists", e.ID)
	}
	r.enrollments[e.ID] = e
	return nil
}

func (r *EnrollmentRepository) UpdateStatus(_ context.Context, enrollmentID string, status enrollment.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.enrollments[enrollmentID]
	if !ok {
		return fmt.Errorf("enrollment %s does not exist", enrollmentID)
	}
	item.Status = status
	if status == enrollment.StatusRemoved {
		removedAt := r.now().UTC()
		item.RemovedAt = &removedAt
	} else {
		item.RemovedAt = nil
	}
	r.enrollments[enrollmentID] = item
	return nil
}
