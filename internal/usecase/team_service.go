package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/platform/id"
)

// TeamService owns fantasy-team building and the enrollment lifecycle.
type TeamService struct {
	teamRepo       team.Repository
	playerRepo     player.Repository
	slotRepo       slot.Repository
	contestRepo    contest.Repository
	enrollmentRepo enrollment.Repository
	points         *PointsService
	idGen          id.Generator
	now            func() time.Time
}

// TeamInput is the payload for creating or replacing a roster.
type TeamInput struct {
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// TeamDetail is a team with its computed points for one scope.
type TeamDetail struct {
	Team      team.Team
	Breakdown TeamPointsBreakdown
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	slotRepo slot.Repository,
	contestRepo contest.Repository,
	enrollmentRepo enrollment.Repository,
	points *PointsService,
	idGen id.Generator,
) *TeamService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	return &TeamService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		slotRepo:       slotRepo,
		contestRepo:    contestRepo,
		enrollmentRepo: enrollmentRepo,
		points:         points,
		idGen:          idGen,
		now:            time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, userID string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	if userID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, exists, err := s.teamRepo.GetByUser(ctx, userID); err != nil {
		return team.Team{}, fmt.Errorf("check existing team: %w", err)
	} else if exists {
		return team.Team{}, fmt.Errorf("%w: user already has a team", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	t := team.Team{
		ID:            teamID,
		UserID:        userID,
		Name:          input.Name,
		PlayerIDs:     append([]string(nil), input.PlayerIDs...),
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
	}
	if err := s.validateRoster(ctx, t); err != nil {
		return team.Team{}, err
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateTeam")
	defer span.End()

	existing, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team for update: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if existing.UserID != userID {
		return team.Team{}, fmt.Errorf("%w: team belongs to another user", ErrUnauthorized)
	}

	next := existing
	next.Name = input.Name
	next.PlayerIDs = append([]string(nil), input.PlayerIDs...)
	next.CaptainID = input.CaptainID
	next.ViceCaptainID = input.ViceCaptainID

	if err := s.validateRoster(ctx, next); err != nil {
		return team.Team{}, err
	}
	if err := s.teamRepo.Update(ctx, next); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	return next, nil
}

func (s *TeamService) GetMyTeam(ctx context.Context, userID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetMyTeam")
	defer span.End()

	t, found, err := s.teamRepo.GetByUser(ctx, userID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: no team for user", ErrNotFound)
	}
	return t, nil
}

// GetTeamDetail returns a team with its multiplier-aware points for
// the global pool (contestID empty) or one contest. The global path
// also refreshes the denormalized total, best effort.
func (s *TeamService) GetTeamDetail(ctx context.Context, teamID, contestID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamDetail")
	defer span.End()

	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team detail: %w", err)
	}
	if !found {
		return TeamDetail{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	if contestID != "" {
		if _, found, err := s.contestRepo.GetByID(ctx, contestID); err != nil {
			return TeamDetail{}, fmt.Errorf("get contest for team detail: %w", err)
		} else if !found {
			return TeamDetail{}, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
		}
	}

	breakdown, err := s.points.ComputeTeamPoints(ctx, t, contestID)
	if err != nil {
		return TeamDetail{}, err
	}
	if contestID == "" {
		s.points.SyncCachedTotal(ctx, t, breakdown.TotalPoints)
		t.TotalPoints = breakdown.TotalPoints
	}

	return TeamDetail{Team: t, Breakdown: breakdown}, nil
}

// Enroll links the user's team to a contest. A removed record for the
// same pair is reactivated instead of duplicated, keeping at most one
// enrollment row per (team, contest).
func (s *TeamService) Enroll(ctx context.Context, userID, teamID, contestID string) (enrollment.Enrollment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Enroll")
	defer span.End()

	t, c, err := s.resolveEnrollmentTarget(ctx, userID, teamID, contestID)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	if !c.AcceptsEnrollment() {
		return enrollment.Enrollment{}, fmt.Errorf("%w: contest %s is not open for enrollment", ErrInvalidInput, contestID)
	}

	existing, found, err := s.enrollmentRepo.GetByTeamAndContest(ctx, teamID, contestID)
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	}
	if found {
		if existing.Status == enrollment.StatusActive {
			return enrollment.Enrollment{}, fmt.Errorf("%w: team already enrolled", ErrInvalidInput)
		}
		if err := s.enrollmentRepo.UpdateStatus(ctx, existing.ID, enrollment.StatusActive); err != nil {
			return enrollment.Enrollment{}, fmt.Errorf("reactivate enrollment: %w", err)
		}
		existing.Status = enrollment.StatusActive
		existing.RemovedAt = nil
		return existing, nil
	}

	enrollmentID, err := s.idGen.NewID()
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("generate enrollment id: %w", err)
	}
	record := enrollment.Enrollment{
		ID:         enrollmentID,
		TeamID:     t.ID,
		UserID:     t.UserID,
		ContestID:  contestID,
		Status:     enrollment.StatusActive,
		EnrolledAt: s.now().UTC(),
	}
	if err := s.enrollmentRepo.Create(ctx, record); err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("create enrollment: %w", err)
	}
	return record, nil
}

func (s *TeamService) RemoveEnrollment(ctx context.Context, userID, teamID, contestID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemoveEnrollment")
	defer span.End()

	if _, _, err := s.resolveEnrollmentTarget(ctx, userID, teamID, contestID); err != nil {
		return err
	}

	existing, found, err := s.enrollmentRepo.GetByTeamAndContest(ctx, teamID, contestID)
	if err != nil {
		return fmt.Errorf("get enrollment for removal: %w", err)
	}
	if !found || existing.Status != enrollment.StatusActive {
		return fmt.Errorf("%w: no active enrollment", ErrNotFound)
	}
	if err := s.enrollmentRepo.UpdateStatus(ctx, existing.ID, enrollment.StatusRemoved); err != nil {
		return fmt.Errorf("remove enrollment: %w", err)
	}
	return nil
}

func (s *TeamService) resolveEnrollmentTarget(ctx context.Context, userID, teamID, contestID string) (team.Team, contest.Contest, error) {
	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, contest.Contest{}, fmt.Errorf("get team for enrollment: %w", err)
	}
	if !found {
		return team.Team{}, contest.Contest{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if t.UserID != userID {
		return team.Team{}, contest.Contest{}, fmt.Errorf("%w: team belongs to another user", ErrUnauthorized)
	}

	c, found, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return team.Team{}, contest.Contest{}, fmt.Errorf("get contest for enrollment: %w", err)
	}
	if !found {
		return team.Team{}, contest.Contest{}, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}

	return t, c, nil
}

// validateRoster checks structural team rules plus the slot selection
// bounds against resolved player records.
func (s *TeamService) validateRoster(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(t.PlayerIDs) == 0 {
		return fmt.Errorf("%w: team needs at least one player", ErrInvalidInput)
	}

	players, err := s.playerRepo.GetByIDs(ctx, t.PlayerIDs)
	if err != nil {
		return fmt.Errorf("resolve roster players: %w", err)
	}
	countBySlot := make(map[string]int)
	for _, playerID := range t.PlayerIDs {
		p, ok := players[playerID]
		if !ok {
			return fmt.Errorf("%w: unknown player %s", ErrInvalidInput, playerID)
		}
		if !p.IsAvailable {
			return fmt.Errorf("%w: player %s is not available", ErrInvalidInput, playerID)
		}
		if p.SlotID != "" {
			countBySlot[p.SlotID]++
		}
	}

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list slots for roster validation: %w", err)
	}
	for _, sl := range slots {
		count := countBySlot[sl.ID]
		if count < sl.MinSelect || count > sl.MaxSelect {
			return fmt.Errorf("%w: slot %s requires between %d and %d players, got %d",
				ErrInvalidInput, sl.Code, sl.MinSelect, sl.MaxSelect, count)
		}
	}

	return nil
}
