package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

type teamServiceFixture struct {
	service        *TeamService
	teamRepo       *stubTeamRepository
	playerRepo     *stubPlayerRepository
	enrollmentRepo *stubEnrollmentRepository
	contestRepo    *stubContestRepository
}

func newTeamServiceFixture() *teamServiceFixture {
	playerRepo := &stubPlayerRepository{players: map[string]player.Player{
		"p-bat-1":   {ID: "p-bat-1", Name: "Arjun", SlotID: "slot-bat", Points: 10, IsAvailable: true},
		"p-bat-2":   {ID: "p-bat-2", Name: "Bela", SlotID: "slot-bat", Points: 20, IsAvailable: true},
		"p-bat-3":   {ID: "p-bat-3", Name: "Chandra", SlotID: "slot-bat", Points: 5, IsAvailable: true},
		"p-women":   {ID: "p-women", Name: "Zara", SlotID: "slot-women", Points: 15, IsAvailable: true, Gender: player.GenderFemale},
		"p-benched": {ID: "p-benched", Name: "Benched", SlotID: "slot-bat", IsAvailable: false},
	}}
	slotRepo := &stubSlotRepository{slots: []slot.Slot{
		{ID: "slot-bat", Code: "BAT", Name: "Batter", MinSelect: 1, MaxSelect: 2},
		{ID: "slot-women", Code: "WMN", Name: "Women", MinSelect: 1, MaxSelect: 1, IsWomenSlot: true},
	}}
	contestRepo := &stubContestRepository{contests: map[string]contest.Contest{
		"contest-live":   {ID: "contest-live", Name: "Live Cup", Status: contest.StatusLive, Visibility: contest.VisibilityPublic},
		"contest-closed": {ID: "contest-closed", Name: "Closed Cup", Status: contest.StatusCompleted, Visibility: contest.VisibilityPublic},
	}}
	teamRepo := &stubTeamRepository{}
	enrollmentRepo := &stubEnrollmentRepository{}
	contestPointsRepo := &stubContestPointsRepository{}

	points := NewPointsService(playerRepo, slotRepo, contestPointsRepo, teamRepo, logging.NewNop())
	service := NewTeamService(teamRepo, playerRepo, slotRepo, contestRepo, enrollmentRepo, points, &stubIDGenerator{ids: []string{"team-gen-1", "enr-gen-1"}})
	service.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	return &teamServiceFixture{
		service:        service,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		enrollmentRepo: enrollmentRepo,
		contestRepo:    contestRepo,
	}
}

func validTeamInput() TeamInput {
	return TeamInput{
		Name:          "Thunder XI",
		PlayerIDs:     []string{"p-bat-1", "p-bat-2", "p-women"},
		CaptainID:     "p-bat-1",
		ViceCaptainID: "p-women",
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	got, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if got.ID != "team-gen-1" {
		t.Fatalf("unexpected team id: %q", got.ID)
	}
	if got.UserID != "user-1" || got.CaptainID != "p-bat-1" {
		t.Fatalf("unexpected created team: %+v", got)
	}
	if len(fx.teamRepo.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(fx.teamRepo.created))
	}
}

func TestTeamService_CreateTeam_SecondTeamRejected(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	if _, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput()); err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	_, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for second team, got %v", err)
	}
}

func TestTeamService_CreateTeam_RosterValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input TeamInput
	}{
		{
			name: "unknown player",
			input: TeamInput{
				Name:      "Bad",
				PlayerIDs: []string{"p-bat-1", "p-women", "p-ghost"},
			},
		},
		{
			name: "unavailable player",
			input: TeamInput{
				Name:      "Bad",
				PlayerIDs: []string{"p-benched", "p-women"},
			},
		},
		{
			name: "duplicate player",
			input: TeamInput{
				Name:      "Bad",
				PlayerIDs: []string{"p-bat-1", "p-bat-1", "p-women"},
			},
		},
		{
			name: "captain not on roster",
			input: TeamInput{
				Name:      "Bad",
				PlayerIDs: []string{"p-bat-1", "p-women"},
				CaptainID: "p-bat-2",
			},
		},
		{
			name: "captain equals vice captain",
			input: TeamInput{
				Name:          "Bad",
				PlayerIDs:     []string{"p-bat-1", "p-women"},
				CaptainID:     "p-bat-1",
				ViceCaptainID: "p-bat-1",
			},
		},
		{
			name: "missing women's slot pick",
			input: TeamInput{
				Name:      "Bad",
				PlayerIDs: []string{"p-bat-1", "p-bat-2"},
			},
		},
		{
			name: "slot over max",
			input: TeamInput{
				Name:      "Bad",
				PlayerIDs: []string{"p-bat-1", "p-bat-2", "p-bat-3", "p-women"},
			},
		},
		{
			name:  "empty roster",
			input: TeamInput{Name: "Bad"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fx := newTeamServiceFixture()
			_, err := fx.service.CreateTeam(context.Background(), "user-1", tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(fx.teamRepo.created) != 0 {
				t.Fatalf("invalid roster must not be persisted")
			}
		})
	}
}

func TestTeamService_UpdateTeam(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	input := validTeamInput()
	input.Name = "Thunder XI v2"
	input.CaptainID = "p-bat-2"
	input.ViceCaptainID = "p-bat-1"

	got, err := fx.service.UpdateTeam(context.Background(), "user-1", created.ID, input)
	if err != nil {
		t.Fatalf("UpdateTeam error: %v", err)
	}
	if got.Name != "Thunder XI v2" || got.CaptainID != "p-bat-2" {
		t.Fatalf("unexpected updated team: %+v", got)
	}
}

func TestTeamService_UpdateTeam_ForeignTeamRejected(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	_, err = fx.service.UpdateTeam(context.Background(), "user-2", created.ID, validTeamInput())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTeamService_GetMyTeam_NotFound(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	_, err := fx.service.GetMyTeam(context.Background(), "user-without-team")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_GetTeamDetail_GlobalRefreshesCachedTotal(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	got, err := fx.service.GetTeamDetail(context.Background(), created.ID, "")
	if err != nil {
		t.Fatalf("GetTeamDetail error: %v", err)
	}
	// captain 10*2 + plain 20 + women's-slot vice 15*2*1.5.
	if !almostEqual(got.Breakdown.TotalPoints, 85) {
		t.Fatalf("unexpected total: got=%v want=85", got.Breakdown.TotalPoints)
	}
	if !almostEqual(got.Team.TotalPoints, 85) {
		t.Fatalf("expected team total to reflect the computed score")
	}
	if !almostEqual(fx.teamRepo.totalWrites[created.ID], 85) {
		t.Fatalf("expected cached total sync, got %v", fx.teamRepo.totalWrites)
	}
}

func TestTeamService_GetTeamDetail_UnknownContest(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	_, err = fx.service.GetTeamDetail(context.Background(), created.ID, "contest-ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_EnrollLifecycle(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	enrolled, err := fx.service.Enroll(context.Background(), "user-1", created.ID, "contest-live")
	if err != nil {
		t.Fatalf("Enroll error: %v", err)
	}
	if enrolled.Status != enrollment.StatusActive || enrolled.ContestID != "contest-live" {
		t.Fatalf("unexpected enrollment: %+v", enrolled)
	}

	// Enrolling again while active is rejected.
	if _, err := fx.service.Enroll(context.Background(), "user-1", created.ID, "contest-live"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate enrollment, got %v", err)
	}

	if err := fx.service.RemoveEnrollment(context.Background(), "user-1", created.ID, "contest-live"); err != nil {
		t.Fatalf("RemoveEnrollment error: %v", err)
	}
	if fx.enrollmentRepo.updates[enrolled.ID] != enrollment.StatusRemoved {
		t.Fatalf("expected enrollment flipped to removed, got %v", fx.enrollmentRepo.updates)
	}

	// Removing twice finds no active record.
	if err := fx.service.RemoveEnrollment(context.Background(), "user-1", created.ID, "contest-live"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second removal, got %v", err)
	}

	// Re-enrolling reactivates the existing record instead of creating
	// a second row.
	reactivated, err := fx.service.Enroll(context.Background(), "user-1", created.ID, "contest-live")
	if err != nil {
		t.Fatalf("re-enroll error: %v", err)
	}
	if reactivated.ID != enrolled.ID {
		t.Fatalf("expected the original enrollment record, got %+v", reactivated)
	}
	if reactivated.Status != enrollment.StatusActive || reactivated.RemovedAt != nil {
		t.Fatalf("unexpected reactivated record: %+v", reactivated)
	}
	if len(fx.enrollmentRepo.created) != 1 {
		t.Fatalf("reactivation must not create a second record, got %d", len(fx.enrollmentRepo.created))
	}
}

func TestTeamService_Enroll_ClosedContestRejected(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	_, err = fx.service.Enroll(context.Background(), "user-1", created.ID, "contest-closed")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for closed contest, got %v", err)
	}
}

func TestTeamService_Enroll_ForeignTeamRejected(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	_, err = fx.service.Enroll(context.Background(), "user-2", created.ID, "contest-live")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTeamService_Enroll_RecordCarriesTimestamp(t *testing.T) {
	t.Parallel()

	fx := newTeamServiceFixture()
	created, err := fx.service.CreateTeam(context.Background(), "user-1", validTeamInput())
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	enrolled, err := fx.service.Enroll(context.Background(), "user-1", created.ID, "contest-live")
	if err != nil {
		t.Fatalf("Enroll error: %v", err)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !enrolled.EnrolledAt.Equal(want) {
		t.Fatalf("unexpected enrolled_at: got=%s want=%s", enrolled.EnrolledAt, want)
	}
}
