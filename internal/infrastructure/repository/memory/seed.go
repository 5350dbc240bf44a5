package memory

import (
	"time"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/domain/user"
)

const (
	SlotIDBatter    = "slot-bat"
	SlotIDBowler    = "slot-bowl"
	SlotIDAllRound  = "slot-ar"
	SlotIDWomenStar = "slot-women"

	ContestIDWeekly = "contest-weekly-open"
	ContestIDDaily  = "contest-daily-jakarta"
)

func SeedSlots() []slot.Slot {
	return []slot.Slot{
		{ID: SlotIDBatter, Code: "BAT", Name: "Batters", MinSelect: 2, MaxSelect: 4},
		{ID: SlotIDBowler, Code: "BOWL", Name: "Bowlers", MinSelect: 2, MaxSelect: 4},
		{ID: SlotIDAllRound, Code: "AR", Name: "All Rounders", MinSelect: 1, MaxSelect: 3},
		{ID: SlotIDWomenStar, Code: "WOMEN", Name: "Women Stars", MinSelect: 1, MaxSelect: 2, IsWomenSlot: true},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-aditya", Name: "Aditya Pratama", Franchise: "Jakarta Tigers", SlotID: SlotIDBatter, Points: 128.5, Gender: player.GenderMale, IsAvailable: true},
		{ID: "player-bagus", Name: "Bagus Wirawan", Franchise: "Jakarta Tigers", SlotID: SlotIDBowler, Points: 96, Gender: player.GenderMale, IsAvailable: true},
		{ID: "player-citra", Name: "Citra Maharani", Franchise: "Jakarta Tigers", SlotID: SlotIDWomenStar, Points: 142, Gender: player.GenderFemale, IsAvailable: true},
		{ID: "player-dimas", Name: "Dimas Saputra", Franchise: "Bandung Hawks", SlotID: SlotIDAllRound, Points: 110.5, Gender: player.GenderMale, IsAvailable: true},
		{ID: "player-eka", Name: "Eka Lestari", Franchise: "Bandung Hawks", SlotID: SlotIDWomenStar, Points: 88, Gender: player.GenderFemale, IsAvailable: true},
		{ID: "player-fajar", Name: "Fajar Nugroho", Franchise: "Bandung Hawks", SlotID: SlotIDBatter, Points: 74.5, Gender: player.GenderMale, IsAvailable: true},
		{ID: "player-gita", Name: "Gita Puspita", Franchise: "Surabaya Sharks", SlotID: SlotIDWomenStar, Points: 120, Gender: player.GenderFemale, IsAvailable: true},
		{ID: "player-hendra", Name: "Hendra Gunawan", Franchise: "Surabaya Sharks", SlotID: SlotIDBowler, Points: 102, Gender: player.GenderMale, IsAvailable: true},
	}
}

func SeedContests() []contest.Contest {
	start := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	return []contest.Contest{
		{
			ID:         ContestIDWeekly,
			Name:       "Weekly Open",
			Status:     contest.StatusLive,
			Visibility: contest.VisibilityPublic,
			StartsAt:   start,
			EndsAt:     start.AddDate(0, 0, 7),
		},
		{
			ID:                ContestIDDaily,
			Name:              "Jakarta Daily",
			Status:            contest.StatusLive,
			Visibility:        contest.VisibilityPublic,
			IsDaily:           true,
			AllowedFranchises: []string{"Jakarta Tigers"},
			StartsAt:          start.AddDate(0, 0, 2),
			EndsAt:            start.AddDate(0, 0, 3),
		},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{ID: "user-andi", Username: "andi_k", Email: "andi@example.com"},
		{ID: "user-budi", Username: "budi_s", Email: "budi@example.com"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:     "team-andi",
			UserID: "user-andi",
			Name:   "Andi XI",
			PlayerIDs: []string{
				"player-aditya", "player-fajar", "player-bagus", "player-hendra",
				"player-dimas", "player-citra",
			},
			CaptainID:     "player-aditya",
			ViceCaptainID: "player-citra",
		},
		{
			ID:     "team-budi",
			UserID: "user-budi",
			Name:   "Budi Blasters",
			PlayerIDs: []string{
				"player-aditya", "player-fajar", "player-bagus", "player-hendra",
				"player-dimas", "player-gita",
			},
			CaptainID:     "player-dimas",
			ViceCaptainID: "player-gita",
		},
	}
}

func SeedEnrollments() []enrollment.Enrollment {
	enrolledAt := time.Date(2026, time.August, 1, 13, 0, 0, 0, time.UTC)
	return []enrollment.Enrollment{
		{
			ID:         "enrollment-andi-weekly",
			TeamID:     "team-andi",
			UserID:     "user-andi",
			ContestID:  ContestIDWeekly,
			Status:     enrollment.StatusActive,
			EnrolledAt: enrolledAt,
		},
		{
			ID:         "enrollment-budi-weekly",
			TeamID:     "team-budi",
			UserID:     "user-budi",
			ContestID:  ContestIDWeekly,
			Status:     enrollment.StatusActive,
			EnrolledAt: enrolledAt,
		},
	}
}

func SeedContestPoints() []contestpoints.Record {
	return []contestpoints.Record{
		{ContestID: ContestIDWeekly, PlayerID: "player-aditya", Points: 34},
		{ContestID: ContestIDWeekly, PlayerID: "player-citra", Points: 41.5},
		{ContestID: ContestIDWeekly, PlayerID: "player-dimas", Points: 27},
		{ContestID: ContestIDWeekly, PlayerID: "player-gita", Points: 30},
	}
}
