package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/domain/user"
)

type slotTableModel struct {
	ID          string `db:"id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	MinSelect   int    `db:"min_select"`
	MaxSelect   int    `db:"max_select"`
	IsWomenSlot bool   `db:"is_women_slot"`
}

func (m slotTableModel) toDomain() slot.Slot {
	return slot.Slot{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		MinSelect:   m.MinSelect,
		MaxSelect:   m.MaxSelect,
		IsWomenSlot: m.IsWomenSlot,
	}
}

type playerTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Franchise   string         `db:"franchise"`
	SlotID      sql.NullString `db:"slot_id"`
	Points      float64        `db:"points"`
	Gender      string         `db:"gender"`
	IsAvailable bool           `db:"is_available"`
	ImageURL    string         `db:"image_url"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		Name:        m.Name,
		Franchise:   m.Franchise,
		SlotID:      nullStringToString(m.SlotID),
		Points:      m.Points,
		Gender:      player.Gender(m.Gender),
		IsAvailable: m.IsAvailable,
		ImageURL:    m.ImageURL,
	}
}

type contestTableModel struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Status            string         `db:"status"`
	Visibility        string         `db:"visibility"`
	IsDaily           bool           `db:"is_daily"`
	AllowedFranchises pq.StringArray `db:"allowed_franchises"`
	StartsAt          time.Time      `db:"starts_at"`
	EndsAt            time.Time      `db:"ends_at"`
}

func (m contestTableModel) toDomain() contest.Contest {
	return contest.Contest{
		ID:                m.ID,
		Name:              m.Name,
		Status:            contest.Status(m.Status),
		Visibility:        contest.Visibility(m.Visibility),
		IsDaily:           m.IsDaily,
		AllowedFranchises: append([]string(nil), m.AllowedFranchises...),
		StartsAt:          m.StartsAt,
		EndsAt:            m.EndsAt,
	}
}

type teamTableModel struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Name          string         `db:"name"`
	CaptainID     sql.NullString `db:"captain_id"`
	ViceCaptainID sql.NullString `db:"vice_captain_id"`
	TotalPoints   float64        `db:"total_points"`
}

func (m teamTableModel) toDomain(playerIDs []string) team.Team {
	return team.Team{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		PlayerIDs:     playerIDs,
		CaptainID:     nullStringToString(m.CaptainID),
		ViceCaptainID: nullStringToString(m.ViceCaptainID),
		TotalPoints:   m.TotalPoints,
	}
}

type enrollmentTableModel struct {
	ID         string     `db:"id"`
	TeamID     string     `db:"team_id"`
	UserID     string     `db:"user_id"`
	ContestID  string     `db:"contest_id"`
	Status     string     `db:"status"`
	EnrolledAt time.Time  `db:"enrolled_at"`
	RemovedAt  *time.Time `db:"removed_at"`
}

func (m enrollmentTableModel) toDomain() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         m.ID,
		TeamID:     m.TeamID,
		UserID:     m.UserID,
		ContestID:  m.ContestID,
		Status:     enrollment.Status(m.Status),
		EnrolledAt: m.EnrolledAt,
		RemovedAt:  m.RemovedAt,
	}
}

type userTableModel struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
	}
}
