package usecase

import (
	"context"
	"sort"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/domain/user"
)

// Shared in-memory stubs for service tests. Each stub implements its
// domain repository over plain slices and records writes so tests can
// assert on them.

type stubSlotRepository struct {
	slots     []slot.Slot
	err       error
	listCalls int
}

func (s *stubSlotRepository) List(context.Context) ([]slot.Slot, error) {
	s.listCalls++
	return s.slots, s.err
}

func (s *stubSlotRepository) GetByID(_ context.Context, slotID string) (slot.Slot, bool, error) {
	if s.err != nil {
		return slot.Slot{}, false, s.err
	}
	for _, item := range s.slots {
		if item.ID == slotID {
			return item, true, nil
		}
	}
	return slot.Slot{}, false, nil
}

type stubPlayerRepository struct {
	players       map[string]player.Player
	err           error
	lastFilter    player.ListFilter
	upserted      map[string]float64
	getByIDsCalls int
}

func (s *stubPlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastFilter = filter

	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.players[id])
	}
	return out, nil
}

func (s *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	if s.err != nil {
		return player.Player{}, false, s.err
	}
	p, ok := s.players[playerID]
	return p, ok, nil
}

func (s *stubPlayerRepository) GetByIDs(_ context.Context, playerIDs []string) (map[string]player.Player, error) {
	s.getByIDsCalls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]player.Player, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := s.players[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) UpsertPoints(_ context.Context, playerID string, points float64) error {
	if s.err != nil {
		return s.err
	}
	if s.upserted == nil {
		s.upserted = make(map[string]float64)
	}
	s.upserted[playerID] = points
	return nil
}

type stubContestRepository struct {
	contests map[string]contest.Contest
	err      error
}

func (s *stubContestRepository) List(_ context.Context, visibility contest.Visibility) ([]contest.Contest, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]contest.Contest, 0, len(s.contests))
	for _, c := range s.contests {
		if c.Visibility == visibility {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubContestRepository) ListByStatus(_ context.Context, status contest.Status) ([]contest.Contest, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]contest.Contest, 0, len(s.contests))
	for _, c := range s.contests {
		if c.Status == status {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	if s.err != nil {
		return contest.Contest{}, false, s.err
	}
	c, ok := s.contests[contestID]
	return c, ok, nil
}

type stubContestPointsRepository struct {
	// records is contest id -> player id -> points.
	records map[string]map[string]float64
	upserts []contestpoints.Record
	err     error
	lookups int
}

func (s *stubContestPointsRepository) GetByContestAndPlayers(_ context.Context, contestID string, playerIDs []string) (map[string]contestpoints.Record, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]contestpoints.Record)
	byPlayer := s.records[contestID]
	for _, playerID := range playerIDs {
		if points, ok := byPlayer[playerID]; ok {
			out[playerID] = contestpoints.Record{ContestID: contestID, PlayerID: playerID, Points: points}
		}
	}
	return out, nil
}

func (s *stubContestPointsRepository) Upsert(_ context.Context, record contestpoints.Record) error {
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, record)
	return nil
}

type stubTeamRepository struct {
	teams          []team.Team
	err            error
	created        []team.Team
	updated        []team.Team
	totalWrites    map[string]float64
	aggregateCalls int
}

func (s *stubTeamRepository) ListAll(context.Context) ([]team.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := append([]team.Team(nil), s.teams...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubTeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if t, ok := s.find(teamID); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	if s.err != nil {
		return team.Team{}, false, s.err
	}
	t, ok := s.find(teamID)
	return t, ok, nil
}

func (s *stubTeamRepository) GetByUser(_ context.Context, userID string) (team.Team, bool, error) {
	if s.err != nil {
		return team.Team{}, false, s.err
	}
	for _, t := range s.teams {
		if t.UserID == userID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) Create(_ context.Context, t team.Team) error {
	if s.err != nil {
		return s.err
	}
	s.teams = append(s.teams, t)
	s.created = append(s.created, t)
	return nil
}

func (s *stubTeamRepository) Update(_ context.Context, t team.Team) error {
	if s.err != nil {
		return s.err
	}
	for idx := range s.teams {
		if s.teams[idx].ID == t.ID {
			s.teams[idx] = t
		}
	}
	s.updated = append(s.updated, t)
	return nil
}

func (s *stubTeamRepository) UpdateTotalPoints(_ context.Context, teamID string, points float64) error {
	if s.err != nil {
		return s.err
	}
	if s.totalWrites == nil {
		s.totalWrites = make(map[string]float64)
	}
	s.totalWrites[teamID] = points
	return nil
}

func (s *stubTeamRepository) CountByPlayer(_ context.Context, playerID string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	count := 0
	for _, t := range s.teams {
		if t.HasPlayer(playerID) {
			count++
		}
	}
	return count, nil
}

func (s *stubTeamRepository) CountByPlayerInTeams(_ context.Context, playerID string, teamIDs []string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	count := 0
	for _, teamID := range teamIDs {
		if t, ok := s.find(teamID); ok && t.HasPlayer(playerID) {
			count++
		}
	}
	return count, nil
}

func (s *stubTeamRepository) AggregateSelections(_ context.Context, teamIDs []string, skip, limit int) ([]team.Selection, error) {
	s.aggregateCalls++
	if s.err != nil {
		return nil, s.err
	}

	scoped := s.teams
	if teamIDs != nil {
		scoped = nil
		for _, teamID := range teamIDs {
			if t, ok := s.find(teamID); ok {
				scoped = append(scoped, t)
			}
		}
	}

	counts := make(map[string]int)
	for _, t := range scoped {
		for _, playerID := range t.PlayerIDs {
			counts[playerID]++
		}
	}

	out := make([]team.Selection, 0, len(counts))
	for playerID, count := range counts {
		out = append(out, team.Selection{PlayerID: playerID, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	if skip >= len(out) {
		return []team.Selection{}, nil
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubTeamRepository) find(teamID string) (team.Team, bool) {
	for _, t := range s.teams {
		if t.ID == teamID {
			return t, true
		}
	}
	return team.Team{}, false
}

type stubEnrollmentRepository struct {
	records []enrollment.Enrollment
	err     error
	created []enrollment.Enrollment
	updates map[string]enrollment.Status
}

func (s *stubEnrollmentRepository) GetByTeamAndContest(_ context.Context, teamID, contestID string) (enrollment.Enrollment, bool, error) {
	if s.err != nil {
		return enrollment.Enrollment{}, false, s.err
	}
	for _, e := range s.records {
		if e.TeamID == teamID && e.ContestID == contestID {
			return e, true, nil
		}
	}
	return enrollment.Enrollment{}, false, nil
}

func (s *stubEnrollmentRepository) ListActiveTeamIDs(_ context.Context, contestID string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, 0)
	for _, e := range s.records {
		if e.ContestID == contestID && e.Status == enrollment.StatusActive {
			out = append(out, e.TeamID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *stubEnrollmentRepository) Create(_ context.Context, e enrollment.Enrollment) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, e)
	s.created = append(s.created, e)
	return nil
}

func (s *stubEnrollmentRepository) UpdateStatus(_ context.Context, enrollmentID string, status enrollment.Status) error {
	if s.err != nil {
		return s.err
	}
	if s.updates == nil {
		s.updates = make(map[string]enrollment.Status)
	}
	s.updates[enrollmentID] = status
	for idx := range s.records {
		if s.records[idx].ID == enrollmentID {
			s.records[idx].Status = status
		}
	}
	return nil
}

type stubUserRepository struct {
	users map[string]user.User
	err   error
}

func (s *stubUserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	if s.err != nil {
		return user.User{}, false, s.err
	}
	u, ok := s.users[userID]
	return u, ok, nil
}

func (s *stubUserRepository) GetByIDs(_ context.Context, userIDs []string) (map[string]user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]user.User, len(userIDs))
	for _, id := range userIDs {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type stubIDGenerator struct {
	ids  []string
	next int
	err  error
}

func (s *stubIDGenerator) NewID() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.next >= len(s.ids) {
		return "generated-id", nil
	}
	id := s.ids[s.next]
	s.next++
	return id, nil
}
