package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

type teamUpsertRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	PlayerIDs     []string `json:"player_ids" validate:"required,min=1,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
}

type enrollTeamRequest struct {
	ContestID string `json:"contest_id" validate:"required"`
}

type teamDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	PlayerIDs     []string `json:"player_ids"`
	CaptainID     string   `json:"captain_id"`
	ViceCaptainID string   `json:"vice_captain_id"`
	TotalPoints   float64  `json:"total_points"`
}

type playerPointsRowDTO struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	SlotID        string  `json:"slot_id"`
	IsCaptain     bool    `json:"is_captain"`
	IsViceCaptain bool    `json:"is_vice_captain"`
	BasePoints    float64 `json:"base_points"`
	Multiplier    float64 `json:"multiplier"`
	CountedPoints float64 `json:"counted_points"`
}

type teamDetailDTO struct {
	Team        teamDTO              `json:"team"`
	ContestID   string               `json:"contest_id,omitempty"`
	TotalPoints float64              `json:"total_points"`
	Players     []playerPointsRowDTO `json:"players"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		Name:          v.Name,
		PlayerIDs:     append([]string(nil), v.PlayerIDs...),
		CaptainID:     v.CaptainID,
		ViceCaptainID: v.ViceCaptainID,
		TotalPoints:   v.TotalPoints,
	}
}

func teamDetailToDTO(v usecase.TeamDetail) teamDetailDTO {
	rows := make([]playerPointsRowDTO, 0, len(v.Breakdown.Players))
	for _, row := range v.Breakdown.Players {
		rows = append(rows, playerPointsRowDTO{
			PlayerID:      row.PlayerID,
			Name:          row.Name,
			SlotID:        row.SlotID,
			IsCaptain:     row.IsCaptain,
			IsViceCaptain: row.IsViceCaptain,
			BasePoints:    row.BasePoints,
			Multiplier:    row.Multiplier,
			CountedPoints: row.CountedPoints,
		})
	}

	return teamDetailDTO{
		Team:        teamToDTO(v.Team),
		ContestID:   v.Breakdown.ContestID,
		TotalPoints: v.Breakdown.TotalPoints,
		Players:     rows,
	}
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req teamUpsertRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, principal.UserID, usecase.TeamInput{
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req teamUpsertRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.teamService.UpdateTeam(ctx, principal.UserID, teamID, usecase.TeamInput{
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.teamService.GetMyTeam(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	contestID := strings.TrimSpace(r.URL.Query().Get("contest_id"))

	detail, err := h.teamService.GetTeamDetail(ctx, teamID, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team detail failed", "team_id", teamID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailToDTO(detail))
}

func (h *Handler) EnrollTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnrollTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req enrollTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	enrolled, err := h.teamService.Enroll(ctx, principal.UserID, teamID, req.ContestID)
	if err != nil {
		h.logger.WarnContext(ctx, "enroll team failed", "user_id", principal.UserID, "team_id", teamID, "contest_id", req.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, enrollmentToDTO(enrolled))
}

func (h *Handler) RemoveTeamEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveTeamEnrollment")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	contestID := strings.TrimSpace(r.PathValue("contestID"))

	if err := h.teamService.RemoveEnrollment(ctx, principal.UserID, teamID, contestID); err != nil {
		h.logger.WarnContext(ctx, "remove enrollment failed", "user_id", principal.UserID, "team_id", teamID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}
