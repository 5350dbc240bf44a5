package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

type Handler struct {
	slotService        *usecase.SlotService
	contestService     *usecase.ContestService
	playerService      *usecase.PlayerService
	hotPlayersService  *usecase.HotPlayersService
	teamService        *usecase.TeamService
	leaderboardService *usecase.LeaderboardService
	ingestionService   *usecase.IngestionService
	refreshService     *usecase.RefreshService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	slotService *usecase.SlotService,
	contestService *usecase.ContestService,
	playerService *usecase.PlayerService,
	hotPlayersService *usecase.HotPlayersService,
	teamService *usecase.TeamService,
	leaderboardService *usecase.LeaderboardService,
	ingestionService *usecase.IngestionService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		slotService:        slotService,
		contestService:     contestService,
		playerService:      playerService,
		hotPlayersService:  hotPlayersService,
		teamService:        teamService,
		leaderboardService: leaderboardService,
		ingestionService:   ingestionService,
		refreshService:     refreshService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

type slotDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	MinSelect   int    `json:"min_select"`
	MaxSelect   int    `json:"max_select"`
	IsWomenSlot bool   `json:"is_women_slot"`
}

type contestDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Status            string   `json:"status"`
	IsDaily           bool     `json:"is_daily"`
	AllowedFranchises []string `json:"allowed_franchises,omitempty"`
	StartsAtUTC       string   `json:"starts_at_utc"`
	EndsAtUTC         string   `json:"ends_at_utc"`
}

type playerDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Franchise   string  `json:"franchise"`
	SlotID      string  `json:"slot_id"`
	Gender      string  `json:"gender"`
	Points      float64 `json:"points"`
	IsAvailable bool    `json:"is_available"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type enrollmentDTO struct {
	ID            string `json:"id"`
	TeamID        string `json:"team_id"`
	ContestID     string `json:"contest_id"`
	Status        string `json:"status"`
	EnrolledAtUTC string `json:"enrolled_at_utc"`
}

func slotToDTO(v slot.Slot) slotDTO {
	return slotDTO{
		ID:          v.ID,
		Code:        v.Code,
		Name:        v.Name,
		MinSelect:   v.MinSelect,
		MaxSelect:   v.MaxSelect,
		IsWomenSlot: v.IsWomenSlot,
	}
}

func contestToDTO(v contest.Contest) contestDTO {
	return contestDTO{
		ID:                v.ID,
		Name:              v.Name,
		Status:            string(v.Status),
		IsDaily:           v.IsDaily,
		AllowedFranchises: append([]string(nil), v.AllowedFranchises...),
		StartsAtUTC:       v.StartsAt.UTC().Format(time.RFC3339),
		EndsAtUTC:         v.EndsAt.UTC().Format(time.RFC3339),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:          v.ID,
		Name:        v.Name,
		Franchise:   v.Franchise,
		SlotID:      v.SlotID,
		Gender:      string(v.Gender),
		Points:      v.Points,
		IsAvailable: v.IsAvailable,
		ImageURL:    v.ImageURL,
	}
}

func enrollmentToDTO(v enrollment.Enrollment) enrollmentDTO {
	return enrollmentDTO{
		ID:            v.ID,
		TeamID:        v.TeamID,
		ContestID:     v.ContestID,
		Status:        string(v.Status),
		EnrolledAtUTC: v.EnrolledAt.UTC().Format(time.RFC3339),
	}
}
