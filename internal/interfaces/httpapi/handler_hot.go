package httpapi

import (
	"net/http"
	"strings"

	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

type hotPlayerDTO struct {
	Player         playerDTO `json:"player"`
	SelectionCount int       `json:"selection_count"`
	IsHot          bool      `json:"is_hot"`
}

type hotPlayersDTO struct {
	Threshold int            `json:"threshold"`
	ContestID string         `json:"contest_id,omitempty"`
	Items     []hotPlayerDTO `json:"items"`
}

type hotPlayerIDsDTO struct {
	Threshold int      `json:"threshold"`
	ContestID string   `json:"contest_id,omitempty"`
	PlayerIDs []string `json:"player_ids"`
}

type playerHotDetailDTO struct {
	Player       playerDTO `json:"player"`
	GlobalCount  int       `json:"global_count"`
	GlobalHot    bool      `json:"global_hot"`
	ContestID    string    `json:"contest_id,omitempty"`
	ContestCount int       `json:"contest_count"`
	ContestHot   bool      `json:"contest_hot"`
	Threshold    int       `json:"threshold"`
}

func (h *Handler) ListHotPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHotPlayers")
	defer span.End()

	threshold, err := queryInt(r, "threshold")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	skip, err := queryInt(r, "skip")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := usecase.HotPlayersQuery{
		ContestID: strings.TrimSpace(r.URL.Query().Get("contest_id")),
		Threshold: threshold,
		Skip:      skip,
		Limit:     limit,
		Sort:      strings.TrimSpace(r.URL.Query().Get("sort")),
	}

	hot, applied, err := h.hotPlayersService.ListHotPlayers(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list hot players failed", "contest_id", query.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]hotPlayerDTO, 0, len(hot))
	for _, item := range hot {
		items = append(items, hotPlayerDTO{
			Player:         playerToDTO(item.Player),
			SelectionCount: item.SelectionCount,
			IsHot:          item.IsHot,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, hotPlayersDTO{
		Threshold: applied,
		ContestID: query.ContestID,
		Items:     items,
	})
}

func (h *Handler) ListHotPlayerIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHotPlayerIDs")
	defer span.End()

	threshold, err := queryInt(r, "threshold")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	contestID := strings.TrimSpace(r.URL.Query().Get("contest_id"))

	ids, applied, err := h.hotPlayersService.ListHotPlayerIDs(ctx, contestID, threshold)
	if err != nil {
		h.logger.WarnContext(ctx, "list hot player ids failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, hotPlayerIDsDTO{
		Threshold: applied,
		ContestID: contestID,
		PlayerIDs: ids,
	})
}

func (h *Handler) GetPlayerHot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHot")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	contestID := strings.TrimSpace(r.URL.Query().Get("contest_id"))

	detail, err := h.hotPlayersService.GetPlayerHot(ctx, playerID, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player hot detail failed", "player_id", playerID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerHotDetailDTO{
		Player:       playerToDTO(detail.Player),
		GlobalCount:  detail.GlobalCount,
		GlobalHot:    detail.GlobalHot,
		ContestID:    detail.ContestID,
		ContestCount: detail.ContestCount,
		ContestHot:   detail.ContestHot,
		Threshold:    detail.ThresholdApplied,
	})
}
