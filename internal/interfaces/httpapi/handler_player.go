package httpapi

import (
	"net/http"
	"strings"

	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

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

	query := usecase.PlayerListQuery{
		SlotID:    strings.TrimSpace(r.URL.Query().Get("slot_id")),
		Gender:    strings.TrimSpace(r.URL.Query().Get("gender")),
		ContestID: strings.TrimSpace(r.URL.Query().Get("contest_id")),
		Skip:      skip,
		Limit:     limit,
	}

	players, err := h.playerService.ListPlayers(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "slot_id", query.SlotID, "contest_id", query.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}
