package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlots")
	defer span.End()

	slots, err := h.slotService.ListSlots(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list slots failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContests")
	defer span.End()

	contests, err := h.contestService.ListContests(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list contests failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(contests))
	for _, c := range contests {
		items = append(items, contestToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	item, err := h.contestService.GetContest(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(item))
}
