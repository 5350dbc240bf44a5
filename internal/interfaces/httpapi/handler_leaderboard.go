package httpapi

import (
	"net/http"

	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

type leaderboardEntryDTO struct {
	Rank          int     `json:"rank"`
	TeamID        string  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	Points        float64 `json:"points"`
	IsCurrentUser bool    `json:"is_current_user"`
}

type leaderboardDTO struct {
	Entries          []leaderboardEntryDTO `json:"entries"`
	CurrentUserEntry *leaderboardEntryDTO  `json:"current_user_entry,omitempty"`
	IsPlaceholder    bool                  `json:"is_placeholder"`
}

func leaderboardEntryToDTO(v usecase.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:          v.Rank,
		TeamID:        v.TeamID,
		TeamName:      v.TeamName,
		UserID:        v.UserID,
		Username:      v.Username,
		Points:        v.Points,
		IsCurrentUser: v.IsCurrentUser,
	}
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	principal, _ := principalFromContext(ctx)
	board := h.leaderboardService.BuildLeaderboard(ctx, principal)

	entries := make([]leaderboardEntryDTO, 0, len(board.Entries))
	for _, entry := range board.Entries {
		entries = append(entries, leaderboardEntryToDTO(entry))
	}

	payload := leaderboardDTO{
		Entries:       entries,
		IsPlaceholder: board.IsPlaceholder,
	}
	if board.CurrentUserEntry != nil {
		dto := leaderboardEntryToDTO(*board.CurrentUserEntry)
		payload.CurrentUserEntry = &dto
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}
