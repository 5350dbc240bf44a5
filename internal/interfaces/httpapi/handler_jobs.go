package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

type ingestPointsRequest struct {
	Records []ingestPointsRecord `json:"records" validate:"required,min=1,dive"`
}

type ingestPointsRecord struct {
	PlayerID  string  `json:"player_id" validate:"required"`
	ContestID string  `json:"contest_id"`
	Points    float64 `json:"points"`
}

type ingestResultDTO struct {
	GlobalUpserts  int `json:"global_upserts"`
	ContestUpserts int `json:"contest_upserts"`
	Skipped        int `json:"skipped"`
}

type refreshScopeDTO struct {
	ContestID  string `json:"contest_id,omitempty"`
	Records    int    `json:"records"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type refreshResultDTO struct {
	ScopeCount   int               `json:"scope_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Scopes       []refreshScopeDTO `json:"scopes"`
}

func (h *Handler) IngestPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPlayerPoints")
	defer span.End()

	var req ingestPointsRequest
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

	records := make([]usecase.PointsRecord, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, usecase.PointsRecord{
			PlayerID:  record.PlayerID,
			ContestID: record.ContestID,
			Points:    record.Points,
		})
	}

	result, err := h.ingestionService.IngestPlayerPoints(ctx, records)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest player points failed", "records", len(records), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestResultDTO{
		GlobalUpserts:  result.GlobalUpserts,
		ContestUpserts: result.ContestUpserts,
		Skipped:        result.Skipped,
	})
}

func (h *Handler) RunRefreshPointsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshPointsJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: points refresh is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.refreshService.RefreshPoints(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh points job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	scopes := make([]refreshScopeDTO, 0, len(result.Scopes))
	for _, scope := range result.Scopes {
		scopes = append(scopes, refreshScopeDTO{
			ContestID:  scope.ContestID,
			Records:    scope.Records,
			Status:     scope.Status,
			Message:    scope.Message,
			DurationMs: scope.DurationMs,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, refreshResultDTO{
		ScopeCount:   result.ScopeCount,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Scopes:       scopes,
	})
}
