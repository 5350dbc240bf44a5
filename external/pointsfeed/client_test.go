package pointsfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/daffahmad/fantasy-contest/internal/platform/resilience"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

func TestClientGlobalPoints_ParsesAndFiltersRows(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/points/global" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer feed-secret" {
			t.Fatalf("unexpected authorization header: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"player_id": "player-1", "points": 42.5},
				{"player_id": "  ", "points": 10},
				{"player_id": "player-2", "points": 0},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Token:      "feed-secret",
	})

	rows, err := client.GlobalPoints(context.Background())
	if err != nil {
		t.Fatalf("global points failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].PlayerID != "player-1" || rows[0].Points != 42.5 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestClientContestPoints_SendsContestID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/points/contest" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("contest_id"); got != "contest-weekly-open" {
			t.Fatalf("unexpected contest_id: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"player_id": "player-1", "points": 12}},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL})

	rows, err := client.ContestPoints(context.Background(), "contest-weekly-open")
	if err != nil {
		t.Fatalf("contest points failed: %v", err)
	}
	if len(rows) != 1 || rows[0].PlayerID != "player-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestClientContestPoints_EmptyContestID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://feed.invalid"})

	_, err := client.ContestPoints(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClientGlobalPoints_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"player_id": "player-1", "points": 7}},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 2,
	})

	rows, err := client.GlobalPoints(context.Background())
	if err != nil {
		t.Fatalf("global points failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestClientGlobalPoints_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 3,
	})

	if _, err := client.GlobalPoints(context.Background()); err == nil {
		t.Fatal("expected provider failure")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestClientGlobalPoints_CircuitOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.GlobalPoints(context.Background()); err == nil {
		t.Fatal("expected provider failure")
	}

	_, err := client.GlobalPoints(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable after circuit opened, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}
