package anubis

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

func TestClientVerifyAccessToken_ParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":   true,
			"user_id":  "user-123",
			"username": "andi",
		})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		nil,
	)

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}

	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Username != "andi" {
		t.Fatalf("unexpected username: %s", principal.Username)
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		nil,
	)

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, "http://anubis.invalid", "/v1/auth/introspect", resilience.CircuitBreakerConfig{Enabled: false}, nil)

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_CachesVerifiedPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":   true,
			"user_id":  "user-123",
			"username": "andi",
		})
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{Enabled: false},
		nil,
	)

	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(
		srv.Client(),
		srv.URL,
		"/v1/auth/introspect",
		resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
		nil,
	)

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err == nil {
			t.Fatal("expected introspection failure")
		}
	}

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable after circuit opened, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base string
		path string
		want string
	}{
		{"https://anubis.internal/", "/v1/auth/introspect", "https://anubis.internal/v1/auth/introspect"},
		{"https://anubis.internal", "v1/auth/introspect", "https://anubis.internal/v1/auth/introspect"},
		{"https://anubis.internal", "", "https://anubis.internal"},
		{"https://anubis.internal", "https://override.internal/introspect", "https://override.internal/introspect"},
	}

	for _, tc := range cases {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
