package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daffahmad/fantasy-contest/internal/domain/user"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(stubVerifier{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "user-andi", Username: "andi"}}

	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen.UserID != "user-andi" {
		t.Fatalf("expected principal user-andi, got %q", seen.UserID)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	called := false
	handler := OptionalAuth(stubVerifier{err: fmt.Errorf("%w: nope", usecase.ErrUnauthorized)}, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := principalFromContext(r.Context()); ok {
			t.Fatal("anonymous request must not carry a principal")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil))

	if !called {
		t.Fatal("next handler did not run")
	}
}

func TestOptionalAuth_InvalidTokenDowngradesToAnonymous(t *testing.T) {
	called := false
	handler := OptionalAuth(stubVerifier{err: fmt.Errorf("%w: bad token", usecase.ErrUnauthorized)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := principalFromContext(r.Context()); ok {
			t.Fatal("failed verification must not attach a principal")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler did not run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_ProviderOutageDowngradesToAnonymous(t *testing.T) {
	called := false
	handler := OptionalAuth(stubVerifier{err: fmt.Errorf("%w: identity provider is unavailable", usecase.ErrDependencyUnavailable)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := principalFromContext(r.Context()); ok {
			t.Fatal("provider outage must not attach a principal")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler did not run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	handler := RequireInternalJobToken("job-secret", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-points", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-points", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for matching token, got %d", rec.Code)
	}

	handler = RequireInternalJobToken("", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run without configured token")
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-points", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 for unconfigured token, got %d", rec.Code)
	}
}
