package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/daffahmad/fantasy-contest/internal/domain/user"
	"github.com/daffahmad/fantasy-contest/internal/platform/cache"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
	"github.com/daffahmad/fantasy-contest/internal/platform/resilience"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

// Client introspects bearer tokens against the anubis identity
// provider. Verified principals are cached briefly by token hash and
// the upstream sits behind a circuit breaker, so a flapping identity
// service degrades to anonymous instead of taking every request down.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	breaker       *resilience.CircuitBreaker
	tokenCache    *cache.Store
	logger        *logging.Logger
}

const defaultTokenCacheTTL = 30 * time.Second

func NewClient(httpClient *http.Client, baseURL, introspectPath string, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	var breaker *resilience.CircuitBreaker
	if breakerCfg.Enabled {
		breaker = resilience.NewCircuitBreaker(
			breakerCfg.FailureThreshold,
			breakerCfg.OpenTimeout,
			breakerCfg.HalfOpenMaxReq,
		)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		breaker:       breaker,
		tokenCache:    cache.NewStore(defaultTokenCacheTTL),
		logger:        logger,
	}
}

// VerifyAccessToken resolves a bearer token to a principal. Invalid
// and inactive tokens map to ErrUnauthorized, upstream trouble to
// ErrDependencyUnavailable.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := "anubis:token:" + hashToken(token)
	if cached, ok := c.tokenCache.Get(ctx, cacheKey); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, fmt.Errorf("%w: identity provider circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.introspect(ctx, token)
	if c.breaker != nil {
		if isTransientFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return user.Principal{}, err
	}

	c.tokenCache.Set(ctx, cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, markTransient(fmt.Errorf("request introspection: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, markTransient(fmt.Errorf("read introspect response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "anubis introspection non-200",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, markTransient(fmt.Errorf("introspection failed with status %d", resp.StatusCode))
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID:   decoded.UserID,
		Username: decoded.Username,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active   bool   `json:"active"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
