package pointsfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
	"github.com/daffahmad/fantasy-contest/internal/platform/resilience"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

const (
	defaultTimeout      = 15 * time.Second
	maxResponseBodySize = 4 << 20
)

// errFeedTransient marks provider failures that should trip the
// circuit breaker. Non-retryable responses do not carry the mark.
var errFeedTransient = crerr.New("points feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls per-player match points from the upstream scoring
// provider. It implements usecase.PointsFeed; concurrent pulls for the
// same scope are collapsed through a single flight group and the
// provider sits behind a circuit breaker.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GlobalPoints returns the current cumulative points for every player
// known to the provider.
func (c *Client) GlobalPoints(ctx context.Context) ([]usecase.FeedPoints, error) {
	return c.fetchPoints(ctx, "/v1/points/global", nil)
}

// ContestPoints returns per-player points scoped to one contest.
func (c *Client) ContestPoints(ctx context.Context, contestID string) ([]usecase.FeedPoints, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest id is required", usecase.ErrInvalidInput)
	}
	return c.fetchPoints(ctx, "/v1/points/contest", map[string]string{"contest_id": contestID})
}

type feedEntry struct {
	PlayerID string  `json:"player_id"`
	Points   float64 `json:"points"`
}

type feedResponse struct {
	Data []feedEntry `json:"data"`
}

func (c *Client) fetchPoints(ctx context.Context, path string, query map[string]string) ([]usecase.FeedPoints, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: points feed base url is not configured", usecase.ErrDependencyUnavailable)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "points feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: points provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var decoded feedResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode points feed payload: %w", err)
	}

	rows := make([]usecase.FeedPoints, 0, len(decoded.Data))
	for _, entry := range decoded.Data {
		playerID := strings.TrimSpace(entry.PlayerID)
		if playerID == "" {
			continue
		}
		rows = append(rows, usecase.FeedPoints{
			PlayerID: playerID,
			Points:   entry.Points,
		})
	}

	return rows, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.doOnce(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errFeedTransient) {
			break
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "points feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("send request: %w", err), errFeedTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, maxResponseBodySize)); err != nil {
		return nil, crerr.Mark(fmt.Errorf("read response body: %w", err), errFeedTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.Bytes()))
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Mark(statusErr, errFeedTransient)
		}
		return nil, statusErr
	}

	// The pooled buffer is recycled on return, so hand back a copy.
	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	return raw, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func abbreviateBody(raw []byte) string {
	const maxPreview = 256
	text := strings.TrimSpace(string(raw))
	if len(text) > maxPreview {
		return text[:maxPreview] + "..."
	}
	return text
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
