package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFallsBackToOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=https://token@api.uptrace.dev/1234")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1234" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled {
		t.Fatalf("expected BetterStackEnabled=true")
	}
	if cfg.BetterStackEndpoint != "s1765114.eu-fsn-3.betterstackdata.com" {
		t.Fatalf("unexpected BetterStackEndpoint: %q", cfg.BetterStackEndpoint)
	}
	if cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected BetterStackToken")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_FeedRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("POINTS_FEED_ENABLED", "true")
	t.Setenv("POINTS_FEED_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when POINTS_FEED_ENABLED=true without POINTS_FEED_BASE_URL")
	}
}

func TestLoad_FeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("POINTS_FEED_ENABLED", "true")
	t.Setenv("POINTS_FEED_BASE_URL", "https://feed.example.com")
	t.Setenv("POINTS_FEED_TOKEN", "feed-token")
	t.Setenv("POINTS_FEED_TIMEOUT", "7s")
	t.Setenv("POINTS_FEED_MAX_RETRIES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FeedEnabled {
		t.Fatalf("expected FeedEnabled=true")
	}
	if cfg.FeedBaseURL != "https://feed.example.com" {
		t.Fatalf("unexpected FeedBaseURL: %q", cfg.FeedBaseURL)
	}
	if cfg.FeedToken != "feed-token" {
		t.Fatalf("unexpected FeedToken")
	}
	if cfg.FeedTimeout != 7*time.Second {
		t.Fatalf("unexpected FeedTimeout: %s", cfg.FeedTimeout)
	}
	if cfg.FeedMaxRetries != 3 {
		t.Fatalf("unexpected FeedMaxRetries: %d", cfg.FeedMaxRetries)
	}
}

func TestLoad_HotPlayerTuning(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("HOT_PLAYER_THRESHOLD", "25")
	t.Setenv("HOT_PLAYER_LIST_LIMIT", "50")
	t.Setenv("HOT_PLAYER_IDS_LIMIT", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HotPlayerThreshold != 25 {
		t.Fatalf("unexpected HotPlayerThreshold: %d", cfg.HotPlayerThreshold)
	}
	if cfg.HotPlayerListLimit != 50 {
		t.Fatalf("unexpected HotPlayerListLimit: %d", cfg.HotPlayerListLimit)
	}
	if cfg.HotPlayerIDsLimit != 500 {
		t.Fatalf("unexpected HotPlayerIDsLimit: %d", cfg.HotPlayerIDsLimit)
	}
}

func TestLoad_HotPlayerThresholdRejectsZero(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("HOT_PLAYER_THRESHOLD", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for HOT_PLAYER_THRESHOLD=0")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "single pair", raw: "uptrace-dsn=value-1", want: "value-1"},
		{name: "quoted value", raw: `uptrace-dsn="value-2"`, want: "value-2"},
		{name: "among other headers", raw: "authorization=Bearer x, uptrace-dsn=value-3", want: "value-3"},
		{name: "missing key", raw: "authorization=Bearer x", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseUptraceDSNFromOTLPHeaders(tc.raw); got != tc.want {
				t.Fatalf("parseUptraceDSNFromOTLPHeaders(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
