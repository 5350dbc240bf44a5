package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	SwaggerEnabled              bool
	AnubisBaseURL               string
	AnubisIntrospectPath        string
	AnubisTimeout               time.Duration
	AnubisCircuitEnabled        bool
	AnubisCircuitFailureCount   int
	AnubisCircuitOpenTimeout    time.Duration
	AnubisCircuitHalfOpenMaxReq int
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	BetterStackEnabled          bool
	BetterStackEndpoint         string
	BetterStackToken            string
	BetterStackTimeout          time.Duration
	BetterStackMinLevel         logging.Level
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	FeedEnabled                 bool
	FeedBaseURL                 string
	FeedToken                   string
	FeedTimeout                 time.Duration
	FeedMaxRetries              int
	FeedCircuitEnabled          bool
	FeedCircuitFailureCount     int
	FeedCircuitOpenTimeout      time.Duration
	FeedCircuitHalfOpenMaxReq   int
	RefreshMaxWorkers           int
	InternalJobToken            string
	HotPlayerThreshold          int
	HotPlayerListLimit          int
	HotPlayerIDsLimit           int
	PlayerListLimit             int
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	feedEnabled, err := strconv.ParseBool(getEnv("POINTS_FEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_ENABLED: %w", err)
	}
	feedBaseURL := strings.TrimSpace(getEnv("POINTS_FEED_BASE_URL", ""))
	if feedEnabled && feedBaseURL == "" {
		return Config{}, fmt.Errorf("POINTS_FEED_BASE_URL is required when POINTS_FEED_ENABLED=true")
	}
	feedTimeout, err := time.ParseDuration(getEnv("POINTS_FEED_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_TIMEOUT: %w", err)
	}
	if feedTimeout <= 0 {
		return Config{}, fmt.Errorf("POINTS_FEED_TIMEOUT must be > 0")
	}
	feedMaxRetries, err := getEnvAsInt("POINTS_FEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_MAX_RETRIES: %w", err)
	}
	if feedMaxRetries < 0 {
		return Config{}, fmt.Errorf("POINTS_FEED_MAX_RETRIES must be >= 0")
	}
	feedCircuitEnabled, err := strconv.ParseBool(getEnv("POINTS_FEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_CIRCUIT_ENABLED: %w", err)
	}
	feedCircuitFailureCount, err := getEnvAsInt("POINTS_FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if feedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("POINTS_FEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	feedCircuitOpenTimeout, err := time.ParseDuration(getEnv("POINTS_FEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if feedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("POINTS_FEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	feedCircuitHalfOpenMaxReq, err := getEnvAsInt("POINTS_FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if feedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("POINTS_FEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	refreshMaxWorkers, err := getEnvAsInt("REFRESH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_MAX_WORKERS: %w", err)
	}
	if refreshMaxWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_MAX_WORKERS must be >= 1")
	}

	hotThreshold, err := getEnvAsInt("HOT_PLAYER_THRESHOLD", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse HOT_PLAYER_THRESHOLD: %w", err)
	}
	if hotThreshold < 1 {
		return Config{}, fmt.Errorf("HOT_PLAYER_THRESHOLD must be >= 1")
	}
	hotListLimit, err := getEnvAsInt("HOT_PLAYER_LIST_LIMIT", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse HOT_PLAYER_LIST_LIMIT: %w", err)
	}
	if hotListLimit < 1 {
		return Config{}, fmt.Errorf("HOT_PLAYER_LIST_LIMIT must be >= 1")
	}
	hotIDsLimit, err := getEnvAsInt("HOT_PLAYER_IDS_LIMIT", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse HOT_PLAYER_IDS_LIMIT: %w", err)
	}
	if hotIDsLimit < 1 {
		return Config{}, fmt.Errorf("HOT_PLAYER_IDS_LIMIT must be >= 1")
	}
	playerListLimit, err := getEnvAsInt("PLAYER_LIST_LIMIT", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_LIST_LIMIT: %w", err)
	}
	if playerListLimit < 1 {
		return Config{}, fmt.Errorf("PLAYER_LIST_LIMIT must be >= 1")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "fantasy-contest-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      getEnv("DB_URL", ""),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		SwaggerEnabled:             swaggerEnabled,
		AnubisBaseURL:              getEnv("ANUBIS_BASE_URL", "http://localhost:8081"),
		AnubisIntrospectPath:       getEnv("ANUBIS_INTROSPECT_PATH", "/v1/auth/introspect"),
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        betterStackEndpoint,
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        betterStackMinLevel,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		FeedEnabled:                feedEnabled,
		FeedBaseURL:                feedBaseURL,
		FeedToken:                  strings.TrimSpace(getEnv("POINTS_FEED_TOKEN", "")),
		FeedTimeout:                feedTimeout,
		FeedMaxRetries:             feedMaxRetries,
		FeedCircuitEnabled:         feedCircuitEnabled,
		FeedCircuitFailureCount:    feedCircuitFailureCount,
		FeedCircuitOpenTimeout:     feedCircuitOpenTimeout,
		FeedCircuitHalfOpenMaxReq:  feedCircuitHalfOpenMaxReq,
		RefreshMaxWorkers:          refreshMaxWorkers,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		HotPlayerThreshold:         hotThreshold,
		HotPlayerListLimit:         hotListLimit,
		HotPlayerIDsLimit:          hotIDsLimit,
		PlayerListLimit:            playerListLimit,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	anubisTimeout, err := time.ParseDuration(getEnv("ANUBIS_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_TIMEOUT: %w", err)
	}

	anubisCircuitEnabled, err := strconv.ParseBool(getEnv("ANUBIS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_ENABLED: %w", err)
	}

	anubisCircuitFailureCount, err := getEnvAsInt("ANUBIS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if anubisCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	anubisCircuitOpenTimeout, err := time.ParseDuration(getEnv("ANUBIS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if anubisCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	anubisCircuitHalfOpenMaxReq, err := getEnvAsInt("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if anubisCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.AnubisTimeout = anubisTimeout
	cfg.AnubisCircuitEnabled = anubisCircuitEnabled
	cfg.AnubisCircuitFailureCount = anubisCircuitFailureCount
	cfg.AnubisCircuitOpenTimeout = anubisCircuitOpenTimeout
	cfg.AnubisCircuitHalfOpenMaxReq = anubisCircuitHalfOpenMaxReq
	cfg.LogLevel = logLevel

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
