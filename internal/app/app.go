package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	_ "github.com/lib/pq"

	"github.com/daffahmad/fantasy-contest/external/pointsfeed"
	"github.com/daffahmad/fantasy-contest/internal/config"
	"github.com/daffahmad/fantasy-contest/internal/domain/contest"
	"github.com/daffahmad/fantasy-contest/internal/domain/contestpoints"
	"github.com/daffahmad/fantasy-contest/internal/domain/enrollment"
	"github.com/daffahmad/fantasy-contest/internal/domain/player"
	"github.com/daffahmad/fantasy-contest/internal/domain/slot"
	"github.com/daffahmad/fantasy-contest/internal/domain/team"
	"github.com/daffahmad/fantasy-contest/internal/domain/user"
	"github.com/daffahmad/fantasy-contest/internal/infrastructure/account/anubis"
	cacherepo "github.com/daffahmad/fantasy-contest/internal/infrastructure/repository/cache"
	"github.com/daffahmad/fantasy-contest/internal/infrastructure/repository/memory"
	"github.com/daffahmad/fantasy-contest/internal/infrastructure/repository/postgres"
	"github.com/daffahmad/fantasy-contest/internal/interfaces/httpapi"
	basecache "github.com/daffahmad/fantasy-contest/internal/platform/cache"
	idgen "github.com/daffahmad/fantasy-contest/internal/platform/id"
	"github.com/daffahmad/fantasy-contest/internal/platform/logging"
	"github.com/daffahmad/fantasy-contest/internal/platform/resilience"
	"github.com/daffahmad/fantasy-contest/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the HTTP router. The
// returned cleanup closes the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	pointsSvc := usecase.NewPointsService(repos.players, repos.slots, repos.contestPoints, repos.teams, logger)
	slotSvc := usecase.NewSlotService(repos.slots)
	contestSvc := usecase.NewContestService(repos.contests)
	playerSvc := usecase.NewPlayerService(repos.players, repos.contests, cfg.PlayerListLimit)
	hotPlayersSvc := usecase.NewHotPlayersService(
		repos.teams,
		repos.players,
		repos.enrollments,
		repos.contests,
		usecase.HotPlayersConfig{
			Threshold: cfg.HotPlayerThreshold,
			ListLimit: cfg.HotPlayerListLimit,
			IDsLimit:  cfg.HotPlayerIDsLimit,
		},
	)
	teamSvc := usecase.NewTeamService(
		repos.teams,
		repos.players,
		repos.slots,
		repos.contests,
		repos.enrollments,
		pointsSvc,
		idgen.NewRandomGenerator(),
	)
	leaderboardSvc := usecase.NewLeaderboardService(repos.teams, repos.users, pointsSvc, logger)
	ingestionSvc := usecase.NewIngestionService(repos.players, repos.contestPoints, logger)

	var refreshSvc *usecase.RefreshService
	if cfg.FeedEnabled {
		feed := pointsfeed.NewClient(pointsfeed.ClientConfig{
			BaseURL:    cfg.FeedBaseURL,
			Token:      cfg.FeedToken,
			Timeout:    cfg.FeedTimeout,
			MaxRetries: cfg.FeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FeedCircuitEnabled,
				FailureThreshold: cfg.FeedCircuitFailureCount,
				OpenTimeout:      cfg.FeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
			},
		})
		refreshSvc = usecase.NewRefreshService(repos.contests, feed, ingestionSvc, logger, cfg.RefreshMaxWorkers)
	} else {
		logger.Info("points feed disabled", "reason", "POINTS_FEED_ENABLED=false")
	}

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		slotSvc,
		contestSvc,
		playerSvc,
		hotPlayersSvc,
		teamSvc,
		leaderboardSvc,
		ingestionSvc,
		refreshSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

type repositories struct {
	slots         slot.Repository
	players       player.Repository
	contests      contest.Repository
	contestPoints contestpoints.Repository
	teams         team.Repository
	users         user.Repository
	enrollments   enrollment.Repository
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		repos := repositories{
			slots:         memory.NewSlotRepository(memory.SeedSlots()),
			players:       memory.NewPlayerRepository(memory.SeedPlayers()),
			contests:      memory.NewContestRepository(memory.SeedContests()),
			contestPoints: memory.NewContestPointsRepository(memory.SeedContestPoints()),
			teams:         memory.NewTeamRepository(memory.SeedTeams()),
			users:         memory.NewUserRepository(memory.SeedUsers()),
			enrollments:   memory.NewEnrollmentRepository(memory.SeedEnrollments()),
		}
		return withCaching(cfg, repos), func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))
	repos := repositories{
		slots:         postgres.NewSlotRepository(db),
		players:       postgres.NewPlayerRepository(db),
		contests:      postgres.NewContestRepository(db),
		contestPoints: postgres.NewContestPointsRepository(db),
		teams:         postgres.NewTeamRepository(db),
		users:         postgres.NewUserRepository(db),
		enrollments:   postgres.NewEnrollmentRepository(db),
	}

	return withCaching(cfg, repos), db.Close, nil
}

// withCaching layers read-through caches over the catalog
// repositories. Team, enrollment, and points repositories stay
// uncached because their reads must observe writes immediately.
func withCaching(cfg config.Config, repos repositories) repositories {
	if !cfg.CacheEnabled {
		return repos
	}

	store := basecache.NewStore(cfg.CacheTTL)
	repos.slots = cacherepo.NewSlotRepository(repos.slots, store)
	repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	repos.contests = cacherepo.NewContestRepository(repos.contests, store)

	return repos
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
