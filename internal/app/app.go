package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/matchdayhq/matchday/external/resultsfeed"
	"github.com/matchdayhq/matchday/internal/config"
	"github.com/matchdayhq/matchday/internal/domain/event"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/prediction"
	"github.com/matchdayhq/matchday/internal/domain/registration"
	"github.com/matchdayhq/matchday/internal/domain/spin"
	cacherepo "github.com/matchdayhq/matchday/internal/infrastructure/repository/cache"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/postgres"
	"github.com/matchdayhq/matchday/internal/interfaces/httpapi"
	basecache "github.com/matchdayhq/matchday/internal/platform/cache"
	idgen "github.com/matchdayhq/matchday/internal/platform/id"
	"github.com/matchdayhq/matchday/internal/platform/logging"
	"github.com/matchdayhq/matchday/internal/platform/resilience"
	"github.com/matchdayhq/matchday/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// NewHTTPServer wires repositories, services, and the HTTP router into a
// ready-to-run server. With DB_URL set it runs against postgres; without it
// the service falls back to seeded in-memory stores, which is how local
// development and the httpapi tests run. The returned cleanup releases
// whatever backing resources were opened and is safe to call after Shutdown.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cleanup := func() error { return nil }

	var (
		eventRepo        event.Repository
		matchRepo        match.Repository
		registrationRepo registration.Repository
		predictionRepo   prediction.Repository
		spinRepo         spin.Repository
	)

	if cfg.DBURL != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		cleanup = db.Close

		eventRepo = postgres.NewEventRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		registrationRepo = postgres.NewRegistrationRepository(db)
		predictionRepo = postgres.NewPredictionRepository(db)
		spinRepo = postgres.NewSpinRepository(db)

		logger.Info("storage ready", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))
	} else {
		registrations := memory.NewRegistrationRepository()

		eventRepo = memory.NewEventRepository(memory.SeedEvents())
		matchRepo = memory.NewMatchRepository(memory.SeedMatches())
		registrationRepo = registrations
		predictionRepo = memory.NewPredictionRepository(registrations)
		spinRepo = memory.NewSpinRepository()

		logger.Info("storage ready", "backend", "memory")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		eventRepo = cacherepo.NewEventRepository(eventRepo, store)
		matchRepo = cacherepo.NewMatchRepository(matchRepo, store)
	}

	generator := idgen.NewUUIDGenerator()

	eventSvc := usecase.NewEventService(eventRepo, generator)
	matchSvc := usecase.NewMatchService(eventRepo, matchRepo, generator)
	registrationSvc := usecase.NewRegistrationService(eventRepo, registrationRepo, generator)
	predictionSvc := usecase.NewPredictionService(eventRepo, matchRepo, registrationRepo, predictionRepo, generator)
	leaderboardSvc := usecase.NewLeaderboardService(eventRepo, matchRepo, predictionRepo)
	spinSvc := usecase.NewSpinService(eventRepo, registrationRepo, spinRepo, cfg.SpinMaxPerEvent)

	// Without a feed the sync endpoint stays routable but answers 503, so the
	// scheduler notices a misconfigured environment instead of silently
	// skipping runs.
	var resultSyncSvc *usecase.ResultSyncService
	if cfg.ResultsFeedEnabled {
		feed := resultsfeed.NewClient(resultsfeed.ClientConfig{
			BaseURL:    cfg.ResultsFeedBaseURL,
			Token:      cfg.ResultsFeedToken,
			Timeout:    cfg.ResultsFeedTimeout,
			MaxRetries: cfg.ResultsFeedMaxRetries,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ResultsFeedCircuitEnabled,
				FailureThreshold: cfg.ResultsFeedCircuitFailureCount,
				OpenTimeout:      cfg.ResultsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultsFeedCircuitHalfOpenMaxReq,
			},
		})
		resultSyncSvc = usecase.NewResultSyncService(matchRepo, feed, logging.Default())
	} else {
		logger.Warn("results feed disabled, sync-results job will answer 503")
	}

	handler := httpapi.NewHandler(
		eventSvc,
		matchSvc,
		registrationSvc,
		predictionSvc,
		leaderboardSvc,
		spinSvc,
		resultSyncSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
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

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
