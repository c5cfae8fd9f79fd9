package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/akg580/review-insights/internal/cache"
	"github.com/akg580/review-insights/internal/config"
	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/internal/event"
	handler "github.com/akg580/review-insights/internal/handler/http"
	"github.com/akg580/review-insights/internal/repository"
	"github.com/akg580/review-insights/internal/repository/memory"
	"github.com/akg580/review-insights/internal/repository/postgres"
	"github.com/akg580/review-insights/internal/repository/postgres/migrations"
	"github.com/akg580/review-insights/internal/seed"
	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/database"
	"github.com/akg580/review-insights/pkg/health"
	pkgkafka "github.com/akg580/review-insights/pkg/kafka"
	"github.com/akg580/review-insights/pkg/middleware"
	"github.com/akg580/review-insights/pkg/tracing"
)

// ServiceName identifies the service in logs, metrics and traces.
const ServiceName = "review-insights"

// App wires together all dependencies and runs the review-insights service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// Redis and Kafka are optional; with them disabled the service runs without
// a summary cache and without publishing events.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	tracerShutdown, err := tracing.Init(ctx, cfg.Tracing(ServiceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	healthHandler := health.NewHandler()

	repo, err := a.openStore(ctx, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	if cfg.SeedOnStart {
		if err := seedStore(ctx, repo, cfg.SeedFile, logger); err != nil {
			a.closeAll()
			return nil, err
		}
	}

	// Optional collaborators stay untyped nil when disabled so the services
	// see a nil interface.
	var (
		summaryCache service.SummaryCache
		events       service.ReviewEvents
	)

	if cfg.RedisEnabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			a.closeAll()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		c := cache.NewSummaryCache(client, cfg.SummaryCacheTTL())
		summaryCache = c
		healthHandler.RegisterNonCritical("redis", c.Ping)
		logger.Info("summary cache enabled",
			slog.String("addr", cfg.RedisAddr),
			slog.Duration("ttl", cfg.SummaryCacheTTL()),
		)
	}

	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewProducer(a.producer, logger)
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	reviewService := service.NewReviewService(repo, events, summaryCache, logger)
	insightService := service.NewInsightService(repo, summaryCache, logger)
	exportService := service.NewExportService(reviewService, insightService, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(reviewService, insightService, exportService, healthHandler, logger, handler.RouterConfig{
		CORS:              corsCfg,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
		InsightsMaxAge:    cfg.InsightsMaxAgeSecs,
		RequestTimeout:    cfg.RequestTimeout(),
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout() + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// openStore returns the review repository selected by STORAGE_DRIVER.
func (a *App) openStore(ctx context.Context, hh *health.Handler) (repository.ReviewRepository, error) {
	if a.cfg.StorageDriver != config.StoragePostgres {
		a.logger.Info("using in-memory review store")
		return memory.NewReviewRepository(), nil
	}

	pgCfg := a.cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL",
		slog.String("host", pgCfg.Host),
		slog.Int("port", pgCfg.Port),
		slog.String("database", pgCfg.DBName),
	)

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, ServiceName); err != nil {
		a.logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.logger.Info("database migrations completed")

	if t := a.cfg.SlowQueryThreshold(); t > 0 {
		database.SetSlowQueryLogging(t, a.logger)
	}

	hh.RegisterCritical("postgres", pool.Ping)
	return postgres.NewReviewRepository(pool), nil
}

func seedStore(ctx context.Context, repo repository.ReviewRepository, path string, logger *slog.Logger) error {
	var (
		reviews []domain.Review
		err     error
	)
	if path != "" {
		reviews, err = seed.LoadFile(path)
	} else {
		reviews, err = seed.Default()
	}
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}

	if _, err := seed.Populate(ctx, repo, reviews, logger); err != nil {
		return fmt.Errorf("seed review store: %w", err)
	}
	return nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeAll()
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight HTTP requests, then flushes spans and closes the
// producer, cache and database connections.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.closeAll(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeAll releases everything except the HTTP server. Components that were
// never opened are skipped.
func (a *App) closeAll() error {
	var errs []error

	// Spans from drained requests are flushed first.
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.tracerShutdown = nil
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.producer = nil
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.redis = nil
	}

	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	return errors.Join(errs...)
}
