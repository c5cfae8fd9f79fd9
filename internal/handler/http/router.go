package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/health"
	"github.com/akg580/review-insights/pkg/middleware"
)

const serviceName = "review-insights"

// RouterConfig holds the HTTP-layer settings that come from configuration.
type RouterConfig struct {
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
	InsightsMaxAge    int // seconds clients may cache insight responses
	RequestTimeout    time.Duration
}

// NewRouter creates a chi router with all review-insights routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	insightService *service.InsightService,
	exportService *service.ExportService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health, metrics and profiling
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	reviewHandler := NewReviewHandler(reviewService, logger)
	insightHandler := NewInsightHandler(insightService, logger)
	exportHandler := NewExportHandler(exportService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
		r.Use(chimw.Compress(5, "application/json", "text/csv"))

		r.Route("/reviews", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/", reviewHandler.ListReviews)
			r.Post("/", reviewHandler.CreateReview)
			r.Get("/facets", reviewHandler.Facets)
			r.Get("/{id}", reviewHandler.GetReview)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.InsightsMaxAge))

			r.Get("/summary", insightHandler.Summary)
			r.Get("/categories", insightHandler.ListCategories)
			r.Get("/categories/{category}", insightHandler.GetCategory)
		})

		r.With(ContentTypeJSON).Post("/sentiment/analyze", reviewHandler.AnalyzeSentiment)

		r.Get("/exports/{dataset}.{format}", exportHandler.Export)
	})

	return r
}
