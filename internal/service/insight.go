package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akg580/review-insights/internal/cache"
	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/internal/repository"
	"github.com/akg580/review-insights/internal/stats"
	apperrors "github.com/akg580/review-insights/pkg/errors"
	"github.com/akg580/review-insights/pkg/slug"
)

// SummaryCache stores computed dashboard summaries per collection
// generation. Get returns cache.ErrMiss when nothing is cached for gen.
type SummaryCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64) (*domain.DashboardSummary, error)
	Set(ctx context.Context, gen int64, s *domain.DashboardSummary) error
	SummaryInvalidator
}

// InsightService derives aggregate statistics from the current collection.
// Nothing is persisted: every figure is recomputed from the full collection.
type InsightService struct {
	repo   repository.ReviewRepository
	cache  SummaryCache
	logger *slog.Logger
}

// NewInsightService creates an insight service. cache may be nil.
func NewInsightService(repo repository.ReviewRepository, cache SummaryCache, logger *slog.Logger) *InsightService {
	return &InsightService{repo: repo, cache: cache, logger: logger}
}

// Summary returns the dashboard summary, served from the cache when one is
// configured and populated. An empty collection yields zero figures.
//
// The generation is read before the collection is listed: a submission that
// lands in between advances it, so the summary stored here is never served
// for the newer collection.
func (s *InsightService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	if s.cache == nil {
		return s.summarize(ctx)
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "summary cache generation read failed, recomputing",
			slog.String("error", err.Error()),
		)
		return s.summarize(ctx)
	}

	cached, err := s.cache.Get(ctx, gen)
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, cache.ErrMiss):
		s.logger.WarnContext(ctx, "summary cache read failed, recomputing",
			slog.String("error", err.Error()),
		)
	}

	summary, err := s.summarize(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, gen, summary); err != nil {
		s.logger.WarnContext(ctx, "summary cache write failed",
			slog.Int64("generation", gen),
			slog.String("error", err.Error()),
		)
	}
	return summary, nil
}

func (s *InsightService) summarize(ctx context.Context) (*domain.DashboardSummary, error) {
	reviews, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(reviews)
	return &summary, nil
}

// Categories returns one insight per category, sorted by name.
func (s *InsightService) Categories(ctx context.Context) ([]domain.CategoryInsight, error) {
	reviews, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return stats.CategoryInsights(reviews), nil
}

// Category returns the insight for one category. An exact category name
// wins; otherwise the first category whose slug matches is returned.
func (s *InsightService) Category(ctx context.Context, category string) (*domain.CategoryInsight, error) {
	insights, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range insights {
		if insights[i].Category == category {
			return &insights[i], nil
		}
	}
	want := slug.Generate(category)
	for i := range insights {
		if insights[i].Slug == want {
			return &insights[i], nil
		}
	}
	return nil, apperrors.NotFound("category", category)
}

// AgeGroups returns the rating breakdown by author age range.
func (s *InsightService) AgeGroups(ctx context.Context) ([]domain.AgeGroupInsight, error) {
	reviews, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return stats.AgeGroups(reviews), nil
}

func (s *InsightService) list(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
