package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/internal/filter"
	"github.com/akg580/review-insights/internal/repository"
	"github.com/akg580/review-insights/internal/sentiment"
	apperrors "github.com/akg580/review-insights/pkg/errors"
	"github.com/akg580/review-insights/pkg/pagination"
)

var reviewsClassified = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reviews_classified_total",
		Help: "Submitted reviews by derived sentiment label",
	},
	[]string{"label"},
)

const maxUserAge = 120

// ReviewEvents publishes review domain events.
type ReviewEvents interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
}

// SummaryInvalidator drops any cached aggregate after the collection changes.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SubmitReviewInput holds the client-supplied fields of a new review.
// Sentiment is deliberately absent: it is always derived.
type SubmitReviewInput struct {
	ProductID        string
	UserID           string
	ProductName      string
	Brand            string
	Category         string
	Rating           int
	Comment          string
	Source           string
	Date             string
	ImageURL         string
	UserAge          *int
	PurchaseVerified bool
}

// AnalyzeInput is free text to run through the classifier.
type AnalyzeInput struct {
	Comment string
	Rating  int
}

// ReviewService owns the review collection: submission, lookup and search.
type ReviewService struct {
	repo   repository.ReviewRepository
	events ReviewEvents
	cache  SummaryInvalidator
	logger *slog.Logger
	now    func() time.Time
}

// NewReviewService creates a review service. events and cache may be nil.
func NewReviewService(repo repository.ReviewRepository, events ReviewEvents, cache SummaryInvalidator, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		events: events,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Submit validates input, labels it with the sentiment classifier and adds
// it to the front of the collection. Event publishing and cache
// invalidation failures are logged and do not fail the submission.
func (s *ReviewService) Submit(ctx context.Context, input *SubmitReviewInput) (*domain.Review, error) {
	if err := validateSubmit(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	source := input.Source
	if source == "" {
		source = domain.SourceWeb
	}
	date := input.Date
	if date == "" {
		date = now.Format(domain.DateLayout)
	}

	review := &domain.Review{
		ID:               uuid.NewString(),
		ProductID:        strings.TrimSpace(input.ProductID),
		UserID:           strings.TrimSpace(input.UserID),
		ProductName:      strings.TrimSpace(input.ProductName),
		Brand:            strings.TrimSpace(input.Brand),
		Category:         strings.TrimSpace(input.Category),
		Rating:           input.Rating,
		Comment:          input.Comment,
		Sentiment:        sentiment.Classify(input.Comment, input.Rating),
		Source:           source,
		Date:             date,
		ImageURL:         input.ImageURL,
		UserAge:          input.UserAge,
		PurchaseVerified: input.PurchaseVerified,
		CreatedAt:        now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	reviewsClassified.WithLabelValues(review.Sentiment.String()).Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate summary cache",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.events != nil {
		if err := s.events.PublishReviewCreated(ctx, review); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("category", review.Category),
		slog.Int("rating", review.Rating),
		slog.String("sentiment", review.Sentiment.String()),
	)
	return review, nil
}

func validateSubmit(in *SubmitReviewInput) error {
	if strings.TrimSpace(in.ProductName) == "" {
		return apperrors.InvalidInput("product_name is required")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return apperrors.InvalidInput("brand is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return apperrors.InvalidInput("category is required")
	}
	if !domain.ValidRating(in.Rating) {
		return apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if in.Source != "" && !domain.IsValidSource(in.Source) {
		return apperrors.InvalidInput(fmt.Sprintf("source must be one of %s", strings.Join(domain.ValidSources(), ", ")))
	}
	if in.Date != "" {
		if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
			return apperrors.InvalidInput("date must be in YYYY-MM-DD form")
		}
	}
	if in.UserAge != nil && (*in.UserAge < 1 || *in.UserAge > maxUserAge) {
		return apperrors.InvalidInput(fmt.Sprintf("user_age must be between 1 and %d", maxUserAge))
	}
	return nil
}

// Get returns one review by id.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// All returns the whole collection, newest first.
func (s *ReviewService) All(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Search returns every review matching c, in collection order.
func (s *ReviewService) Search(ctx context.Context, c filter.Criteria) ([]domain.Review, error) {
	if err := validateCriteria(c); err != nil {
		return nil, err
	}
	reviews, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(reviews, c, s.now()), nil
}

// List returns one page of the reviews matching c.
func (s *ReviewService) List(ctx context.Context, c filter.Criteria, p pagination.Params) (pagination.Result[domain.Review], error) {
	matched, err := s.Search(ctx, c)
	if err != nil {
		return pagination.Result[domain.Review]{}, err
	}
	return pagination.Paginate(matched, p), nil
}

func validateCriteria(c filter.Criteria) error {
	if !c.DateRange.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("unknown date_range %q", c.DateRange))
	}
	if c.Rating != nil && !domain.ValidRating(*c.Rating) {
		return apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if c.Source != "" && !domain.IsValidSource(c.Source) {
		return apperrors.InvalidInput(fmt.Sprintf("source must be one of %s", strings.Join(domain.ValidSources(), ", ")))
	}
	return nil
}

// Facets lists the distinct brands and categories in the collection.
func (s *ReviewService) Facets(ctx context.Context) (filter.Facets, error) {
	reviews, err := s.All(ctx)
	if err != nil {
		return filter.Facets{}, err
	}
	return filter.Distinct(reviews), nil
}

// Analyze classifies arbitrary text without storing anything.
func (s *ReviewService) Analyze(ctx context.Context, input AnalyzeInput) (sentiment.Result, error) {
	if !domain.ValidRating(input.Rating) {
		return sentiment.Result{}, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	res := sentiment.Analyze(input.Comment, input.Rating)
	s.logger.DebugContext(ctx, "text analyzed",
		slog.String("label", res.Label.String()),
		slog.Int("positive", res.PositiveCount),
		slog.Int("negative", res.NegativeCount),
	)
	return res, nil
}
