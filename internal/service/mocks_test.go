package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/akg580/review-insights/internal/domain"
)

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- Mock Event Publisher ---

type mockReviewEvents struct {
	mock.Mock
}

func (m *mockReviewEvents) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// --- Mock Summary Cache ---

type mockSummaryCache struct {
	mock.Mock
}

func (m *mockSummaryCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSummaryCache) Get(ctx context.Context, gen int64) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, gen)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *mockSummaryCache) Set(ctx context.Context, gen int64, s *domain.DashboardSummary) error {
	args := m.Called(ctx, gen, s)
	return args.Error(0)
}

func (m *mockSummaryCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(n int) *int { return &n }

// fixedNow is the reference time for date-window tests.
var fixedNow = time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

func sampleReviews() []domain.Review {
	return []domain.Review{
		{
			ID: "1", UserID: "u1", ProductName: "Summer Floral Dress", Brand: "Ethnic Fusion", Category: "Dresses",
			Rating: 4, Sentiment: domain.LabelPositive, Source: domain.SourceMobile, Date: "2024-03-15", UserAge: intPtr(25),
			Comment: "Beautiful design but the fabric could be better. Love the fit though!",
		},
		{
			ID: "2", UserID: "u2", ProductName: "Classic Denim Jeans", Brand: "DenimCo", Category: "Jeans",
			Rating: 2, Sentiment: domain.LabelNegative, Source: domain.SourceWeb, Date: "2024-03-14", UserAge: intPtr(32),
			Comment: "The sizing runs small and the quality is not worth the price.",
		},
		{
			ID: "3", UserID: "u3", ProductName: "Cotton Kurta", Brand: "Traditional Touch", Category: "Ethnic Wear",
			Rating: 5, Sentiment: domain.LabelPositive, Source: domain.SourceApp, Date: "2024-02-01", UserAge: intPtr(28),
			Comment: "Perfect for summer! Great quality and beautiful embroidery.",
		},
	}
}
