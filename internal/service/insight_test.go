package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akg580/review-insights/internal/cache"
	"github.com/akg580/review-insights/internal/domain"
	apperrors "github.com/akg580/review-insights/pkg/errors"
)

func TestSummary_NoCache(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewInsightService(repo, nil, newTestLogger())
	repo.On("List", mock.Anything).Return(sampleReviews(), nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalReviews)
	assert.Equal(t, 3.7, s.AverageRating)
	assert.Equal(t, 67, s.SentimentScore)
	assert.Len(t, s.Categories, 3)
}

func TestSummary_Empty(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewInsightService(repo, nil, newTestLogger())
	repo.On("List", mock.Anything).Return([]domain.Review{}, nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalReviews)
	assert.Zero(t, s.AverageRating)
	assert.Empty(t, s.Categories)
}

func TestSummary_CacheHit(t *testing.T) {
	repo := new(mockReviewRepository)
	c := new(mockSummaryCache)
	svc := NewInsightService(repo, c, newTestLogger())

	cached := &domain.DashboardSummary{TotalReviews: 42}
	c.On("Generation", mock.Anything).Return(int64(5), nil)
	c.On("Get", mock.Anything, int64(5)).Return(cached, nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Same(t, cached, s)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestSummary_CacheMissPopulates(t *testing.T) {
	repo := new(mockReviewRepository)
	c := new(mockSummaryCache)
	svc := NewInsightService(repo, c, newTestLogger())

	c.On("Generation", mock.Anything).Return(int64(2), nil)
	c.On("Get", mock.Anything, int64(2)).Return(nil, cache.ErrMiss)
	repo.On("List", mock.Anything).Return(sampleReviews(), nil)
	c.On("Set", mock.Anything, int64(2), mock.MatchedBy(func(s *domain.DashboardSummary) bool {
		return s.TotalReviews == 3
	})).Return(nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalReviews)
	c.AssertExpectations(t)
}

func TestSummary_CacheErrorsFallBack(t *testing.T) {
	repo := new(mockReviewRepository)
	c := new(mockSummaryCache)
	svc := NewInsightService(repo, c, newTestLogger())

	c.On("Generation", mock.Anything).Return(int64(0), nil)
	c.On("Get", mock.Anything, int64(0)).Return(nil, errors.New("redis down"))
	c.On("Set", mock.Anything, int64(0), mock.Anything).Return(errors.New("redis down"))
	repo.On("List", mock.Anything).Return(sampleReviews(), nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalReviews)
}

func TestSummary_GenerationErrorSkipsCache(t *testing.T) {
	repo := new(mockReviewRepository)
	c := new(mockSummaryCache)
	svc := NewInsightService(repo, c, newTestLogger())

	c.On("Generation", mock.Anything).Return(int64(0), errors.New("redis down"))
	repo.On("List", mock.Anything).Return(sampleReviews(), nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalReviews)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummary_RepositoryError(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewInsightService(repo, nil, newTestLogger())
	repo.On("List", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.Summary(context.Background())
	assert.ErrorContains(t, err, "list reviews")
}

func TestCategory_BySlugOrName(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewInsightService(repo, nil, newTestLogger())
	repo.On("List", mock.Anything).Return(sampleReviews(), nil)
	ctx := context.Background()

	for _, key := range []string{"ethnic-wear", "Ethnic Wear"} {
		insight, err := svc.Category(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, "Ethnic Wear", insight.Category)
		assert.Equal(t, 5.0, insight.AverageRating)
		assert.Equal(t, 100, insight.Sentiment.Positive)
	}

	_, err := svc.Category(ctx, "shoes")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategory_ExactNameBeforeSlug(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewInsightService(repo, nil, newTestLogger())
	repo.On("List", mock.Anything).Return([]domain.Review{
		{ID: "a", Category: "Ethnic Wear", Rating: 5, Sentiment: domain.LabelPositive},
		{ID: "b", Category: "Ethnic-Wear", Rating: 1, Sentiment: domain.LabelNegative},
		{ID: "c", Category: "ethnic-wear", Rating: 3, Sentiment: domain.LabelNeutral},
	}, nil)
	ctx := context.Background()

	for _, name := range []string{"Ethnic Wear", "Ethnic-Wear", "ethnic-wear"} {
		insight, err := svc.Category(ctx, name)
		require.NoError(t, err, name)
		assert.Equal(t, name, insight.Category)
		assert.Equal(t, 1, insight.ReviewCount)
	}

	// No exact match: the slug resolves to the first category by name.
	insight, err := svc.Category(ctx, "ETHNIC WEAR")
	require.NoError(t, err)
	assert.Equal(t, "Ethnic Wear", insight.Category)
}

func TestCategories_And_AgeGroups(t *testing.T) {
	repo := new(mockReviewRepository)
	svc := NewInsightService(repo, nil, newTestLogger())
	repo.On("List", mock.Anything).Return(sampleReviews(), nil)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Dresses", cats[0].Category)

	groups, err := svc.AgeGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 4)
	assert.Equal(t, 3, groups[1].Count)
	assert.Equal(t, 3.7, groups[1].AverageRating)
}
