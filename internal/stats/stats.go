// Package stats derives aggregate rating and sentiment figures from review
// collections. Every function recomputes from scratch over its input.
package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/pkg/slug"
)

// ErrEmptyCollection is returned when an aggregate is requested over no reviews.
var ErrEmptyCollection = errors.New("stats: empty review collection")

// DefaultPhraseCount is the number of representative phrases kept per category.
const DefaultPhraseCount = 3

// Counts holds the number of reviews per sentiment label.
type Counts struct {
	Total    int
	Positive int
	Neutral  int
	Negative int
}

// Count tallies sentiment labels. Neutral is whatever is neither positive
// nor negative.
func Count(reviews []domain.Review) Counts {
	c := Counts{Total: len(reviews)}
	for i := range reviews {
		switch reviews[i].Sentiment {
		case domain.LabelPositive:
			c.Positive++
		case domain.LabelNegative:
			c.Negative++
		}
	}
	c.Neutral = c.Total - c.Positive - c.Negative
	return c
}

// AverageRating returns the mean rating rounded to one decimal place.
func AverageRating(reviews []domain.Review) (float64, error) {
	if len(reviews) == 0 {
		return 0, ErrEmptyCollection
	}
	sum := 0
	for i := range reviews {
		sum += reviews[i].Rating
	}
	return roundOneDecimal(float64(sum) / float64(len(reviews))), nil
}

// Distribution returns the sentiment percentages of reviews. Each label is
// rounded on its own; the remainder is not redistributed.
func Distribution(reviews []domain.Review) (domain.SentimentDistribution, error) {
	if len(reviews) == 0 {
		return domain.SentimentDistribution{}, ErrEmptyCollection
	}
	c := Count(reviews)
	return domain.SentimentDistribution{
		Positive: percent(c.Positive, c.Total),
		Neutral:  percent(c.Neutral, c.Total),
		Negative: percent(c.Negative, c.Total),
	}, nil
}

// SentimentScore is the rounded percentage of positive reviews.
func SentimentScore(reviews []domain.Review) (int, error) {
	if len(reviews) == 0 {
		return 0, ErrEmptyCollection
	}
	c := Count(reviews)
	return percent(c.Positive, c.Total), nil
}

// ForCategory returns the reviews whose category equals category exactly,
// preserving order.
func ForCategory(reviews []domain.Review, category string) []domain.Review {
	out := make([]domain.Review, 0)
	for i := range reviews {
		if reviews[i].Category == category {
			out = append(out, reviews[i])
		}
	}
	return out
}

// CategoryInsight computes the insight for one category over the full
// collection. ErrEmptyCollection is returned when no review has that category.
func CategoryInsight(reviews []domain.Review, category string) (domain.CategoryInsight, error) {
	members := ForCategory(reviews, category)
	if len(members) == 0 {
		return domain.CategoryInsight{}, ErrEmptyCollection
	}
	return buildInsight(category, members), nil
}

// CategoryInsights computes one insight per distinct category, sorted by
// category name.
func CategoryInsights(reviews []domain.Review) []domain.CategoryInsight {
	groups := make(map[string][]domain.Review)
	for i := range reviews {
		c := reviews[i].Category
		groups[c] = append(groups[c], reviews[i])
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	insights := make([]domain.CategoryInsight, 0, len(names))
	for _, name := range names {
		insights = append(insights, buildInsight(name, groups[name]))
	}
	return insights
}

func buildInsight(category string, members []domain.Review) domain.CategoryInsight {
	// members is never empty here, so the errors cannot occur.
	avg, _ := AverageRating(members)
	dist, _ := Distribution(members)

	comments := make([]string, 0, len(members))
	for i := range members {
		comments = append(comments, members[i].Comment)
	}

	return domain.CategoryInsight{
		Category:      category,
		Slug:          slug.Generate(category),
		ReviewCount:   len(members),
		Sentiment:     dist,
		CommonPhrases: Phrases(comments, DefaultPhraseCount),
		AverageRating: avg,
	}
}

// Summarize builds the dashboard summary. An empty collection yields a
// zero-valued summary with empty category and age-group lists.
func Summarize(reviews []domain.Review) domain.DashboardSummary {
	summary := domain.DashboardSummary{
		TotalReviews: len(reviews),
		Categories:   CategoryInsights(reviews),
		AgeGroups:    AgeGroups(reviews),
	}
	if len(reviews) == 0 {
		return summary
	}

	summary.AverageRating, _ = AverageRating(reviews)
	summary.SentimentScore, _ = SentimentScore(reviews)
	summary.Sentiment, _ = Distribution(reviews)
	return summary
}

func percent(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
