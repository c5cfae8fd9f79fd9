package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akg580/review-insights/internal/domain"
)

// Dataset names an exportable view of the review collection.
type Dataset string

const (
	DatasetReviews   Dataset = "reviews"
	DatasetInsights  Dataset = "insights"
	DatasetAgeGroups Dataset = "age-groups"
	DatasetSentiment Dataset = "sentiment"
)

// Datasets returns every exportable dataset.
func Datasets() []Dataset {
	return []Dataset{DatasetReviews, DatasetInsights, DatasetAgeGroups, DatasetSentiment}
}

// ParseDataset converts s into a Dataset.
func ParseDataset(s string) (Dataset, error) {
	for _, d := range Datasets() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown export dataset %q", s)
}

// Title returns the report title used for the dataset.
func (d Dataset) Title() string {
	switch d {
	case DatasetReviews:
		return "Product Reviews"
	case DatasetInsights:
		return "Category Insights"
	case DatasetAgeGroups:
		return "Age Group Insights"
	case DatasetSentiment:
		return "Sentiment Summary"
	}
	return string(d)
}

// ReviewsTable has one row per review.
func ReviewsTable(reviews []domain.Review) Table {
	rows := make([]Row, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		rows = append(rows, Row{
			{"Review ID", r.ID},
			{"User ID", r.UserID},
			{"Product", r.ProductName},
			{"Brand", r.Brand},
			{"Category", r.Category},
			{"Rating", strconv.Itoa(r.Rating)},
			{"Sentiment", r.Sentiment.String()},
			{"Source", r.Source},
			{"Review Date", r.Date},
			{"Verified", strconv.FormatBool(r.PurchaseVerified)},
			{"Comment", r.Comment},
		})
	}
	return Table{Title: DatasetReviews.Title(), Rows: rows}
}

// InsightsTable has one row per category.
func InsightsTable(insights []domain.CategoryInsight) Table {
	rows := make([]Row, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, Row{
			{"Category", in.Category},
			{"Reviews", strconv.Itoa(in.ReviewCount)},
			{"Average Rating", formatRating(in.AverageRating)},
			{"Positive", percent(in.Sentiment.Positive)},
			{"Neutral", percent(in.Sentiment.Neutral)},
			{"Negative", percent(in.Sentiment.Negative)},
			{"Common Phrases", strings.Join(in.CommonPhrases, "; ")},
		})
	}
	return Table{Title: DatasetInsights.Title(), Rows: rows}
}

// AgeGroupsTable has one row per age bucket.
func AgeGroupsTable(groups []domain.AgeGroupInsight) Table {
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, Row{
			{"Age Group", g.Range},
			{"Reviews", strconv.Itoa(g.Count)},
			{"Average Rating", formatRating(g.AverageRating)},
		})
	}
	return Table{Title: DatasetAgeGroups.Title(), Rows: rows}
}

// SentimentTable is a single row of collection-wide figures. It has no rows
// when the summary covers no reviews.
func SentimentTable(s domain.DashboardSummary) Table {
	t := Table{Title: DatasetSentiment.Title()}
	if s.TotalReviews == 0 {
		return t
	}
	t.Rows = []Row{{
		{"Total Reviews", strconv.Itoa(s.TotalReviews)},
		{"Average Rating", formatRating(s.AverageRating)},
		{"Sentiment Score", percent(s.SentimentScore)},
		{"Positive", percent(s.Sentiment.Positive)},
		{"Neutral", percent(s.Sentiment.Neutral)},
		{"Negative", percent(s.Sentiment.Negative)},
	}}
	return t
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func percent(v int) string {
	return strconv.Itoa(v) + "%"
}
