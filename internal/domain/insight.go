package domain

// SentimentDistribution holds percentages per sentiment label. Each value is
// rounded independently, so the three need not sum to exactly 100.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// CategoryInsight is the aggregate view of all reviews sharing a category.
type CategoryInsight struct {
	Category      string                `json:"category"`
	Slug          string                `json:"slug"`
	ReviewCount   int                   `json:"review_count"`
	Sentiment     SentimentDistribution `json:"sentiment"`
	CommonPhrases []string              `json:"common_phrases"`
	AverageRating float64               `json:"average_rating"`
}

// AgeGroupInsight summarizes reviews whose author age falls in one range.
type AgeGroupInsight struct {
	Range         string  `json:"range"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// DashboardSummary is the collection-wide aggregate view.
type DashboardSummary struct {
	TotalReviews   int                   `json:"total_reviews"`
	AverageRating  float64               `json:"average_rating"`
	SentimentScore int                   `json:"sentiment_score"`
	Sentiment      SentimentDistribution `json:"sentiment"`
	Categories     []CategoryInsight     `json:"categories"`
	AgeGroups      []AgeGroupInsight     `json:"age_groups"`
}
