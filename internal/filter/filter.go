// Package filter selects reviews by free-text search and structured criteria.
package filter

import (
	"strings"
	"time"

	"github.com/akg580/review-insights/internal/domain"
)

// DateRange is a window of days back from a reference time.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// maxDays returns the inclusive day window, or -1 when the range is unbounded.
func (d DateRange) maxDays() int {
	switch d {
	case DateRangeToday:
		return 0
	case DateRangeWeek:
		return 7
	case DateRangeMonth:
		return 30
	default:
		return -1
	}
}

// Valid reports whether d is a known range. The empty range is treated as "all".
func (d DateRange) Valid() bool {
	switch d {
	case "", DateRangeAll, DateRangeToday, DateRangeWeek, DateRangeMonth:
		return true
	}
	return false
}

// Criteria narrows a review collection. Zero values leave the corresponding
// dimension unconstrained.
type Criteria struct {
	Query     string
	Brand     string
	Category  string
	Rating    *int
	Source    string
	DateRange DateRange
}

// Filter returns the reviews whose product name, brand, category or comment
// contains query, ignoring case. An empty query returns reviews unchanged.
// Order is preserved.
func Filter(reviews []domain.Review, query string) []domain.Review {
	if query == "" {
		return reviews
	}

	q := strings.ToLower(query)
	out := make([]domain.Review, 0, len(reviews))
	for i := range reviews {
		if matchesQuery(&reviews[i], q) {
			out = append(out, reviews[i])
		}
	}
	return out
}

// Apply returns the reviews satisfying every criterion, in collection order.
// now anchors the date window.
func Apply(reviews []domain.Review, c Criteria, now time.Time) []domain.Review {
	q := strings.ToLower(c.Query)
	out := make([]domain.Review, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		if !withinDays(r, c.DateRange.maxDays(), now) {
			continue
		}
		if c.Brand != "" && r.Brand != c.Brand {
			continue
		}
		if c.Category != "" && r.Category != c.Category {
			continue
		}
		if c.Rating != nil && r.Rating != *c.Rating {
			continue
		}
		if c.Source != "" && r.Source != c.Source {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func matchesQuery(r *domain.Review, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(r.ProductName), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Brand), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Category), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Comment), lowerQuery)
}

func withinDays(r *domain.Review, maxDays int, now time.Time) bool {
	if maxDays < 0 {
		return true
	}
	date := r.ParsedDate()
	if date.IsZero() {
		return false
	}
	days := int(now.Sub(date).Hours() / 24)
	if now.Before(date) {
		days = 0
	}
	return days <= maxDays
}

// Facets lists the distinct values of the filterable dimensions.
type Facets struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

// Distinct returns the unique brands and categories in first-seen order.
func Distinct(reviews []domain.Review) Facets {
	f := Facets{Brands: []string{}, Categories: []string{}}
	seenBrand := make(map[string]struct{})
	seenCategory := make(map[string]struct{})

	for i := range reviews {
		if _, ok := seenBrand[reviews[i].Brand]; !ok {
			seenBrand[reviews[i].Brand] = struct{}{}
			f.Brands = append(f.Brands, reviews[i].Brand)
		}
		if _, ok := seenCategory[reviews[i].Category]; !ok {
			seenCategory[reviews[i].Category] = struct{}{}
			f.Categories = append(f.Categories, reviews[i].Category)
		}
	}
	return f
}
