package domain

import (
	"time"
)

// Rating bounds accepted for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// DateLayout is the calendar-date format used for review dates.
const DateLayout = "2006-01-02"

// Rating sources a review can be submitted from.
const (
	SourceMobile = "mobile"
	SourceWeb    = "web"
	SourceApp    = "app"
)

// ValidSources returns the accepted rating sources.
func ValidSources() []string {
	return []string{SourceMobile, SourceWeb, SourceApp}
}

// IsValidSource reports whether s is an accepted rating source.
func IsValidSource(s string) bool {
	for _, v := range ValidSources() {
		if v == s {
			return true
		}
	}
	return false
}

// Review is one user's evaluation of one product. Reviews are immutable
// once created; Sentiment is always derived from Comment and Rating.
type Review struct {
	ID               string    `json:"id" yaml:"id"`
	ProductID        string    `json:"product_id" yaml:"product_id"`
	UserID           string    `json:"user_id" yaml:"user_id"`
	ProductName      string    `json:"product_name" yaml:"product_name"`
	Brand            string    `json:"brand" yaml:"brand"`
	Category         string    `json:"category" yaml:"category"`
	Rating           int       `json:"rating" yaml:"rating"`
	Comment          string    `json:"comment" yaml:"comment"`
	Sentiment        Label     `json:"sentiment" yaml:"-"`
	Source           string    `json:"source" yaml:"source"`
	Date             string    `json:"date" yaml:"date"`
	ImageURL         string    `json:"image_url,omitempty" yaml:"image_url"`
	UserAge          *int      `json:"user_age,omitempty" yaml:"user_age"`
	PurchaseVerified bool      `json:"purchase_verified" yaml:"purchase_verified"`
	CreatedAt        time.Time `json:"created_at" yaml:"-"`
}

// ValidRating reports whether r lies in the accepted rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ParsedDate parses the review's calendar date. A zero time is returned
// when the date is empty or malformed.
func (r *Review) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
