package repository

import (
	"context"

	"github.com/akg580/review-insights/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
// Reviews are append-only: there is no update or delete.
type ReviewRepository interface {
	// Create stores a new review ahead of every existing one.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// List returns the whole collection, newest first.
	List(ctx context.Context) ([]domain.Review, error)

	// Count returns the number of stored reviews.
	Count(ctx context.Context) (int, error)
}
