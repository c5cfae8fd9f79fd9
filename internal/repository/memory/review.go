// Package memory provides a process-local review store.
package memory

import (
	"context"
	"sync"

	"github.com/akg580/review-insights/internal/domain"
	apperrors "github.com/akg580/review-insights/pkg/errors"
)

// ReviewRepository keeps the review collection in memory, newest first.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
	byID    map[string]int // id -> insertion sequence
}

// NewReviewRepository creates an empty in-memory review repository.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		byID: make(map[string]int),
	}
}

// Create prepends review to the collection.
func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[review.ID]; exists {
		return apperrors.AlreadyExists("review", "id", review.ID)
	}

	r.byID[review.ID] = len(r.reviews)
	r.reviews = append(r.reviews, *review)
	return nil
}

// GetByID returns a copy of the review with the given id.
func (r *ReviewRepository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seq, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("review", id)
	}
	rv := r.reviews[seq]
	return &rv, nil
}

// List returns a snapshot of the collection, newest first.
func (r *ReviewRepository) List(_ context.Context) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Stored in insertion order; reversed on the way out.
	out := make([]domain.Review, len(r.reviews))
	for i, rv := range r.reviews {
		out[len(r.reviews)-1-i] = rv
	}
	return out, nil
}

// Count returns the number of stored reviews.
func (r *ReviewRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reviews), nil
}
