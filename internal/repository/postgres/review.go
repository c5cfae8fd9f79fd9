package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/pkg/database"
	apperrors "github.com/akg580/review-insights/pkg/errors"
)

const reviewColumns = `id, product_id, user_id, product_name, brand, category, rating, comment,
		       sentiment, source, review_date, image_url, user_age, purchase_verified, created_at`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	query := `
		INSERT INTO reviews (id, product_id, user_id, product_name, brand, category, rating, comment,
		                     sentiment, source, review_date, image_url, user_age, purchase_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	ctx, end := database.TraceQuery(ctx, "CreateReview", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.ProductName,
		review.Brand,
		review.Category,
		review.Rating,
		review.Comment,
		string(review.Sentiment),
		review.Source,
		review.ParsedDate(),
		review.ImageURL,
		review.UserAge,
		review.PurchaseVerified,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("review", "id", review.ID)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (_ *domain.Review, err error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetReview", query)
	defer func() { end(err) }()

	rv, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

// List returns every review, newest first.
func (r *ReviewRepository) List(ctx context.Context) (_ []domain.Review, err error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY seq DESC`

	ctx, end := database.TraceQuery(ctx, "ListReviews", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, *rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// Count returns the number of stored reviews.
func (r *ReviewRepository) Count(ctx context.Context) (n int, err error) {
	query := `SELECT COUNT(*) FROM reviews`

	ctx, end := database.TraceQuery(ctx, "CountReviews", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var (
		rv         domain.Review
		sentiment  string
		reviewDate time.Time
	)

	if err := row.Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.UserID,
		&rv.ProductName,
		&rv.Brand,
		&rv.Category,
		&rv.Rating,
		&rv.Comment,
		&sentiment,
		&rv.Source,
		&reviewDate,
		&rv.ImageURL,
		&rv.UserAge,
		&rv.PurchaseVerified,
		&rv.CreatedAt,
	); err != nil {
		return nil, err
	}

	rv.Sentiment = domain.Label(sentiment)
	rv.Date = reviewDate.Format(domain.DateLayout)
	return &rv, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
