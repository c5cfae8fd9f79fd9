package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akg580/review-insights/internal/domain"
	pkgkafka "github.com/akg580/review-insights/pkg/kafka"
	"github.com/akg580/review-insights/pkg/logger"
)

// TopicReviewCreated carries one event per accepted review submission.
const TopicReviewCreated = "ecommerce.review.created"

const (
	AggregateTypeReview  = "review"
	SourceReviewInsights = "review-insights"
)

// Publisher is the subset of pkgkafka.Producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// ReviewCreatedData is the payload of a review.created event.
type ReviewCreatedData struct {
	ID               string       `json:"id"`
	ProductID        string       `json:"product_id,omitempty"`
	UserID           string       `json:"user_id,omitempty"`
	ProductName      string       `json:"product_name"`
	Brand            string       `json:"brand"`
	Category         string       `json:"category"`
	Rating           int          `json:"rating"`
	Sentiment        domain.Label `json:"sentiment"`
	Source           string       `json:"source"`
	Date             string       `json:"date"`
	PurchaseVerified bool         `json:"purchase_verified"`
}

// Producer publishes review domain events.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer wraps a Kafka publisher.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishReviewCreated announces a newly stored review. The request
// correlation id, when present, is copied onto the envelope.
func (p *Producer) PublishReviewCreated(ctx context.Context, r *domain.Review) error {
	data := ReviewCreatedData{
		ID:               r.ID,
		ProductID:        r.ProductID,
		UserID:           r.UserID,
		ProductName:      r.ProductName,
		Brand:            r.Brand,
		Category:         r.Category,
		Rating:           r.Rating,
		Sentiment:        r.Sentiment,
		Source:           r.Source,
		Date:             r.Date,
		PurchaseVerified: r.PurchaseVerified,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, r.ID, AggregateTypeReview, SourceReviewInsights, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}
	event.WithMetadata("sentiment", r.Sentiment.String())

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", r.ID),
		slog.String("category", r.Category),
	)
	return nil
}
