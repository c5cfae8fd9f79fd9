// Package seed loads the mock review collection the service starts from.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/internal/repository"
	"github.com/akg580/review-insights/internal/sentiment"
	apperrors "github.com/akg580/review-insights/pkg/errors"
)

//go:embed reviews.yaml
var defaultData []byte

type file struct {
	Reviews []domain.Review `yaml:"reviews"`
}

// Default returns the embedded mock collection, newest first.
func Default() ([]domain.Review, error) {
	return Load(bytes.NewReader(defaultData))
}

// LoadFile reads a review collection from a YAML file.
func LoadFile(path string) ([]domain.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML review collection. Each review's sentiment is derived
// with the classifier; missing sources default to web and CreatedAt is set
// from the review date.
func Load(r io.Reader) ([]domain.Review, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Reviews))
	for i := range doc.Reviews {
		rev := &doc.Reviews[i]
		if err := check(rev); err != nil {
			return nil, fmt.Errorf("seed review %d: %w", i+1, err)
		}
		if _, dup := seen[rev.ID]; dup {
			return nil, fmt.Errorf("seed review %d: duplicate id %q", i+1, rev.ID)
		}
		seen[rev.ID] = struct{}{}

		if rev.Source == "" {
			rev.Source = domain.SourceWeb
		}
		rev.Sentiment = sentiment.Classify(rev.Comment, rev.Rating)
		rev.CreatedAt = rev.ParsedDate().UTC()
	}

	if doc.Reviews == nil {
		doc.Reviews = []domain.Review{}
	}
	return doc.Reviews, nil
}

func check(r *domain.Review) error {
	switch {
	case r.ID == "":
		return errors.New("id is required")
	case !domain.ValidRating(r.Rating):
		return fmt.Errorf("rating %d out of range", r.Rating)
	case r.Source != "" && !domain.IsValidSource(r.Source):
		return fmt.Errorf("unknown source %q", r.Source)
	case r.ParsedDate().IsZero():
		return fmt.Errorf("date %q is not in %s form", r.Date, domain.DateLayout)
	}
	return nil
}

// Populate stores reviews, oldest first, so the repository's newest-first
// listing matches the order they were given in. Reviews already present are
// skipped, which makes seeding a persistent store idempotent.
func Populate(ctx context.Context, repo repository.ReviewRepository, reviews []domain.Review, logger *slog.Logger) (int, error) {
	start := time.Now()
	inserted := 0
	for i := len(reviews) - 1; i >= 0; i-- {
		rev := reviews[i]
		if err := repo.Create(ctx, &rev); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				continue
			}
			return inserted, fmt.Errorf("seed review %s: %w", rev.ID, err)
		}
		inserted++
	}

	logger.InfoContext(ctx, "seed data loaded",
		slog.Int("inserted", inserted),
		slog.Int("skipped", len(reviews)-inserted),
		slog.Duration("duration", time.Since(start)),
	)
	return inserted, nil
}
