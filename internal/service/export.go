package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akg580/review-insights/internal/export"
	"github.com/akg580/review-insights/internal/filter"
	apperrors "github.com/akg580/review-insights/pkg/errors"
)

// ExportRequest selects what to export and how.
type ExportRequest struct {
	Dataset  export.Dataset
	Format   export.Format
	Criteria filter.Criteria // reviews dataset only
}

// ExportFile is a rendered export ready to be downloaded or written.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders datasets as CSV or PDF.
type ExportService struct {
	reviews  *ReviewService
	insights *InsightService
	logger   *slog.Logger
	now      func() time.Time
}

// NewExportService creates an export service.
func NewExportService(reviews *ReviewService, insights *InsightService, logger *slog.Logger) *ExportService {
	return &ExportService{reviews: reviews, insights: insights, logger: logger, now: time.Now}
}

// Export builds the requested table and renders it. An empty table is an
// invalid-input error since there is nothing to derive the columns from.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportFile, error) {
	table, err := s.table(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, req.Format, table); err != nil {
		if errors.Is(err, export.ErrEmptyTable) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("nothing to export: %s dataset is empty", req.Dataset))
		}
		return nil, fmt.Errorf("render %s export: %w", req.Format, err)
	}

	file := &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", req.Dataset, s.now().UTC().Format("2006-01-02"), req.Format),
		ContentType: req.Format.ContentType(),
		Body:        buf.Bytes(),
		Rows:        len(table.Rows),
	}

	s.logger.InfoContext(ctx, "export generated",
		slog.String("dataset", string(req.Dataset)),
		slog.String("format", string(req.Format)),
		slog.Int("rows", file.Rows),
		slog.Int("bytes", len(file.Body)),
	)
	return file, nil
}

func (s *ExportService) table(ctx context.Context, req ExportRequest) (export.Table, error) {
	switch req.Dataset {
	case export.DatasetReviews:
		reviews, err := s.reviews.Search(ctx, req.Criteria)
		if err != nil {
			return export.Table{}, err
		}
		return export.ReviewsTable(reviews), nil
	case export.DatasetInsights:
		insights, err := s.insights.Categories(ctx)
		if err != nil {
			return export.Table{}, err
		}
		return export.InsightsTable(insights), nil
	case export.DatasetAgeGroups:
		groups, err := s.insights.AgeGroups(ctx)
		if err != nil {
			return export.Table{}, err
		}
		return export.AgeGroupsTable(groups), nil
	case export.DatasetSentiment:
		summary, err := s.insights.Summary(ctx)
		if err != nil {
			return export.Table{}, err
		}
		return export.SentimentTable(*summary), nil
	default:
		return export.Table{}, apperrors.InvalidInput(fmt.Sprintf("unknown dataset %q", req.Dataset))
	}
}
