// Package cli implements reviewctl, a command-line front end to the review
// classifier, statistics and exports. It works on the embedded seed data or
// on a YAML collection given with --data.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/internal/repository/memory"
	"github.com/akg580/review-insights/internal/seed"
	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/logger"
)

var Version = "dev"

type rootOptions struct {
	dataFile string
	logLevel string
}

// services is the service graph a command runs against.
type services struct {
	reviews  *service.ReviewService
	insights *service.InsightService
	exports  *service.ExportService
}

// NewRootCmd builds the reviewctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:     "reviewctl",
		Version: Version,
		Short:   "Classify product reviews and export review insights",
		Long: `reviewctl runs the review-insights classifier and aggregate statistics
from the command line.

Examples:
  reviewctl classify --rating 5 "great fit and beautiful colour"
  reviewctl stats --category "Ethnic Wear"
  reviewctl export reviews --format csv --out reviews.csv --query denim`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataFile, "data", "", "YAML review collection (defaults to the built-in data)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newClassifyCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// Execute runs reviewctl with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logger.NewText("reviewctl", o.logLevel, cmd.ErrOrStderr())
}

// load builds an in-memory store from the selected collection and wires the
// services over it.
func (o *rootOptions) load(ctx context.Context, l *slog.Logger) (*services, error) {
	var (
		reviews []domain.Review
		err     error
	)
	if o.dataFile != "" {
		reviews, err = seed.LoadFile(o.dataFile)
	} else {
		reviews, err = seed.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	repo := memory.NewReviewRepository()
	if _, err := seed.Populate(ctx, repo, reviews, l); err != nil {
		return nil, err
	}

	reviewSvc := service.NewReviewService(repo, nil, nil, l)
	insightSvc := service.NewInsightService(repo, nil, l)
	return &services{
		reviews:  reviewSvc,
		insights: insightSvc,
		exports:  service.NewExportService(reviewSvc, insightSvc, l),
	}, nil
}
