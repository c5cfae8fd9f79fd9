package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akg580/review-insights/internal/domain"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary or one category's insight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svcs, err := opts.load(ctx, opts.logger(cmd))
			if err != nil {
				return err
			}

			var v any
			if category != "" {
				insight, err := svcs.insights.Category(ctx, category)
				if err != nil {
					return err
				}
				v = insight
			} else {
				summary, err := svcs.insights.Summary(ctx)
				if err != nil {
					return err
				}
				v = summary
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}

			switch x := v.(type) {
			case *domain.CategoryInsight:
				printInsight(out, x)
			case *domain.DashboardSummary:
				printSummary(out, x)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or slug")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printSummary(w io.Writer, s *domain.DashboardSummary) {
	fmt.Fprintf(w, "reviews:          %d\n", s.TotalReviews)
	fmt.Fprintf(w, "average rating:   %.1f\n", s.AverageRating)
	fmt.Fprintf(w, "sentiment score:  %d%%\n", s.SentimentScore)
	fmt.Fprintf(w, "sentiment:        %s\n\n", distribution(s.Sentiment))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tREVIEWS\tRATING\tPOSITIVE\tNEUTRAL\tNEGATIVE")
	for _, c := range s.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d%%\t%d%%\t%d%%\n",
			c.Category, c.ReviewCount, c.AverageRating,
			c.Sentiment.Positive, c.Sentiment.Neutral, c.Sentiment.Negative)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGE\tREVIEWS\tRATING")
	for _, g := range s.AgeGroups {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\n", g.Range, g.Count, g.AverageRating)
	}
	_ = tw.Flush()
}

func printInsight(w io.Writer, c *domain.CategoryInsight) {
	fmt.Fprintf(w, "category:         %s (%s)\n", c.Category, c.Slug)
	fmt.Fprintf(w, "reviews:          %d\n", c.ReviewCount)
	fmt.Fprintf(w, "average rating:   %.1f\n", c.AverageRating)
	fmt.Fprintf(w, "sentiment:        %s\n", distribution(c.Sentiment))
	fmt.Fprintf(w, "common phrases:   %s\n", strings.Join(c.CommonPhrases, "; "))
}

func distribution(d domain.SentimentDistribution) string {
	return fmt.Sprintf("%d%% positive, %d%% neutral, %d%% negative", d.Positive, d.Neutral, d.Negative)
}
