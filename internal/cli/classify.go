package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akg580/review-insights/internal/service"
)

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var (
		rating int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "classify [comment]",
		Short: "Label a comment as positive, neutral or negative",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment := ""
			if len(args) == 1 {
				comment = args[0]
			}

			l := opts.logger(cmd)
			svc := service.NewReviewService(nil, nil, nil, l)
			res, err := svc.Analyze(cmd.Context(), service.AnalyzeInput{Comment: comment, Rating: rating})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintf(out, "label:     %s\n", res.Label)
			fmt.Fprintf(out, "positive:  %d %s\n", res.PositiveCount, keywordList(res.PositiveKeywords))
			fmt.Fprintf(out, "negative:  %d %s\n", res.NegativeCount, keywordList(res.NegativeKeywords))
			return nil
		},
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 3, "star rating, 1-5")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full breakdown as JSON")
	return cmd
}

func keywordList(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return "(" + strings.Join(words, ", ") + ")"
}
