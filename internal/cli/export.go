package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akg580/review-insights/internal/export"
	"github.com/akg580/review-insights/internal/filter"
	"github.com/akg580/review-insights/internal/service"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
		query  string
	)

	cmd := &cobra.Command{
		Use:       "export DATASET",
		Short:     "Write a dataset as CSV or PDF",
		Long:      "Write a dataset as CSV or PDF. DATASET is one of reviews, insights, age-groups or sentiment.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: datasetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := export.ParseDataset(args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svcs, err := opts.load(ctx, opts.logger(cmd))
			if err != nil {
				return err
			}

			file, err := svcs.exports.Export(ctx, service.ExportRequest{
				Dataset:  dataset,
				Format:   f,
				Criteria: filter.Criteria{Query: query},
			})
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = file.Filename
			}
			if err := os.WriteFile(path, file.Body, 0o644); err != nil { // #nosec G306 -- report files are meant to be shared
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", file.Rows, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "output format (csv, pdf)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to DATASET-DATE.FORMAT)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text applied to the reviews dataset")
	return cmd
}

func datasetNames() []string {
	ds := export.Datasets()
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = string(d)
	}
	return names
}
