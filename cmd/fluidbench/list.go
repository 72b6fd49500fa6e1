package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/weiihann/fluidbench/catalog"
	"github.com/weiihann/fluidbench/kernel"
)

func newListCmd(logger *slog.Logger) *cobra.Command {
	var (
		suites     []string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered cases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadSuites(suites, kernel.Available())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				summary, err := catalog.Write(out, registry)
				if err != nil {
					return fmt.Errorf("write catalog: %w", err)
				}

				logger.InfoContext(cmd.Context(), "catalog written",
					slog.Int("suites", summary.Suites),
					slog.Int("cases", summary.TotalCases),
					slog.Int("kernel_cases", summary.KernelCases),
				)

				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUITE\tCASE\tVARIANT")
			for _, s := range registry {
				for _, c := range s.Cases {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, c.Name, c.Variant)
				}
			}

			return tw.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&suites, "suites", nil,
		"Suites to list (default: all)")
	flags.BoolVar(&outputJSON, "json", false,
		"Write the case catalog as JSONL")

	return cmd
}
