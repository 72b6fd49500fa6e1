package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/weiihann/fluidbench/harness"
	"github.com/weiihann/fluidbench/report"
)

func newReportCmd(logger *slog.Logger) *cobra.Command {
	var (
		inputPath  string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved JSON run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open run %s: %w", inputPath, err)
			}
			defer f.Close()

			run, err := harness.DecodeRun(f)
			if err != nil {
				return fmt.Errorf("read run %s: %w", inputPath, err)
			}

			logger.DebugContext(cmd.Context(), "run loaded",
				slog.String("run_id", run.ID),
				slog.Int("results", len(run.Results)),
			)

			if outputJSON {
				return report.GenerateJSON(cmd.OutOrStdout(), run)
			}

			return report.Generate(cmd.OutOrStdout(), run)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputPath, "input", "",
		"Path to a run written by 'fluidbench run --json'")
	flags.BoolVar(&outputJSON, "json", false,
		"Output the run as JSON instead of table")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
