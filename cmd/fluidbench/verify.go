package main

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/weiihann/fluidbench/harness"
	"github.com/weiihann/fluidbench/kernel"
	"github.com/weiihann/fluidbench/suite"
)

const defaultTolerance = 1e-6

func newVerifyCmd(logger *slog.Logger) *cobra.Command {
	var (
		suites    []string
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every kernel agrees with its plain case",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !kernel.Available() {
				return errors.New("kernels are unavailable in this build or environment")
			}

			registry, err := loadSuites(suites, true)
			if err != nil {
				return err
			}

			checks := harness.Verify(suite.Pairs(registry))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUITE\tCASE\tPLAIN\tKERNEL\tREL ERR\tSTATUS")
			failed := 0
			for _, c := range checks {
				status := "ok"
				if !c.OK(tolerance) {
					status = "FAIL"
					failed++
				}
				if c.Error != "" {
					status = "ERROR " + c.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%.12g\t%.12g\t%.2e\t%s\n",
					c.Suite, c.Case, c.Plain, c.Kernel, c.RelErr, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "verification finished",
				slog.Int("pairs", len(checks)),
				slog.Int("failed", failed),
				slog.Float64("tolerance", tolerance),
			)

			if failed > 0 {
				return fmt.Errorf("%d kernel(s) disagree with the plain path", failed)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&suites, "suites", nil,
		"Suites to verify (default: all)")
	flags.Float64Var(&tolerance, "tolerance", defaultTolerance,
		"Maximum relative difference between plain and kernel results")

	return cmd
}
