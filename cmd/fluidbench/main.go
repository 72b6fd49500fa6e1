// Package main provides the CLI entry point for fluidbench, a microbenchmark
// harness for fluid dynamics correlations and their compiled kernels.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weiihann/fluidbench/harness"
	"github.com/weiihann/fluidbench/kernel"
	"github.com/weiihann/fluidbench/report"
	"github.com/weiihann/fluidbench/suite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "fluidbench",
		Short: "Microbenchmarks for fluid dynamics correlations",
		Long: `Fluidbench times single calls into atmosphere, compressible flow,
control valve, drag, fitting and flow meter correlations, comparing the plain
evaluation path with compiled kernels of the same formulas.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(logger),
		newListCmd(logger),
		newVerifyCmd(logger),
		newReportCmd(logger),
	)

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath   string
		suites       []string
		match        string
		rounds       int
		minRoundTime time.Duration
		noKernels    bool
		outputJSON   bool
		outputPath   string
		metricsFile  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suites",
		Long: `Time every registered case, plain and kernel, and print a comparison
table per suite. Kernel cases are skipped when kernels are unavailable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := runConfig{
				suites:       suites,
				match:        match,
				rounds:       rounds,
				minRoundTime: minRoundTime,
				noKernels:    noKernels,
				outputJSON:   outputJSON,
				outputPath:   outputPath,
				metricsFile:  metricsFile,
			}
			if configPath != "" {
				fc, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				if err := fc.apply(cmd.Flags(), &cfg); err != nil {
					return err
				}
			}

			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"YAML file with run settings; explicit flags take precedence")
	flags.StringSliceVar(&suites, "suites", nil,
		"Suites to run (default: all)")
	flags.StringVar(&match, "match", "",
		"Only run cases whose suite/case name matches this regexp")
	flags.IntVar(&rounds, "rounds", harness.DefaultRounds,
		"Timed rounds per case")
	flags.DurationVar(&minRoundTime, "min-round-time", harness.DefaultMinRoundTime,
		"Minimum duration of one round")
	flags.BoolVar(&noKernels, "no-kernels", false,
		"Skip kernel cases")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of table")
	flags.StringVar(&outputPath, "output", "",
		"Write the report to this file instead of stdout")
	flags.StringVar(&metricsFile, "metrics-file", "",
		"Also write Prometheus textfile metrics to this path")

	return cmd
}

type runConfig struct {
	suites       []string
	match        string
	rounds       int
	minRoundTime time.Duration
	noKernels    bool
	outputJSON   bool
	outputPath   string
	metricsFile  string
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg runConfig,
) error {
	var match *regexp.Regexp
	if cfg.match != "" {
		var err error
		match, err = regexp.Compile(cfg.match)
		if err != nil {
			return fmt.Errorf("compile --match: %w", err)
		}
	}

	available := kernel.Available() && !cfg.noKernels

	suites, err := loadSuites(cfg.suites, available)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Any("suites", suite.Names(suites)),
		slog.String("match", cfg.match),
		slog.Bool("kernels", available),
	)

	// Step 1: Time the cases.
	runner := harness.NewRunner(logger)
	run, runErr := runner.Run(ctx, suites, harness.RunConfig{
		Rounds:           cfg.rounds,
		MinRoundTime:     cfg.minRoundTime,
		Match:            match,
		KernelsAvailable: available,
	})
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("run: %w", runErr)
	}

	// Step 2: Report whatever was measured, even after an interrupt.
	if len(run.Results) > 0 {
		if err := writeReport(stdout, cfg, run); err != nil {
			return err
		}
	}

	if cfg.metricsFile != "" {
		if err := report.WritePrometheus(cfg.metricsFile, run); err != nil {
			return err
		}
		logger.InfoContext(ctx, "metrics written", slog.String("path", cfg.metricsFile))
	}

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	if failed := run.Failures(); len(failed) > 0 {
		return fmt.Errorf("%d case(s) failed", len(failed))
	}

	logger.InfoContext(ctx, "benchmark complete", slog.Int("cases", len(run.Results)))

	return nil
}

// loadSuites builds the registry, drops kernel cases unless available and
// keeps the named suites.
func loadSuites(names []string, available bool) ([]suite.Suite, error) {
	fx, err := suite.NewFixtures()
	if err != nil {
		return nil, fmt.Errorf("build fixtures: %w", err)
	}

	suites, err := suite.Select(suite.Filter(suite.All(fx), available), names)
	if err != nil {
		return nil, fmt.Errorf("select suites: %w", err)
	}

	return suites, nil
}

func writeReport(stdout io.Writer, cfg runConfig, run *harness.Run) error {
	w := stdout
	if cfg.outputPath != "" {
		f, err := os.Create(cfg.outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()

		w = f
		color.NoColor = true
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(w, run); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(w, run); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	return nil
}
