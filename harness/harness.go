package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/weiihann/fluidbench/suite"
)

const (
	DefaultRounds       = 5
	DefaultMinRoundTime = 100 * time.Millisecond
	defaultAllocRuns    = 100
	maxIterations       = 1_000_000_000
)

// errNonFinite marks an op that returned NaN or an infinity.
var errNonFinite = errors.New("non-finite result")

// RunConfig holds parameters for a single runner execution.
type RunConfig struct {
	Rounds       int
	MinRoundTime time.Duration
	// Match, when set, selects cases whose "suite/case" name matches.
	Match *regexp.Regexp
	// KernelsAvailable is recorded in the Run.
	KernelsAvailable bool
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Rounds <= 0 {
		c.Rounds = DefaultRounds
	}
	if c.MinRoundTime <= 0 {
		c.MinRoundTime = DefaultMinRoundTime
	}

	return c
}

// Runner times cases one after another on the calling goroutine.
type Runner struct {
	Logger *slog.Logger
}

// NewRunner creates a Runner that logs to logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{Logger: logger}
}

// Run measures every selected case of suites. A case that fails to build or
// run is recorded with its error and the run continues. Run only returns an
// error when ctx is done, together with the results gathered so far.
func (r *Runner) Run(ctx context.Context, suites []suite.Suite, cfg RunConfig) (*Run, error) {
	cfg = cfg.withDefaults()

	run := &Run{
		ID:               uuid.NewString(),
		Started:          time.Now().UTC(),
		KernelsAvailable: cfg.KernelsAvailable,
		GoVersion:        runtime.Version(),
	}

	r.Logger.InfoContext(ctx, "starting run",
		slog.String("run_id", run.ID),
		slog.Int("rounds", cfg.Rounds),
		slog.Duration("min_round_time", cfg.MinRoundTime),
		slog.Bool("kernels", cfg.KernelsAvailable),
	)

	for _, s := range suites {
		for _, c := range s.Cases {
			if cfg.Match != nil && !cfg.Match.MatchString(s.Name+"/"+c.Name) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return run, err
			}

			res, err := r.measure(ctx, s.Name, c, cfg)
			if err != nil {
				return run, err
			}
			run.Results = append(run.Results, res)
		}
	}

	r.Logger.InfoContext(ctx, "run finished",
		slog.Int("cases", len(run.Results)),
		slog.Int("failed", len(run.Failures())),
		slog.Duration("wall_time", time.Since(run.Started)),
	)

	return run, nil
}

// measure builds, warms, calibrates and times one case. The returned error
// is only ever the context's.
func (r *Runner) measure(ctx context.Context, suiteName string, c suite.Case, cfg RunConfig) (Result, error) {
	res := Result{Suite: suiteName, Case: c.Name, Variant: c.Variant}
	logger := r.Logger.With(slog.String("case", res.ID()))

	fail := func(stage string, err error) (Result, error) {
		res.Error = fmt.Sprintf("%s: %v", stage, err)
		logger.WarnContext(ctx, "case failed", slog.String("error", res.Error))

		return res, nil
	}

	op, err := c.Build()
	if err != nil {
		return fail("build", err)
	}

	v, err := op()
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errNonFinite
	}
	if err != nil {
		return fail("warmup", err)
	}
	res.Value = v

	n, err := calibrate(op, cfg.MinRoundTime)
	if err != nil {
		return fail("calibrate", err)
	}
	res.Iterations = n

	samples := make([]float64, 0, cfg.Rounds)
	for i := 0; i < cfg.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		elapsed, err := timeN(op, n)
		if err != nil {
			return fail("round", err)
		}
		samples = append(samples, float64(elapsed.Nanoseconds())/float64(n))
	}
	res.Rounds = len(samples)
	res.MeanNs, res.MedianNs, res.StddevNs, res.MinNs = summarize(samples)
	res.AllocsPerOp = testing.AllocsPerRun(defaultAllocRuns, func() { _, _ = op() })

	logger.DebugContext(ctx, "case measured",
		slog.Int("iterations", n),
		slog.Float64("mean_ns", res.MeanNs),
		slog.Float64("allocs", res.AllocsPerOp),
	)

	return res, nil
}

// timeN calls op n times and stops at the first error.
func timeN(op suite.Op, n int) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err := op(); err != nil {
			return 0, err
		}
	}

	return time.Since(start), nil
}

// calibrate finds an iteration count whose round lasts at least
// minRoundTime, growing the count the way testing.B does.
func calibrate(op suite.Op, minRoundTime time.Duration) (int, error) {
	n := 1
	for {
		elapsed, err := timeN(op, n)
		if err != nil {
			return 0, err
		}
		if elapsed >= minRoundTime || n >= maxIterations {
			return n, nil
		}
		n = predictN(n, elapsed, minRoundTime)
	}
}

func predictN(n int, elapsed, target time.Duration) int {
	prev := int64(n)
	ns := max(elapsed.Nanoseconds(), 1)
	next := int64(1.2 * float64(target.Nanoseconds()) * float64(prev) / float64(ns))
	next = min(next, 100*prev)
	next = max(next, prev+1)

	return int(min(next, maxIterations))
}

// summarize returns the mean, median, sample standard deviation and minimum
// of per-op timings.
func summarize(samples []float64) (mean, median, stddev, minimum float64) {
	if len(samples) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted) > 1 {
		stddev = stat.StdDev(sorted, nil)
	}
	minimum = floats.Min(sorted)

	return mean, median, stddev, minimum
}
