package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/fluidbench/suite"
)

func quietRunner() *Runner {
	return NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func constCase(name string, v suite.Variant, value float64) suite.Case {
	return suite.Case{
		Name:    name,
		Variant: v,
		Build: func() (suite.Op, error) {
			return func() (float64, error) { return value, nil }, nil
		},
	}
}

func fastConfig() RunConfig {
	return RunConfig{Rounds: 3, MinRoundTime: 50 * time.Microsecond}
}

func TestRun(t *testing.T) {
	suites := []suite.Suite{
		{Name: "alpha", Cases: []suite.Case{
			constCase("one", suite.Plain, 1),
			constCase("one", suite.Kernel, 1),
		}},
		{Name: "beta", Cases: []suite.Case{
			constCase("two", suite.Plain, 2),
		}},
	}

	run, err := quietRunner().Run(context.Background(), suites, fastConfig())
	require.NoError(t, err)

	require.Len(t, run.Results, 3)
	assert.NotEmpty(t, run.ID)
	assert.True(t, strings.HasPrefix(run.GoVersion, "go"))
	assert.Empty(t, run.Failures())

	for _, res := range run.Results {
		assert.Equal(t, 3, res.Rounds, res.ID())
		assert.Positive(t, res.Iterations, res.ID())
		assert.Positive(t, res.MeanNs, res.ID())
		assert.LessOrEqual(t, res.MinNs, res.MedianNs, res.ID())
		assert.Zero(t, res.AllocsPerOp, res.ID())
	}
	assert.Equal(t, "alpha/one/kernel", run.Results[1].ID())
	assert.Equal(t, 2.0, run.Results[2].Value)
}

func TestRunRecordsFailures(t *testing.T) {
	boom := errors.New("boom")
	suites := []suite.Suite{{Name: "s", Cases: []suite.Case{
		{Name: "build", Build: func() (suite.Op, error) { return nil, boom }},
		{Name: "op", Build: func() (suite.Op, error) {
			return func() (float64, error) { return 0, boom }, nil
		}},
		{Name: "nan", Build: func() (suite.Op, error) {
			return func() (float64, error) { return math.NaN(), nil }, nil
		}},
		constCase("fine", suite.Plain, 3),
	}}}

	run, err := quietRunner().Run(context.Background(), suites, fastConfig())
	require.NoError(t, err)
	require.Len(t, run.Results, 4)

	tests := []struct {
		idx  int
		want string
	}{
		{0, "build: boom"},
		{1, "warmup: boom"},
		{2, "warmup: non-finite result"},
		{3, ""},
	}
	for _, tt := range tests {
		if got := run.Results[tt.idx].Error; got != tt.want {
			t.Errorf("result %d error = %q, want %q", tt.idx, got, tt.want)
		}
	}
	assert.Len(t, run.Failures(), 3)
}

func TestRunMatch(t *testing.T) {
	suites := []suite.Suite{
		{Name: "drag", Cases: []suite.Case{
			constCase("drag_sphere", suite.Plain, 1),
			constCase("v_terminal", suite.Plain, 1),
		}},
		{Name: "fittings", Cases: []suite.Case{
			constCase("Darby3K", suite.Plain, 1),
		}},
	}
	cfg := fastConfig()
	cfg.Match = regexp.MustCompile(`^drag/v_`)

	run, err := quietRunner().Run(context.Background(), suites, cfg)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "v_terminal", run.Results[0].Case)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suites := []suite.Suite{{Name: "s", Cases: []suite.Case{constCase("c", suite.Plain, 1)}}}
	run, err := quietRunner().Run(ctx, suites, fastConfig())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, run)
	assert.Empty(t, run.Results)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name                          string
		samples                       []float64
		mean, median, stddev, minimum float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{7}, 7, 7, 0, 7},
		{"odd", []float64{3, 1, 2}, 2, 2, 1, 1},
		{"even", []float64{4, 1, 3, 2}, 2.5, 2, math.Sqrt(5.0 / 3), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, median, stddev, minimum := summarize(tt.samples)
			assert.InDelta(t, tt.mean, mean, 1e-12)
			assert.InDelta(t, tt.median, median, 1e-12)
			assert.InDelta(t, tt.stddev, stddev, 1e-12)
			assert.InDelta(t, tt.minimum, minimum, 1e-12)
		})
	}
}

func TestPredictN(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		elapsed time.Duration
		want    int
	}{
		{"grows at most 100x", 1, time.Nanosecond, 100},
		{"scales to target", 100, 10 * time.Millisecond, 1200},
		{"always grows", 10, 2 * time.Second, 11},
		{"capped", maxIterations / 2, time.Nanosecond, maxIterations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, predictN(tt.n, tt.elapsed, 100*time.Millisecond))
		})
	}
}

func TestDecodeRun(t *testing.T) {
	input := `{
		"id": "5b0e7a4e-2a57-4f55-9d7a-6a0b0f1f2c11",
		"started": "2026-01-02T03:04:05Z",
		"kernels_available": true,
		"go_version": "go1.24.0",
		"results": [
			{"suite": "drag", "case": "drag_sphere", "variant": "kernel", "mean_ns": 12.5},
			{"suite": "drag", "case": "v_terminal", "variant": "plain", "error": "warmup: boom"}
		]
	}`

	run, err := DecodeRun(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, run.KernelsAvailable)
	require.Len(t, run.Results, 2)
	assert.Equal(t, suite.Kernel, run.Results[0].Variant)
	assert.Equal(t, 12.5, run.Results[0].MeanNs)
	assert.Equal(t, "drag/v_terminal/plain", run.Results[1].ID())
	assert.Len(t, run.Failures(), 1)
}

func TestDecodeRunRoundTrip(t *testing.T) {
	suites := []suite.Suite{{Name: "s", Cases: []suite.Case{constCase("c", suite.Kernel, 4)}}}
	run, err := quietRunner().Run(context.Background(), suites, fastConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(run))

	got, err := DecodeRun(&buf)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Results, got.Results)
}

func TestDecodeRunInvalid(t *testing.T) {
	for _, input := range []string{`not json at all`, `{"results": []}`} {
		if _, err := DecodeRun(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestVerify(t *testing.T) {
	failing := suite.Case{Name: "bad", Variant: suite.Kernel, Build: func() (suite.Op, error) {
		return nil, errors.New("no kernel")
	}}
	pairs := []suite.Pair{
		{Suite: "s", Name: "same", Plain: constCase("same", suite.Plain, 2), Kernel: constCase("same", suite.Kernel, 2)},
		{Suite: "s", Name: "close", Plain: constCase("close", suite.Plain, 1), Kernel: constCase("close", suite.Kernel, 1+1e-12)},
		{Suite: "s", Name: "off", Plain: constCase("off", suite.Plain, 1), Kernel: constCase("off", suite.Kernel, 1.1)},
		{Suite: "s", Name: "bad", Plain: constCase("bad", suite.Plain, 1), Kernel: failing},
	}

	checks := Verify(pairs)
	require.Len(t, checks, 4)

	const tol = 1e-9
	assert.True(t, checks[0].OK(tol))
	assert.True(t, checks[1].OK(tol))
	assert.False(t, checks[2].OK(tol))
	assert.InDelta(t, 0.1/1.1, checks[2].RelErr, 1e-12)
	assert.False(t, checks[3].OK(tol))
	assert.Equal(t, "kernel: no kernel", checks[3].Error)
}
