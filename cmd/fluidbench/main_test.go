package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/fluidbench/harness"
	"github.com/weiihann/fluidbench/kernel"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(quietLogger())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "run.yaml", `
suites: [drag, fittings]
match: "^drag/"
rounds: 7
min_round_time: 25ms
no_kernels: true
json: true
output: out.json
metrics_file: fluidbench.prom
`)

	fc, err := loadConfig(path)
	require.NoError(t, err)

	want := fileConfig{
		Suites:       []string{"drag", "fittings"},
		Match:        "^drag/",
		Rounds:       7,
		MinRoundTime: "25ms",
		NoKernels:    true,
		JSON:         true,
		Output:       "out.json",
		MetricsFile:  "fluidbench.prom",
	}
	assert.Equal(t, want, fc)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty", "", false},
		{"unknown field", "seed: 4\n", true},
		{"bad type", "rounds: many\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "run.yaml", tt.content))
			if (err != nil) != tt.wantErr {
				t.Errorf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigApply(t *testing.T) {
	cmd := newRunCmd(quietLogger())
	require.NoError(t, cmd.Flags().Set("rounds", "9"))
	require.NoError(t, cmd.Flags().Set("output", "flag.md"))

	cfg := runConfig{rounds: 9, minRoundTime: harness.DefaultMinRoundTime, outputPath: "flag.md"}
	fc := fileConfig{
		Suites:       []string{"drag"},
		Rounds:       3,
		MinRoundTime: "2ms",
		NoKernels:    true,
		Output:       "file.md",
	}
	require.NoError(t, fc.apply(cmd.Flags(), &cfg))

	assert.Equal(t, 9, cfg.rounds, "explicit flag wins")
	assert.Equal(t, "flag.md", cfg.outputPath, "explicit flag wins")
	assert.Equal(t, []string{"drag"}, cfg.suites)
	assert.Equal(t, 2*time.Millisecond, cfg.minRoundTime)
	assert.True(t, cfg.noKernels)

	fc = fileConfig{MinRoundTime: "soon"}
	assert.Error(t, fc.apply(newRunCmd(quietLogger()).Flags(), &cfg))
}

func TestListCmd(t *testing.T) {
	out, err := execute(t, "list", "--suites", "drag")
	require.NoError(t, err)

	assert.Contains(t, out, "SUITE")
	assert.Contains(t, out, "integrate_drag_sphere")
	assert.NotContains(t, out, "Darby3K")
}

func TestListCmdJSON(t *testing.T) {
	t.Setenv(kernel.EnvDisable, "1")

	out, err := execute(t, "list", "--json", "--suites", "fittings")
	require.NoError(t, err)

	scanner := bufio.NewScanner(strings.NewReader(out))
	lines := 0
	for scanner.Scan() {
		lines++
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Equal(t, "fittings", entry["suite"])
		assert.Equal(t, "plain", entry["variant"])
	}
	assert.Positive(t, lines)
}

func TestListCmdUnknownSuite(t *testing.T) {
	_, err := execute(t, "list", "--suites", "nrlmsise00")
	assert.ErrorContains(t, err, "nrlmsise00")
}

func TestVerifyCmd(t *testing.T) {
	t.Setenv(kernel.EnvDisable, "")
	if !kernel.Available() {
		t.Skip("kernels not compiled in")
	}

	out, err := execute(t, "verify", "--suites", "fittings,flow_meter")
	require.NoError(t, err)
	assert.Contains(t, out, "K_branch_converging_Crane")
	assert.NotContains(t, out, "FAIL")
}

func TestVerifyCmdDisabled(t *testing.T) {
	t.Setenv(kernel.EnvDisable, "1")

	_, err := execute(t, "verify")
	assert.ErrorContains(t, err, "unavailable")
}

func TestRunAndReportCmd(t *testing.T) {
	dir := t.TempDir()
	runPath := filepath.Join(dir, "run.json")
	metricsPath := filepath.Join(dir, "fluidbench.prom")

	_, err := execute(t, "run",
		"--suites", "fittings",
		"--match", "Darby3K|Hooper2K",
		"--rounds", "2",
		"--min-round-time", "1ms",
		"--json",
		"--output", runPath,
		"--metrics-file", metricsPath,
	)
	require.NoError(t, err)

	f, err := os.Open(runPath)
	require.NoError(t, err)
	defer f.Close()

	run, err := harness.DecodeRun(f)
	require.NoError(t, err)
	assert.Equal(t, kernel.Available(), run.KernelsAvailable)
	for _, res := range run.Results {
		assert.Equal(t, "fittings", res.Suite)
		assert.Contains(t, []string{"Darby3K", "Hooper2K"}, res.Case)
		assert.Equal(t, 2, res.Rounds)
		assert.False(t, res.Failed(), res.Error)
	}
	assert.NotEmpty(t, run.Results)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `fluidbench_ns_per_op{case="Darby3K",suite="fittings",variant="plain"}`)

	out, err := execute(t, "report", "--input", runPath)
	require.NoError(t, err)
	assert.Contains(t, out, "### fittings")
	assert.Contains(t, out, "| Darby3K |")
}

func TestRunCmdBadMatch(t *testing.T) {
	_, err := execute(t, "run", "--match", "(")
	assert.ErrorContains(t, err, "--match")
}

func TestReportCmdRequiresInput(t *testing.T) {
	_, err := execute(t, "report")
	assert.Error(t, err)
}
