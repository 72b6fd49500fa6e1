// Package report formats benchmark runs into comparison tables.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/weiihann/fluidbench/harness"
	"github.com/weiihann/fluidbench/suite"
)

var (
	fasterFmt = color.New(color.FgGreen).SprintFunc()
	slowerFmt = color.New(color.FgRed).SprintFunc()
	failFmt   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// row pairs the plain and kernel results of one case name.
type row struct {
	name   string
	plain  *harness.Result
	kernel *harness.Result
}

// speedup is plain time over kernel time, or zero when either side is
// missing or failed.
func (r row) speedup() float64 {
	if r.plain == nil || r.kernel == nil || r.plain.Failed() || r.kernel.Failed() {
		return 0
	}
	if r.kernel.MeanNs <= 0 {
		return 0
	}

	return r.plain.MeanNs / r.kernel.MeanNs
}

type table struct {
	suite string
	rows  []*row
}

// tables groups results by suite and case name, keeping run order.
func tables(results []harness.Result) []*table {
	var out []*table
	bySuite := make(map[string]*table)
	byCase := make(map[string]*row)

	for i := range results {
		res := &results[i]
		t, ok := bySuite[res.Suite]
		if !ok {
			t = &table{suite: res.Suite}
			bySuite[res.Suite] = t
			out = append(out, t)
		}
		key := res.Suite + "/" + res.Case
		r, ok := byCase[key]
		if !ok {
			r = &row{name: res.Case}
			byCase[key] = r
			t.rows = append(t.rows, r)
		}
		if res.Variant == suite.Kernel {
			r.kernel = res
		} else {
			r.plain = res
		}
	}

	return out
}

// Generate writes a markdown comparison table per suite for run.
func Generate(w io.Writer, run *harness.Run) error {
	if run == nil || len(run.Results) == 0 {
		return errors.New("no results to report")
	}

	// Header.
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run `%s` on %s, %s, kernels %s\n",
		run.ID, run.Started.Format("2006-01-02 15:04:05 MST"), run.GoVersion, availability(run.KernelsAvailable))

	for _, t := range tables(run.Results) {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "### %s\n", t.suite)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Case | Plain | Kernel | Speedup | Allocs (plain/kernel) |")
		fmt.Fprintln(w, "|------|-------|--------|---------|-----------------------|")

		for _, r := range t.rows {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s/%s |\n",
				r.name,
				formatResult(r.plain),
				formatResult(r.kernel),
				formatSpeedup(r.speedup()),
				formatAllocs(r.plain),
				formatAllocs(r.kernel),
			)
		}
	}

	if failed := run.Failures(); len(failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", failFmt(fmt.Sprintf("%d case(s) failed:", len(failed))))
		for _, res := range failed {
			fmt.Fprintf(w, "  - %s: %s\n", res.ID(), res.Error)
		}
	}

	return nil
}

// GenerateJSON writes run as JSON to w.
func GenerateJSON(w io.Writer, run *harness.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(run)
}

func availability(ok bool) string {
	if ok {
		return "enabled"
	}

	return "disabled"
}

func formatResult(r *harness.Result) string {
	switch {
	case r == nil:
		return "-"
	case r.Failed():
		return "FAILED"
	default:
		return formatNs(r.MeanNs)
	}
}

func formatAllocs(r *harness.Result) string {
	if r == nil || r.Failed() {
		return "-"
	}

	return fmt.Sprintf("%.0f", r.AllocsPerOp)
}

func formatSpeedup(s float64) string {
	if s == 0 {
		return "-"
	}
	text := fmt.Sprintf("%.2fx", s)
	if s >= 1 {
		return fasterFmt(text)
	}

	return slowerFmt(text)
}

func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.1fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.2fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.2fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
