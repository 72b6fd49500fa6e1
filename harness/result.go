// Package harness times fluidbench cases in process and records the results.
package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/weiihann/fluidbench/suite"
)

// Result holds the measurements of a single case.
type Result struct {
	Suite       string        `json:"suite"`
	Case        string        `json:"case"`
	Variant     suite.Variant `json:"variant"`
	Value       float64       `json:"value"`
	Rounds      int           `json:"rounds"`
	Iterations  int           `json:"iterations"`
	MeanNs      float64       `json:"mean_ns"`
	MedianNs    float64       `json:"median_ns"`
	StddevNs    float64       `json:"stddev_ns"`
	MinNs       float64       `json:"min_ns"`
	AllocsPerOp float64       `json:"allocs_per_op"`
	Error       string        `json:"error,omitempty"`
}

// ID returns "suite/case/variant".
func (r Result) ID() string {
	return r.Suite + "/" + r.Case + "/" + r.Variant.String()
}

// Failed reports whether the case could not be measured.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Run is one invocation of the runner over a set of suites.
type Run struct {
	ID               string    `json:"id"`
	Started          time.Time `json:"started"`
	KernelsAvailable bool      `json:"kernels_available"`
	GoVersion        string    `json:"go_version"`
	Results          []Result  `json:"results"`
}

// Failures returns the failed results in run order.
func (r *Run) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}

	return failed
}

// DecodeRun reads a run written by report.GenerateJSON.
func DecodeRun(r io.Reader) (*Run, error) {
	var run Run
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	if run.ID == "" {
		return nil, errors.New("decode JSON: run id missing")
	}

	return &run, nil
}
