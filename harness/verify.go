package harness

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/suite"
)

// Check is the outcome of evaluating one plain/kernel pair once.
type Check struct {
	Suite  string  `json:"suite"`
	Case   string  `json:"case"`
	Plain  float64 `json:"plain"`
	Kernel float64 `json:"kernel"`
	RelErr float64 `json:"rel_err"`
	Error  string  `json:"error,omitempty"`
}

// OK reports whether both variants ran and agree within tol.
func (c Check) OK(tol float64) bool {
	return c.Error == "" && c.RelErr <= tol
}

// Verify evaluates each pair once and compares the two results.
func Verify(pairs []suite.Pair) []Check {
	checks := make([]Check, 0, len(pairs))
	for _, p := range pairs {
		check := Check{Suite: p.Suite, Case: p.Name}

		plain, err := evaluate(p.Plain)
		if err != nil {
			check.Error = fmt.Sprintf("plain: %v", err)
			checks = append(checks, check)
			continue
		}
		kern, err := evaluate(p.Kernel)
		if err != nil {
			check.Error = fmt.Sprintf("kernel: %v", err)
			checks = append(checks, check)
			continue
		}

		check.Plain, check.Kernel = plain, kern
		check.RelErr = relErr(plain, kern)
		checks = append(checks, check)
	}

	return checks
}

func evaluate(c suite.Case) (float64, error) {
	op, err := c.Build()
	if err != nil {
		return 0, err
	}

	return op()
}

func relErr(want, got float64) float64 {
	if want == got {
		return 0
	}
	scale := math.Max(math.Abs(want), math.Abs(got))

	return math.Abs(want-got) / scale
}
