// Package kernel holds specialized variants of the fluids correlations.
//
// A kernel is compiled once from the arguments that select a method, a
// fitting or a fixed geometry: names are resolved, tables are fitted and
// quadrature nodes are computed up front. The compiled closure then only
// does arithmetic on its numeric arguments and returns what the matching
// fluids function returns for the same inputs.
package kernel

import "os"

// EnvDisable is the environment variable that turns kernels off at runtime
// when set to "1".
const EnvDisable = "FLUIDBENCH_NO_KERNELS"

// Available reports whether kernel variants should be benchmarked. It is
// false when the binary was built with the purego tag or when EnvDisable
// is set.
func Available() bool {
	return compiled && os.Getenv(EnvDisable) != "1"
}
