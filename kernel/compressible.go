package kernel

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/numerics"
)

const newtonMaxIter = 100

// IsothermalGasD compiles the pipe diameter solve of fluids.IsothermalGas
// for a fixed fluid and pressure drop. Squaring the flow equation gives
// a*D^5 = m^2*(fd*L + c*D), which is solved by Newton's method from the
// root of its leading terms.
func IsothermalGasD(rho, fd, P1, P2, L float64) func(m float64) (float64, error) {
	a := 0.0625 * math.Pi * math.Pi * rho * (P1*P1 - P2*P2) / P1
	b := fd * L
	c := 2 * math.Log(P1/P2)

	return func(m float64) (float64, error) {
		m2 := m * m
		D := math.Pow(m2*b/a, 0.2)
		for i := 0; i < newtonMaxIter; i++ {
			D2 := D * D
			D4 := D2 * D2
			g := a*D4*D - m2*(b+c*D)
			dg := 5*a*D4 - m2*c
			step := g / dg
			D -= step
			if math.Abs(step) <= 1e-15*D {
				return D, nil
			}
		}

		return 0, fmt.Errorf("isothermal gas D: %w", numerics.ErrNoConvergence)
	}
}

// IsentropicWorkCompression compiles the work form of
// fluids.IsentropicWorkCompression for a fixed exponent k and
// compressibility Z.
func IsentropicWorkCompression(k, Z float64) func(T1, P1, P2, eta float64) float64 {
	pre := k / (k - 1) * Z * fluids.R
	expo := (k - 1) / k

	return func(T1, P1, P2, eta float64) float64 {
		return pre * T1 * (math.Pow(P2/P1, expo) - 1) / eta
	}
}

// IsentropicEfficiency compiles fluids.IsentropicEfficiencyFromPolytropic
// for a fixed exponent k.
func IsentropicEfficiency(k float64) func(P1, P2, etaP float64) float64 {
	expo := (k - 1) / k

	return func(P1, P2, etaP float64) float64 {
		r := P2 / P1

		return (math.Pow(r, expo) - 1) / (math.Pow(r, expo/etaP) - 1)
	}
}
