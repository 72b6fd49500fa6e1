package numerics

import (
	"fmt"
	"math"
)

// ODEFunc writes dy/dt at (t, y) into dydt.
type ODEFunc func(t float64, y, dydt []float64)

// Tolerances control the adaptive step size of DormandPrince.
type Tolerances struct {
	Rel float64
	Abs float64
}

const odeMaxSteps = 100000

// Dormand-Prince 5(4) tableau.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dpE = [7]float64{
		71.0 / 57600, 0, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40,
	}
)

// DormandPrince integrates y' = f(t, y) from t0 to t1 starting at y0 with
// an adaptive embedded Runge-Kutta 5(4) scheme and returns y(t1).
func DormandPrince(f ODEFunc, t0, t1 float64, y0 []float64, tol Tolerances) ([]float64, error) {
	n := len(y0)
	y := append([]float64(nil), y0...)
	if t1 == t0 {
		return y, nil
	}

	var k [7][]float64
	for i := range k {
		k[i] = make([]float64, n)
	}
	tmp := make([]float64, n)
	yNew := make([]float64, n)

	t := t0
	h := (t1 - t0) / 100
	dir := math.Copysign(1, t1-t0)

	f(t, y, k[0])
	for step := 0; step < odeMaxSteps; step++ {
		if (t+h-t1)*dir > 0 {
			h = t1 - t
		}

		for s := 1; s < 7; s++ {
			for j := 0; j < n; j++ {
				acc := y[j]
				for m := 0; m < s; m++ {
					acc += h * dpA[s][m] * k[m][j]
				}
				tmp[j] = acc
			}
			f(t+dpC[s]*h, tmp, k[s])
		}
		// The seventh stage is evaluated at the 5th order solution.
		copy(yNew, tmp)

		var errSum float64
		for j := 0; j < n; j++ {
			var e float64
			for s := 0; s < 7; s++ {
				e += dpE[s] * k[s][j]
			}
			sc := tol.Abs + tol.Rel*math.Max(math.Abs(y[j]), math.Abs(yNew[j]))
			r := h * e / sc
			errSum += r * r
		}
		errNorm := math.Sqrt(errSum / float64(n))

		if errNorm <= 1 || math.Abs(h) < 1e-14*math.Abs(t1-t0) {
			t += h
			copy(y, yNew)
			// FSAL: the last stage is the derivative at the new point.
			copy(k[0], k[6])
			if (t-t1)*dir >= 0 {
				return y, nil
			}
		}

		factor := 5.0
		if errNorm > 0 {
			factor = math.Min(5, math.Max(0.2, 0.9*math.Pow(errNorm, -0.2)))
		}
		h *= factor
	}

	return y, fmt.Errorf("dormand-prince after %d steps: %w", odeMaxSteps, ErrNoConvergence)
}
