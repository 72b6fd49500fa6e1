package kernel

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/numerics"
)

// autoDrag mirrors fluids.AutoDragMethod without the error path; callers
// keep Re at or below 1e6.
func autoDrag(Re float64) float64 {
	switch {
	case Re < 0.01:
		return fluids.Stokes(Re)
	case Re < 2e5:
		return fluids.Barati(Re)
	default:
		return fluids.BaratiHigh(Re)
	}
}

func dragFunc(method string) (func(Re float64) float64, error) {
	if method == "" {
		return autoDrag, nil
	}

	return fluids.DragCorrelation(method)
}

// DragSphere resolves a drag correlation once. An empty method selects by
// Reynolds number, like fluids.DragSphere.
func DragSphere(method string) (func(Re float64) float64, error) {
	if method == fluids.DragBaratiHigh {
		return baratiHigh, nil
	}

	return dragFunc(method)
}

// tanh(Re) rounds to 1 once Re > 20.
var baratiHighTail = -8.5e-3 * (2*math.Log10(math.Tanh(1)) - 2825.7162)

// baratiHigh is fluids.BaratiHigh with the nested tanh terms folded into
// constants above Re = 20.
func baratiHigh(Re float64) float64 {
	if Re <= 20 {
		return fluids.BaratiHigh(Re)
	}
	Re2 := Re * Re
	t0 := 1 / Re
	t1 := Re / 6530
	t2 := Re / 1620
	t3 := math.Log10(Re2 + 10.7563)
	ReRe2 := Re + Re2
	ReRe2 *= ReRe2

	return 8e-6*(t1*t1+1-8*math.Log10(Re)) -
		0.4119*math.Exp(-2.08e43/(ReRe2*ReRe2)) -
		2.1344*math.Exp(-t0*(t3*t3+9.9867)) +
		0.1357*math.Exp(-t2*t2-10370*t0) +
		baratiHighTail*t0 +
		2.4795
}

// VTerminal compiles fluids.VTerminal for one drag method.
func VTerminal(method string) (func(D, rhop, rho, mu float64) (float64, error), error) {
	if method == fluids.DragStokes {
		return func(D, rhop, rho, mu float64) (float64, error) {
			return fluids.G0 * D * D * (rhop - rho) / (18 * mu), nil
		}, nil
	}
	cd, err := DragSphere(method)
	if err != nil {
		return nil, err
	}

	return func(D, rhop, rho, mu float64) (float64, error) {
		delta := rhop - rho
		if delta == 0 {
			return 0, nil
		}
		sign := math.Copysign(1, delta)
		delta = math.Abs(delta)

		vLam := fluids.G0 * D * D * delta / (18 * mu)
		reFactor := rho * D / mu
		if method == "" && reFactor*vLam < 0.01 {
			return sign * vLam, nil
		}

		coeff := 4 * fluids.G0 * D * delta / (3 * rho)
		f := func(v float64) float64 {
			return v - math.Sqrt(coeff/cd(reFactor*v))
		}
		hi := math.Min(vLam, 1e6/reFactor)
		v, err := numerics.Brent(f, vLam*1e-9, hi, 1e-13*vLam)
		if err != nil {
			return 0, fmt.Errorf("terminal velocity: %w", err)
		}

		return sign * v, nil
	}, nil
}
