package kernel

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/fluids"
	"gonum.org/v1/gonum/integrate/quad"
)

const (
	pressureIntegralNodes = 32

	atmosphereZMin = -610.0
	atmosphereZMax = 86000.0
)

// hydrostatic is g0*M0/R of the standard atmosphere.
const hydrostatic = fluids.G0 * fluids.AtmosphereM0 / fluids.AtmosphereR

type layer struct {
	fluids.AtmosphereLayer
	expo float64 // pressure exponent, or the inverse scale height factor when isothermal
}

type atmosphere []layer

func compileAtmosphere() atmosphere {
	base := fluids.StandardAtmosphereLayers()
	a := make(atmosphere, len(base))
	for i, l := range base {
		a[i].AtmosphereLayer = l
		if l.Lapse == 0 {
			a[i].expo = hydrostatic / l.T
		} else {
			a[i].expo = hydrostatic / l.Lapse
		}
	}

	return a
}

func (a atmosphere) index(H float64) int {
	for i := len(a) - 1; i > 0; i-- {
		if H >= a[i].H {
			return i
		}
	}

	return 0
}

func (a atmosphere) temperature(H float64) float64 {
	l := &a[a.index(H)]

	return l.T + l.Lapse*(H-l.H)
}

func (a atmosphere) state(H float64) (T, P float64) {
	l := &a[a.index(H)]
	T = l.T + l.Lapse*(H-l.H)
	if l.Lapse == 0 {
		P = l.P * math.Exp(-l.expo*(H-l.H))
	} else {
		P = l.P * math.Pow(l.T/T, l.expo)
	}

	return T, P
}

// height inverts state layer by layer.
func (a atmosphere) height(P float64) float64 {
	i := len(a) - 1
	for i > 0 && P > a[i].P {
		i--
	}
	l := &a[i]
	if l.Lapse == 0 {
		return l.H - math.Log(P/l.P)/l.expo
	}
	T := l.T * math.Pow(P/l.P, -1/l.expo)

	return l.H + (T-l.T)/l.Lapse
}

func geopotential(Z float64) float64 {
	return fluids.AtmosphereR0 * Z / (fluids.AtmosphereR0 + Z)
}

func geometric(H float64) float64 {
	return fluids.AtmosphereR0 * H / (fluids.AtmosphereR0 - H)
}

func gravity(Z float64) float64 {
	r := fluids.AtmosphereR0 / (fluids.AtmosphereR0 + Z)

	return fluids.G0 * r * r
}

// Atmosphere1976 compiles the standard atmosphere for a fixed temperature
// offset dT.
func Atmosphere1976(dT float64) func(Z float64) fluids.Atmosphere {
	a := compileAtmosphere()
	const sonic = fluids.AtmosphereGamma * fluids.AtmosphereR / fluids.AtmosphereM0

	return func(Z float64) fluids.Atmosphere {
		H := geopotential(Z)
		Tstd, P := a.state(H)
		T := Tstd + dT
		sqrtT := math.Sqrt(T)

		return fluids.Atmosphere{
			Z:      Z,
			DT:     dT,
			H:      H,
			T:      T,
			P:      P,
			Rho:    P * fluids.AtmosphereM0 / (fluids.AtmosphereR * T),
			G:      gravity(Z),
			Mu:     1.458e-6 * T * sqrtT / (T + 110.4),
			K:      2.64638e-3 * T * sqrtT / (T + 245.4*math.Pow(10, -12/T)),
			VSonic: math.Sqrt(sonic * T),
		}
	}
}

// PressureIntegral compiles fluids.Atmosphere1976PressureIntegral. The
// reference altitude is found by inverting the layer equations instead of
// by root finding and the Gauss-Legendre nodes are computed once.
func PressureIntegral() func(T1, P1, dH float64) (float64, error) {
	a := compileAtmosphere()
	x := make([]float64, pressureIntegralNodes)
	w := make([]float64, pressureIntegralNodes)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)

	_, pMax := a.state(geopotential(atmosphereZMin))
	_, pMin := a.state(geopotential(atmosphereZMax))

	return func(T1, P1, dH float64) (float64, error) {
		if P1 > pMax || P1 < pMin {
			return 0, fmt.Errorf("altitude for pressure %g Pa: %w", P1, fluids.ErrOutOfRange)
		}
		Zref := geometric(a.height(P1))
		dT := T1 - a.temperature(geopotential(Zref))

		mid := Zref + dH/2
		half := dH / 2
		var integral float64
		for i, xi := range x {
			Z := mid + half*xi
			integral += w[i] * gravity(Z) / (a.temperature(geopotential(Z)) + dT)
		}

		return P1 * math.Exp(-fluids.AtmosphereM0/fluids.AtmosphereR*integral*half), nil
	}
}

// Airmass compiles fluids.AirmassWith for a fixed density profile. The
// profile is sampled once at the quadrature nodes, which leaves one square
// root per node for each angle.
func Airmass(rho func(Z float64) float64, o fluids.AirmassOptions) func(angle float64) float64 {
	x := make([]float64, o.Nodes)
	w := make([]float64, o.Nodes)
	quad.Legendre{}.FixedLocations(x, w, 0, o.HMax)

	delta0 := o.RI - 1
	rho0 := rho(0)
	wr := make([]float64, o.Nodes)
	t1 := make([]float64, o.Nodes)
	for i, Z := range x {
		r := rho(Z)
		s := 1 / (1 + Z/o.RPlanet)
		wr[i] = w[i] * r
		t1[i] = (1 + 2*delta0*(1-r/rho0)) * s * s
	}

	return func(angle float64) float64 {
		c := math.Cos(angle * math.Pi / 180)
		c2 := c * c
		var sum float64
		for i, k := range t1 {
			sum += wr[i] / math.Sqrt(1-k*c2)
		}

		return sum
	}
}
