package fluids

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/numerics"
	"gonum.org/v1/gonum/integrate/quad"
)

// Constants of the U.S. Standard Atmosphere, 1976.
const (
	AtmosphereR0    = 6356766.0  // effective earth radius, m
	AtmosphereM0    = 28.9644e-3 // mean molar mass of air, kg/mol
	AtmosphereR     = 8.31432    // gas constant used by the standard, J/(mol*K)
	AtmosphereGamma = 1.4

	// Geometric altitude range over which pressure inversion is attempted.
	atmosphereZMin = -610.0
	atmosphereZMax = 86000.0

	pressureIntegralNodes = 32
)

// AtmosphereLayer is the base of one layer of the standard atmosphere.
type AtmosphereLayer struct {
	H     float64 // geopotential height, m
	T     float64 // temperature, K
	Lapse float64 // temperature gradient, K/m
	P     float64 // pressure, Pa
}

var atmosphereLayers = [...]AtmosphereLayer{
	{H: 0, T: 288.15, Lapse: -6.5e-3, P: 101325},
	{H: 11e3, T: 216.65, Lapse: 0, P: 22632.06},
	{H: 20e3, T: 216.65, Lapse: 1e-3, P: 5474.889},
	{H: 32e3, T: 228.65, Lapse: 2.8e-3, P: 868.0187},
	{H: 47e3, T: 270.65, Lapse: 0, P: 110.9063},
	{H: 51e3, T: 270.65, Lapse: -2.8e-3, P: 66.93887},
	{H: 71e3, T: 214.65, Lapse: -2e-3, P: 3.956420},
	{H: 84852.05, T: 186.946, Lapse: 0, P: 0.3733836},
}

// StandardAtmosphereLayers returns a copy of the layer table.
func StandardAtmosphereLayers() []AtmosphereLayer {
	out := make([]AtmosphereLayer, len(atmosphereLayers))
	copy(out, atmosphereLayers[:])

	return out
}

// Atmosphere holds the state of the standard atmosphere at one altitude.
type Atmosphere struct {
	Z      float64 // geometric altitude, m
	DT     float64 // temperature offset from standard, K
	H      float64 // geopotential height, m
	T      float64 // K
	P      float64 // Pa
	Rho    float64 // kg/m^3
	G      float64 // m/s^2
	Mu     float64 // Pa*s
	K      float64 // W/(m*K)
	VSonic float64 // m/s
}

// GeopotentialHeight converts geometric altitude to geopotential height.
func GeopotentialHeight(Z float64) float64 {
	return AtmosphereR0 * Z / (AtmosphereR0 + Z)
}

// AtmosphereLayerIndex returns the layer containing geopotential height H.
// Heights above the last base extrapolate the last layer.
func AtmosphereLayerIndex(H float64) int {
	for i := len(atmosphereLayers) - 1; i > 0; i-- {
		if H >= atmosphereLayers[i].H {
			return i
		}
	}

	return 0
}

func standardTemperature(H float64) float64 {
	l := &atmosphereLayers[AtmosphereLayerIndex(H)]

	return l.T + l.Lapse*(H-l.H)
}

func standardState(H float64) (T, P float64) {
	l := &atmosphereLayers[AtmosphereLayerIndex(H)]
	T = l.T + l.Lapse*(H-l.H)
	if l.Lapse == 0 {
		P = l.P * math.Exp(-G0*AtmosphereM0*(H-l.H)/(AtmosphereR*l.T))
	} else {
		P = l.P * math.Pow(l.T/T, G0*AtmosphereM0/(AtmosphereR*l.Lapse))
	}

	return T, P
}

// Atmosphere1976 evaluates the standard atmosphere at geometric altitude Z
// with a temperature offset dT. The offset changes temperature and the
// temperature-derived properties; pressure stays at its standard value.
func Atmosphere1976(Z, dT float64) Atmosphere {
	H := GeopotentialHeight(Z)
	Tstd, P := standardState(H)
	T := Tstd + dT

	return Atmosphere{
		Z:      Z,
		DT:     dT,
		H:      H,
		T:      T,
		P:      P,
		Rho:    P * AtmosphereM0 / (AtmosphereR * T),
		G:      Gravity(Z),
		Mu:     AirViscosity(T),
		K:      AirConductivity(T),
		VSonic: SonicVelocityAir(T),
	}
}

// Gravity is the gravitational acceleration at geometric altitude Z.
func Gravity(Z float64) float64 {
	r := AtmosphereR0 / (AtmosphereR0 + Z)

	return G0 * r * r
}

// AirViscosity is Sutherland's law with the constants of the standard.
func AirViscosity(T float64) float64 {
	return 1.458e-6 * T * math.Sqrt(T) / (T + 110.4)
}

// AirConductivity is the thermal conductivity of air per the standard.
func AirConductivity(T float64) float64 {
	return 2.64638e-3 * T * math.Sqrt(T) / (T + 245.4*math.Pow(10, -12/T))
}

// SonicVelocityAir is the speed of sound of air at temperature T.
func SonicVelocityAir(T float64) float64 {
	return math.Sqrt(AtmosphereGamma * AtmosphereR * T / AtmosphereM0)
}

// Atmosphere1976ZForP returns the geometric altitude at which the standard
// atmosphere has pressure P.
func Atmosphere1976ZForP(P float64) (float64, error) {
	f := func(Z float64) float64 {
		_, p := standardState(GeopotentialHeight(Z))
		return p - P
	}

	Z, err := numerics.Brent(f, atmosphereZMin, atmosphereZMax, 1e-9)
	if err != nil {
		return 0, fmt.Errorf("altitude for pressure %g Pa: %w", P, err)
	}

	return Z, nil
}

// Atmosphere1976PressureIntegral returns the pressure after an elevation
// change dH starting from (T1, P1). The temperature profile follows the
// standard atmosphere offset so that it passes through T1 at P1; the
// hydrostatic equation is then integrated with altitude-dependent gravity.
func Atmosphere1976PressureIntegral(T1, P1, dH float64) (float64, error) {
	Zref, err := Atmosphere1976ZForP(P1)
	if err != nil {
		return 0, err
	}
	dT := T1 - standardTemperature(GeopotentialHeight(Zref))

	f := func(Z float64) float64 {
		return Gravity(Z) / (standardTemperature(GeopotentialHeight(Z)) + dT)
	}
	lo, hi, sign := Zref, Zref+dH, 1.0
	if hi < lo {
		lo, hi, sign = hi, lo, -1
	}
	integral := sign * quad.Fixed(f, lo, hi, pressureIntegralNodes, nil, 0)

	return P1 * math.Exp(-AtmosphereM0/AtmosphereR*integral), nil
}

// AirmassOptions configures Airmass.
type AirmassOptions struct {
	HMax    float64 // upper integration limit, m
	RPlanet float64 // planet radius, m
	RI      float64 // refractive index of air at the surface
	Nodes   int     // Gauss-Legendre nodes
}

// DefaultAirmassOptions returns the options used by Airmass.
func DefaultAirmassOptions() AirmassOptions {
	return AirmassOptions{
		HMax:    86400,
		RPlanet: 6.371229e6,
		RI:      1.000276,
		Nodes:   256,
	}
}

// Airmass integrates the mass of air per unit area along a line of sight
// at angle degrees above the horizon, given a density profile rho(Z).
func Airmass(rho func(Z float64) float64, angle float64) float64 {
	return AirmassWith(rho, angle, DefaultAirmassOptions())
}

// AirmassWith is Airmass with explicit options.
func AirmassWith(rho func(Z float64) float64, angle float64, o AirmassOptions) float64 {
	return quad.Fixed(AirmassIntegrand(rho, angle, o), 0, o.HMax, o.Nodes, nil, 0)
}

// AirmassIntegrand returns the function integrated by AirmassWith.
func AirmassIntegrand(rho func(Z float64) float64, angle float64, o AirmassOptions) func(float64) float64 {
	delta0 := o.RI - 1
	rho0 := rho(0)
	cosA := math.Cos(angle * math.Pi / 180)

	return func(Z float64) float64 {
		r := rho(Z)
		t1 := 1 + 2*delta0*(1-r/rho0)
		t2 := cosA / (1 + Z/o.RPlanet)

		return r / math.Sqrt(1-t1*t2*t2)
	}
}
