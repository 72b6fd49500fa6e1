package fluids

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/numerics"
)

// IsothermalGasParams describes isothermal compressible flow through a
// straight pipe. Exactly one of M, P1, P2, L and D must be zero; it is the
// quantity IsothermalGas solves for.
type IsothermalGasParams struct {
	Rho float64 // average gas density, kg/m^3
	Fd  float64 // Darcy friction factor
	P1  float64 // inlet pressure, Pa
	P2  float64 // outlet pressure, Pa
	L   float64 // pipe length, m
	D   float64 // pipe diameter, m
	M   float64 // mass flow, kg/s
}

// IsothermalGasMassFlow is the mass flow rate of isothermal gas flow.
func IsothermalGasMassFlow(rho, fd, P1, P2, L, D float64) float64 {
	num := 0.0625 * math.Pi * math.Pi * D * D * D * D * rho * (P1*P1 - P2*P2)
	den := P1 * (fd*L/D + 2*math.Log(P1/P2))

	return math.Sqrt(num / den)
}

// IsothermalGas solves the isothermal gas flow equation for the single
// unknown in p.
func IsothermalGas(p IsothermalGasParams) (float64, error) {
	switch unknowns(p.M, p.P1, p.P2, p.L, p.D) {
	case 0:
		if p.P2 > p.P1 {
			return 0, fmt.Errorf("isothermal gas: outlet pressure %g above inlet %g: %w", p.P2, p.P1, ErrOutOfRange)
		}
		Pcf, err := PIsothermalCriticalFlow(p.P1, p.Fd, p.D, p.L)
		if err != nil {
			return 0, fmt.Errorf("isothermal gas: %w", err)
		}
		if p.P2 < Pcf {
			return 0, fmt.Errorf("isothermal gas: outlet pressure %g below choked pressure %g: %w", p.P2, Pcf, ErrOutOfRange)
		}
		return IsothermalGasMassFlow(p.Rho, p.Fd, p.P1, p.P2, p.L, p.D), nil

	case 1:
		f := func(P1 float64) float64 {
			return IsothermalGasMassFlow(p.Rho, p.Fd, P1, p.P2, p.L, p.D) - p.M
		}
		lo, hi, err := numerics.BracketUp(f, p.P2*(1+1e-12), 2*p.P2, 2)
		if err != nil {
			return 0, fmt.Errorf("isothermal gas P1: %w", err)
		}
		P1, err := numerics.Brent(f, lo, hi, 1e-9*p.P2)
		if err != nil {
			return 0, fmt.Errorf("isothermal gas P1: %w", err)
		}
		Pcf, err := PIsothermalCriticalFlow(P1, p.Fd, p.D, p.L)
		if err != nil {
			return 0, fmt.Errorf("isothermal gas P1: %w", err)
		}
		if p.P2 < Pcf {
			return 0, fmt.Errorf("isothermal gas P1: flow is choked at %g Pa: %w", Pcf, ErrOutOfRange)
		}
		return P1, nil

	case 2:
		Pcf, err := PIsothermalCriticalFlow(p.P1, p.Fd, p.D, p.L)
		if err != nil {
			return 0, fmt.Errorf("isothermal gas P2: %w", err)
		}
		if mMax := IsothermalGasMassFlow(p.Rho, p.Fd, p.P1, Pcf, p.L, p.D); p.M > mMax {
			return 0, fmt.Errorf("isothermal gas P2: mass flow %g exceeds choked flow %g: %w", p.M, mMax, ErrOutOfRange)
		}
		f := func(P2 float64) float64 {
			return IsothermalGasMassFlow(p.Rho, p.Fd, p.P1, P2, p.L, p.D) - p.M
		}
		P2, err := numerics.Brent(f, Pcf, p.P1, 1e-9*p.P1)
		if err != nil {
			return 0, fmt.Errorf("isothermal gas P2: %w", err)
		}
		return P2, nil

	case 3:
		D := p.D
		m2 := p.M * p.M
		return D * (math.Pi*math.Pi*D*D*D*D*p.Rho*(p.P1*p.P1-p.P2*p.P2) -
			32*p.P1*m2*math.Log(p.P1/p.P2)) / (16 * p.P1 * p.Fd * m2), nil

	case 4:
		return isothermalGasD(p)

	default:
		return 0, fmt.Errorf("isothermal gas: %w", ErrUnknowns)
	}
}

func isothermalGasD(p IsothermalGasParams) (float64, error) {
	f := func(D float64) float64 {
		return IsothermalGasMassFlow(p.Rho, p.Fd, p.P1, p.P2, p.L, D) - p.M
	}
	lo, hi, err := numerics.BracketUp(f, 1e-4, 1e-2, 2)
	if err != nil {
		return 0, fmt.Errorf("isothermal gas D: %w", err)
	}
	D, err := numerics.Brent(f, lo, hi, 1e-14)
	if err != nil {
		return 0, fmt.Errorf("isothermal gas D: %w", err)
	}

	return D, nil
}

// PIsothermalCriticalFlow is the outlet pressure at which isothermal flow
// through a pipe chokes.
func PIsothermalCriticalFlow(P, fd, D, L float64) (float64, error) {
	if !(fd*L/D >= 0) {
		return 0, fmt.Errorf("critical flow fd=%g L=%g D=%g: %w", fd, L, D, ErrOutOfRange)
	}
	w, err := numerics.LambertWm1NegExp(1 + fd*L/D)
	if err != nil {
		return 0, fmt.Errorf("critical flow: %w", err)
	}

	// w + ln(-w) = -(1 + fd*L/D), so exp((w + 1 + fd*L/D)/2) = 1/sqrt(-w).
	return P / math.Sqrt(-w), nil
}

// IsentropicWorkParams describes compression of an ideal gas. Exactly one
// of W, P1, P2 and Eta must be zero. Z defaults to 1.
type IsentropicWorkParams struct {
	T1  float64 // inlet temperature, K
	K   float64 // isentropic exponent
	Z   float64 // compressibility
	P1  float64 // Pa
	P2  float64 // Pa
	W   float64 // work, J/mol
	Eta float64 // isentropic efficiency
}

// IsentropicWorkCompression solves the isentropic compression work equation
// for the single unknown in p.
func IsentropicWorkCompression(p IsentropicWorkParams) (float64, error) {
	Z := p.Z
	if Z == 0 {
		Z = 1
	}
	k := p.K
	if k <= 1 {
		return 0, fmt.Errorf("isentropic work: exponent %g: %w", k, ErrOutOfRange)
	}

	switch unknowns(p.W, p.P1, p.P2, p.Eta) {
	case 0:
		return k / (k - 1) * Z * R * p.T1 * (math.Pow(p.P2/p.P1, (k-1)/k) - 1) / p.Eta, nil
	case 1:
		base := 1 + p.W*p.Eta/(R*p.T1*Z) - p.W*p.Eta/(R*p.T1*Z*k)
		return p.P2 * math.Pow(base, -k/(k-1)), nil
	case 2:
		base := 1 + p.W*p.Eta/(R*p.T1*Z) - p.W*p.Eta/(R*p.T1*Z*k)
		return p.P1 * math.Pow(base, k/(k-1)), nil
	case 3:
		return R * p.T1 * Z * k * (math.Pow(p.P1, -(k-1)/k)*math.Pow(p.P2, (k-1)/k) - 1) / (p.W * (k - 1)), nil
	default:
		return 0, fmt.Errorf("isentropic work: %w", ErrUnknowns)
	}
}

// IsentropicEfficiencyFromPolytropic converts a polytropic efficiency to the
// isentropic efficiency of a compression from P1 to P2.
func IsentropicEfficiencyFromPolytropic(P1, P2, k, etaP float64) float64 {
	r := P2 / P1

	return (math.Pow(r, (k-1)/k) - 1) / (math.Pow(r, (k-1)/(k*etaP)) - 1)
}

// PolytropicEfficiencyFromIsentropic is the inverse of
// IsentropicEfficiencyFromPolytropic.
func PolytropicEfficiencyFromIsentropic(P1, P2, k, etaS float64) float64 {
	r := P2 / P1

	return (k - 1) * math.Log(r) / (k * math.Log((etaS+math.Pow(r, (k-1)/k)-1)/etaS))
}
