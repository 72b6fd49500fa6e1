package fluids

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/numerics"
)

// Differential pressure meter types.
const (
	MeterISO5167Orifice   = "ISO 5167 orifice"
	MeterMillerOrifice    = "Miller orifice"
	MeterLongRadiusNozzle = "long radius nozzle"
	MeterISA1932Nozzle    = "ISA 1932 nozzle"
	MeterVenturiNozzle    = "venturi nozzle"
)

// Orifice pressure tap arrangements.
const (
	TapsCorner = "corner"
	TapsD      = "D"
	TapsFlange = "flange"
)

func pipeReynolds(D, rho, mu, m float64) float64 {
	v := m / (math.Pi / 4 * D * D * rho)

	return rho * v * D / mu
}

func orificeTapLengths(D float64, taps string) (L1, L2 float64, err error) {
	switch taps {
	case TapsCorner:
		return 0, 0, nil
	case TapsD:
		return 1, 0.47, nil
	case TapsFlange:
		return Inch / D, Inch / D, nil
	default:
		return 0, 0, fmt.Errorf("orifice taps %q: %w", taps, ErrUnknownMethod)
	}
}

// CReaderHarrisGallagher is the ISO 5167-2 discharge coefficient of an
// orifice plate of bore Do in a pipe of diameter D at mass flow m.
func CReaderHarrisGallagher(D, Do, rho, mu, m float64, taps string) (float64, error) {
	L1, L2, err := orificeTapLengths(D, taps)
	if err != nil {
		return 0, err
	}

	return cReaderHarrisGallagher(D, Do/D, pipeReynolds(D, rho, mu, m), L1, L2), nil
}

func cReaderHarrisGallagher(D, beta, Re, L1, L2 float64) float64 {
	b2 := beta * beta
	b4 := b2 * b2
	b8 := b4 * b4
	M2 := 2 * L2 / (1 - beta)
	A := math.Pow(19000*beta/Re, 0.8)

	C := 0.5961 + 0.0261*b2 - 0.216*b8 +
		0.000521*math.Pow(1e6*beta/Re, 0.7) +
		(0.0188+0.0063*A)*math.Pow(beta, 3.5)*math.Pow(1e6/Re, 0.3) +
		(0.043+0.080*math.Exp(-10*L1)-0.123*math.Exp(-7*L1))*(1-0.11*A)*b4/(1-b4) -
		0.031*(M2-0.8*math.Pow(M2, 1.1))*math.Pow(beta, 1.3)
	if D < 0.07112 {
		C += 0.011 * (0.75 - beta) * (2.8 - D/Inch)
	}

	return C
}

// CMillerOrifice is Miller's discharge coefficient for a thin orifice.
func CMillerOrifice(D, Do, rho, mu, m float64, taps string) (float64, error) {
	beta := Do / D
	Re := pipeReynolds(D, rho, mu, m)
	b4 := math.Pow(beta, 4)

	C := 0.5959 + 0.0312*math.Pow(beta, 2.1) - 0.184*math.Pow(beta, 8) +
		91.71*math.Pow(beta, 2.5)/math.Pow(Re, 0.75)
	switch taps {
	case TapsCorner:
	case TapsD:
		C += 0.039*b4/(1-b4) - 0.0158*beta*beta*beta
	case TapsFlange:
		Din := D / Inch
		C += 0.09*b4/(Din*(1-b4)) - 0.0337*beta*beta*beta/Din
	default:
		return 0, fmt.Errorf("orifice taps %q: %w", taps, ErrUnknownMethod)
	}

	return C, nil
}

// CLongRadiusNozzle is the ISO 5167-3 long radius nozzle coefficient.
func CLongRadiusNozzle(D, Do, rho, mu, m float64) float64 {
	Re := pipeReynolds(D, rho, mu, m)

	return 0.9965 - 0.00653*math.Sqrt(Do/D)*math.Sqrt(1e6/Re)
}

// CISA1932Nozzle is the ISO 5167-3 ISA 1932 nozzle coefficient.
func CISA1932Nozzle(D, Do, rho, mu, m float64) float64 {
	beta := Do / D
	Re := pipeReynolds(D, rho, mu, m)

	return 0.9900 - 0.2262*math.Pow(beta, 4.1) -
		(0.00175*beta*beta-0.0033*math.Pow(beta, 4.15))*math.Pow(1e6/Re, 1.15)
}

// CVenturiNozzle is the ISO 5167-3 venturi nozzle coefficient.
func CVenturiNozzle(D, Do float64) float64 {
	return 0.9858 - 0.196*math.Pow(Do/D, 4.5)
}

// OrificeExpansibility is the ISO 5167-2 expansibility factor.
func OrificeExpansibility(D, Do, P1, P2, k float64) float64 {
	b4 := math.Pow(Do/D, 4)

	return 1 - (0.351+0.256*b4+0.93*b4*b4)*(1-math.Pow(P2/P1, 1/k))
}

// NozzleExpansibility is the ISO 5167-3 expansibility factor of nozzles
// and venturis.
func NozzleExpansibility(D, Do, P1, P2, k float64) float64 {
	tau := P2 / P1
	if tau >= 1 {
		return 1
	}
	b4 := math.Pow(Do/D, 4)
	t2k := math.Pow(tau, 2/k)

	return math.Sqrt(k * t2k / (k - 1) * (1 - b4) / (1 - b4*t2k) *
		(1 - math.Pow(tau, (k-1)/k)) / (1 - tau))
}

// FlowMeterDischarge is the mass flow through a meter with discharge
// coefficient C and expansibility epsilon.
func FlowMeterDischarge(D, Do, P1, P2, rho, C, epsilon float64) float64 {
	dP := P1 - P2
	if dP <= 0 {
		return 0
	}
	b4 := math.Pow(Do/D, 4)

	return math.Pi / 4 * Do * Do * C * epsilon * math.Sqrt(2*dP*rho) / math.Sqrt(1-b4)
}

// DPVenturiTube is the permanent pressure loss of a classical venturi tube.
// The loss fraction is a quadratic in beta through the middle of the
// ISO 5167-4 band for 7 and 15 degree diffusers.
func DPVenturiTube(D, Do, P1, P2 float64) float64 {
	beta := Do / D

	return (0.218 - 0.42*beta + 0.38*beta*beta) * (P1 - P2)
}

// DifferentialPressureMeterCEpsilon returns the discharge coefficient and
// expansibility of a meter at the given operating point.
func DifferentialPressureMeterCEpsilon(D, D2, P1, P2, rho, mu, k, m float64, meterType, taps string) (C, epsilon float64, err error) {
	switch meterType {
	case MeterISO5167Orifice:
		C, err = CReaderHarrisGallagher(D, D2, rho, mu, m, taps)
		epsilon = OrificeExpansibility(D, D2, P1, P2, k)
	case MeterMillerOrifice:
		C, err = CMillerOrifice(D, D2, rho, mu, m, taps)
		epsilon = OrificeExpansibility(D, D2, P1, P2, k)
	case MeterLongRadiusNozzle:
		C = CLongRadiusNozzle(D, D2, rho, mu, m)
		epsilon = NozzleExpansibility(D, D2, P1, P2, k)
	case MeterISA1932Nozzle:
		C = CISA1932Nozzle(D, D2, rho, mu, m)
		epsilon = NozzleExpansibility(D, D2, P1, P2, k)
	case MeterVenturiNozzle:
		C = CVenturiNozzle(D, D2)
		epsilon = NozzleExpansibility(D, D2, P1, P2, k)
	default:
		err = fmt.Errorf("meter type %q: %w", meterType, ErrUnknownMethod)
	}

	return C, epsilon, err
}

// MeterParams describes a differential pressure meter. Exactly one of M,
// P1, P2 and D2 must be zero.
type MeterParams struct {
	D         float64 // pipe diameter, m
	D2        float64 // meter throat or bore, m
	P1        float64 // Pa
	P2        float64 // Pa
	M         float64 // kg/s
	Rho       float64 // kg/m^3
	Mu        float64 // Pa*s
	K         float64 // isentropic exponent
	MeterType string
	Taps      string
}

// DifferentialPressureMeterSolver solves the meter equation for the single
// unknown in p.
func DifferentialPressureMeterSolver(p MeterParams) (float64, error) {
	idx := unknowns(p.M, p.P1, p.P2, p.D2)
	if idx < 0 {
		return 0, fmt.Errorf("meter solver: %w", ErrUnknowns)
	}

	var fail error
	residual := func(m, P1, P2, D2 float64) float64 {
		C, eps, err := DifferentialPressureMeterCEpsilon(p.D, D2, P1, P2, p.Rho, p.Mu, p.K, m, p.MeterType, p.Taps)
		if err != nil {
			fail = err
			return math.NaN()
		}
		return FlowMeterDischarge(p.D, D2, P1, P2, p.Rho, C, eps) - m
	}
	if err := checkMeter(p.MeterType, p.Taps); err != nil {
		return 0, fmt.Errorf("meter solver: %w", err)
	}

	var (
		x   float64
		err error
	)
	switch idx {
	case 0:
		x, err = solveMeterM(p, residual)
	case 1:
		f := func(P1 float64) float64 { return residual(p.M, P1, p.P2, p.D2) }
		lo, hi, berr := numerics.BracketUp(f, p.P2, p.P2*(1+1e-3), 2)
		if berr != nil {
			return 0, fmt.Errorf("meter solver P1: %w", berr)
		}
		x, err = numerics.Brent(f, lo, hi, 1e-10*p.P2)
	case 2:
		f := func(P2 float64) float64 { return residual(p.M, p.P1, P2, p.D2) }
		dp := p.P1 * 1e-3
		for dp < p.P1 && f(p.P1-dp) < 0 {
			dp *= 2
		}
		lo := math.Max(p.P1-dp, p.P1*1e-9)
		x, err = numerics.Brent(f, lo, p.P1, 1e-10*p.P1)
	case 3:
		f := func(D2 float64) float64 { return residual(p.M, p.P1, p.P2, D2) }
		x, err = numerics.Brent(f, 1e-3*p.D, (1-1e-9)*p.D, 1e-14)
	}
	if fail != nil {
		return 0, fmt.Errorf("meter solver: %w", fail)
	}
	if err != nil {
		return 0, fmt.Errorf("meter solver: %w", err)
	}

	return x, nil
}

func checkMeter(meterType, taps string) error {
	switch meterType {
	case MeterISO5167Orifice, MeterMillerOrifice:
		_, _, err := orificeTapLengths(1, taps)
		return err
	case MeterLongRadiusNozzle, MeterISA1932Nozzle, MeterVenturiNozzle:
		return nil
	default:
		return fmt.Errorf("meter type %q: %w", meterType, ErrUnknownMethod)
	}
}

func solveMeterM(p MeterParams, residual func(m, P1, P2, D2 float64) float64) (float64, error) {
	var eps float64
	switch p.MeterType {
	case MeterISO5167Orifice, MeterMillerOrifice:
		eps = OrificeExpansibility(p.D, p.D2, p.P1, p.P2, p.K)
	default:
		eps = NozzleExpansibility(p.D, p.D2, p.P1, p.P2, p.K)
	}
	lo := FlowMeterDischarge(p.D, p.D2, p.P1, p.P2, p.Rho, 0.3, eps)
	hi := FlowMeterDischarge(p.D, p.D2, p.P1, p.P2, p.Rho, 1.2, eps)
	f := func(m float64) float64 { return residual(m, p.P1, p.P2, p.D2) }

	return numerics.Brent(f, lo, hi, 1e-12*hi)
}
