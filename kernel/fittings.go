package kernel

import (
	"fmt"
	"math"

	"github.com/weiihann/fluidbench/fluids"
)

// ChangeKBasis compiles fluids.ChangeKBasis for fixed diameters.
func ChangeKBasis(D1, D2 float64) func(K1 float64) float64 {
	r := D2 / D1
	r2 := r * r
	r4 := r2 * r2

	return func(K1 float64) float64 { return K1 * r4 }
}

// EntranceDistance resolves an entrance method once.
func EntranceDistance(method string) (func(Di, t, l float64) float64, error) {
	switch method {
	case fluids.EntranceRennels, "":
		return entranceRennels, nil
	case fluids.EntranceIdelchik:
		return newIdelchik().K, nil
	case fluids.EntranceCrane:
		return func(_, _, _ float64) float64 { return 0.78 }, nil
	default:
		return nil, fmt.Errorf("entrance method %q: %w", method, fluids.ErrUnknownMethod)
	}
}

func entranceRennels(Di, t, _ float64) float64 {
	r := math.Min(t/Di, 0.05)

	return 1.12 - r*(22-r*(216+80*r))
}

// idelchik interpolates the re-entrant inlet table bilinearly without
// allocating.
type idelchik struct {
	td, ld []float64
	k      [][]float64
}

func newIdelchik() *idelchik {
	td, ld, k := fluids.IdelchikEntranceTable()

	return &idelchik{td: td, ld: ld, k: k}
}

// segment returns the index of the table segment holding x and the
// fractional position in it, clamped to the axis ends.
func segment(xs []float64, x float64) (int, float64) {
	n := len(xs)
	switch {
	case x <= xs[0]:
		return 0, 0
	case x >= xs[n-1]:
		return n - 2, 1
	}
	i := 0
	for x >= xs[i+1] {
		i++
	}

	return i, (x - xs[i]) / (xs[i+1] - xs[i])
}

func (e *idelchik) K(Di, t, l float64) float64 {
	i, a := segment(e.td, t/Di)
	j, b := segment(e.ld, l/Di)
	r0, r1 := e.k[i], e.k[i+1]
	k0 := r0[j] + b*(r0[j+1]-r0[j])
	k1 := r1[j] + b*(r1[j+1]-r1[j])

	return k0 + a*(k1-k0)
}

// Darby3K resolves a Darby 3-K fitting once.
func Darby3K(name string) (func(NPS, Re float64) float64, error) {
	f, err := fluids.LookupDarby3K(name)
	if err != nil {
		return nil, err
	}
	K1, Ki, Kd := f.K1, f.Ki, f.Kd

	return func(NPS, Re float64) float64 {
		return K1/Re + Ki*(1+Kd/math.Pow(NPS, 0.3))
	}, nil
}

// Hooper2K resolves a Hooper 2-K fitting once.
func Hooper2K(name string) (func(Di, Re float64) float64, error) {
	f, err := fluids.LookupHooper2K(name)
	if err != nil {
		return nil, err
	}
	K1, Kinfty := f.K1, f.Kinfty

	return func(Di, Re float64) float64 {
		return K1/Re + Kinfty*(1+1/Di)
	}, nil
}

// KAngleValveCrane compiles fluids.KAngleValveCrane for one valve style.
func KAngleValveCrane(style int) (func(D1, D2, fd float64) float64, error) {
	var mult float64
	switch style {
	case fluids.AngleValveStyle0, fluids.AngleValveStyle2:
		mult = 55
	case fluids.AngleValveStyle1:
		mult = 150
	default:
		return nil, fmt.Errorf("angle valve style %d: %w", style, fluids.ErrUnknownMethod)
	}

	return func(D1, D2, fd float64) float64 {
		if fd == 0 {
			fd = fluids.FtCrane(D2)
		}
		K1 := mult * fd
		beta := D1 / D2
		if beta == 1 {
			return K1
		}
		b2 := beta * beta
		c := 1 - b2
		e := 1 - beta

		return (K1 + beta*(0.5*e*e+c*c)) / (b2 * b2)
	}, nil
}

// VLiftValveCrane compiles fluids.VLiftValveCrane for one valve style.
func VLiftValveCrane(style string) (func(rho, D1, D2 float64) float64, error) {
	var mult float64
	switch style {
	case fluids.LiftCheckStraight:
		mult = 50
	case fluids.LiftCheckAngled:
		mult = 170
	default:
		return nil, fmt.Errorf("lift valve style %q: %w", style, fluids.ErrUnknownMethod)
	}

	return func(rho, D1, D2 float64) float64 {
		beta := D1 / D2

		return mult * beta * beta / math.Sqrt(rho)
	}, nil
}

// KBranchConvergingCrane compiles fluids.KBranchConvergingCrane for one
// branch angle in degrees.
func KBranchConvergingCrane(angle float64) (func(Drun, Dbranch, Qrun, Qbranch float64) float64, error) {
	var F float64
	switch angle {
	case 30:
		F = 1.74
	case 45:
		F = 1.41
	case 60:
		F = 1
	case 90:
		F = 0
	default:
		return nil, fmt.Errorf("converging tee angle %g: %w", angle, fluids.ErrOutOfRange)
	}

	return func(Drun, Dbranch, Qrun, Qbranch float64) float64 {
		beta := Dbranch / Drun
		b2 := beta * beta
		Qr := Qbranch / (Qrun + Qbranch)

		var C float64
		switch {
		case b2 <= 0.35:
			C = 1
		case Qr <= 0.4:
			C = 0.9 * (1 - Qr)
		default:
			C = 0.55
		}
		x := Qr / b2
		y := 1 - Qr

		return C * (1 + x*x - 2*y*y - F*x*Qr)
	}, nil
}
