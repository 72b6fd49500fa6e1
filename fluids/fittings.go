package fluids

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/interp"
)

// Entrance loss methods.
const (
	EntranceRennels  = "Rennels"
	EntranceIdelchik = "Idelchik"
	EntranceCrane    = "Crane"
)

// Angle valve styles for KAngleValveCrane.
const (
	AngleValveStyle0 = 0 // K1 = 55 ft
	AngleValveStyle1 = 1 // K1 = 150 ft
	AngleValveStyle2 = 2 // K1 = 55 ft
)

// Lift check valve styles for VLiftValveCrane.
const (
	LiftCheckStraight = "lift check straight"
	LiftCheckAngled   = "lift check angled"
)

// ChangeKBasis converts a loss coefficient K1 based on diameter D1 to one
// based on D2.
func ChangeKBasis(K1, D1, D2 float64) float64 {
	r := D2 / D1

	return K1 * r * r * r * r
}

// EntranceDistance returns the loss coefficient of a re-entrant pipe inlet
// of inside diameter Di, wall thickness t and protrusion length l.
func EntranceDistance(Di, t, l float64, method string) (float64, error) {
	switch method {
	case EntranceRennels, "":
		return EntranceDistanceRennels(Di, t), nil
	case EntranceIdelchik:
		return EntranceDistanceIdelchik(Di, t, l)
	case EntranceCrane:
		return 0.78, nil
	default:
		return 0, fmt.Errorf("entrance method %q: %w", method, ErrUnknownMethod)
	}
}

// EntranceDistanceRennels is Rennels' fit, valid up to t/Di = 0.05.
func EntranceDistanceRennels(Di, t float64) float64 {
	r := math.Min(t/Di, 0.05)

	return 1.12 - 22*r + 216*r*r + 80*r*r*r
}

// EntranceDistanceIdelchik interpolates Idelchik's table bilinearly. Inputs
// outside the table are clamped to its edges.
func EntranceDistanceIdelchik(Di, t, l float64) (float64, error) {
	f, err := idelchikFitted()
	if err != nil {
		return 0, err
	}

	return f.predict(t/Di, l/Di), nil
}

// idelchikFit holds one interpolant per table row along l/Di and one hat
// function per row along t/Di. Bilinear interpolation is then the sum of
// the row values weighted by the hats.
type idelchikFit struct {
	rows []interp.PiecewiseLinear
	hats []interp.PiecewiseLinear
}

var idelchikFitted = sync.OnceValues(fitIdelchik)

func fitIdelchik() (*idelchikFit, error) {
	if len(idelchikK) != len(idelchikTD) {
		return nil, fmt.Errorf("idelchik table has %d rows for %d t/Di values: %w",
			len(idelchikK), len(idelchikTD), ErrOutOfRange)
	}
	f := &idelchikFit{
		rows: make([]interp.PiecewiseLinear, len(idelchikK)),
		hats: make([]interp.PiecewiseLinear, len(idelchikTD)),
	}
	for i, row := range idelchikK {
		if len(row) != len(idelchikLD) {
			return nil, fmt.Errorf("idelchik row %d has %d values for %d l/Di values: %w",
				i, len(row), len(idelchikLD), ErrOutOfRange)
		}
		if err := f.rows[i].Fit(idelchikLD, row); err != nil {
			return nil, fmt.Errorf("fit idelchik row %d: %w", i, err)
		}

		hat := make([]float64, len(idelchikTD))
		hat[i] = 1
		if err := f.hats[i].Fit(idelchikTD, hat); err != nil {
			return nil, fmt.Errorf("fit idelchik weight %d: %w", i, err)
		}
	}

	return f, nil
}

func (f *idelchikFit) predict(td, ld float64) float64 {
	var K float64
	for i := range f.rows {
		if w := f.hats[i].Predict(td); w != 0 {
			K += w * f.rows[i].Predict(ld)
		}
	}

	return K
}

// Darby3KNames returns the fittings known to Darby3K, sorted.
func Darby3KNames() []string {
	names := make([]string, len(darby3KTable))
	for i, e := range darby3KTable {
		names[i] = e.name
	}
	sort.Strings(names)

	return names
}

// LookupDarby3K returns the coefficients of the named fitting.
func LookupDarby3K(name string) (Darby3KFitting, error) {
	for _, e := range darby3KTable {
		if e.name == name {
			return e.fit, nil
		}
	}

	return Darby3KFitting{}, fmt.Errorf("darby 3-K fitting %q: %w", name, ErrUnknownMethod)
}

// K evaluates the fitting at nominal pipe size NPS (inches) and Reynolds
// number Re.
func (f Darby3KFitting) K(NPS, Re float64) float64 {
	return Darby3KCoefficients(NPS, Re, f.K1, f.Ki, f.Kd)
}

// Darby3K returns the loss coefficient of the named fitting.
func Darby3K(NPS, Re float64, name string) (float64, error) {
	f, err := LookupDarby3K(name)
	if err != nil {
		return 0, err
	}

	return f.K(NPS, Re), nil
}

// Darby3KCoefficients evaluates the 3-K method with explicit coefficients.
func Darby3KCoefficients(NPS, Re, K1, Ki, Kd float64) float64 {
	return K1/Re + Ki*(1+Kd/math.Pow(NPS, 0.3))
}

// Hooper2KNames returns the fittings known to Hooper2K, sorted.
func Hooper2KNames() []string {
	names := make([]string, len(hooper2KTable))
	for i, e := range hooper2KTable {
		names[i] = e.name
	}
	sort.Strings(names)

	return names
}

// LookupHooper2K returns the coefficients of the named fitting.
func LookupHooper2K(name string) (Hooper2KFitting, error) {
	for _, e := range hooper2KTable {
		if e.name == name {
			return e.fit, nil
		}
	}

	return Hooper2KFitting{}, fmt.Errorf("hooper 2-K fitting %q: %w", name, ErrUnknownMethod)
}

// K evaluates the fitting at inside diameter Di (inches) and Reynolds
// number Re.
func (f Hooper2KFitting) K(Di, Re float64) float64 {
	return Hooper2KCoefficients(Di, Re, f.K1, f.Kinfty)
}

// Hooper2K returns the loss coefficient of the named fitting. Di is in
// inches.
func Hooper2K(Di, Re float64, name string) (float64, error) {
	f, err := LookupHooper2K(name)
	if err != nil {
		return 0, err
	}

	return f.K(Di, Re), nil
}

// Hooper2KCoefficients evaluates the 2-K method with explicit coefficients.
func Hooper2KCoefficients(Di, Re, K1, Kinfty float64) float64 {
	return K1/Re + Kinfty*(1+1/Di)
}

// FtCrane is the fully turbulent Darcy friction factor Crane uses for
// clean steel pipe of diameter D, m. The Reynolds number and roughness are
// fitted to Crane's tabulated values.
func FtCrane(D float64) float64 {
	return Clamond(7.5e6*D, 3.4126825352925e-5*math.Pow(D, -1.0112), D >= 1e-2)
}

// KAngleValveCrane returns the loss coefficient of an angle valve with seat
// diameter D1 in a pipe of diameter D2, based on D2. A zero fd selects
// FtCrane(D2).
func KAngleValveCrane(D1, D2, fd float64, style int) (float64, error) {
	if fd == 0 {
		fd = FtCrane(D2)
	}

	var K1 float64
	switch style {
	case AngleValveStyle0, AngleValveStyle2:
		K1 = 55 * fd
	case AngleValveStyle1:
		K1 = 150 * fd
	default:
		return 0, fmt.Errorf("angle valve style %d: %w", style, ErrUnknownMethod)
	}

	beta := D1 / D2
	if beta == 1 {
		return K1, nil
	}
	b2 := beta * beta

	return (K1 + beta*(0.5*sq(1-beta)+sq(1-b2))) / (b2 * b2), nil
}

// VLiftValveCrane returns the minimum velocity that fully lifts the disk of
// a lift check valve, m/s.
func VLiftValveCrane(rho, D1, D2 float64, style string) (float64, error) {
	beta := D1 / D2
	b2 := beta * beta
	v := math.Sqrt(1 / rho)

	switch style {
	case LiftCheckStraight:
		return 50 * b2 * v, nil
	case LiftCheckAngled:
		return 170 * b2 * v, nil
	default:
		return 0, fmt.Errorf("lift valve style %q: %w", style, ErrUnknownMethod)
	}
}

// KBranchConvergingCrane returns the loss coefficient of the branch of a
// converging tee, based on the combined flow velocity. angle is in degrees.
func KBranchConvergingCrane(Drun, Dbranch, Qrun, Qbranch, angle float64) (float64, error) {
	F, err := convergingTeeF(angle)
	if err != nil {
		return 0, err
	}

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
	const D, E = 1.0, 2.0

	return C * (1 + D*sq(Qr/b2) - E*sq(1-Qr) - F/b2*Qr*Qr), nil
}

func convergingTeeF(angle float64) (float64, error) {
	switch angle {
	case 30:
		return 1.74, nil
	case 45:
		return 1.41, nil
	case 60:
		return 1, nil
	case 90:
		return 0, nil
	default:
		return 0, fmt.Errorf("converging tee angle %g: %w", angle, ErrOutOfRange)
	}
}
