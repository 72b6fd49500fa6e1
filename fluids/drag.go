package fluids

import (
	"fmt"
	"math"
	"sort"

	"github.com/weiihann/fluidbench/numerics"
)

// Sphere drag correlations. An empty method name selects one by Reynolds
// number.
const (
	DragStokes           = "Stokes"
	DragBarati           = "Barati"
	DragBaratiHigh       = "Barati_high"
	DragRouse            = "Rouse"
	DragEngelundHansen   = "Engelund_Hansen"
	DragCliftGauvin      = "Clift_Gauvin"
	DragMorrison         = "Morrison"
	DragHaiderLevenspiel = "Haider_Levenspiel"
	DragGraf             = "Graf"
	DragFlemmerBanks     = "Flemmer_Banks"
	DragKhanRichardson   = "Khan_Richardson"
	DragSwameeOjha       = "Swamee_Ojha"
	DragYen              = "Yen"
)

var dragCorrelations = map[string]func(Re float64) float64{
	DragStokes:           Stokes,
	DragBarati:           Barati,
	DragBaratiHigh:       BaratiHigh,
	DragRouse:            Rouse,
	DragEngelundHansen:   EngelundHansen,
	DragCliftGauvin:      CliftGauvin,
	DragMorrison:         Morrison,
	DragHaiderLevenspiel: HaiderLevenspiel,
	DragGraf:             Graf,
	DragFlemmerBanks:     FlemmerBanks,
	DragKhanRichardson:   KhanRichardson,
	DragSwameeOjha:       SwameeOjha,
	DragYen:              Yen,
}

// DragMethods returns the names of the available correlations, sorted.
func DragMethods() []string {
	names := make([]string, 0, len(dragCorrelations))
	for name := range dragCorrelations {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DragCorrelation returns the correlation registered under method.
func DragCorrelation(method string) (func(Re float64) float64, error) {
	f, ok := dragCorrelations[method]
	if !ok {
		return nil, fmt.Errorf("drag method %q: %w", method, ErrUnknownMethod)
	}

	return f, nil
}

// AutoDragMethod picks a correlation valid at Re.
func AutoDragMethod(Re float64) (string, error) {
	switch {
	case Re < 0.01:
		return DragStokes, nil
	case Re < 2e5:
		return DragBarati, nil
	case Re <= 1e6:
		return DragBaratiHigh, nil
	default:
		return "", fmt.Errorf("no drag correlation for Re=%g: %w", Re, ErrOutOfRange)
	}
}

// DragSphere returns the drag coefficient of a sphere at Reynolds number Re.
func DragSphere(Re float64, method string) (float64, error) {
	if method == "" {
		var err error
		if method, err = AutoDragMethod(Re); err != nil {
			return 0, err
		}
	}
	f, err := DragCorrelation(method)
	if err != nil {
		return 0, err
	}

	return f(Re), nil
}

// Stokes is the creeping flow drag coefficient, 24/Re.
func Stokes(Re float64) float64 { return 24 / Re }

// Barati is the Barati et al. (2014) tanh fit, valid to Re = 2e5.
func Barati(Re float64) float64 {
	return 5.4856e9*math.Tanh(4.3774e-9/Re) +
		0.0709*math.Tanh(700.6574/Re) +
		0.3894*math.Tanh(74.1539/Re) -
		0.1198*math.Tanh(7429.0843/Re) +
		1.7174*math.Tanh(9.9851/(Re+2.3384)) +
		0.4744
}

// BaratiHigh extends Barati to Re = 1e6.
func BaratiHigh(Re float64) float64 {
	Re2 := Re * Re
	t0 := 1 / Re
	t1 := Re / 6530
	t2 := Re / 1620
	t3 := math.Log10(Re2 + 10.7563)
	tanhRe := math.Tanh(Re)

	return 8e-6*(t1*t1+tanhRe-8*math.Log10(Re)) -
		0.4119*math.Exp(-2.08e43/math.Pow(Re+Re2, 4)) -
		2.1344*math.Exp(-t0*(t3*t3+9.9867)) +
		0.1357*math.Exp(-t2*t2-10370*t0) -
		8.5e-3*(2*math.Log10(math.Tanh(tanhRe))-2825.7162)*t0 +
		2.4795
}

// Rouse adds square-root and constant terms to the Stokes law.
func Rouse(Re float64) float64 { return 24/Re + 3/math.Sqrt(Re) + 0.34 }

// EngelundHansen is the Stokes law plus a constant form drag of 1.5.
func EngelundHansen(Re float64) float64 { return 24/Re + 1.5 }

// CliftGauvin is the Clift and Gauvin (1970) extension of Schiller-Naumann
// with a Newton regime term.
func CliftGauvin(Re float64) float64 {
	return 24/Re*(1+0.152*math.Pow(Re, 0.677)) + 0.417/(1+5070*math.Pow(Re, -0.94))
}

// Morrison is the Morrison (2013) fit, valid to Re = 1e6.
func Morrison(Re float64) float64 {
	r5 := Re / 5
	r263 := Re / 263000

	return 24/Re + 2.6*r5/(1+math.Pow(r5, 1.52)) +
		0.411*math.Pow(r263, -7.94)/(1+math.Pow(r263, -8)) +
		math.Pow(Re, 0.8)/461000
}

// HaiderLevenspiel is the Haider and Levenspiel (1989) fit for spheres.
func HaiderLevenspiel(Re float64) float64 {
	return 24/Re*(1+0.1806*math.Pow(Re, 0.6459)) + 0.4251/(1+6880.95/Re)
}

// Graf adds a 7.3/(1+sqrt(Re)) term to the Stokes law.
func Graf(Re float64) float64 { return 24/Re + 7.3/(1+math.Sqrt(Re)) + 0.25 }

// FlemmerBanks is the Flemmer and Banks (1986) power law correction of
// the Stokes law.
func FlemmerBanks(Re float64) float64 {
	lg := math.Log10(Re)
	E := 0.261*math.Pow(Re, 0.369) - 0.105*math.Pow(Re, 0.431) - 0.124/(1+lg*lg)

	return 24 / Re * math.Pow(10, E)
}

// KhanRichardson is the Khan and Richardson (1987) power law fit.
func KhanRichardson(Re float64) float64 {
	return math.Pow(2.49*math.Pow(Re, -0.328)+0.34*math.Pow(Re, 0.067), 3.18)
}

// SwameeOjha is the Swamee and Ojha (1991) single expression for all Re.
func SwameeOjha(Re float64) float64 {
	a := 16 * math.Pow(math.Pow(24/Re, 1.6)+math.Pow(130/Re, 0.72), 2.5)
	b := math.Pow(math.Pow(40000/Re, 2)+1, -0.25)

	return 0.5 * math.Pow(a+b, 0.25)
}

// Yen scales the Stokes law by square-root and linear terms in Re.
func Yen(Re float64) float64 {
	return 24/Re*(1+0.15*math.Sqrt(Re)+0.017*Re) - 0.208/(1+1e4*math.Pow(Re, -0.5))
}

// VTerminal returns the terminal settling velocity of a sphere of diameter
// D and density rhop in a fluid of density rho and viscosity mu. A negative
// result means the particle rises.
func VTerminal(D, rhop, rho, mu float64, method string) (float64, error) {
	delta := rhop - rho
	if delta == 0 {
		return 0, nil
	}
	sign := math.Copysign(1, delta)
	delta = math.Abs(delta)

	vLam := G0 * D * D * delta / (18 * mu)
	if method == DragStokes || (method == "" && rho*vLam*D/mu < 0.01) {
		return sign * vLam, nil
	}

	var cd func(Re float64) (float64, error)
	if method == "" {
		cd = func(Re float64) (float64, error) { return DragSphere(Re, "") }
	} else {
		f, err := DragCorrelation(method)
		if err != nil {
			return 0, err
		}
		cd = func(Re float64) (float64, error) { return f(Re), nil }
	}

	var cdErr error
	coeff := 4 * G0 * D * delta / (3 * rho)
	f := func(v float64) float64 {
		Cd, err := cd(rho * v * D / mu)
		if err != nil {
			cdErr = err
			return math.NaN()
		}
		return v - math.Sqrt(coeff/Cd)
	}

	hi := vLam
	if vMax := 1e6 * mu / (rho * D); hi > vMax {
		hi = vMax
	}
	v, err := numerics.Brent(f, vLam*1e-9, hi, 1e-13*vLam)
	if cdErr != nil {
		return 0, fmt.Errorf("terminal velocity: %w", cdErr)
	}
	if err != nil {
		return 0, fmt.Errorf("terminal velocity: %w", err)
	}

	return sign * v, nil
}

// DragIntegration describes a sphere moving vertically through a fluid.
// V is the initial velocity, positive downward.
type DragIntegration struct {
	D      float64 // m
	Rhop   float64 // kg/m^3
	Rho    float64 // kg/m^3
	Mu     float64 // Pa*s
	T      float64 // s
	V      float64 // m/s
	Method string
}

// DragTrajectory is the state of the sphere at the end of an integration.
type DragTrajectory struct {
	V float64 // m/s
	X float64 // distance travelled, m
}

// IntegrateDragSphere integrates the velocity and position of a sphere
// under gravity, buoyancy and drag.
func IntegrateDragSphere(p DragIntegration) (DragTrajectory, error) {
	if p.D <= 0 || p.Rhop <= 0 || p.Mu <= 0 || p.T < 0 {
		return DragTrajectory{}, fmt.Errorf("drag integration D=%g rhop=%g mu=%g t=%g: %w",
			p.D, p.Rhop, p.Mu, p.T, ErrOutOfRange)
	}
	if p.Method != "" {
		if _, err := DragCorrelation(p.Method); err != nil {
			return DragTrajectory{}, err
		}
	}

	gravity := G0 * (p.Rhop - p.Rho) / p.Rhop
	dragK := 3 * p.Rho / (4 * p.D * p.Rhop)

	var cdErr error
	rhs := func(_ float64, y, dydt []float64) {
		V := y[0]
		dydt[1] = V
		if V == 0 {
			dydt[0] = gravity
			return
		}
		Cd, err := DragSphere(p.Rho*math.Abs(V)*p.D/p.Mu, p.Method)
		if err != nil && cdErr == nil {
			cdErr = err
		}
		dydt[0] = gravity - dragK*Cd*math.Abs(V)*V
	}

	y, err := numerics.DormandPrince(rhs, 0, p.T, []float64{p.V, 0},
		numerics.Tolerances{Rel: 1e-10, Abs: 1e-12})
	if cdErr != nil {
		return DragTrajectory{}, fmt.Errorf("drag integration: %w", cdErr)
	}
	if err != nil {
		return DragTrajectory{}, fmt.Errorf("drag integration: %w", err)
	}

	return DragTrajectory{V: y[0], X: y[1]}, nil
}
