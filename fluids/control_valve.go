package fluids

import (
	"fmt"
	"math"
)

// IEC 60534-2-1 numerical constants for Kv, m^3/h, kPa and mm.
const (
	valveN1  = 1e-1
	valveN2  = 1.6e-3
	valveN4  = 7.07e-2
	valveN5  = 1.8e-3
	valveN9  = 2.46e1 // gas volume flow at 0 C and 1 atm
	valveN18 = 8.65e-1
	valveN22 = 1.73e1
	valveN32 = 1.4e2

	// Reynolds number above which flow through a valve is turbulent.
	valveReTurbulent = 10000

	pipingMaxIter  = 20
	laminarMaxIter = 50
	maxValveC      = 1e40
)

// LiquidValve is the operating point of a liquid control valve. D1, D2 and
// Dv (valve diameter) are optional; when all three are given and differ,
// reducer and expander losses are included.
type LiquidValve struct {
	Rho  float64 // kg/m^3
	Psat float64 // Pa
	Pc   float64 // Pa
	Mu   float64 // Pa*s
	P1   float64 // Pa
	P2   float64 // Pa
	Q    float64 // m^3/s

	D1 float64 // m
	D2 float64 // m
	Dv float64 // m

	FL float64 // liquid pressure recovery factor
	Fd float64 // valve style modifier; zero selects 1

	IgnoreChoked  bool
	IgnoreLaminar bool
}

// GasValve is the operating point of a gas control valve. Q is the flow at
// 0 C and 1 atm.
type GasValve struct {
	T     float64 // K
	MW    float64 // g/mol
	Mu    float64 // Pa*s
	Gamma float64
	Z     float64 // compressibility
	P1    float64 // Pa
	P2    float64 // Pa
	Q     float64 // m^3/s

	D1 float64 // m
	D2 float64 // m
	Dv float64 // m

	FL float64
	Fd float64 // zero selects 1
	XT float64 // pressure differential ratio factor at choked flow

	IgnoreChoked  bool
	IgnoreLaminar bool
}

// ValveSizing is the full result of a sizing calculation. Factors not used
// by a calculation are left at their neutral value.
type ValveSizing struct {
	Kv      float64
	Choked  bool
	Laminar bool
	Rev     float64
	FF      float64 // liquid critical pressure ratio factor
	FP      float64
	FLP     float64
	FR      float64
	Y       float64 // gas expansion factor
	XTP     float64 // xT with fittings
}

// kvToCv is US gallons per minute at 1 psi over cubic metres per hour at
// 1 bar, for water at 60 F.
const kvToCv = 1.1560992283536566

// KvToCv converts a metric flow coefficient to the imperial one.
func KvToCv(Kv float64) float64 { return kvToCv * Kv }

// CvToKv converts an imperial flow coefficient to the metric one.
func CvToKv(Cv float64) float64 { return Cv / kvToCv }

// FFCriticalPressureRatioL is the liquid critical pressure ratio factor.
func FFCriticalPressureRatioL(Psat, Pc float64) float64 {
	return 0.96 - 0.28*math.Sqrt(Psat/Pc)
}

// ReynoldsValve is the valve Reynolds number with nu in m^2/s, Q in m^3/h,
// D1 in mm and C as Kv.
func ReynoldsValve(nu, Q, D1, FL, Fd, C float64) float64 {
	return valveN4 * Fd * Q / nu / math.Sqrt(C*FL) *
		math.Pow(FL*FL*C*C/(valveN2*math.Pow(D1, 4))+1, 0.25)
}

// PipingGeometry holds the loss coefficients of the reducer and expander
// around a valve.
type PipingGeometry struct {
	K1, K2, KB1, KB2 float64
}

// NewPipingGeometry computes reducer and expander coefficients from the
// upstream, downstream and valve diameters.
func NewPipingGeometry(D1, D2, d float64) PipingGeometry {
	r1 := d / D1
	r2 := d / D2

	return PipingGeometry{
		K1:  0.5 * sq(1-r1*r1),
		K2:  sq(1 - r2*r2),
		KB1: 1 - r1*r1*r1*r1,
		KB2: 1 - r2*r2*r2*r2,
	}
}

// Sum is the total velocity head loss of the fittings.
func (g PipingGeometry) Sum() float64 { return g.K1 + g.K2 + g.KB1 - g.KB2 }

// FP is the piping geometry factor for flow coefficient C and valve
// diameter d in mm.
func (g PipingGeometry) FP(C, d float64) float64 {
	x := C / (d * d)
	return 1 / math.Sqrt(1+g.Sum()/valveN2*x*x)
}

// FLP is the combined liquid pressure recovery and piping geometry factor.
func (g PipingGeometry) FLP(C, d, FL float64) float64 {
	x := C / (d * d)
	return FL / math.Sqrt(1+FL*FL/valveN2*(g.K1+g.KB1)*x*x)
}

// XTP is the gas pressure differential ratio factor with fittings.
func (g PipingGeometry) XTP(C, d, xT, FP float64) float64 {
	x := C / (d * d)
	return xT / (FP * FP) / (1 + xT*(g.K1+g.KB1)/valveN5*x*x)
}

func sq(x float64) float64 { return x * x }

// iteratePiping re-evaluates the flow coefficient with piping factors taken
// at the previous estimate until it grows by less than 1 percent.
func iteratePiping(C float64, step func(Ci float64) float64) float64 {
	Ci := C
	for i := 0; ; i++ {
		C = step(Ci)
		if Ci/C >= 0.99 || i >= pipingMaxIter || Ci >= maxValveC {
			return C
		}
		Ci = C
	}
}

func hasFittings(D1, D2, d float64) bool {
	return D1 > 0 && D2 > 0 && d > 0 && (D1 != d || D2 != d)
}

// laminarFR iterates the Reynolds number factor from a turbulent flow
// coefficient C. rev returns the Reynolds number for a trial coefficient.
// d is the valve diameter in mm.
func laminarFR(C, d, FL float64, rev func(Ci float64) float64) (Kv, FR, Re float64) {
	Ci := 1.3 * C
	for i := 0; i < laminarMaxIter; i++ {
		Re = rev(Ci)
		FR = reynoldsFactor(Re, Ci, d, FL)
		if C/FR <= Ci {
			break
		}
		Ci *= 1.3
	}

	return C / FR, FR, Re
}

func reynoldsFactor(Re, C, d, FL float64) float64 {
	x := C / (d * d)
	var n float64
	if x < 0.016*valveN18 {
		n = valveN2 / (x * x)
	} else {
		n = 1 + valveN32*math.Pow(x, 2.0/3)
	}

	laminar := 0.026 / FL * math.Sqrt(n*Re)
	if Re < 10 {
		return math.Min(laminar, 1)
	}
	transitional := 1 + 0.33*math.Sqrt(FL)/math.Pow(n, 0.25)*math.Log10(Re/10000)

	return math.Min(math.Min(transitional, laminar), 1)
}

func checkValvePressures(P1, P2 float64) error {
	if !(P1 > P2) || P2 <= 0 {
		return fmt.Errorf("valve pressures P1=%g P2=%g: %w", P1, P2, ErrOutOfRange)
	}

	return nil
}

// SizeControlValveL returns the Kv of a liquid control valve.
func SizeControlValveL(v LiquidValve) (float64, error) {
	out, err := SizeControlValveLDetail(v)
	return out.Kv, err
}

// SizeControlValveLDetail sizes a liquid control valve according to IEC
// 60534-2-1 and returns every intermediate factor.
func SizeControlValveLDetail(v LiquidValve) (ValveSizing, error) {
	if err := checkValvePressures(v.P1, v.P2); err != nil {
		return ValveSizing{}, err
	}
	if v.FL <= 0 || v.Q <= 0 {
		return ValveSizing{}, fmt.Errorf("liquid valve FL=%g Q=%g: %w", v.FL, v.Q, ErrOutOfRange)
	}
	Fd := v.Fd
	if Fd == 0 {
		Fd = 1
	}

	P1, P2, Psat := v.P1/1000, v.P2/1000, v.Psat/1000
	Q := v.Q * 3600
	nu := v.Mu / v.Rho
	rhoRatio := v.Rho / RhoWater
	D1, D2, d := v.D1*1000, v.D2*1000, v.Dv*1000
	dP := P1 - P2
	FL := v.FL

	out := ValveSizing{
		FF:  FFCriticalPressureRatioL(v.Psat, v.Pc),
		FP:  1,
		FLP: FL,
		FR:  1,
		Y:   1,
	}
	chokedDP := P1 - out.FF*Psat

	out.Choked = !v.IgnoreChoked && dP >= FL*FL*chokedDP
	var C float64
	if out.Choked {
		C = Q / valveN1 / FL * math.Sqrt(rhoRatio/chokedDP)
	} else {
		C = Q / valveN1 * math.Sqrt(rhoRatio/dP)
	}

	Dref := D1
	if Dref == 0 {
		Dref = d
	}
	rev := func(Ci float64) float64 { return ReynoldsValve(nu, Q, Dref, FL, Fd, Ci) }
	out.Rev = rev(C)

	if out.Rev > valveReTurbulent || v.IgnoreLaminar {
		if hasFittings(D1, D2, d) {
			g := NewPipingGeometry(D1, D2, d)
			C = iteratePiping(C, func(Ci float64) float64 {
				out.FP = g.FP(Ci, d)
				out.FLP = g.FLP(Ci, d, FL)
				out.Choked = !v.IgnoreChoked && dP >= sq(out.FLP/out.FP)*chokedDP
				if out.Choked {
					return Q / (valveN1 * out.FLP) * math.Sqrt(rhoRatio/chokedDP)
				}
				return Q / (valveN1 * out.FP) * math.Sqrt(rhoRatio/dP)
			})
		}
		out.Kv = C

		return out, nil
	}

	if d == 0 {
		return out, fmt.Errorf("laminar liquid valve sizing needs the valve diameter: %w", ErrOutOfRange)
	}
	out.Laminar = true
	out.Choked = false
	C = Q / valveN1 * math.Sqrt(rhoRatio/dP)
	out.Kv, out.FR, out.Rev = laminarFR(C, d, FL, rev)

	return out, nil
}

// SizeControlValveG returns the Kv of a gas control valve.
func SizeControlValveG(v GasValve) (float64, error) {
	out, err := SizeControlValveGDetail(v)
	return out.Kv, err
}

// SizeControlValveGDetail sizes a gas control valve according to IEC
// 60534-2-1 and returns every intermediate factor.
func SizeControlValveGDetail(v GasValve) (ValveSizing, error) {
	if err := checkValvePressures(v.P1, v.P2); err != nil {
		return ValveSizing{}, err
	}
	if v.XT <= 0 || v.Q <= 0 || v.Gamma <= 0 {
		return ValveSizing{}, fmt.Errorf("gas valve xT=%g Q=%g gamma=%g: %w", v.XT, v.Q, v.Gamma, ErrOutOfRange)
	}
	Fd := v.Fd
	if Fd == 0 {
		Fd = 1
	}
	Z := v.Z
	if Z == 0 {
		Z = 1
	}

	P1, P2 := v.P1/1000, v.P2/1000
	Q := v.Q * 3600
	rho := v.P1 * v.MW * 1e-3 / (Z * R * v.T)
	nu := v.Mu / rho
	D1, D2, d := v.D1*1000, v.D2*1000, v.Dv*1000
	dP := P1 - P2
	x := dP / P1
	Fgamma := v.Gamma / 1.4

	// Y stays at its bare-valve value through the piping iteration.
	out := ValveSizing{
		FP:  1,
		FLP: v.FL,
		FR:  1,
		XTP: v.XT,
		Y:   math.Max(1-x/(3*Fgamma*v.XT), 2.0/3),
	}

	size := func(FP, xT float64) float64 {
		out.Choked = !v.IgnoreChoked && x >= Fgamma*xT
		xu := x
		if out.Choked {
			xu = Fgamma * xT
		}

		return Q / (valveN9 * FP * P1 * out.Y) * math.Sqrt(v.MW*v.T*Z/xu)
	}
	C := size(1, v.XT)

	Dref := D1
	if Dref == 0 {
		Dref = d
	}
	rev := func(Ci float64) float64 { return ReynoldsValve(nu, Q, Dref, v.FL, Fd, Ci) }
	out.Rev = rev(C)

	if out.Rev > valveReTurbulent || v.IgnoreLaminar {
		if hasFittings(D1, D2, d) {
			g := NewPipingGeometry(D1, D2, d)
			C = iteratePiping(C, func(Ci float64) float64 {
				out.FP = g.FP(Ci, d)
				out.XTP = g.XTP(Ci, d, v.XT, out.FP)
				return size(out.FP, out.XTP)
			})
		}
		out.Kv = C

		return out, nil
	}

	if d == 0 {
		return out, fmt.Errorf("laminar gas valve sizing needs the valve diameter: %w", ErrOutOfRange)
	}
	out.Laminar = true
	out.Choked = false
	out.Y = 1
	C = Q / valveN22 * math.Sqrt(v.MW*v.T/(dP*(P1+P2)))
	out.Kv, out.FR, out.Rev = laminarFR(C, d, v.FL, rev)

	return out, nil
}
