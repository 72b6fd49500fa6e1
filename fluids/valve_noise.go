package fluids

import (
	"fmt"
	"math"
)

// Third-octave band centre frequencies used for noise spectra, Hz.
var thirdOctaveBands = [...]float64{
	12.5, 16, 20, 25, 31.5, 40, 50, 63, 80, 100, 125, 160, 200, 250, 315, 400,
	500, 630, 800, 1000, 1250, 1600, 2000, 2500, 3150, 4000, 5000, 6300, 8000,
	10000, 12500, 16000, 20000,
}

// A-weighting corrections for thirdOctaveBands, dB.
var aWeights = [len(thirdOctaveBands)]float64{
	-63.4, -56.7, -50.5, -44.7, -39.4, -34.6, -30.2, -26.2, -22.5, -19.1, -16.1,
	-13.4, -10.9, -8.6, -6.6, -4.8, -3.2, -1.9, -0.8, 0.0, 0.6, 1.0, 1.2, 1.3,
	1.2, 1.0, 0.5, -0.1, -1.1, -2.5, -4.3, -6.6, -9.3,
}

const (
	noiseN14Gas    = 4.9e-3
	noiseN14Liquid = 4.6e-3
	noiseN34       = 1.17

	// Reference pressure level factor: 1/(pi/4 * (2e-5 Pa)^2).
	noiseLpiFactor = 3.2e9
)

// PipeWall describes the pipe downstream of a valve and the air around it.
// Zero fields select steel in air.
type PipeWall struct {
	T      float64 // wall thickness, m
	Rho    float64 // kg/m^3
	C      float64 // speed of sound in the wall, m/s
	RhoAir float64
	CAir   float64
}

func (w PipeWall) withDefaults() PipeWall {
	if w.Rho == 0 {
		w.Rho = 7800
	}
	if w.C == 0 {
		w.C = 5000
	}
	if w.RhoAir == 0 {
		w.RhoAir = 1.293
	}
	if w.CAir == 0 {
		w.CAir = 343
	}

	return w
}

// LiquidValveNoise is the operating point for IEC 60534-8-4 liquid noise.
type LiquidValveNoise struct {
	M    float64 // mass flow, kg/s
	P1   float64 // Pa
	P2   float64 // Pa
	Psat float64 // Pa
	Rho  float64 // kg/m^3
	C    float64 // speed of sound in the liquid, m/s
	Kv   float64
	D    float64 // valve outlet diameter, m
	Di   float64 // downstream pipe inside diameter, m
	FL   float64
	Fd   float64
	Pipe PipeWall
	XFz  float64 // incipient cavitation index; zero estimates it
	An   float64 // acoustical efficiency exponent; zero selects -4.6
}

// GasValveNoise is the operating point for IEC 60534-8-3 gas noise.
type GasValveNoise struct {
	M     float64 // mass flow, kg/s
	P1    float64 // Pa
	P2    float64 // Pa
	T1    float64 // K
	Rho   float64 // inlet density, kg/m^3
	Gamma float64
	MW    float64 // g/mol
	Kv    float64
	D     float64 // valve outlet diameter, m
	Di    float64 // downstream pipe inside diameter, m
	FL    float64 // used when FLP and FP are not both given
	FLP   float64
	FP    float64
	Fd    float64
	Pipe  PipeWall
	An    float64 // zero selects -3.8
	Stp   float64 // peak frequency Strouhal number; zero selects 0.2
}

// pipeRadiation is the level drop from the pipe wall to 1 m outside it.
func pipeRadiation(Di float64, w PipeWall) float64 {
	return 10 * math.Log10((Di + 2*w.T + 2) / (Di + 2*w.T))
}

// ControlValveNoiseL2015 predicts the A-weighted sound pressure level 1 m
// from the pipe downstream of a liquid control valve, IEC 60534-8-4:2015.
func ControlValveNoiseL2015(n LiquidValveNoise) (float64, error) {
	if !(n.P1 > n.P2) || n.P1 <= n.Psat || n.Kv <= 0 || n.FL <= 0 || n.Pipe.T <= 0 {
		return 0, fmt.Errorf("liquid valve noise P1=%g P2=%g Psat=%g Kv=%g: %w",
			n.P1, n.P2, n.Psat, n.Kv, ErrOutOfRange)
	}
	w := n.Pipe.withDefaults()
	An := n.An
	if An == 0 {
		An = -4.6
	}

	C := KvToCv(n.Kv)
	FL := n.FL
	xF := (n.P1 - n.P2) / (n.P1 - n.Psat)
	dPc := math.Min(n.P1-n.P2, FL*FL*(n.P1-n.Psat))

	xFz := n.XFz
	if xFz == 0 {
		xFz = 0.9 / math.Sqrt(1+3*n.Fd*math.Sqrt(C/(noiseN34*FL)))
	}
	xFzp1 := xFz * math.Pow(6e5/n.P1, 0.125)

	Dj := noiseN14Liquid * n.Fd * math.Sqrt(C*FL)
	Uvc := math.Sqrt(2*dPc/n.Rho) / FL
	Wm := 0.5 * n.M * Uvc * Uvc * FL * FL
	etaTurb := math.Pow(10, An) * Uvc / n.C

	cavitating := xF > xFzp1
	var etaCav float64
	if cavitating {
		etaCav = 0.32 * etaTurb * math.Sqrt((n.P1-n.P2)/(dPc*xFzp1)) * math.Exp(5*xFzp1) *
			math.Sqrt((1-xFzp1)/(1-xF)) * math.Pow(xF/xFzp1, 5) * math.Pow(xF-xFzp1, 1.5)
	}
	Wa := (etaTurb + etaCav) * Wm
	Lpi := 10 * math.Log10(noiseLpiFactor*Wa*n.Rho*n.C/(n.Di*n.Di))

	Stp := 0.036 * FL * FL * C * math.Pow(n.Fd, 0.75) /
		(noiseN34 * math.Pow(xFzp1, 1.5) * n.D * n.D) *
		math.Pow(1/(n.P1-n.Psat), 0.57)
	fpTurb := Stp * Uvc / Dj
	var fpCav float64
	if cavitating {
		fpCav = 6 * fpTurb * sq((1-xF)/(1-xFzp1)) * math.Pow(xFzp1/xF, 2.5)
	}
	shareTurb := etaTurb / (etaTurb + etaCav)
	shareCav := etaCav / (etaTurb + etaCav)

	// Transmission loss at the ring frequency; it falls off on both sides.
	fr := w.C / (math.Pi * n.Di)
	tlRing := -10 - 10*math.Log10(w.C*w.Rho*w.T/(w.CAir*w.RhoAir*n.Di))
	radiation := pipeRadiation(n.Di, w)

	var sum float64
	for i, f := range thirdOctaveBands {
		rt := f / fpTurb
		turb := -8 - 10*math.Log10(0.25*rt*rt*rt+1/rt)
		L := Lpi + turb
		if cavitating {
			rc := f / fpCav
			cav := -9 - 10*math.Log10(0.25*math.Pow(rc, 1.5)+math.Pow(rc, -1.5))
			L = Lpi + 10*math.Log10(shareTurb*math.Pow(10, 0.1*turb)+shareCav*math.Pow(10, 0.1*cav))
		}
		TL := tlRing - 20*math.Log10(fr/f+math.Pow(f/fr, 1.5))
		sum += math.Pow(10, 0.1*(L+aWeights[i]+TL-radiation))
	}

	return 10 * math.Log10(sum), nil
}

// smallValveTL is the extra transmission loss correction for valve outlet
// diameter d, m.
func smallValveTL(d float64) float64 {
	switch {
	case d > 0.15:
		return 0
	case d >= 0.05:
		return -16660*d*d*d + 6370*d*d - 813*d + 35.8
	default:
		return 9
	}
}

// ControlValveNoiseG2011 predicts the A-weighted sound pressure level 1 m
// from the pipe downstream of a gas control valve, IEC 60534-8-3:2010.
// Noise from an outlet expander at pipe Mach numbers above 0.3 is not
// included.
func ControlValveNoiseG2011(n GasValveNoise) (float64, error) {
	if !(n.P1 > n.P2) || n.P2 <= 0 || n.Kv <= 0 || n.Gamma <= 1 || n.Pipe.T <= 0 {
		return 0, fmt.Errorf("gas valve noise P1=%g P2=%g Kv=%g gamma=%g: %w",
			n.P1, n.P2, n.Kv, n.Gamma, ErrOutOfRange)
	}
	w := n.Pipe.withDefaults()
	An := n.An
	if An == 0 {
		An = -3.8
	}
	Stp := n.Stp
	if Stp == 0 {
		Stp = 0.2
	}
	FL := n.FL
	if n.FP != 0 && n.FLP != 0 {
		FL = n.FLP / n.FP
	}
	if FL <= 0 {
		return 0, fmt.Errorf("gas valve noise needs FL or FLP and FP: %w", ErrOutOfRange)
	}

	g := n.Gamma
	x := (n.P1 - n.P2) / n.P1

	// Regime boundaries as pressure drop ratios.
	xVcc := 1 - math.Pow(2/(g+1), g/(g-1))
	xC := FL * FL * xVcc
	alpha := (1 - xVcc) / (1 - xC)
	xB := 1 - math.Pow(1/g, g/(g-1))/alpha
	xCE := 1 - 1/(22*alpha)

	C := KvToCv(n.Kv)
	Dj := noiseN14Gas * n.Fd * math.Sqrt(C*FL)
	Mj5 := math.Sqrt(2 / (g - 1) * (math.Pow(22, (g-1)/g) - 1))
	base := math.Pow(10, An)
	shock := math.Pow(math.Sqrt2, 6.6*FL*FL)

	var eta, Wm, fp float64
	if x <= xC {
		pr := 1 - x/(FL*FL)
		Mvc := math.Sqrt(2 / (g - 1) * (math.Pow(pr, (1-g)/g) - 1))
		cvc := math.Sqrt(g * n.P1 / n.Rho * math.Pow(pr, (g-1)/g))
		Wm = 0.5 * n.M * sq(Mvc*cvc)
		fp = Stp * Mvc * cvc / Dj
		eta = base * FL * FL * Mvc * Mvc * Mvc
	} else {
		cvcc := math.Sqrt(2 * g * n.P1 / ((g + 1) * n.Rho))
		Wm = 0.5 * n.M * cvcc * cvcc
		Mj := math.Min(math.Sqrt(2/(g-1)*(math.Pow(1/(alpha*(1-x)), (g-1)/g)-1)), Mj5)
		switch {
		case x <= xVcc:
			fp = Stp * Mj * cvcc / Dj
			eta = base * x / xVcc * math.Pow(Mj, 6.6*FL*FL)
		case x <= xB:
			fp = Stp * Mj * cvcc / Dj
			eta = base * math.Pow(Mj, 6.6*FL*FL)
		case x <= xCE:
			fp = 1.4 * Stp * cvcc / (Dj * math.Sqrt(Mj*Mj-1))
			eta = 0.5 * base * Mj * Mj * shock
		default:
			fp = 1.4 * Stp * cvcc / (Dj * math.Sqrt(Mj5*Mj5-1))
			eta = 0.5 * base * Mj5 * Mj5 * shock
		}
	}

	rho2 := n.Rho * n.P2 / n.P1
	c2 := math.Sqrt(g * R * n.T1 / (n.MW * 1e-3))
	M2 := 4 * n.M / (math.Pi * n.Di * n.Di * rho2 * c2)
	Lg := 16 * math.Log10(1/(1-math.Min(M2, 0.3)))
	Lpi := 10*math.Log10(noiseLpiFactor*eta*Wm*rho2*c2/(n.Di*n.Di)) + Lg

	// Ring, internal coincidence and external coincidence frequencies.
	fr := w.C / (math.Pi * n.Di)
	fo := fr / 4 * (c2 / w.CAir)
	fg := math.Sqrt(3) * w.CAir * w.CAir / (math.Pi * w.T * w.C)
	dTL := smallValveTL(n.D)
	radiation := pipeRadiation(n.Di, w)

	var sum float64
	for i, f := range thirdOctaveBands {
		r := f / fp
		L := Lpi - 8 - 10*math.Log10((1+math.Pow(0.5*r, 2.5))*(1+math.Pow(0.5/r, 1.7)))

		var Gx, Gy float64
		switch {
		case f < fo:
			Gx = math.Pow(fo/fr, 2.0/3) * math.Pow(f/fo, 4)
			Gy = math.Min(fo/fg, 1)
		case f < fr:
			Gx = math.Sqrt(f / fr)
			Gy = math.Min(f/fg, 1)
		default:
			Gx = 1
			Gy = math.Min(f/fg, 1)
		}
		TL := 10*math.Log10(8.25e-7*sq(c2/(w.T*f))*Gx/(rho2*c2/(415*Gy)+1)*Atm/n.P2) - dTL

		sum += math.Pow(10, 0.1*(L+aWeights[i]+TL-radiation))
	}

	return 5 + 10*math.Log10(sum), nil
}
