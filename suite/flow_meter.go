package suite

import (
	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/kernel"
)

// meterCase is one differential pressure meter whose solver is benchmarked
// for each unknown.
type meterCase struct {
	suffix    string
	meterType string
	taps      string
}

var meterCases = []meterCase{
	{"", fluids.MeterISO5167Orifice, fluids.TapsD},
	{"_Miller_orifice", fluids.MeterMillerOrifice, fluids.TapsCorner},
	{"_long_radius_nozzle", fluids.MeterLongRadiusNozzle, ""},
}

// FlowMeter registers the discharge coefficient and meter solver cases.
func FlowMeter() Suite {
	const (
		rhgD, rhgDo   = 0.07391, 0.0222
		rhgRho, rhgMu = 1.165, 1.85e-5
		rhgM          = 0.12
		D, D2         = 0.07366, 0.05
		P1, P2        = 200000.0, 183000.0
		rho, mu, k    = 999.1, 0.0011, 1.33
		m             = 7.702338035732167
		venturiD, Do  = D, D2
		rhgTaps       = fluids.TapsFlange
	)
	rhgParams := Params{"D": rhgD, "Do": rhgDo, "rho": rhgRho, "mu": rhgMu, "m": rhgM, "taps": rhgTaps}
	venturi := Params{"D": venturiD, "Do": Do, "P1": P1, "P2": P2}

	cases := []Case{
		plainCase("C_Reader_Harris_Gallagher", rhgParams, func() (float64, error) {
			return fluids.CReaderHarrisGallagher(rhgD, rhgDo, rhgRho, rhgMu, rhgM, rhgTaps)
		}),
		kernelCase("C_Reader_Harris_Gallagher", rhgParams, func() (Op, error) {
			c, err := kernel.CReaderHarrisGallagher(rhgTaps)
			if err != nil {
				return nil, err
			}
			return func() (float64, error) { return c(rhgD, rhgDo, rhgRho, rhgMu, rhgM), nil }, nil
		}),

		plainCase("dP_venturi_tube", venturi, func() (float64, error) {
			return fluids.DPVenturiTube(venturiD, Do, P1, P2), nil
		}),
		kernelCase("dP_venturi_tube", venturi, func() (Op, error) {
			dp := kernel.DPVenturiTube(venturiD, Do)
			return func() (float64, error) { return dp(P1, P2), nil }, nil
		}),
	}

	for _, mc := range meterCases {
		base := fluids.MeterParams{
			D: D, D2: D2, P1: P1, P2: P2, M: m,
			Rho: rho, Mu: mu, K: k,
			MeterType: mc.meterType, Taps: mc.taps,
		}
		solvers := []struct {
			unknown string
			params  fluids.MeterParams
			solve   func(*kernel.Meter) (float64, error)
		}{
			{"m", withoutM(base), func(mt *kernel.Meter) (float64, error) {
				return mt.M(D, D2, P1, P2, rho, mu, k)
			}},
			{"P2", withoutP2(base), func(mt *kernel.Meter) (float64, error) {
				return mt.P2(D, D2, P1, rho, mu, k, m)
			}},
			{"P1", withoutP1(base), func(mt *kernel.Meter) (float64, error) {
				return mt.P1(D, D2, P2, rho, mu, k, m)
			}},
			{"D2", withoutD2(base), func(mt *kernel.Meter) (float64, error) {
				return mt.D2(D, P1, P2, rho, mu, k, m)
			}},
		}

		for _, s := range solvers {
			name := "differential_pressure_meter_solver_" + s.unknown + mc.suffix
			params := meterParams(s.params)
			cases = append(cases,
				plainCase(name, params, func() (float64, error) {
					return fluids.DifferentialPressureMeterSolver(s.params)
				}),
				kernelCase(name, params, func() (Op, error) {
					mt, err := kernel.NewMeter(mc.meterType, mc.taps)
					if err != nil {
						return nil, err
					}
					return func() (float64, error) { return s.solve(mt) }, nil
				}),
			)
		}
	}

	return Suite{Name: "flow_meter", Cases: cases}
}

func withoutM(p fluids.MeterParams) fluids.MeterParams {
	p.M = 0
	return p
}

func withoutP1(p fluids.MeterParams) fluids.MeterParams {
	p.P1 = 0
	return p
}

func withoutP2(p fluids.MeterParams) fluids.MeterParams {
	p.P2 = 0
	return p
}

func withoutD2(p fluids.MeterParams) fluids.MeterParams {
	p.D2 = 0
	return p
}

// meterParams lists the known quantities of p, leaving out the unknown.
func meterParams(p fluids.MeterParams) Params {
	params := Params{"D": p.D, "rho": p.Rho, "mu": p.Mu, "k": p.K, "meter_type": p.MeterType}
	if p.Taps != "" {
		params["taps"] = p.Taps
	}
	for key, v := range map[string]float64{"D2": p.D2, "P1": p.P1, "P2": p.P2, "m": p.M} {
		if v != 0 {
			params[key] = v
		}
	}

	return params
}
