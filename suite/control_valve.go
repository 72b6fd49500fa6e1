package suite

import "github.com/weiihann/fluidbench/fluids"

// ControlValve registers the valve sizing and noise cases. None of them
// has a kernel.
func ControlValve() Suite {
	gas := fluids.GasValve{
		T: 433, MW: 44.01, Mu: 1.4665e-4, Gamma: 1.30, Z: 0.988,
		P1: 680e3, P2: 310e3, Q: 38 / 36.,
		D1: 0.08, D2: 0.1, Dv: 0.05,
		FL: 0.85, Fd: 0.42, XT: 0.60,
	}
	liquid := fluids.LiquidValve{
		Rho: 965.4, Psat: 70.1e3, Pc: 22120e3, Mu: 3.1472e-4,
		P1: 680e3, P2: 220e3, Q: 0.1,
		D1: 0.15, D2: 0.15, Dv: 0.15,
		FL: 0.9, Fd: 0.46,
	}
	liquidNoise := fluids.LiquidValveNoise{
		M: 40, P1: 1e6, P2: 6.5e5, Psat: 2.32e3, Rho: 997, C: 1400,
		Kv: 77.848, D: 0.1, Di: 0.1071, FL: 0.92, Fd: 0.42,
		Pipe: fluids.PipeWall{T: 0.0036, Rho: 7800, C: 5000, RhoAir: 1.293, CAir: 343},
		An:   -4.6,
	}
	gasNoise := fluids.GasValveNoise{
		M: 2.22, P1: 1e6, P2: 7.2e5, T1: 450, Rho: 5.3, Gamma: 1.22, MW: 19.8,
		Kv: 77.85, D: 0.1, Di: 0.2031, FLP: 0.792, FP: 0.98, Fd: 0.296,
		Pipe: fluids.PipeWall{T: 0.008, Rho: 8000, C: 5000, RhoAir: 1.293, CAir: 343},
		An:   -3.8,
		Stp:  0.2,
	}

	return Suite{
		Name: "control_valve",
		Cases: []Case{
			plainCase("size_control_valve_g", structParams(gas), func() (float64, error) {
				return fluids.SizeControlValveG(gas)
			}),
			plainCase("size_control_valve_l", structParams(liquid), func() (float64, error) {
				return fluids.SizeControlValveL(liquid)
			}),
			plainCase("control_valve_noise_l_2015", structParams(liquidNoise), func() (float64, error) {
				return fluids.ControlValveNoiseL2015(liquidNoise)
			}),
			plainCase("control_valve_noise_g_2011", structParams(gasNoise), func() (float64, error) {
				return fluids.ControlValveNoiseG2011(gasNoise)
			}),
		},
	}
}

// structParams records a parameter struct as a single catalog entry.
func structParams(v any) Params {
	return Params{"args": v}
}
