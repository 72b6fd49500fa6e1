package suite

import (
	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/kernel"
)

// Compressible registers the isothermal and isentropic gas flow cases.
func Compressible() Suite {
	const (
		rho, fd, L = 11.3, 0.00185, 1000.0
		P1, P2     = 1e6, 9e5
		m, D       = 145.48475726, 0.5

		T1, k, eta = 300.0, 1.4, 0.78
		Pc1, Pc2   = 1e5, 1e6
	)
	isothermal := func(p fluids.IsothermalGasParams) Op {
		return func() (float64, error) { return fluids.IsothermalGas(p) }
	}

	gasD := Params{"rho": rho, "fd": fd, "P1": P1, "P2": P2, "L": L, "m": m}
	work := Params{"P1": Pc1, "P2": Pc2, "T1": T1, "k": k, "eta": eta}
	efficiency := Params{"P1": Pc1, "P2": Pc2, "k": k, "eta_p": eta}

	return Suite{
		Name: "compressible",
		Cases: []Case{
			plainCase("isothermal_gas_D", gasD,
				isothermal(fluids.IsothermalGasParams{Rho: rho, Fd: fd, P1: P1, P2: P2, L: L, M: m})),
			kernelCase("isothermal_gas_D", gasD, func() (Op, error) {
				solve := kernel.IsothermalGasD(rho, fd, P1, P2, L)
				return func() (float64, error) { return solve(m) }, nil
			}),

			plainCase("isothermal_gas_P1",
				Params{"rho": rho, "fd": fd, "P2": P2, "L": L, "m": m, "D": D},
				isothermal(fluids.IsothermalGasParams{Rho: rho, Fd: fd, P2: P2, L: L, M: m, D: D})),
			plainCase("isothermal_gas_P2",
				Params{"rho": rho, "fd": fd, "P1": P1, "L": L, "m": m, "D": D},
				isothermal(fluids.IsothermalGasParams{Rho: rho, Fd: fd, P1: P1, L: L, M: m, D: D})),

			plainCase("isentropic_work_compression", work, func() (float64, error) {
				return fluids.IsentropicWorkCompression(fluids.IsentropicWorkParams{
					T1: T1, K: k, P1: Pc1, P2: Pc2, Eta: eta,
				})
			}),
			kernelCase("isentropic_work_compression", work, func() (Op, error) {
				compress := kernel.IsentropicWorkCompression(k, 1)
				return func() (float64, error) { return compress(T1, Pc1, Pc2, eta), nil }, nil
			}),

			plainCase("isentropic_efficiency", efficiency, func() (float64, error) {
				return fluids.IsentropicEfficiencyFromPolytropic(Pc1, Pc2, k, eta), nil
			}),
			kernelCase("isentropic_efficiency", efficiency, func() (Op, error) {
				eff := kernel.IsentropicEfficiency(k)
				return func() (float64, error) { return eff(Pc1, Pc2, eta), nil }, nil
			}),

			plainCase("P_isothermal_critical_flow",
				Params{"P": P1, "fd": fd, "L": L, "D": D},
				func() (float64, error) {
					return fluids.PIsothermalCriticalFlow(P1, fd, D, L)
				}),
		},
	}
}
