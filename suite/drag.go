package suite

import (
	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/kernel"
)

// Drag registers the sphere drag and terminal velocity cases.
func Drag() Suite {
	const (
		Re                 = 20000.0
		D, rhop, rho, mu   = 70e-6, 2600.0, 1000.0, 1e-3
		method             = fluids.DragBaratiHigh
		terminalMethod     = ""
		integrationSeconds = 0.5
	)
	dragParams := Params{"Re": Re, "method": method}
	terminalParams := Params{"D": D, "rhop": rhop, "rho": rho, "mu": mu}
	integration := fluids.DragIntegration{
		D: 0.001, Rhop: 2200, Rho: 1.2, Mu: 1.78e-5, T: integrationSeconds, V: 30,
	}

	return Suite{
		Name: "drag",
		Cases: []Case{
			plainCase("drag_sphere", dragParams, func() (float64, error) {
				return fluids.DragSphere(Re, method)
			}),
			kernelCase("drag_sphere", dragParams, func() (Op, error) {
				cd, err := kernel.DragSphere(method)
				if err != nil {
					return nil, err
				}
				return func() (float64, error) { return cd(Re), nil }, nil
			}),

			plainCase("v_terminal", terminalParams, func() (float64, error) {
				return fluids.VTerminal(D, rhop, rho, mu, terminalMethod)
			}),
			kernelCase("v_terminal", terminalParams, func() (Op, error) {
				vt, err := kernel.VTerminal(terminalMethod)
				if err != nil {
					return nil, err
				}
				return func() (float64, error) { return vt(D, rhop, rho, mu) }, nil
			}),

			plainCase("integrate_drag_sphere",
				Params{"D": integration.D, "rhop": integration.Rhop, "rho": integration.Rho,
					"mu": integration.Mu, "t": integration.T, "V": integration.V, "distance": true},
				func() (float64, error) {
					tr, err := fluids.IntegrateDragSphere(integration)
					if err != nil {
						return 0, err
					}
					return tr.X, nil
				}),
		},
	}
}
