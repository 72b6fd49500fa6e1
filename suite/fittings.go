package suite

import (
	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/kernel"
)

const (
	darbyFitting  = "Valve, Angle valve, 45°, full line size, β = 1"
	hooperFitting = "Valve, Globe, Standard"
)

// Fittings registers the fitting loss coefficient cases.
func Fittings() Suite {
	const (
		K1, D1, D2   = 32.68875692997804, 0.01, 0.02
		Di, t, l     = 0.1, 0.0005, 0.02
		NPS, Re      = 2.0, 10000.0
		hooperDi     = 2.0
		rhoLift      = 998.2
		lift1, lift2 = 0.0627, 0.0779
		Drun, Dbr    = 0.1023, 0.1023
		Qrun, Qbr    = 0.018917, 0.00633
		teeAngle     = 90.0
	)

	kBasis := Params{"K1": K1, "D1": D1, "D2": D2}
	darby := Params{"NPS": NPS, "Re": Re, "name": darbyFitting}
	hooper := Params{"Di": hooperDi, "Re": Re, "name": hooperFitting}
	angle := Params{"D1": D1, "D2": D2}
	vLift := Params{"rho": rhoLift, "D1": lift1, "D2": lift2, "style": fluids.LiftCheckStraight}
	tee := Params{"Drun": Drun, "Dbranch": Dbr, "Qrun": Qrun, "Qbranch": Qbr, "angle": teeAngle}

	cases := []Case{
		plainCase("change_K_basis", kBasis, func() (float64, error) {
			return fluids.ChangeKBasis(K1, D1, D2), nil
		}),
		kernelCase("change_K_basis", kBasis, func() (Op, error) {
			change := kernel.ChangeKBasis(D1, D2)
			return func() (float64, error) { return change(K1), nil }, nil
		}),
	}
	for _, c := range []struct{ name, method string }{
		{"entrance_distance_rennels", fluids.EntranceRennels},
		{"entrance_distance_idelchik", fluids.EntranceIdelchik},
	} {
		params := Params{"Di": Di, "t": t, "l": l, "method": c.method}
		method := c.method
		cases = append(cases,
			plainCase(c.name, params, func() (float64, error) {
				return fluids.EntranceDistance(Di, t, l, method)
			}),
			kernelCase(c.name, params, func() (Op, error) {
				k, err := kernel.EntranceDistance(method)
				if err != nil {
					return nil, err
				}
				return func() (float64, error) { return k(Di, t, l), nil }, nil
			}),
		)
	}

	cases = append(cases,
		plainCase("Darby3K", darby, func() (float64, error) {
			return fluids.Darby3K(NPS, Re, darbyFitting)
		}),
		kernelCase("Darby3K", darby, func() (Op, error) {
			k, err := kernel.Darby3K(darbyFitting)
			if err != nil {
				return nil, err
			}
			return func() (float64, error) { return k(NPS, Re), nil }, nil
		}),

		plainCase("Hooper2K", hooper, func() (float64, error) {
			return fluids.Hooper2K(hooperDi, Re, hooperFitting)
		}),
		kernelCase("Hooper2K", hooper, func() (Op, error) {
			k, err := kernel.Hooper2K(hooperFitting)
			if err != nil {
				return nil, err
			}
			return func() (float64, error) { return k(hooperDi, Re), nil }, nil
		}),

		plainCase("K_angle_valve_Crane", angle, func() (float64, error) {
			return fluids.KAngleValveCrane(D1, D2, 0, fluids.AngleValveStyle0)
		}),
		kernelCase("K_angle_valve_Crane", angle, func() (Op, error) {
			k, err := kernel.KAngleValveCrane(fluids.AngleValveStyle0)
			if err != nil {
				return nil, err
			}
			return func() (float64, error) { return k(D1, D2, 0), nil }, nil
		}),

		plainCase("v_lift_valve_Crane", vLift, func() (float64, error) {
			return fluids.VLiftValveCrane(rhoLift, lift1, lift2, fluids.LiftCheckStraight)
		}),
		kernelCase("v_lift_valve_Crane", vLift, func() (Op, error) {
			v, err := kernel.VLiftValveCrane(fluids.LiftCheckStraight)
			if err != nil {
				return nil, err
			}
			return func() (float64, error) { return v(rhoLift, lift1, lift2), nil }, nil
		}),

		plainCase("K_branch_converging_Crane", tee, func() (float64, error) {
			return fluids.KBranchConvergingCrane(Drun, Dbr, Qrun, Qbr, teeAngle)
		}),
		kernelCase("K_branch_converging_Crane", tee, func() (Op, error) {
			k, err := kernel.KBranchConvergingCrane(teeAngle)
			if err != nil {
				return nil, err
			}
			return func() (float64, error) { return k(Drun, Dbr, Qrun, Qbr), nil }, nil
		}),
	)

	return Suite{Name: "fittings", Cases: cases}
}
