// Package fluids implements the fluid-dynamics engineering correlations
// measured by fluidbench: the 1976 standard atmosphere and solar geometry,
// isothermal and isentropic compressible flow, IEC 60534 control valve
// sizing and noise, sphere drag, fitting loss coefficients and ISO 5167
// differential-pressure meters.
//
// All inputs and outputs are SI unless a function says otherwise.
package fluids

import "errors"

var (
	// ErrUnknownMethod is returned for an unrecognized correlation,
	// fitting, tap or meter name.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrUnknowns is returned when a solver is not given exactly one
	// unknown to solve for.
	ErrUnknowns = errors.New("exactly one unknown required")

	// ErrOutOfRange is returned when an input lies outside the range a
	// correlation is defined for.
	ErrOutOfRange = errors.New("input out of range")
)

// Physical constants.
const (
	R        = 8.314462618  // J/(mol*K)
	G0       = 9.80665      // m/s^2
	Inch     = 0.0254       // m
	Atm      = 101325.0     // Pa
	RhoWater = 999.10329075 // kg/m^3, IEC 60534 reference water density
)

// unknowns returns the index of the single zero value in vals, or -1 when
// there is not exactly one.
func unknowns(vals ...float64) int {
	idx := -1
	for i, v := range vals {
		if v == 0 {
			if idx >= 0 {
				return -1
			}
			idx = i
		}
	}

	return idx
}
