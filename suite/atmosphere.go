package suite

import (
	"github.com/weiihann/fluidbench/fluids"
	"github.com/weiihann/fluidbench/kernel"
)

// Atmosphere registers the standard atmosphere and solar cases.
func Atmosphere(fx Fixtures) Suite {
	const (
		Z                      = 5000.0
		T1, P1, dH             = 288.6, 84100.0, 147.0
		angle                  = 90.0
		perthLat, perthLon     = -31.95265, 115.85742
		calgaryLat, calgaryLon = 51.0486, -114.07
	)
	rho := func(Z float64) float64 { return fluids.Atmosphere1976(Z, 0).Rho }
	irradiation := fluids.IrradiationParams{
		Z:              1100,
		Latitude:       calgaryLat,
		Longitude:      calgaryLon,
		LinkeTurbidity: 3,
		Moment:         fx.Edmonton,
		SurfaceTilt:    41,
		SurfaceAzimuth: 180,
	}

	atmParams := Params{"Z": Z}
	integralParams := Params{"T1": T1, "P1": P1, "dH": dH}
	airmassParams := Params{"rho": "atmosphere_1976", "angle": angle}

	return Suite{
		Name: "atmosphere",
		Cases: []Case{
			plainCase("atmosphere_1976", atmParams, func() (float64, error) {
				return fluids.Atmosphere1976(Z, 0).Rho, nil
			}),
			kernelCase("atmosphere_1976", atmParams, func() (Op, error) {
				atm := kernel.Atmosphere1976(0)
				return func() (float64, error) { return atm(Z).Rho, nil }, nil
			}),

			plainCase("atmosphere_1976_pressure_integral", integralParams, func() (float64, error) {
				return fluids.Atmosphere1976PressureIntegral(T1, P1, dH)
			}),
			kernelCase("atmosphere_1976_pressure_integral", integralParams, func() (Op, error) {
				integral := kernel.PressureIntegral()
				return func() (float64, error) { return integral(T1, P1, dH) }, nil
			}),

			plainCase("airmass", airmassParams, func() (float64, error) {
				return fluids.Airmass(rho, angle), nil
			}),
			kernelCase("airmass", airmassParams, func() (Op, error) {
				atm := kernel.Atmosphere1976(0)
				airmass := kernel.Airmass(func(Z float64) float64 { return atm(Z).Rho }, fluids.DefaultAirmassOptions())
				return func() (float64, error) { return airmass(angle), nil }, nil
			}),

			plainCase("earthsun_distance", Params{"moment": fx.EarthSun}, func() (float64, error) {
				return fluids.EarthSunDistance(fx.EarthSun), nil
			}),
			plainCase("solar_position",
				Params{"moment": fx.Perth, "latitude": perthLat, "longitude": perthLon},
				func() (float64, error) {
					return fluids.SolarPosition(fx.Perth, perthLat, perthLon,
						fluids.StandardTemperature, fluids.StandardPressure).ApparentZenith, nil
				}),
			plainCase("sunrise_sunset",
				Params{"moment": fx.Perth, "latitude": calgaryLat, "longitude": calgaryLon},
				func() (float64, error) {
					ev, err := fluids.SunriseSunset(fx.Perth, calgaryLat, calgaryLon)
					if err != nil {
						return 0, err
					}
					return ev.Sunset.Sub(ev.Sunrise).Hours(), nil
				}),
			plainCase("solar_irradiation",
				Params{
					"Z": irradiation.Z, "latitude": calgaryLat, "longitude": calgaryLon,
					"linke_turbidity": irradiation.LinkeTurbidity, "moment": fx.Edmonton,
					"surface_tilt": irradiation.SurfaceTilt, "surface_azimuth": irradiation.SurfaceAzimuth,
				},
				func() (float64, error) {
					irr, err := fluids.SolarIrradiation(irradiation)
					if err != nil {
						return 0, err
					}
					return irr.POAGlobal, nil
				}),
		},
	}
}
