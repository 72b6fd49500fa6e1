package fluids

import (
	"fmt"
	"math"
	"time"
)

// AU is the astronomical unit, m.
const AU = 149597870700.0

const (
	// Defaults used by SolarPosition callers that do not know the local
	// air state.
	StandardTemperature = 298.15
	StandardPressure    = Atm

	DefaultSolarConstant = 1366.1 // W/m^2
	DefaultAlbedo        = 0.25

	// Zenith angle of the sun's upper limb at sunrise, including
	// 0.5667 degrees of refraction.
	sunriseZenith = 90.833
)

// SunPosition is the position of the sun seen from a point on the earth.
// Angles are in degrees, the equation of time in minutes.
type SunPosition struct {
	ApparentZenith    float64
	Zenith            float64
	ApparentElevation float64
	Elevation         float64
	Azimuth           float64
	EquationOfTime    float64
}

// SunEvents holds the sunrise, sunset and solar transit of one day.
type SunEvents struct {
	Sunrise time.Time
	Sunset  time.Time
	Transit time.Time
}

type sunGeometry struct {
	declination float64 // degrees
	eqTime      float64 // minutes
	radius      float64 // AU
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func julianDay(t time.Time) float64 {
	return float64(t.UnixNano())/86400e9 + 2440587.5
}

// sunAt evaluates the NOAA solar calculator series at Julian day jd.
func sunAt(jd float64) sunGeometry {
	jc := (jd - 2451545) / 36525

	L0 := math.Mod(280.46646+jc*(36000.76983+jc*0.0003032), 360)
	M := 357.52911 + jc*(35999.05029-0.0001537*jc)
	e := 0.016708634 - jc*(0.000042037+0.0000001267*jc)
	Mr := deg2rad(M)

	C := math.Sin(Mr)*(1.914602-jc*(0.004817+0.000014*jc)) +
		math.Sin(2*Mr)*(0.019993-0.000101*jc) +
		math.Sin(3*Mr)*0.000289
	trueLong := L0 + C
	trueAnom := M + C
	radius := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(deg2rad(trueAnom)))

	omega := deg2rad(125.04 - 1934.136*jc)
	appLong := trueLong - 0.00569 - 0.00478*math.Sin(omega)
	eps0 := 23 + (26+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(omega)

	decl := rad2deg(math.Asin(math.Sin(deg2rad(eps)) * math.Sin(deg2rad(appLong))))

	y := math.Tan(deg2rad(eps / 2))
	y *= y
	L0r := deg2rad(L0)
	eqTime := 4 * rad2deg(y*math.Sin(2*L0r)-
		2*e*math.Sin(Mr)+
		4*e*y*math.Sin(Mr)*math.Cos(2*L0r)-
		0.5*y*y*math.Sin(4*L0r)-
		1.25*e*e*math.Sin(2*Mr))

	return sunGeometry{declination: decl, eqTime: eqTime, radius: radius}
}

// EarthSunDistance returns the distance between the earth and the sun at
// the given moment, m.
func EarthSunDistance(moment time.Time) float64 {
	return sunAt(julianDay(moment.UTC())).radius * AU
}

// refraction returns the atmospheric refraction in degrees at elevation e
// for standard conditions.
func refraction(e float64) float64 {
	var arcsec float64
	switch {
	case e > 85:
		arcsec = 0
	case e > 5:
		t := math.Tan(deg2rad(e))
		arcsec = 58.1/t - 0.07/(t*t*t) + 0.000086/math.Pow(t, 5)
	case e > -0.575:
		arcsec = 1735 + e*(-518.2+e*(103.4+e*(-12.79+e*0.711)))
	default:
		arcsec = -20.772 / math.Tan(deg2rad(e))
	}

	return arcsec / 3600
}

// SolarPosition computes the position of the sun at moment for an observer
// at latitude/longitude (degrees, east positive). T and P are the local air
// temperature (K) and pressure (Pa) used to scale refraction.
func SolarPosition(moment time.Time, latitude, longitude, T, P float64) SunPosition {
	utc := moment.UTC()
	sg := sunAt(julianDay(utc))

	minutes := float64(utc.Hour()*60+utc.Minute()) +
		(float64(utc.Second())+float64(utc.Nanosecond())/1e9)/60
	tst := math.Mod(minutes+sg.eqTime+4*longitude, 1440)
	if tst < 0 {
		tst += 1440
	}
	ha := deg2rad(tst/4 - 180)

	lat := deg2rad(latitude)
	decl := deg2rad(sg.declination)

	cosZen := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(ha)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenR := math.Acos(cosZen)
	zenith := rad2deg(zenR)
	elevation := 90 - zenith

	appElevation := elevation + refraction(elevation)*(P/Atm)*(283/T)

	var azimuth float64
	if denom := math.Cos(lat) * math.Sin(zenR); math.Abs(denom) > 1e-12 {
		cosAz := (math.Sin(lat)*cosZen - math.Sin(decl)) / denom
		a := rad2deg(math.Acos(math.Max(-1, math.Min(1, cosAz))))
		if ha > 0 {
			azimuth = math.Mod(a+180, 360)
		} else {
			azimuth = math.Mod(540-a, 360)
		}
	} else if latitude > 0 {
		azimuth = 180
	}

	return SunPosition{
		ApparentZenith:    90 - appElevation,
		Zenith:            zenith,
		ApparentElevation: appElevation,
		Elevation:         elevation,
		Azimuth:           azimuth,
		EquationOfTime:    sg.eqTime,
	}
}

// SunriseSunset returns sunrise, sunset and solar transit for the calendar
// day of moment (in moment's location) at latitude/longitude. The returned
// times are in moment's location.
func SunriseSunset(moment time.Time, latitude, longitude float64) (SunEvents, error) {
	y, m, d := moment.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	jd0 := julianDay(day)

	transit := 720 - 4*longitude - sunAt(jd0+0.5-longitude/360).eqTime
	sg := sunAt(jd0 + transit/1440)
	transit = 720 - 4*longitude - sg.eqTime

	lat := deg2rad(latitude)
	decl := deg2rad(sg.declination)
	cosHA := math.Cos(deg2rad(sunriseZenith))/(math.Cos(lat)*math.Cos(decl)) -
		math.Tan(lat)*math.Tan(decl)
	switch {
	case cosHA > 1:
		return SunEvents{}, fmt.Errorf("sunrise at latitude %g on %s: sun stays below horizon: %w",
			latitude, day.Format(time.DateOnly), ErrOutOfRange)
	case cosHA < -1:
		return SunEvents{}, fmt.Errorf("sunrise at latitude %g on %s: sun stays above horizon: %w",
			latitude, day.Format(time.DateOnly), ErrOutOfRange)
	}
	ha := rad2deg(math.Acos(cosHA))

	at := func(minutes float64) time.Time {
		return day.Add(time.Duration(minutes * float64(time.Minute))).In(moment.Location())
	}

	return SunEvents{
		Sunrise: at(transit - 4*ha),
		Sunset:  at(transit + 4*ha),
		Transit: at(transit),
	}, nil
}

// RelativeAirmassKastenYoung is the Kasten-Young (1989) relative optical
// airmass for an apparent zenith angle in degrees.
func RelativeAirmassKastenYoung(apparentZenith float64) float64 {
	return 1 / (math.Cos(deg2rad(apparentZenith)) + 0.50572*math.Pow(96.07995-apparentZenith, -1.6364))
}

// ClearSkyIneichen evaluates the Ineichen-Perez clear sky model and returns
// global horizontal, direct normal and diffuse horizontal irradiance.
// airmass is the pressure-corrected (absolute) airmass, altitude in m and
// dniExtra the extraterrestrial normal irradiance in W/m^2.
func ClearSkyIneichen(apparentZenith, airmass, linkeTurbidity, altitude, dniExtra float64) (ghi, dni, dhi float64) {
	cosZ := math.Max(math.Cos(deg2rad(apparentZenith)), 0)
	tl := linkeTurbidity

	fh1 := math.Exp(-altitude / 8000)
	fh2 := math.Exp(-altitude / 1250)
	cg1 := 5.09e-5*altitude + 0.868
	cg2 := 3.92e-5*altitude + 0.0387

	ghi = math.Exp(-cg2*airmass*(fh1+fh2*(tl-1))) * math.Exp(0.01*math.Pow(airmass, 1.8))
	ghi = cg1 * dniExtra * cosZ * math.Max(ghi, 0)

	b := 0.664 + 0.163/fh1
	bnci := dniExtra * math.Max(b*math.Exp(-0.09*airmass*(tl-1)), 0)

	var bnci2 float64
	if cosZ > 0 {
		bnci2 = (1 - (0.1-0.2*math.Exp(-tl))/(0.1+0.882/fh1)) / cosZ
		bnci2 = ghi * math.Min(math.Max(bnci2, 0), 1e20)
	}

	dni = math.Min(bnci, bnci2)
	dhi = ghi - dni*cosZ

	return ghi, dni, dhi
}

// IrradiationParams describes a tilted surface under a clear sky.
type IrradiationParams struct {
	Z              float64 // site altitude, m
	Latitude       float64
	Longitude      float64
	LinkeTurbidity float64
	Moment         time.Time
	SurfaceTilt    float64 // degrees from horizontal
	SurfaceAzimuth float64 // degrees, 180 faces south

	// Optional; zero values select the standard atmosphere at Z, the
	// default solar constant and the default albedo.
	T             float64
	P             float64
	SolarConstant float64
	Albedo        float64
}

// Irradiance is the plane-of-array irradiance, W/m^2, with the horizontal
// components it was derived from.
type Irradiance struct {
	POAGlobal        float64
	POADirect        float64
	POADiffuse       float64
	POASkyDiffuse    float64
	POAGroundDiffuse float64
	GHI              float64
	DNI              float64
	DHI              float64
}

// SolarIrradiation estimates clear sky irradiance on a tilted surface using
// the Ineichen-Perez model and an isotropic sky.
func SolarIrradiation(p IrradiationParams) (Irradiance, error) {
	if p.LinkeTurbidity <= 0 {
		return Irradiance{}, fmt.Errorf("linke turbidity %g: %w", p.LinkeTurbidity, ErrOutOfRange)
	}

	T, P := p.T, p.P
	if T == 0 || P == 0 {
		atm := Atmosphere1976(p.Z, 0)
		if T == 0 {
			T = atm.T
		}
		if P == 0 {
			P = atm.P
		}
	}
	solarConstant := p.SolarConstant
	if solarConstant == 0 {
		solarConstant = DefaultSolarConstant
	}
	albedo := p.Albedo
	if albedo == 0 {
		albedo = DefaultAlbedo
	}

	pos := SolarPosition(p.Moment, p.Latitude, p.Longitude, T, P)
	if pos.ApparentZenith >= 90 {
		return Irradiance{}, nil
	}

	r := sunAt(julianDay(p.Moment.UTC())).radius
	dniExtra := solarConstant / (r * r)
	am := RelativeAirmassKastenYoung(pos.ApparentZenith) * P / Atm
	ghi, dni, dhi := ClearSkyIneichen(pos.ApparentZenith, am, p.LinkeTurbidity, p.Z, dniExtra)

	zen := deg2rad(pos.ApparentZenith)
	tilt := deg2rad(p.SurfaceTilt)
	cosAOI := math.Cos(zen)*math.Cos(tilt) +
		math.Sin(zen)*math.Sin(tilt)*math.Cos(deg2rad(pos.Azimuth-p.SurfaceAzimuth))

	direct := math.Max(dni*cosAOI, 0)
	sky := dhi * (1 + math.Cos(tilt)) / 2
	ground := ghi * albedo * (1 - math.Cos(tilt)) / 2

	return Irradiance{
		POAGlobal:        direct + sky + ground,
		POADirect:        direct,
		POADiffuse:       sky + ground,
		POASkyDiffuse:    sky,
		POAGroundDiffuse: ground,
		GHI:              ghi,
		DNI:              dni,
		DHI:              dhi,
	}, nil
}
