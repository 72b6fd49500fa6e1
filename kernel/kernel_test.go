package kernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/fluidbench/fluids"
)

func TestAvailable(t *testing.T) {
	t.Setenv(EnvDisable, "1")
	assert.False(t, Available())

	t.Setenv(EnvDisable, "")
	assert.Equal(t, compiled, Available())
}

func TestAtmosphere1976(t *testing.T) {
	atm := Atmosphere1976(0)
	hot := Atmosphere1976(12)

	for _, Z := range []float64{-500, 0, 5000, 11019.07, 30000, 50000, 80000} {
		want := fluids.Atmosphere1976(Z, 0)
		got := atm(Z)
		assert.InEpsilon(t, want.Rho, got.Rho, 1e-12, "Z=%g", Z)
		assert.InEpsilon(t, want.P, got.P, 1e-12, "Z=%g", Z)
		assert.InEpsilon(t, want.Mu, got.Mu, 1e-12, "Z=%g", Z)
		assert.InEpsilon(t, want.K, got.K, 1e-12, "Z=%g", Z)
		assert.InEpsilon(t, want.VSonic, got.VSonic, 1e-12, "Z=%g", Z)
		assert.InEpsilon(t, fluids.Atmosphere1976(Z, 12).T, hot(Z).T, 1e-12)
	}
}

func TestPressureIntegral(t *testing.T) {
	integral := PressureIntegral()

	tests := []struct{ T1, P1, dH float64 }{
		{288.6, 84100, 147},
		{288.6, 84100, -300},
		{300, 101325, 1000},
		{220, 20000, 2000},
		{280, 105000, 0},
	}
	for _, tt := range tests {
		want, err := fluids.Atmosphere1976PressureIntegral(tt.T1, tt.P1, tt.dH)
		require.NoError(t, err)
		got, err := integral(tt.T1, tt.P1, tt.dH)
		require.NoError(t, err)
		assert.InEpsilon(t, want, got, 1e-9, "%+v", tt)
	}

	_, err := integral(288, 1e7, 10)
	assert.True(t, errors.Is(err, fluids.ErrOutOfRange))
}

func TestAirmass(t *testing.T) {
	rho := func(Z float64) float64 { return fluids.Atmosphere1976(Z, 0).Rho }
	opts := fluids.DefaultAirmassOptions()
	airmass := Airmass(rho, opts)

	for _, angle := range []float64{90, 60, 30, 10, 3} {
		assert.InEpsilon(t, fluids.AirmassWith(rho, angle, opts), airmass(angle), 1e-10, "angle=%g", angle)
	}
}

func TestIsothermalGasD(t *testing.T) {
	solve := IsothermalGasD(11.3, 0.00185, 1e6, 9e5, 1000)

	for _, m := range []float64{1, 145.48475726, 1000} {
		want, err := fluids.IsothermalGas(fluids.IsothermalGasParams{
			Rho: 11.3, Fd: 0.00185, P1: 1e6, P2: 9e5, L: 1000, M: m,
		})
		require.NoError(t, err)
		got, err := solve(m)
		require.NoError(t, err)
		assert.InEpsilon(t, want, got, 1e-9, "m=%g", m)
	}
}

func TestIsentropic(t *testing.T) {
	work := IsentropicWorkCompression(1.4, 1)
	want, err := fluids.IsentropicWorkCompression(fluids.IsentropicWorkParams{
		T1: 300, K: 1.4, P1: 1e5, P2: 1e6, Eta: 0.78,
	})
	require.NoError(t, err)
	assert.InEpsilon(t, want, work(300, 1e5, 1e6, 0.78), 1e-12)

	eff := IsentropicEfficiency(1.4)
	assert.InEpsilon(t, fluids.IsentropicEfficiencyFromPolytropic(1e5, 1e6, 1.4, 0.78),
		eff(1e5, 1e6, 0.78), 1e-12)
}

func TestDragSphere(t *testing.T) {
	for _, method := range append(fluids.DragMethods(), "") {
		cd, err := DragSphere(method)
		require.NoError(t, err)
		for _, Re := range []float64{1e-3, 0.5, 15, 200, 20000, 5e5} {
			want, err := fluids.DragSphere(Re, method)
			require.NoError(t, err)
			assert.InEpsilon(t, want, cd(Re), 1e-12, "%s Re=%g", method, Re)
		}
	}

	_, err := DragSphere("Newton")
	assert.True(t, errors.Is(err, fluids.ErrUnknownMethod))
}

func TestVTerminal(t *testing.T) {
	tests := []struct {
		method           string
		D, rhop, rho, mu float64
	}{
		{"", 70e-6, 2600, 1000, 1e-3},
		{"", 1e-6, 2600, 1000, 1e-3},
		{"", 0.001, 2200, 1.2, 1.78e-5},
		{"", 70e-6, 400, 1000, 1e-3},
		{fluids.DragStokes, 70e-6, 2600, 1000, 1e-3},
		{fluids.DragCliftGauvin, 0.01, 7800, 1000, 1e-3},
	}
	for _, tt := range tests {
		vt, err := VTerminal(tt.method)
		require.NoError(t, err)
		want, err := fluids.VTerminal(tt.D, tt.rhop, tt.rho, tt.mu, tt.method)
		require.NoError(t, err)
		got, err := vt(tt.D, tt.rhop, tt.rho, tt.mu)
		require.NoError(t, err)
		assert.InEpsilon(t, want, got, 1e-9, "%+v", tt)
	}
}

func TestFittings(t *testing.T) {
	assert.InEpsilon(t, fluids.ChangeKBasis(32.68875692997804, 0.01, 0.02),
		ChangeKBasis(0.01, 0.02)(32.68875692997804), 1e-12)

	for _, method := range []string{fluids.EntranceRennels, fluids.EntranceIdelchik, fluids.EntranceCrane} {
		k, err := EntranceDistance(method)
		require.NoError(t, err)
		for _, geom := range [][3]float64{{0.1, 0.0005, 0.02}, {0.1, 0, 0.1}, {0.05, 0.004, 0.001}, {0.1, 0.01, 0.5}} {
			want, err := fluids.EntranceDistance(geom[0], geom[1], geom[2], method)
			require.NoError(t, err)
			assert.InDelta(t, want, k(geom[0], geom[1], geom[2]), 1e-12, "%s %v", method, geom)
		}
	}

	darby, err := Darby3K("Valve, Angle valve, 45°, full line size, β = 1")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.1572523963562353, darby(2, 1e4), 1e-12)

	hooper, err := Hooper2K("Valve, Globe, Standard")
	require.NoError(t, err)
	assert.InEpsilon(t, 6.15, hooper(2, 1e4), 1e-12)

	angle, err := KAngleValveCrane(fluids.AngleValveStyle0)
	require.NoError(t, err)
	assert.InEpsilon(t, 26.597361811128465, angle(0.01, 0.02, 0), 1e-12)
	assert.InEpsilon(t, 1.1, angle(0.02, 0.02, 0.02), 1e-12)

	lift, err := VLiftValveCrane(fluids.LiftCheckStraight)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0252301935349286, lift(998.2, 0.0627, 0.0779), 1e-12)

	tee, err := KBranchConvergingCrane(90)
	require.NoError(t, err)
	assert.InEpsilon(t, -0.04044108513625682, tee(0.1023, 0.1023, 0.018917, 0.00633), 1e-12)

	_, err = KBranchConvergingCrane(75)
	assert.True(t, errors.Is(err, fluids.ErrOutOfRange))
	_, err = EntranceDistance("Harris")
	assert.True(t, errors.Is(err, fluids.ErrUnknownMethod))
}

func TestFlowMeter(t *testing.T) {
	rhg, err := CReaderHarrisGallagher(fluids.TapsFlange)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.5990326277, rhg(0.07391, 0.0222, 1.165, 1.85e-5, 0.12), 1e-9)

	venturi := DPVenturiTube(0.07366, 0.05)
	assert.InEpsilon(t, fluids.DPVenturiTube(0.07366, 0.05, 200000, 183000), venturi(200000, 183000), 1e-12)
}

func TestMeter(t *testing.T) {
	const (
		D, D2, P1, P2 = 0.07366, 0.05, 200000.0, 183000.0
		rho, mu, k    = 999.1, 0.0011, 1.33
	)
	meters := []struct{ meterType, taps string }{
		{fluids.MeterISO5167Orifice, fluids.TapsD},
		{fluids.MeterMillerOrifice, fluids.TapsCorner},
		{fluids.MeterLongRadiusNozzle, ""},
		{fluids.MeterISA1932Nozzle, ""},
		{fluids.MeterVenturiNozzle, ""},
	}

	for _, mt := range meters {
		t.Run(mt.meterType, func(t *testing.T) {
			meter, err := NewMeter(mt.meterType, mt.taps)
			require.NoError(t, err)
			p := fluids.MeterParams{D: D, D2: D2, P1: P1, P2: P2, Rho: rho, Mu: mu, K: k,
				MeterType: mt.meterType, Taps: mt.taps}

			want, err := fluids.DifferentialPressureMeterSolver(p)
			require.NoError(t, err)
			m, err := meter.M(D, D2, P1, P2, rho, mu, k)
			require.NoError(t, err)
			assert.InEpsilon(t, want, m, 1e-9)

			got, err := meter.P1(D, D2, P2, rho, mu, k, m)
			require.NoError(t, err)
			assert.InEpsilon(t, P1, got, 1e-6)

			got, err = meter.P2(D, D2, P1, rho, mu, k, m)
			require.NoError(t, err)
			assert.InEpsilon(t, P2, got, 1e-6)

			got, err = meter.D2(D, P1, P2, rho, mu, k, m)
			require.NoError(t, err)
			assert.InEpsilon(t, D2, got, 1e-6)
		})
	}

	_, err := NewMeter("wedge", "")
	assert.True(t, errors.Is(err, fluids.ErrUnknownMethod))
	_, err = NewMeter(fluids.MeterISO5167Orifice, "pipe")
	assert.True(t, errors.Is(err, fluids.ErrUnknownMethod))
}
