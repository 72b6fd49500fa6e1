package fluids

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meterParams(meterType, taps string) MeterParams {
	return MeterParams{
		D: 0.07366, D2: 0.05, P1: 200000, P2: 183000,
		Rho: 999.1, Mu: 0.0011, K: 1.33,
		MeterType: meterType, Taps: taps,
	}
}

func TestCReaderHarrisGallagher(t *testing.T) {
	got, err := CReaderHarrisGallagher(0.07391, 0.0222, 1.165, 1.85e-5, 0.12, TapsFlange)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.5990326277, got, 1e-9)

	_, err = CReaderHarrisGallagher(0.07391, 0.0222, 1.165, 1.85e-5, 0.12, "vena")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestDPVenturiTube(t *testing.T) {
	// ISO 5167-4 curve average is 1788.57 Pa; the fit stays within 3 percent.
	got := DPVenturiTube(0.07366, 0.05, 200000, 183000)
	assert.InEpsilon(t, 1788.5717754177406, got, 0.03)

	assert.InEpsilon(t, 2*got, DPVenturiTube(0.07366, 0.05, 200000, 166000), 1e-12)
	assert.Zero(t, DPVenturiTube(0.07366, 0.05, 2e5, 2e5))
}

func TestExpansibility(t *testing.T) {
	assert.Equal(t, 1.0, NozzleExpansibility(0.07366, 0.05, 1e5, 1e5, 1.4))
	assert.Equal(t, 1.0, OrificeExpansibility(0.07366, 0.05, 1e5, 1e5, 1.4))
	assert.Less(t, NozzleExpansibility(0.07366, 0.05, 2e5, 1.5e5, 1.4), 1.0)
	assert.Zero(t, FlowMeterDischarge(0.07366, 0.05, 1e5, 1e5, 1000, 0.6, 1))
}

func TestDifferentialPressureMeterSolverMassFlow(t *testing.T) {
	m, err := DifferentialPressureMeterSolver(meterParams(MeterISO5167Orifice, TapsD))
	require.NoError(t, err)
	assert.InEpsilon(t, 7.702338035732167, m, 1e-9)

	C, eps, err := DifferentialPressureMeterCEpsilon(0.07366, 0.05, 200000, 183000, 999.1, 0.0011, 1.33, m,
		MeterISO5167Orifice, TapsD)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.61512529, C, 1e-7)
	assert.InEpsilon(t, 0.97110270, eps, 1e-7)
}

// Solving for any unknown recovers the value the mass flow was computed at.
func TestDifferentialPressureMeterSolverRoundTrip(t *testing.T) {
	meters := []struct{ meterType, taps string }{
		{MeterISO5167Orifice, TapsD},
		{MeterISO5167Orifice, TapsFlange},
		{MeterMillerOrifice, TapsCorner},
		{MeterLongRadiusNozzle, ""},
		{MeterISA1932Nozzle, ""},
		{MeterVenturiNozzle, ""},
	}

	for _, mt := range meters {
		t.Run(mt.meterType+" "+mt.taps, func(t *testing.T) {
			base := meterParams(mt.meterType, mt.taps)
			m, err := DifferentialPressureMeterSolver(base)
			require.NoError(t, err)
			base.M = m

			p := base
			p.P1 = 0
			P1, err := DifferentialPressureMeterSolver(p)
			require.NoError(t, err)
			assert.InEpsilon(t, 200000, P1, 1e-7)

			p = base
			p.P2 = 0
			P2, err := DifferentialPressureMeterSolver(p)
			require.NoError(t, err)
			assert.InEpsilon(t, 183000, P2, 1e-7)

			p = base
			p.D2 = 0
			D2, err := DifferentialPressureMeterSolver(p)
			require.NoError(t, err)
			assert.InEpsilon(t, 0.05, D2, 1e-7)
		})
	}
}

func TestDifferentialPressureMeterSolverErrors(t *testing.T) {
	p := meterParams(MeterISO5167Orifice, TapsD)
	p.M = 1
	_, err := DifferentialPressureMeterSolver(p)
	assert.True(t, errors.Is(err, ErrUnknowns))

	_, err = DifferentialPressureMeterSolver(meterParams("wedge", ""))
	assert.True(t, errors.Is(err, ErrUnknownMethod))

	_, err = DifferentialPressureMeterSolver(meterParams(MeterMillerOrifice, "pipe"))
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}
