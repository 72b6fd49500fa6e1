package fluids

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeKBasis(t *testing.T) {
	assert.InEpsilon(t, 523.0201108796487, ChangeKBasis(32.68875692997804, 0.01, 0.02), 1e-12)
	assert.InEpsilon(t, 32.68875692997804, ChangeKBasis(523.0201108796487, 0.02, 0.01), 1e-12)
}

func TestEntranceDistance(t *testing.T) {
	tests := []struct {
		method string
		want   float64
	}{
		{EntranceRennels, 1.01541},
		{"", 1.01541},
		{EntranceIdelchik, 0.8475},
		{EntranceCrane, 0.78},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := EntranceDistance(0.1, 0.0005, 0.02, tt.method)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := EntranceDistance(0.1, 0.0005, 0.02, "Harris")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestEntranceDistanceIdelchikEdges(t *testing.T) {
	// Table corners are reproduced exactly and inputs beyond them clamp.
	tests := []struct {
		name string
		t, l float64
		want float64
	}{
		{"thin wall, longest protrusion", 0, 0.5, 1.0},
		{"protrusion past table", 0, 3, 1.0},
		{"wall past table", 0.2, 0.5, 0.5},
		{"flush inlet", 0.01, 0, 0.5},
		{"knot", 0.02, 0.1, 0.60},
		{"between knots", 0.002, 0.0035, (0.57 + 0.63 + 0.54 + 0.58) / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntranceDistanceIdelchik(1, tt.t, tt.l)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEntranceDistanceIdelchikFitOnce(t *testing.T) {
	first, err := idelchikFitted()
	require.NoError(t, err)
	again, err := idelchikFitted()
	require.NoError(t, err)
	assert.Same(t, first, again)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = EntranceDistanceIdelchik(0.1, 0.0005, 0.02)
	})
	assert.Zero(t, allocs)
}

func TestDarby3K(t *testing.T) {
	got, err := Darby3K(2, 1e4, "Valve, Angle valve, 45°, full line size, β = 1")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.1572523963562353, got, 1e-12)

	_, err = Darby3K(2, 1e4, "Valve, Teapot")
	assert.True(t, errors.Is(err, ErrUnknownMethod))

	names := Darby3KNames()
	assert.Len(t, names, len(darby3KTable))
	assert.True(t, sort.StringsAreSorted(names))
}

func TestHooper2K(t *testing.T) {
	got, err := Hooper2K(2, 1e4, "Valve, Globe, Standard")
	require.NoError(t, err)
	assert.InEpsilon(t, 6.15, got, 1e-12)

	_, err = Hooper2K(2, 1e4, "Valve, Teapot")
	assert.True(t, errors.Is(err, ErrUnknownMethod))

	names := Hooper2KNames()
	assert.Len(t, names, len(hooper2KTable))
	assert.True(t, sort.StringsAreSorted(names))
}

func TestClamond(t *testing.T) {
	tests := []struct {
		Re, eD float64
	}{
		{1e4, 0},
		{1e5, 1e-4},
		{7.5e5, 3.5e-4},
		{1e8, 1e-2},
	}
	for _, tt := range tests {
		fd := Clamond(tt.Re, tt.eD, false)
		// Colebrook: 1/sqrt(fd) = -2 log10(eD/3.7 + 2.51/(Re sqrt(fd))).
		rhs := -2 * math.Log10(tt.eD/3.7+2.51/(tt.Re*math.Sqrt(fd)))
		assert.InEpsilon(t, 1/math.Sqrt(fd), rhs, 1e-12, "Re=%g eD=%g", tt.Re, tt.eD)
		assert.InEpsilon(t, fd, Clamond(tt.Re, tt.eD, true), 2e-4, "Re=%g eD=%g", tt.Re, tt.eD)
	}
}

func TestCraneValves(t *testing.T) {
	assert.InEpsilon(t, 0.01628845962146481, FtCrane(0.1), 1e-12)

	K, err := KAngleValveCrane(0.01, 0.02, 0, AngleValveStyle0)
	require.NoError(t, err)
	assert.InEpsilon(t, 26.597361811128465, K, 1e-12)

	K2, err := KAngleValveCrane(0.01, 0.02, 0, AngleValveStyle2)
	require.NoError(t, err)
	assert.Equal(t, K, K2)

	full, err := KAngleValveCrane(0.02, 0.02, 0.02, AngleValveStyle1)
	require.NoError(t, err)
	assert.InEpsilon(t, 3.0, full, 1e-12)

	_, err = KAngleValveCrane(0.01, 0.02, 0, 7)
	assert.True(t, errors.Is(err, ErrUnknownMethod))

	v, err := VLiftValveCrane(998.2, 0.0627, 0.0779, LiftCheckStraight)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0252301935349286, v, 1e-12)

	_, err = VLiftValveCrane(998.2, 0.0627, 0.0779, "swing")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestKBranchConvergingCrane(t *testing.T) {
	got, err := KBranchConvergingCrane(0.1023, 0.1023, 0.018917, 0.00633, 90)
	require.NoError(t, err)
	assert.InEpsilon(t, -0.04044108513625682, got, 1e-10)

	_, err = KBranchConvergingCrane(0.1023, 0.1023, 0.018917, 0.00633, 75)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
