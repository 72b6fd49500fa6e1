package suite

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/fluidbench/kernel"
)

func registry(t *testing.T) []Suite {
	t.Helper()

	fx, err := NewFixtures()
	require.NoError(t, err)

	return All(fx)
}

func countVariant(suites []Suite, v Variant) int {
	n := 0
	for _, s := range suites {
		for _, c := range s.Cases {
			if c.Variant == v {
				n++
			}
		}
	}

	return n
}

func findCase(t *testing.T, suites []Suite, suite, name string, v Variant) Case {
	t.Helper()

	for _, s := range suites {
		if s.Name != suite {
			continue
		}
		for _, c := range s.Cases {
			if c.Name == name && c.Variant == v {
				return c
			}
		}
	}
	t.Fatalf("case %s/%s/%s not registered", suite, name, v)

	return Case{}
}

func evaluate(t *testing.T, c Case) float64 {
	t.Helper()

	op, err := c.Build()
	require.NoError(t, err)
	v, err := op()
	require.NoError(t, err)

	return v
}

func TestFilter(t *testing.T) {
	all := registry(t)
	plain := countVariant(all, Plain)
	kernels := countVariant(all, Kernel)
	require.Positive(t, kernels)

	tests := []struct {
		name        string
		available   bool
		wantKernels int
	}{
		{"unavailable", false, 0},
		{"available", true, kernels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := Filter(all, tt.available)
			assert.Len(t, filtered, len(all))
			assert.Equal(t, tt.wantKernels, countVariant(filtered, Kernel))
			assert.Equal(t, plain, countVariant(filtered, Plain))
		})
	}

	// The input is left alone.
	assert.Equal(t, kernels, countVariant(all, Kernel))
}

func TestLoadHonorsEnv(t *testing.T) {
	t.Setenv(kernel.EnvDisable, "1")

	suites, err := Load()
	require.NoError(t, err)
	assert.Zero(t, countVariant(suites, Kernel))
	assert.Positive(t, countVariant(suites, Plain))
}

func TestSelect(t *testing.T) {
	all := registry(t)

	got, err := Select(all, []string{"drag", " atmosphere"})
	require.NoError(t, err)
	assert.Equal(t, []string{"atmosphere", "drag"}, Names(got))

	got, err = Select(all, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"atmosphere", "compressible", "control_valve", "drag", "fittings", "flow_meter"}, Names(got))

	_, err = Select(all, []string{"drag", "nrlmsise00"})
	assert.ErrorContains(t, err, "nrlmsise00")
}

func TestCaseIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range registry(t) {
		for _, c := range s.Cases {
			id := c.ID(s.Name)
			assert.False(t, seen[id], "duplicate case %s", id)
			seen[id] = true
		}
	}
}

func TestKernelCasesHavePlainCounterpart(t *testing.T) {
	all := registry(t)
	assert.Len(t, Pairs(all), countVariant(all, Kernel))
}

func TestEveryCaseEvaluates(t *testing.T) {
	for _, s := range registry(t) {
		for _, c := range s.Cases {
			t.Run(c.ID(s.Name), func(t *testing.T) {
				v := evaluate(t, c)
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "got %g", v)
			})
		}
	}
}

func TestPlainKernelEquivalence(t *testing.T) {
	for _, p := range Pairs(registry(t)) {
		t.Run(p.Suite+"/"+p.Name, func(t *testing.T) {
			assert.InEpsilon(t, evaluate(t, p.Plain), evaluate(t, p.Kernel), 1e-6)
		})
	}
}

func TestKnownValues(t *testing.T) {
	all := registry(t)

	// delta, when set, bounds the absolute error instead of the relative one.
	tests := []struct {
		suite, name string
		want, tol   float64
		delta       float64
	}{
		{"atmosphere", "atmosphere_1976", 0.7364284, 1e-6, 0},
		{"control_valve", "size_control_valve_l", 164.99547637, 1e-8, 0},
		{"control_valve", "size_control_valve_g", 72.58664545391052, 1e-12, 0},
		{"control_valve", "control_valve_noise_l_2015", 81.58200097996539, 0, 1e-9},
		{"control_valve", "control_valve_noise_g_2011", 91.67702674629604, 0, 0.2},
		{"compressible", "P_isothermal_critical_flow", 389699.7318, 1e-8, 0},
		{"compressible", "isentropic_work_compression", 10416.876986192496, 1e-9, 0},
		{"drag", "v_terminal", 0.004142497244531304, 1e-9, 0},
		{"drag", "integrate_drag_sphere", 7.829454643649386, 1e-6, 0},
		{"fittings", "Darby3K", 1.1572523963562353, 1e-12, 0},
		{"fittings", "K_angle_valve_Crane", 26.597361811128465, 1e-12, 0},
		{"flow_meter", "differential_pressure_meter_solver_m", 7.702338035732167, 1e-9, 0},
		{"flow_meter", "dP_venturi_tube", 1788.5717754177406, 0.03, 0},
	}
	for _, tt := range tests {
		t.Run(tt.suite+"/"+tt.name, func(t *testing.T) {
			got := evaluate(t, findCase(t, all, tt.suite, tt.name, Plain))
			if tt.delta > 0 {
				assert.InDelta(t, tt.want, got, tt.delta)
				return
			}
			assert.InEpsilon(t, tt.want, got, tt.tol)
		})
	}
}

func TestFixtures(t *testing.T) {
	fx, err := NewFixtures()
	require.NoError(t, err)

	tests := []struct {
		name       string
		moment     time.Time
		offsetSecs int
	}{
		{"Perth", fx.Perth, 8 * 3600},
		{"Edmonton", fx.Edmonton, -6 * 3600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, offset := tt.moment.Zone()
			assert.Equal(t, tt.offsetSecs, offset)
		})
	}

	assert.Equal(t, "2020-06-06T10:00:00Z", fx.EarthSun.Format(time.RFC3339))
	assert.Equal(t, "2020-06-05T23:10:57Z", fx.Perth.UTC().Format(time.RFC3339))
}

func TestVariantText(t *testing.T) {
	for _, v := range []Variant{Plain, Kernel} {
		b, err := v.MarshalText()
		require.NoError(t, err)

		var got Variant
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, v, got)
	}

	_, err := ParseVariant("numba")
	assert.Error(t, err)
	assert.Equal(t, "Variant(7)", Variant(7).String())
}
