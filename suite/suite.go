// Package suite is the static registry of fluidbench benchmark cases. Each
// suite groups the single-call cases of one functional area; every case is
// registered in a plain form and, where a kernel exists, a kernel form under
// the same name.
package suite

import (
	"fmt"
	"strings"

	"github.com/weiihann/fluidbench/kernel"
)

// Variant distinguishes the plain correlation path from its compiled
// kernel.
type Variant int

const (
	Plain Variant = iota
	Kernel
)

func (v Variant) String() string {
	switch v {
	case Plain:
		return "plain"
	case Kernel:
		return "kernel"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "plain":
		return Plain, nil
	case "kernel":
		return Kernel, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a variant name.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed

	return nil
}

// Op is one timed call. The result is only used for equivalence checks.
type Op func() (float64, error)

// Params are the literal arguments of a case, recorded for the catalog.
type Params map[string]any

// Case is a single benchmark. Build performs the setup step (for kernel
// cases, compiling the kernel) and returns the op to time.
type Case struct {
	Name    string
	Variant Variant
	Params  Params
	Build   func() (Op, error)
}

// ID returns "suite/case/variant".
func (c Case) ID(suite string) string {
	return suite + "/" + c.Name + "/" + c.Variant.String()
}

// Suite is a named set of cases sharing fixtures.
type Suite struct {
	Name  string
	Cases []Case
}

// All returns every suite with both variants registered.
func All(fx Fixtures) []Suite {
	return []Suite{
		Atmosphere(fx),
		Compressible(),
		ControlValve(),
		Drag(),
		Fittings(),
		FlowMeter(),
	}
}

// Load builds the fixtures and the registry, and drops kernel cases when
// kernel.Available reports false.
func Load() ([]Suite, error) {
	fx, err := NewFixtures()
	if err != nil {
		return nil, err
	}

	return Filter(All(fx), kernel.Available()), nil
}

// Filter returns suites without kernel cases when available is false. The
// input is not modified.
func Filter(suites []Suite, available bool) []Suite {
	out := make([]Suite, 0, len(suites))
	for _, s := range suites {
		cases := make([]Case, 0, len(s.Cases))
		for _, c := range s.Cases {
			if c.Variant == Kernel && !available {
				continue
			}
			cases = append(cases, c)
		}
		out = append(out, Suite{Name: s.Name, Cases: cases})
	}

	return out
}

// Select keeps the named suites, in registry order. An empty names list
// keeps everything.
func Select(suites []Suite, names []string) ([]Suite, error) {
	if len(names) == 0 {
		return suites, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}

	out := make([]Suite, 0, len(names))
	for _, s := range suites {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for n := range want {
			missing = append(missing, n)
		}
		return nil, fmt.Errorf("unknown suites: %s", strings.Join(missing, ", "))
	}

	return out, nil
}

// Names returns the names of suites.
func Names(suites []Suite) []string {
	names := make([]string, len(suites))
	for i, s := range suites {
		names[i] = s.Name
	}

	return names
}

// Pair is a case name with both of its variants.
type Pair struct {
	Suite  string
	Name   string
	Plain  Case
	Kernel Case
}

// Pairs returns every case that is registered in both variants.
func Pairs(suites []Suite) []Pair {
	var pairs []Pair
	for _, s := range suites {
		plain := make(map[string]Case)
		for _, c := range s.Cases {
			if c.Variant == Plain {
				plain[c.Name] = c
			}
		}
		for _, c := range s.Cases {
			if p, ok := plain[c.Name]; ok && c.Variant == Kernel {
				pairs = append(pairs, Pair{Suite: s.Name, Name: c.Name, Plain: p, Kernel: c})
			}
		}
	}

	return pairs
}

func plainCase(name string, params Params, op Op) Case {
	return Case{
		Name:    name,
		Variant: Plain,
		Params:  params,
		Build:   func() (Op, error) { return op, nil },
	}
}

func kernelCase(name string, params Params, build func() (Op, error)) Case {
	return Case{
		Name:    name,
		Variant: Kernel,
		Params:  params,
		Build:   build,
	}
}
