// Package numerics holds the scalar solvers shared by the correlation
// library: bracketed root finding, the lower branch of the Lambert W
// function and an adaptive Runge-Kutta integrator.
package numerics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotBracketed is returned when f(a) and f(b) share a sign.
	ErrNotBracketed = errors.New("root is not bracketed")

	// ErrNoConvergence is returned when an iteration limit is reached.
	ErrNoConvergence = errors.New("solver did not converge")
)

const (
	brentMaxIter   = 200
	bracketMaxIter = 100
)

// Brent finds a root of f inside [a, b] using Brent's method. The interval
// must bracket a sign change. tol is the absolute tolerance on the root; a
// relative tolerance of a few ulps is always added.
func Brent(f func(float64) float64, a, b, tol float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return math.NaN(), fmt.Errorf("brent on [%g, %g]: %w", a, b, ErrNotBracketed)
	}
	if (fa > 0) == (fb > 0) {
		return math.NaN(), fmt.Errorf(
			"brent on [%g, %g]: f(a)=%g f(b)=%g: %w", a, b, fa, fb, ErrNotBracketed,
		)
	}

	c, fc := b, fb
	var d, e float64

	for i := 0; i < brentMaxIter; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 4*epsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}

	return b, fmt.Errorf("brent after %d iterations: %w", brentMaxIter, ErrNoConvergence)
}

// BracketUp grows hi geometrically by factor until f changes sign between
// lo and hi. The returned pair brackets a root. lo and hi must be positive
// when factor is used to scale them.
func BracketUp(f func(float64) float64, lo, hi, factor float64) (float64, float64, error) {
	flo := f(lo)
	for i := 0; i < bracketMaxIter; i++ {
		fhi := f(hi)
		if !math.IsNaN(fhi) && (fhi > 0) != (flo > 0) {
			return lo, hi, nil
		}
		if !math.IsNaN(fhi) {
			lo, flo = hi, fhi
		}
		hi *= factor
	}

	return lo, hi, fmt.Errorf("bracket from %g: %w", lo, ErrNotBracketed)
}

const epsilon = 2.220446049250313e-16
