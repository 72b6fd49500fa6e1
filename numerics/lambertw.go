package numerics

import (
	"fmt"
	"math"
)

// LambertWm1 evaluates the W_{-1} branch of the Lambert W function, the
// solution w <= -1 of w*exp(w) = x for x in [-1/e, 0).
func LambertWm1(x float64) (float64, error) {
	const branchPoint = -1 / math.E
	if x < branchPoint || x >= 0 {
		return math.NaN(), fmt.Errorf("lambert W_{-1}(%g): argument outside [-1/e, 0)", x)
	}
	if x == branchPoint {
		return -1, nil
	}

	var w float64
	if x < -0.25 {
		p := -math.Sqrt(2 * (math.E*x + 1))
		w = -1 + p - p*p/3 + 11.0/72.0*p*p*p
	} else {
		l1 := math.Log(-x)
		l2 := math.Log(-l1)
		w = l1 - l2 + l2/l1
	}

	// Halley iteration.
	for i := 0; i < 64; i++ {
		ew := math.Exp(w)
		f := w*ew - x
		wp1 := w + 1
		step := f / (ew*wp1 - (w+2)*f/(2*wp1))
		w -= step
		if math.Abs(step) <= 1e-15*(1+math.Abs(w)) {
			return w, nil
		}
	}

	return w, fmt.Errorf("lambert W_{-1}(%g): %w", x, ErrNoConvergence)
}

// LambertWm1NegExp evaluates W_{-1}(-exp(-a)) for a >= 1 without forming
// exp(-a), which underflows once a exceeds about 745.
func LambertWm1NegExp(a float64) (float64, error) {
	if !(a >= 1) {
		return math.NaN(), fmt.Errorf("lambert W_{-1}(-exp(-%g)): exponent below 1", a)
	}
	if a == 1 {
		return -1, nil
	}
	if a < 40 {
		return LambertWm1(-math.Exp(-a))
	}

	// Newton on w + ln(-w) + a = 0, which is monotone for w <= -1.
	w := -a - math.Log(a)
	for i := 0; i < 64; i++ {
		step := (w + math.Log(-w) + a) * w / (w + 1)
		w -= step
		if math.Abs(step) <= 1e-15*math.Abs(w) {
			return w, nil
		}
	}

	return w, fmt.Errorf("lambert W_{-1}(-exp(-%g)): %w", a, ErrNoConvergence)
}
