package fluids

import "math"

// Clamond solves the Colebrook equation for the Darcy friction factor at
// Reynolds number Re and relative roughness eD. One Newton-type correction
// is applied when fast is set; the second brings it to machine precision.
func Clamond(Re, eD float64, fast bool) float64 {
	// ln(10)/18.574 and ln(ln(10)/5.02).
	X1 := eD * Re * 0.1239681863354175460160858261654858382699
	X2 := math.Log(Re) - 0.7793974884556819406441139701653776731705
	F := X2 - 0.2
	X1F := X1 + F
	X1F1 := 1 + X1F

	E := (math.Log(X1F) - 0.2) / X1F1
	F -= (X1F1 + 0.5*E) * E * X1F / (X1F1 + E*(1+E/3))

	if !fast {
		X1F = X1 + F
		X1F1 = 1 + X1F
		E = (math.Log(X1F) + F - X2) / X1F1
		F -= (X1F1 + 0.5*E) * E * X1F / (X1F1 + E*(1+E/3))
	}

	return 1.325474527619599502640416597148504422899 / (F * F) // (ln(10)/2)^2
}
