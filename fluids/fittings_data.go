package fluids

// Darby3KFitting holds the coefficients of Darby's 3-K method.
type Darby3KFitting struct {
	K1 float64
	Ki float64
	Kd float64
}

// Hooper2KFitting holds the coefficients of Hooper's 2-K method.
type Hooper2KFitting struct {
	K1     float64
	Kinfty float64
}

var darby3KTable = []struct {
	name string
	fit  Darby3KFitting
}{
	{"Elbow, 90°, threaded, standard, (r/D = 1)", Darby3KFitting{800, 0.14, 4.0}},
	{"Elbow, 90°, threaded, long radius, (r/D = 1.5)", Darby3KFitting{800, 0.071, 4.2}},
	{"Elbow, 90°, flanged/welded, standard, (r/D = 1)", Darby3KFitting{800, 0.091, 4.0}},
	{"Elbow, 90°, flanged/welded, long radius, (r/D = 2)", Darby3KFitting{800, 0.056, 3.9}},
	{"Elbow, 90°, flanged/welded, long radius, (r/D = 4)", Darby3KFitting{800, 0.066, 3.9}},
	{"Elbow, 90°, flanged/welded, long radius, (r/D = 6)", Darby3KFitting{800, 0.075, 4.2}},
	{"Elbow, 90°, mitered, 1 weld, (90°)", Darby3KFitting{1000, 0.27, 4.0}},
	{"Elbow, 90°, mitered, 2 welds, (45°)", Darby3KFitting{800, 0.068, 4.1}},
	{"Elbow, 90°, mitered, 3 welds, (30°)", Darby3KFitting{800, 0.035, 4.2}},
	{"Elbow, 45°, threaded standard, (r/D = 1)", Darby3KFitting{500, 0.071, 4.2}},
	{"Elbow, 45°, long radius, (r/D = 1.5)", Darby3KFitting{500, 0.052, 4.0}},
	{"Elbow, 45°, mitered, 1 weld, (45°)", Darby3KFitting{500, 0.086, 4.0}},
	{"Elbow, 45°, mitered, 2 welds, (22.5°)", Darby3KFitting{500, 0.052, 4.0}},
	{"Elbow, 180°, threaded, close-return bend, (r/D = 1)", Darby3KFitting{1000, 0.23, 4.0}},
	{"Elbow, 180°, flanged, (r/D = 1)", Darby3KFitting{1000, 0.12, 4.0}},
	{"Elbow, 180°, all, (r/D = 1.5)", Darby3KFitting{1000, 0.10, 4.0}},
	{"Tee, Through-branch, (as elbow), threaded, (r/D = 1)", Darby3KFitting{500, 0.274, 4.0}},
	{"Tee, Through-branch, (as elbow), threaded, (r/D = 1.5)", Darby3KFitting{800, 0.14, 4.0}},
	{"Tee, Through-branch, (as elbow), flanged, (r/D = 1)", Darby3KFitting{800, 0.28, 4.0}},
	{"Tee, Through-branch, (as elbow), stub-in branch", Darby3KFitting{1000, 0.34, 4.0}},
	{"Tee, Run-through, threaded, (r/D = 1)", Darby3KFitting{200, 0.091, 4.0}},
	{"Tee, Run-through, flanged, (r/D = 1)", Darby3KFitting{150, 0.05, 4.0}},
	{"Tee, Run-through, stub-in branch", Darby3KFitting{100, 0, 0}},
	{"Valve, Angle valve, 45°, full line size, β = 1", Darby3KFitting{950, 0.25, 4.0}},
	{"Valve, Angle valve, 90°, full line size, β = 1", Darby3KFitting{1000, 0.69, 4.0}},
	{"Valve, Globe valve, standard, β = 1", Darby3KFitting{1500, 1.7, 3.6}},
	{"Valve, Plug valve, branch flow", Darby3KFitting{500, 0.41, 4.0}},
	{"Valve, Plug valve, straight through", Darby3KFitting{300, 0.084, 3.9}},
	{"Valve, Plug valve, three-way (flow through)", Darby3KFitting{300, 0.14, 4.0}},
	{"Valve, Gate valve, standard, β = 1", Darby3KFitting{300, 0.037, 3.9}},
	{"Valve, Ball valve, standard, β = 1", Darby3KFitting{300, 0.017, 3.5}},
	{"Valve, Diaphragm, dam type", Darby3KFitting{1000, 0.69, 4.9}},
	{"Valve, Swing check", Darby3KFitting{1500, 0.46, 4.0}},
	{"Valve, Lift check", Darby3KFitting{2000, 2.85, 3.8}},
}

var hooper2KTable = []struct {
	name string
	fit  Hooper2KFitting
}{
	{"Elbow, 90°, Standard (R/D = 1), Screwed", Hooper2KFitting{800, 0.40}},
	{"Elbow, 90°, Standard (R/D = 1), Flanged/welded", Hooper2KFitting{800, 0.25}},
	{"Elbow, 90°, Long-radius (R/D = 1.5), All types", Hooper2KFitting{800, 0.20}},
	{"Elbow, 90°, Mitered (R/D = 1.5), 1 weld (90° angle)", Hooper2KFitting{1000, 1.15}},
	{"Elbow, 90°, Mitered (R/D = 1.5), 2 welds (45° angle)", Hooper2KFitting{800, 0.35}},
	{"Elbow, 90°, Mitered (R/D = 1.5), 3 welds (30° angle)", Hooper2KFitting{800, 0.30}},
	{"Elbow, 90°, Mitered (R/D = 1.5), 4 welds (22.5° angle)", Hooper2KFitting{800, 0.27}},
	{"Elbow, 90°, Mitered (R/D = 1.5), 5 welds (18° angle)", Hooper2KFitting{800, 0.25}},
	{"Elbow, 45°, Standard (R/D = 1), All types", Hooper2KFitting{500, 0.20}},
	{"Elbow, 45°, Long-radius (R/D = 1.5), All types", Hooper2KFitting{500, 0.15}},
	{"Elbow, 45°, Mitered (R/D = 1.5), 1 weld (45° angle)", Hooper2KFitting{500, 0.25}},
	{"Elbow, 45°, Mitered (R/D = 1.5), 2 welds (22.5° angle)", Hooper2KFitting{500, 0.15}},
	{"Elbow, 180°, Standard (R/D = 1), Screwed", Hooper2KFitting{1000, 0.60}},
	{"Elbow, 180°, Standard (R/D = 1), Flanged/welded", Hooper2KFitting{1000, 0.35}},
	{"Elbow, 180°, Long-radius (R/D = 1.5), All types", Hooper2KFitting{1000, 0.30}},
	{"Elbow, Used as, Standard, Screwed", Hooper2KFitting{500, 0.70}},
	{"Elbow, Used as, Long-radius, Screwed", Hooper2KFitting{800, 0.40}},
	{"Elbow, Used as, Standard, Flanged/welded", Hooper2KFitting{800, 0.80}},
	{"Elbow, Used as, Stub-in type branch", Hooper2KFitting{1000, 1.00}},
	{"Tee, Run, Through, Screwed", Hooper2KFitting{200, 0.10}},
	{"Tee, Run, Through, Flanged or welded", Hooper2KFitting{150, 0.05}},
	{"Tee, Run, Through, Stub-in type branch", Hooper2KFitting{100, 0.00}},
	{"Valve, Gate, Full line size, β = 1", Hooper2KFitting{300, 0.10}},
	{"Valve, Gate, Reduced trim, β = 0.9", Hooper2KFitting{500, 0.15}},
	{"Valve, Gate, Reduced trim, β = 0.8", Hooper2KFitting{1000, 0.25}},
	{"Valve, Globe, Standard", Hooper2KFitting{1500, 4.00}},
	{"Valve, Globe, Angle or Y-type", Hooper2KFitting{1000, 2.00}},
	{"Valve, Diaphragm, Dam type", Hooper2KFitting{1000, 2.00}},
	{"Valve, Butterfly", Hooper2KFitting{800, 0.25}},
	{"Valve, Check, Lift", Hooper2KFitting{2000, 10.0}},
	{"Valve, Check, Swing", Hooper2KFitting{1500, 1.50}},
	{"Valve, Check, Tilting-disk", Hooper2KFitting{1000, 0.50}},
}

// Re-entrant inlet loss coefficients (Idelchik, diagram 3-1). Rows are wall
// thickness t/Di, columns protrusion length l/Di; beyond the last column
// the coefficient no longer changes.
var (
	idelchikTD = []float64{0, 0.004, 0.008, 0.012, 0.016, 0.02, 0.024, 0.03, 0.04, 0.05}
	idelchikLD = []float64{0, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.3, 0.5}
	idelchikK  = [][]float64{
		{0.50, 0.57, 0.63, 0.68, 0.73, 0.80, 0.86, 0.92, 0.97, 1.00},
		{0.50, 0.54, 0.58, 0.63, 0.67, 0.74, 0.80, 0.86, 0.90, 0.94},
		{0.50, 0.53, 0.55, 0.58, 0.62, 0.68, 0.74, 0.81, 0.85, 0.88},
		{0.50, 0.52, 0.53, 0.55, 0.58, 0.63, 0.68, 0.75, 0.79, 0.83},
		{0.50, 0.51, 0.51, 0.53, 0.55, 0.58, 0.64, 0.70, 0.74, 0.77},
		{0.50, 0.51, 0.51, 0.52, 0.53, 0.55, 0.60, 0.66, 0.69, 0.72},
		{0.50, 0.50, 0.50, 0.51, 0.52, 0.53, 0.58, 0.62, 0.65, 0.68},
		{0.50, 0.50, 0.50, 0.51, 0.52, 0.52, 0.54, 0.57, 0.59, 0.60},
		{0.50, 0.50, 0.50, 0.51, 0.51, 0.51, 0.51, 0.52, 0.52, 0.53},
		{0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50},
	}
)

// IdelchikEntranceTable returns copies of the re-entrant inlet table: the
// t/Di row axis, the l/Di column axis and the coefficients.
func IdelchikEntranceTable() (td, ld []float64, K [][]float64) {
	td = append([]float64(nil), idelchikTD...)
	ld = append([]float64(nil), idelchikLD...)
	K = make([][]float64, len(idelchikK))
	for i, row := range idelchikK {
		K[i] = append([]float64(nil), row...)
	}

	return td, ld, K
}
