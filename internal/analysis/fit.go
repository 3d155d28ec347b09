package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// FitResult is the output of a weighted polynomial fit.
//
// Coeffs are ordered from the highest power down: for the quadratic,
// Coeffs[0] is the curvature a, Coeffs[1] the slope b, Coeffs[2] the
// intercept c. StdErrors and ConfIntervals follow the same ordering.
//
// When the fit had exactly degree+1 points there are no residual degrees
// of freedom: MSE is NaN, StdErrors and ConfIntervals are nil, and
// ErrorEstimation holds ErrInsufficientData. The coefficients themselves
// are still valid (the polynomial interpolates the data exactly).
type FitResult struct {
	Degree int
	N      int

	Coeffs []float64

	// StdErrors are the square roots of the diagonal of the coefficient
	// covariance matrix (XᵗWX)⁻¹·MSE.
	StdErrors []float64

	// ConfIntervals are the per-coefficient confidence half-widths,
	// t(1-(1-level)/2, df) × standard error.
	ConfIntervals []float64

	RSquared  float64
	MSE       float64
	Residuals []float64

	// DegreesOfFreedom is n − degree − 1.
	DegreesOfFreedom int

	// ErrorEstimation is nil when the error statistics above are valid,
	// or ErrInsufficientData when they are undefined.
	ErrorEstimation error
}

// Fit performs a weighted least-squares polynomial fit of y on x.
//
// It builds the weighted Vandermonde normal equations (XᵗWX)β = XᵗWy and
// solves them explicitly. All weights must be positive; x, y and weights
// must have equal length n ≥ degree+1. Fewer than degree+1 distinct
// x-values make the system singular and return ErrSingularDesignMatrix.
//
// confidence is the two-sided level for the coefficient intervals, e.g.
// 0.95. The computation is deterministic: identical inputs always yield
// identical outputs.
func Fit(x, y, weights []float64, degree int, confidence float64) (*FitResult, error) {
	n := len(x)
	if len(y) != n || len(weights) != n {
		return nil, fmt.Errorf("fit: mismatched lengths x=%d y=%d weights=%d", n, len(y), len(weights))
	}
	if degree < 1 {
		return nil, fmt.Errorf("fit: degree must be at least 1, got %d", degree)
	}
	m := degree + 1
	if n < m {
		return nil, fmt.Errorf("fit: %d points cannot determine %d coefficients: %w", n, m, ErrSingularDesignMatrix)
	}
	for i, w := range weights {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("fit: weight %d is %g, want positive finite", i, w)
		}
	}

	// Normal equations. Row i of the design matrix is
	// (x².., x, 1); XᵗWX and XᵗWy are accumulated directly so the full
	// n×m matrix is never materialized.
	xtwx := make([][]float64, m)
	for i := range xtwx {
		xtwx[i] = make([]float64, m)
	}
	xtwy := make([]float64, m)

	for k := 0; k < n; k++ {
		// powers[j] = x^(degree-j), matching the coefficient ordering.
		powers := make([]float64, m)
		p := 1.0
		for j := m - 1; j >= 0; j-- {
			powers[j] = p
			p *= x[k]
		}
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				xtwx[i][j] += weights[k] * powers[i] * powers[j]
			}
			xtwy[i] += weights[k] * powers[i] * y[k]
		}
	}

	inv, err := invertMatrix(xtwx)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	coeffs := matVec(inv, xtwy)

	// Diagnostics on the unweighted residuals, as the reference method
	// defines them.
	residuals := make([]float64, n)
	var ssr, sst, ybar float64
	for _, v := range y {
		ybar += v
	}
	ybar /= float64(n)
	for i := 0; i < n; i++ {
		residuals[i] = y[i] - polyval(coeffs, x[i])
		ssr += residuals[i] * residuals[i]
		d := y[i] - ybar
		sst += d * d
	}

	r2 := 0.0
	if sst > 0 {
		r2 = 1 - ssr/sst
	}

	fit := &FitResult{
		Degree:           degree,
		N:                n,
		Coeffs:           coeffs,
		RSquared:         r2,
		Residuals:        residuals,
		DegreesOfFreedom: n - m,
	}

	if fit.DegreesOfFreedom < 1 {
		// Interpolating fit: coefficients are exact, error statistics
		// are undefined rather than silently zero.
		fit.MSE = math.NaN()
		fit.ErrorEstimation = ErrInsufficientData
		return fit, nil
	}

	fit.MSE = ssr / float64(fit.DegreesOfFreedom)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(fit.DegreesOfFreedom)}
	tQuantile := tDist.Quantile(0.5 + confidence/2)

	fit.StdErrors = make([]float64, m)
	fit.ConfIntervals = make([]float64, m)
	for i := 0; i < m; i++ {
		fit.StdErrors[i] = math.Sqrt(inv[i][i] * fit.MSE)
		fit.ConfIntervals[i] = tQuantile * fit.StdErrors[i]
	}

	return fit, nil
}

// Predict evaluates the fitted polynomial at x.
func (f *FitResult) Predict(x float64) float64 {
	return polyval(f.Coeffs, x)
}

// Equation renders the fitted model as a human-readable string, e.g.
// "T(x) = 0.001000x² + 0.500000x + 1.000000".
func (f *FitResult) Equation() string {
	if f.Degree == 2 {
		return fmt.Sprintf("T(x) = %.6fx² + %.6fx + %.6f", f.Coeffs[0], f.Coeffs[1], f.Coeffs[2])
	}
	s := "T(x) ="
	for i, c := range f.Coeffs {
		pow := f.Degree - i
		switch {
		case pow == 0:
			s += fmt.Sprintf(" %+.6f", c)
		case pow == 1:
			s += fmt.Sprintf(" %+.6fx", c)
		default:
			s += fmt.Sprintf(" %+.6fx^%d", c, pow)
		}
	}
	return s
}
