package analysis

import "math"

// The design matrix of the latency model is always degree+1 columns wide
// (three for the quadratic), so the normal equations are solved with a
// small explicit Gauss-Jordan inversion instead of a general linear
// algebra package. The fit needs the full inverse anyway, for the
// coefficient covariance matrix.

// invertMatrix returns the inverse of the square matrix m, or
// ErrSingularDesignMatrix when no pivot of usable magnitude exists.
// m is left untouched.
func invertMatrix(m [][]float64) ([][]float64, error) {
	n := len(m)

	// Augmented [m | I] working copy.
	aug := make([][]float64, n)
	maxAbs := 0.0
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
		for _, v := range m[i] {
			if a := math.Abs(v); a > maxAbs {
				maxAbs = a
			}
		}
	}

	// Pivots smaller than this are treated as zero.
	tol := 1e-12 * maxAbs
	if tol == 0 {
		tol = 1e-12
	}

	for col := 0; col < n; col++ {
		// Partial pivoting: largest magnitude entry in this column.
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(aug[row][col]) > math.Abs(aug[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(aug[pivot][col]) <= tol {
			return nil, ErrSingularDesignMatrix
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		p := aug[col][col]
		for j := 0; j < 2*n; j++ {
			aug[col][j] /= p
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			f := aug[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[row][j] -= f * aug[col][j]
			}
		}
	}

	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = aug[i][n:]
	}
	return inv, nil
}

// matVec multiplies the square matrix m by the vector v.
func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		var s float64
		for j, mv := range row {
			s += mv * v[j]
		}
		out[i] = s
	}
	return out
}

// polyval evaluates a polynomial with coefficients ordered from the
// highest power down (the same ordering Fit produces) at x.
func polyval(coeffs []float64, x float64) float64 {
	var y float64
	for _, c := range coeffs {
		y = y*x + c
	}
	return y
}
