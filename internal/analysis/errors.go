package analysis

import "errors"

// Sentinel errors for the failure modes of the pipeline. Per-API failures
// carrying these are recorded in BatchResult.Failures and never abort the
// batch.
var (
	// ErrEmptyInput is returned when an API has no replicate data at all.
	// The API is omitted from the output set.
	ErrEmptyInput = errors.New("no replicate data")

	// ErrInsufficientData marks a fit performed with exactly degree+1
	// points: the coefficients are well-defined (the polynomial
	// interpolates the data) but there are zero residual degrees of
	// freedom, so MSE, standard errors and confidence intervals are
	// undefined. It is carried on FitResult.ErrorEstimation, not returned
	// as a hard failure.
	ErrInsufficientData = errors.New("not enough points for error estimation")

	// ErrSingularDesignMatrix is returned when the weighted normal
	// equations cannot be solved, e.g. fewer than degree+1 distinct
	// concurrency values.
	ErrSingularDesignMatrix = errors.New("design matrix is singular")

	// ErrDegenerateModel marks a fit whose curvature is numerically zero:
	// the degradation rate is constant and no critical concurrency
	// exists. This is a normal outcome for a linear regime, recorded on
	// the DerivativeModel rather than raised.
	ErrDegenerateModel = errors.New("curvature is zero, no critical point")
)
