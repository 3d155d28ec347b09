package analysis

import (
	"fmt"
	"math"
)

// CurvatureSign classifies the sign of the second derivative T''(x).
type CurvatureSign string

const (
	CurvaturePositive CurvatureSign = "positive"
	CurvatureNegative CurvatureSign = "negative"
	CurvatureZero     CurvatureSign = "~zero"
)

// DerivativeModel holds the derivatives of a fitted quadratic latency
// model and the critical concurrency, if one exists.
type DerivativeModel struct {
	// FirstDerivCoeffs are the coefficients of T'(x) = 2a·x + b.
	FirstDerivCoeffs [2]float64

	// SecondDeriv is T''(x) = 2a, constant for the quadratic.
	SecondDeriv float64

	CurvatureSign CurvatureSign

	// CriticalX is the concurrency at which T'(x) reaches the
	// degradation threshold, or nil when no such point exists in the
	// sane range (degenerate curvature, negative solution, or beyond
	// MaxCriticalConcurrency).
	CriticalX *float64

	// CriticalXError is the propagated standard error of CriticalX,
	// nil whenever CriticalX is nil or the fit carried no error
	// estimates.
	CriticalXError *float64

	// Degenerate holds ErrDegenerateModel when the curvature is
	// numerically zero, a soft condition reported alongside the nil
	// critical point.
	Degenerate error
}

// Derive computes T'(x) and T''(x) from a quadratic fit, classifies the
// curvature, and locates where the degradation rate crosses
// cfg.DegradationThreshold.
//
// The uncertainty of the critical point x* = (threshold − b) / (2a) is
// propagated with the first-order delta method,
//
//	σ(x*) = sqrt((σb/2a)² + ((threshold−b)·σa/(2a)²)²)
//
// which treats a and b as uncorrelated; the covariance cross-term is
// neglected, so σ(x*) is an approximation, not an exact propagation.
func Derive(fit *FitResult, cfg Config) (*DerivativeModel, error) {
	if fit.Degree != 2 || len(fit.Coeffs) != 3 {
		return nil, fmt.Errorf("derive: want a quadratic fit, got degree %d", fit.Degree)
	}

	a, b := fit.Coeffs[0], fit.Coeffs[1]

	d := &DerivativeModel{
		FirstDerivCoeffs: [2]float64{2 * a, b},
		SecondDeriv:      2 * a,
	}

	switch {
	case a > curvatureEpsilon:
		d.CurvatureSign = CurvaturePositive
	case a < -curvatureEpsilon:
		d.CurvatureSign = CurvatureNegative
	default:
		d.CurvatureSign = CurvatureZero
	}

	slope := d.FirstDerivCoeffs[0]
	if math.Abs(slope) <= curvatureEpsilon {
		// T'(x) is constant; it never crosses the threshold.
		d.Degenerate = ErrDegenerateModel
		return d, nil
	}

	x := (cfg.DegradationThreshold - b) / slope
	if x <= 0 || x > cfg.MaxCriticalConcurrency {
		// Outside the sane range: report no critical point rather than
		// a misleading extrapolation.
		return d, nil
	}
	d.CriticalX = &x

	if fit.StdErrors != nil {
		sa, sb := fit.StdErrors[0], fit.StdErrors[1]
		errB := sb / slope
		errA := (cfg.DegradationThreshold - b) * sa / (slope * slope)
		sx := math.Sqrt(errB*errB + errA*errA)
		d.CriticalXError = &sx
	}

	return d, nil
}
