package analysis

import "math"

// ResilienceLabel is the qualitative classification of how an API's
// latency degrades under load.
type ResilienceLabel string

const (
	// ResilienceLow marks accelerating (convex) degradation.
	ResilienceLow ResilienceLabel = "LOW"
	// ResilienceHigh marks decelerating (concave) degradation.
	ResilienceHigh ResilienceLabel = "HIGH"
	// ResilienceMedium marks statistically significant but linear
	// degradation.
	ResilienceMedium ResilienceLabel = "MEDIUM"
	// ResilienceIndeterminate marks curvature indistinguishable from
	// zero at the configured significance threshold.
	ResilienceIndeterminate ResilienceLabel = "INDETERMINATE"
)

// SignificanceVerdict is the outcome of testing whether the curvature
// coefficient differs from zero.
type SignificanceVerdict struct {
	// TStatistic is |a| / σa. It is +Inf when σa is exactly zero, and 0
	// when the fit carried no error estimates.
	TStatistic float64 `json:"t_statistic"`

	IsSignificant bool `json:"is_significant"`

	Resilience ResilienceLabel `json:"resilience_label"`
}

// Evaluate tests the curvature coefficient against
// cfg.SignificanceThreshold and assigns the resilience label.
//
// A zero σa means the curvature is determined exactly, so the statistic
// is +Inf and the result significant. A fit without error estimates
// (ErrInsufficientData) cannot support any conclusion and is labelled
// INDETERMINATE.
func Evaluate(fit *FitResult, deriv *DerivativeModel, cfg Config) SignificanceVerdict {
	v := SignificanceVerdict{Resilience: ResilienceIndeterminate}

	if fit.StdErrors == nil {
		return v
	}

	a := fit.Coeffs[0]
	sa := fit.StdErrors[0]
	if sa == 0 {
		v.TStatistic = math.Inf(1)
	} else {
		v.TStatistic = math.Abs(a) / sa
	}

	v.IsSignificant = v.TStatistic > cfg.SignificanceThreshold
	if !v.IsSignificant {
		return v
	}

	switch deriv.CurvatureSign {
	case CurvaturePositive:
		v.Resilience = ResilienceLow
	case CurvatureNegative:
		v.Resilience = ResilienceHigh
	default:
		v.Resilience = ResilienceMedium
	}

	return v
}
