package analysis

import (
	"math"
	"testing"
)

func verdictFor(a, sa float64, sign CurvatureSign) SignificanceVerdict {
	fit := &FitResult{
		Degree:    2,
		Coeffs:    []float64{a, 0.5, 1},
		StdErrors: []float64{sa, 0.1, 0.1},
	}
	deriv := &DerivativeModel{CurvatureSign: sign}
	return Evaluate(fit, deriv, DefaultConfig())
}

func TestEvaluate_SignificantConvex(t *testing.T) {
	v := verdictFor(0.01, 0.002, CurvaturePositive)

	if math.Abs(v.TStatistic-5.0) > 1e-12 {
		t.Errorf("TStatistic = %g, want 5.0", v.TStatistic)
	}
	if !v.IsSignificant {
		t.Error("IsSignificant = false, want true at t=5.0")
	}
	if v.Resilience != ResilienceLow {
		t.Errorf("Resilience = %q, want LOW for accelerating degradation", v.Resilience)
	}
}

func TestEvaluate_SignificantConcave(t *testing.T) {
	v := verdictFor(-0.01, 0.002, CurvatureNegative)

	if v.Resilience != ResilienceHigh {
		t.Errorf("Resilience = %q, want HIGH for decelerating degradation", v.Resilience)
	}
}

func TestEvaluate_SignificantLinear(t *testing.T) {
	// Sign classified as ~zero but somehow significant: linear regime.
	v := verdictFor(1e-11, 1e-13, CurvatureZero)

	if !v.IsSignificant {
		t.Fatal("IsSignificant = false, want true")
	}
	if v.Resilience != ResilienceMedium {
		t.Errorf("Resilience = %q, want MEDIUM", v.Resilience)
	}
}

func TestEvaluate_NotSignificant(t *testing.T) {
	v := verdictFor(0.01, 0.02, CurvaturePositive) // t = 0.5

	if v.IsSignificant {
		t.Error("IsSignificant = true, want false at t=0.5")
	}
	if v.Resilience != ResilienceIndeterminate {
		t.Errorf("Resilience = %q, want INDETERMINATE", v.Resilience)
	}
}

func TestEvaluate_ZeroStdErrorIsInfinitelySignificant(t *testing.T) {
	v := verdictFor(0.01, 0, CurvaturePositive)

	if !math.IsInf(v.TStatistic, 1) {
		t.Errorf("TStatistic = %g, want +Inf", v.TStatistic)
	}
	if !v.IsSignificant {
		t.Error("IsSignificant = false, want true when σa = 0")
	}
}

func TestEvaluate_NoErrorEstimates(t *testing.T) {
	fit := &FitResult{
		Degree:          2,
		Coeffs:          []float64{0.01, 0.5, 1},
		ErrorEstimation: ErrInsufficientData,
	}
	v := Evaluate(fit, &DerivativeModel{CurvatureSign: CurvaturePositive}, DefaultConfig())

	if v.IsSignificant {
		t.Error("IsSignificant = true, want false without standard errors")
	}
	if v.Resilience != ResilienceIndeterminate {
		t.Errorf("Resilience = %q, want INDETERMINATE", v.Resilience)
	}
}

func TestEvaluate_CustomThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SignificanceThreshold = 6.0

	fit := &FitResult{
		Degree:    2,
		Coeffs:    []float64{0.01, 0.5, 1},
		StdErrors: []float64{0.002, 0.1, 0.1},
	}
	v := Evaluate(fit, &DerivativeModel{CurvatureSign: CurvaturePositive}, cfg)

	if v.IsSignificant {
		t.Error("IsSignificant = true, want false: t=5.0 below raised threshold 6.0")
	}
}
