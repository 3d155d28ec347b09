package analysis

import (
	"math"
	"sort"
)

// Record is the flat, serializable form of an APIAnalysis, the output
// contract consumed by reporting and plotting tools.
//
// StdErrors, ConfIntervals95 and MSE are omitted when the fit had no
// residual degrees of freedom; CriticalX and CriticalXError are null when
// no critical point exists.
type Record struct {
	API             string    `json:"api_id"`
	Coeffs          []float64 `json:"coeffs"`
	StdErrors       []float64 `json:"std_errors,omitempty"`
	ConfIntervals95 []float64 `json:"conf_intervals_95,omitempty"`
	RSquared        float64   `json:"r_squared"`
	MSE             *float64  `json:"mse,omitempty"`

	FirstDerivCoeffs [2]float64 `json:"first_deriv_coeffs"`
	SecondDeriv      float64    `json:"second_deriv"`
	CriticalX        *float64   `json:"critical_x"`
	CriticalXError   *float64   `json:"critical_x_error"`

	// TStatistic is clamped to MaxFloat64 when infinite, since JSON has
	// no representation for +Inf.
	TStatistic    float64         `json:"t_statistic"`
	IsSignificant bool            `json:"is_significant"`
	Resilience    ResilienceLabel `json:"resilience_label"`
}

// Record flattens the analysis into its serializable form.
func (a *APIAnalysis) Record() Record {
	r := Record{
		API:              a.API,
		Coeffs:           a.Fit.Coeffs,
		StdErrors:        a.Fit.StdErrors,
		ConfIntervals95:  a.Fit.ConfIntervals,
		RSquared:         a.Fit.RSquared,
		FirstDerivCoeffs: a.Derivative.FirstDerivCoeffs,
		SecondDeriv:      a.Derivative.SecondDeriv,
		CriticalX:        a.Derivative.CriticalX,
		CriticalXError:   a.Derivative.CriticalXError,
		TStatistic:       a.Verdict.TStatistic,
		IsSignificant:    a.Verdict.IsSignificant,
		Resilience:       a.Verdict.Resilience,
	}

	if !math.IsNaN(a.Fit.MSE) {
		mse := a.Fit.MSE
		r.MSE = &mse
	}
	if math.IsInf(r.TStatistic, 1) {
		r.TStatistic = math.MaxFloat64
	}

	return r
}

// Records flattens every successful analysis in the batch, ordered by the
// resilience ranking first and the remaining APIs alphabetically after.
func (b *BatchResult) Records() []Record {
	seen := make(map[string]bool, len(b.Ranking))
	out := make([]Record, 0, len(b.Analyses))

	for _, id := range b.Ranking {
		out = append(out, b.Analyses[id].Record())
		seen[id] = true
	}

	rest := make([]string, 0, len(b.Analyses))
	for id := range b.Analyses {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, b.Analyses[id].Record())
	}

	return out
}
