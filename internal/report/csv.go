package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

var csvHeader = []string{
	"api_id", "coeff_a", "coeff_b", "coeff_c",
	"std_err_a", "std_err_b", "std_err_c",
	"conf_int_a", "conf_int_b", "conf_int_c",
	"r_squared", "mse",
	"first_deriv_slope", "first_deriv_intercept", "second_deriv",
	"critical_x", "critical_x_error",
	"t_statistic", "is_significant", "resilience_label",
}

// CSV writes one row per analyzed API. Fields that had no estimate
// (degenerate or minimal fits) are left empty rather than written as
// zeros, so a downstream consumer can tell "missing" from "0".
func CSV(w io.Writer, records []analysis.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: writing CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{r.API}
		row = append(row, floatCols(r.Coeffs, 3)...)
		row = append(row, floatCols(r.StdErrors, 3)...)
		row = append(row, floatCols(r.ConfIntervals95, 3)...)
		row = append(row,
			formatCSVFloat(r.RSquared),
			optionalFloat(r.MSE),
			formatCSVFloat(r.FirstDerivCoeffs[0]),
			formatCSVFloat(r.FirstDerivCoeffs[1]),
			formatCSVFloat(r.SecondDeriv),
			optionalFloat(r.CriticalX),
			optionalFloat(r.CriticalXError),
			formatCSVFloat(r.TStatistic),
			strconv.FormatBool(r.IsSignificant),
			string(r.Resilience),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: writing CSV row for %s: %w", r.API, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flushing CSV: %w", err)
	}
	return nil
}

// floatCols pads or truncates vals to exactly n columns.
func floatCols(vals []float64, n int) []string {
	out := make([]string, n)
	for i := 0; i < n && i < len(vals); i++ {
		out[i] = formatCSVFloat(vals[i])
	}
	return out
}

func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func optionalFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return formatCSVFloat(*p)
}
