package stats

// ARCHLMResult represents the result of Engle's ARCH-LM test.
type ARCHLMResult struct {
	Statistic float64 // n·R² of the auxiliary regression
	PValue    float64
	Lags      int
	NObs      int // Observations used in the auxiliary regression
}

// ARCHLM performs Engle's Lagrange multiplier test for ARCH effects.
// Squared residuals are regressed on a constant and their own lags 1..lags;
// under the null of no ARCH effects n·R² is chi-squared with lags degrees
// of freedom. Residuals should already be demeaned.
func ARCHLM(residuals []float64, lags int) *ARCHLMResult {
	if lags < 1 || len(residuals) < lags+10 {
		return nil
	}

	sq := make([]float64, len(residuals))
	for i, r := range residuals {
		sq[i] = r * r
	}

	n := len(sq) - lags
	y := make([]float64, n)
	x := make([][]float64, n)
	for t := lags; t < len(sq); t++ {
		row := make([]float64, lags)
		for j := 1; j <= lags; j++ {
			row[j-1] = sq[t-j]
		}
		x[t-lags] = row
		y[t-lags] = sq[t]
	}

	fit, err := OLS(x, y, true)
	if err != nil {
		return nil
	}

	stat := float64(n) * fit.RSquared

	return &ARCHLMResult{
		Statistic: stat,
		PValue:    chiSquaredSurvival(stat, lags),
		Lags:      lags,
		NObs:      n,
	}
}
