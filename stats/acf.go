// Package stats provides statistical tests and functions for time series analysis.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/govolatility/timeseries"
)

// ACF returns the sample autocorrelations of series for lags 0 to maxLag.
// maxLag is clamped to n-1. A constant series has no defined ACF and
// yields nil.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	d := series.Demean().Values
	denom := floats.Dot(d, d)
	if denom == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		acf[k] = floats.Dot(d[k:], d[:n-k]) / denom
	}
	return acf
}

// ACFResult holds autocorrelations with their 95% white-noise band.
type ACFResult struct {
	Lags        []int
	Values      []float64
	ConfBounds  float64 // 1.96/sqrt(n)
	Significant []int   // lags >= 1 outside the band
}

// ACFWithConfidence calculates ACF with confidence bounds.
func ACFWithConfidence(series *timeseries.Series, maxLag int) *ACFResult {
	acf := ACF(series, maxLag)
	if acf == nil {
		return nil
	}

	lags := make([]int, len(acf))
	for i := range lags {
		lags[i] = i
	}

	bound := 1.96 / math.Sqrt(float64(series.Len()))
	return &ACFResult{
		Lags:        lags,
		Values:      acf,
		ConfBounds:  bound,
		Significant: SignificantLags(acf, bound),
	}
}

// SquaredACF is the volatility-clustering profile of a return series: the
// ACF of its squared deviations from the mean. Significant lags indicate
// conditional heteroskedasticity, and the largest of them is a rough upper
// bound for an ARCH order.
func SquaredACF(returns *timeseries.Series, maxLag int) *ACFResult {
	return ACFWithConfidence(returns.Demean().Squared(), maxLag)
}

// SignificantLags returns the lags where values exceed confBound in
// absolute value. Lag 0 is skipped.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
