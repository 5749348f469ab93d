// Package stats provides statistical tests and analysis functions for time series.
//
// This package includes autocorrelation functions, residual diagnostics, and
// tests for conditional heteroskedasticity used to validate ARCH and GARCH fits.
//
// # Autocorrelation Functions
//
//	acf := stats.ACF(series, 20)
//
//	// ACF with confidence bounds
//	acfResult := stats.ACFWithConfidence(series, 20)
//	significant := stats.SignificantLags(acfResult.Values, acfResult.ConfBounds)
//
//	// Volatility clustering: ACF of squared demeaned returns
//	clustering := stats.SquaredACF(returns, 20)
//	fmt.Println(clustering.Significant)
//
// # Residual Diagnostics
//
// Test standardized residuals for leftover autocorrelation:
//
//	lb := stats.LjungBox(residuals, 10, 0)
//	if lb.PValue > 0.05 {
//	    // Residuals are white noise (good)
//	}
//
// # ARCH Effects
//
// Check whether a series has volatility clustering before fitting a GARCH model:
//
//	// McLeod-Li: Ljung-Box on squared values
//	ml := stats.McLeodLi(returns, 10)
//
//	// Engle's ARCH-LM test on demeaned returns
//	lm := stats.ARCHLM(returns.Demean().Values, 5)
//	if lm.PValue < 0.05 {
//	    // Conditional heteroskedasticity present
//	}
//
// # Regression
//
// OLS fits linear models with gonum's QR-based least squares:
//
//	fit, err := stats.OLS(x, y, true)
//	// fit.Coeffs[0] is the intercept
package stats
