// Package govolatility provides ARCH and GARCH volatility modeling for
// return series.
//
// Models are fitted by Gaussian maximum likelihood. The mean equation is a
// constant, optionally extended with exogenous regressors, and the variance
// equation is
//
//	σ²_t = ω + Σ α_i·e²_{t-i} + Σ β_j·σ²_{t-j}
//
// # Quick Start
//
// Fit a GARCH(1,1) estimator and forecast volatility:
//
//	import _ "github.com/sartorproj/govolatility/garch" // registers the backend
//
//	g := volatility.NewGARCH()
//	if err := g.Fit(returns, nil); err != nil {
//	    return err
//	}
//	f, _ := g.PredictInterval(10, nil, []float64{0.8, 0.95})
//
// Select the order automatically:
//
//	result, _ := autogarch.Select(returns, nil, autogarch.DefaultConfig())
//	forecasts, _ := result.Predict(10, nil)
//
// # Packages
//
//   - volatility: ARCH and GARCH estimators built on the forecaster adapter
//   - forecaster: estimator contract, base adapter and backend registry
//   - garch: the GARCH(p, q) backend, registered as "arch" and "garch"
//   - autogarch: automatic order selection by information criteria
//   - stats: ACF, Ljung-Box, McLeod-Li, ARCH-LM and OLS
//   - timeseries: series type, returns and CSV loading
//
// # References
//
//   - Engle, R. F. (1982). Autoregressive Conditional Heteroscedasticity
//   - Bollerslev, T. (1986). Generalized Autoregressive Conditional Heteroskedasticity
package govolatility
