// Package garch implements ARCH and GARCH models of conditional volatility.
//
// A GARCH(p, q) model describes the conditional variance of a series as
//
//	sigma²_t = omega + sum_{i=1..q} alpha_i e²_{t-i} + sum_{j=1..p} beta_j sigma²_{t-j}
//
// where e_t are residuals of a constant (or linear, with exogenous
// regressors) mean equation. Q counts lagged squared residuals and P counts
// lagged variances, so an ARCH(k) model is GARCH with P=0 and Q=k:
//
//	arch, _ := garch.NewARCH(2)    // Order{P: 0, Q: 2}
//	same, _ := garch.New(0, 2)     // identical lag structure
//
// # Basic Usage
//
//	model, err := garch.New(1, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := model.Fit(returns.Values, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 10-step mean and variance forecasts with 80% and 95% intervals
//	f, _ := model.Forecast(10, nil, []float64{80, 95})
//	fmt.Println(f.Variance)
//
//	summary := model.Summary()
//	fmt.Printf("persistence %.3f, AIC %.2f\n", summary.Persistence, summary.AIC)
//
// # Estimation
//
// Parameters are estimated by Gaussian maximum likelihood with Nelder-Mead.
// The coefficients are reparameterized so that every alpha and beta is
// positive and their sum stays below one. WithApproximation switches to
// variance targeting: omega is tied to the sample variance and only alpha
// and beta are searched, under a smaller iteration budget.
//
// # Registration
//
// Importing this package registers the "garch" and "arch" backends with
// forecaster.DefaultRegistry:
//
//	import _ "github.com/sartorproj/govolatility/garch"
package garch
