// Package volatility provides ARCH and GARCH estimators that delegate to a
// registered volatility backend through forecaster.Adapter.
//
// The estimators only hold hyperparameters. Fitting looks up the backend by
// name, builds a model from those hyperparameters and hands it the data, so
// an invalid order surfaces from Fit or InstantiateModel rather than from
// the constructor.
//
// # Basic Usage
//
//	import _ "github.com/sartorproj/govolatility/garch"
//
//	g := volatility.NewGARCH(volatility.WithP(1), volatility.WithQ(1))
//	if err := g.Fit(returns, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 5-step forecast with an 80% and a 95% interval
//	f, err := g.PredictInterval(5, nil, []float64{0.8, 0.95})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.Variance)
//
// # ARCH Orders
//
// For ARCH, p is the number of lagged squared residuals. NewARCH(WithP(k))
// therefore requests the backend order P=0, Q=k:
//
//	a := volatility.NewARCH(volatility.WithP(2), volatility.WithApproximation(true))
//
// # Configuration
//
// NewARCHFromParams and NewGARCHFromParams build estimators from decoded
// YAML or JSON maps and reject unknown keys with forecaster.ErrParam:
//
//	g, err := volatility.NewGARCHFromParams(forecaster.Params{"p": 1, "q": 2})
//
// # Missing Backends
//
// Without the garch import, Fit fails with an error matching
// forecaster.ErrMissingDependency. WithRegistry points an estimator at a
// registry other than forecaster.DefaultRegistry.
package volatility
