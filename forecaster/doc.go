// Package forecaster provides the shared plumbing behind model adapters:
// capability tags, hyperparameter sets, a backend registry, and the
// fit/predict orchestration that turns a backend model into a uniform
// forecasting surface.
//
// # Backends
//
// A backend is a package that implements Model and registers a Factory from
// its init function, in the manner of database/sql drivers:
//
//	func init() {
//	    forecaster.Register("garch", func(p forecaster.Params) (forecaster.Model, error) { ... })
//	}
//
// Estimators look backends up by name when a model is instantiated, not when
// they are constructed. A program that never imports the backend package can
// still construct and inspect estimators; instantiation then fails with an
// error matching ErrMissingDependency.
//
// # Adapters
//
// An Estimator maps its own typed hyperparameters onto a backend model.
// Adapter wraps an Estimator and owns the model it creates:
//
//	a := forecaster.NewAdapter(est)
//	if err := a.Fit(series, nil); err != nil { ... }
//	f, err := a.PredictInterval(10, nil, []float64{0.8, 0.95})
//	iv, _ := f.Interval(0.95)
//
// The estimator's Tags decide which calls are allowed and whether
// exogenous regressors reach the backend.
//
// Fits and predictions are counted in the collectors of package metrics.
package forecaster
