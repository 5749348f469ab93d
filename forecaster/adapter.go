package forecaster

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/sartorproj/govolatility/metrics"
	"github.com/sartorproj/govolatility/timeseries"
)

// Adapter drives an Estimator's backend model through fit and predict. It
// owns at most one model instance, created on the first Fit and kept until
// Reset. An Adapter is not safe for concurrent use.
type Adapter struct {
	est    Estimator
	model  Model
	logger *slog.Logger

	fitted  bool
	nObs    int
	hasExog bool
	nExog   int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter returns an Adapter for est. It does not instantiate a model.
func NewAdapter(est Estimator, opts ...Option) *Adapter {
	a := &Adapter{
		est:    est,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model returns the owned backend model, or nil before the first Fit.
func (a *Adapter) Model() Model {
	return a.model
}

// IsFitted reports whether the last Fit succeeded.
func (a *Adapter) IsFitted() bool {
	return a.fitted
}

// Reset drops the owned model. The next Fit instantiates a new one.
func (a *Adapter) Reset() {
	a.model = nil
	a.fitted = false
	a.nObs = 0
	a.hasExog = false
	a.nExog = 0
}

// Fit fits the backend model to y with optional exogenous regressors X,
// one row per observation. Errors from model instantiation or from the
// backend's Fit are returned unchanged.
func (a *Adapter) Fit(y *timeseries.Series, X [][]float64) error {
	if y == nil || y.Len() == 0 {
		return fmt.Errorf("%w: empty series", ErrInvalidArgument)
	}
	if y.HasNaN() {
		return fmt.Errorf("%w: series contains NaN or Inf", ErrInvalidArgument)
	}

	x := a.exog(X)
	if x != nil {
		if len(x) != y.Len() {
			return fmt.Errorf("%w: %d exogenous rows for %d observations", ErrInvalidArgument, len(x), y.Len())
		}
		if err := checkRectangular(x); err != nil {
			return err
		}
	}

	name := a.est.Name()
	if a.model == nil {
		m, err := a.est.InstantiateModel()
		if err != nil {
			metrics.FitsTotal.WithLabelValues(name, "error").Inc()
			if errors.Is(err, ErrMissingDependency) {
				metrics.MissingBackends.WithLabelValues(name).Inc()
			}
			return err
		}
		a.model = m
		a.logger.Debug("model instantiated", "estimator", name, "params", a.est.Params())
	}

	a.fitted = false
	start := time.Now()
	err := a.model.Fit(y.Values, x)
	metrics.FitDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FitsTotal.WithLabelValues(name, "error").Inc()
		return err
	}
	metrics.FitsTotal.WithLabelValues(name, "ok").Inc()

	a.fitted = true
	a.nObs = y.Len()
	a.hasExog = x != nil
	a.nExog = 0
	if a.hasExog {
		a.nExog = len(x[0])
	}

	a.logger.Debug("model fitted", "estimator", name, "n_obs", a.nObs, "exog", a.nExog)
	return nil
}

// Predict returns the h-step point forecast.
func (a *Adapter) Predict(h int, X [][]float64) ([]float64, error) {
	f, err := a.forecast(h, X, nil)
	if err != nil {
		return nil, err
	}
	metrics.PredictionsTotal.WithLabelValues(a.est.Name(), "point").Inc()
	return f.Mean, nil
}

// PredictInterval returns the h-step forecast with one interval per
// requested coverage, each a fraction in (0, 1), in the order requested.
func (a *Adapter) PredictInterval(h int, X [][]float64, coverage []float64) (*Forecast, error) {
	if !a.est.Tags().PredInt {
		return nil, fmt.Errorf("%w: %s does not produce prediction intervals", ErrCapability, a.est.Name())
	}
	levels, err := coverageLevels(coverage)
	if err != nil {
		return nil, err
	}
	f, err := a.forecast(h, X, levels)
	if err != nil {
		return nil, err
	}
	metrics.PredictionsTotal.WithLabelValues(a.est.Name(), "interval").Inc()
	return f, nil
}

// PredictInSample returns fitted values over the training sample and, when
// coverage is non-empty, in-sample intervals.
func (a *Adapter) PredictInSample(coverage []float64) (*Forecast, error) {
	if !a.fitted {
		return nil, ErrNotFitted
	}
	if len(coverage) > 0 && !a.est.Tags().PredIntInSample {
		return nil, fmt.Errorf("%w: %s does not produce in-sample intervals", ErrCapability, a.est.Name())
	}
	levels, err := coverageLevels(coverage)
	if err != nil {
		return nil, err
	}

	f, err := a.model.InSample(levels)
	if err != nil {
		return nil, err
	}
	if err := checkForecast(f, a.nObs, levels); err != nil {
		return nil, err
	}
	metrics.PredictionsTotal.WithLabelValues(a.est.Name(), "insample").Inc()
	return f, nil
}

func (a *Adapter) forecast(h int, X [][]float64, levels []float64) (*Forecast, error) {
	if !a.fitted {
		return nil, ErrNotFitted
	}
	if h < 1 {
		return nil, fmt.Errorf("%w: horizon must be at least 1, got %d", ErrInvalidArgument, h)
	}

	x := a.exog(X)
	switch {
	case a.hasExog && x == nil:
		return nil, fmt.Errorf("%w: model was fitted with exogenous regressors, future values required", ErrInvalidArgument)
	case a.hasExog && len(x) != h:
		return nil, fmt.Errorf("%w: %d exogenous rows for horizon %d", ErrInvalidArgument, len(x), h)
	case !a.hasExog:
		x = nil
	}
	if x != nil {
		if err := checkRectangular(x); err != nil {
			return nil, err
		}
		if len(x[0]) != a.nExog {
			return nil, fmt.Errorf("%w: %d exogenous columns, fitted with %d", ErrInvalidArgument, len(x[0]), a.nExog)
		}
	}

	f, err := a.model.Forecast(h, x, levels)
	if err != nil {
		return nil, err
	}
	if err := checkForecast(f, h, levels); err != nil {
		return nil, err
	}

	a.logger.Debug("forecast produced", "estimator", a.est.Name(), "horizon", h, "levels", levels)
	return f, nil
}

func (a *Adapter) exog(X [][]float64) [][]float64 {
	if a.est.Tags().IgnoresExogenousX || len(X) == 0 {
		return nil
	}
	return X
}

func coverageLevels(coverage []float64) ([]float64, error) {
	if len(coverage) == 0 {
		return nil, nil
	}
	levels := make([]float64, len(coverage))
	for i, c := range coverage {
		if math.IsNaN(c) || c <= 0 || c >= 1 {
			return nil, fmt.Errorf("%w: coverage must be in (0, 1), got %v", ErrInvalidArgument, c)
		}
		levels[i] = c * 100
	}
	return levels, nil
}

func checkRectangular(x [][]float64) error {
	k := len(x[0])
	if k == 0 {
		return fmt.Errorf("%w: exogenous rows have no columns", ErrInvalidArgument)
	}
	for i, row := range x {
		if len(row) != k {
			return fmt.Errorf("%w: exogenous row %d has %d columns, want %d", ErrInvalidArgument, i, len(row), k)
		}
	}
	return nil
}

func checkForecast(f *Forecast, n int, levels []float64) error {
	if f == nil || len(f.Mean) != n {
		return fmt.Errorf("%w: expected %d point values", ErrBackendContract, n)
	}
	if len(f.Intervals) != len(levels) {
		return fmt.Errorf("%w: expected %d intervals, got %d", ErrBackendContract, len(levels), len(f.Intervals))
	}
	for i, iv := range f.Intervals {
		if math.Abs(iv.Level-levels[i]) > 1e-9 || len(iv.Lower) != n || len(iv.Upper) != n {
			return fmt.Errorf("%w: interval %d does not match level %v", ErrBackendContract, i, levels[i])
		}
	}
	return nil
}
