package forecaster

import "math"

// Model is the contract a backend forecasting model implements. Levels are
// interval coverages in percent, e.g. 80 and 95.
type Model interface {
	// Fit estimates the model on y. X holds one row of exogenous regressors
	// per observation and may be nil.
	Fit(y []float64, X [][]float64) error

	// Forecast predicts h steps past the end of the fitted sample. X must
	// hold h rows when the model was fitted with regressors.
	Forecast(h int, X [][]float64, levels []float64) (*Forecast, error)

	// InSample returns fitted values and, for each level, in-sample intervals.
	InSample(levels []float64) (*Forecast, error)
}

// Estimator is implemented by adapters that map their own hyperparameters
// onto a backend Model.
type Estimator interface {
	// Name identifies the estimator in logs and reports.
	Name() string

	// Tags returns the estimator's static capability tags.
	Tags() Tags

	// Params returns the estimator's full hyperparameter set.
	Params() Params

	// InstantiateModel builds a fresh, unfitted backend model. Each call
	// returns a new instance.
	InstantiateModel() (Model, error)
}

// Interval is a two-sided prediction interval at a given level.
type Interval struct {
	Level float64   `json:"level"` // Coverage in percent
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// Forecast is a point forecast with optional variance path and intervals.
type Forecast struct {
	Mean      []float64  `json:"mean"`
	Variance  []float64  `json:"variance,omitempty"`
	Intervals []Interval `json:"intervals,omitempty"`
}

// Interval returns the interval whose coverage matches coverage, given as a
// fraction in (0, 1).
func (f *Forecast) Interval(coverage float64) (Interval, bool) {
	level := coverage * 100
	for _, iv := range f.Intervals {
		if math.Abs(iv.Level-level) < 1e-9 {
			return iv, true
		}
	}
	return Interval{}, false
}
