package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FitsTotal counts Fit calls by estimator and outcome (ok or error).
	FitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govolatility_fits_total",
		Help: "Total model fits attempted.",
	}, []string{"estimator", "status"})

	// FitDuration tracks backend fit time per estimator.
	FitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "govolatility_fit_duration_seconds",
		Help:    "Time spent fitting backend models.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"estimator"})

	// PredictionsTotal counts successful predictions by estimator and kind
	// (point, interval, or insample).
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govolatility_predictions_total",
		Help: "Total predictions produced.",
	}, []string{"estimator", "kind"})

	// MissingBackends counts instantiations that found no registered backend.
	MissingBackends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govolatility_missing_backend_total",
		Help: "Model instantiations that found no registered backend.",
	}, []string{"estimator"})
)
