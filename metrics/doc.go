// Package metrics holds the Prometheus collectors updated by forecaster
// adapters. They register with the default registry.
//
// # Collectors
//
//	govolatility_fits_total{estimator, status}      Fit calls, status ok or error
//	govolatility_fit_duration_seconds{estimator}    Fit latency histogram
//	govolatility_predictions_total{estimator, kind} Predictions, kind point, interval or insample
//	govolatility_missing_backend_total{estimator}   Fits that found no registered backend
//
// # Exposing
//
// Serve the default registry with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":2112", nil))
package metrics
