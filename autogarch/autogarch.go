// Package autogarch implements automatic GARCH order selection.
package autogarch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/sartorproj/govolatility/forecaster"
	"github.com/sartorproj/govolatility/garch"
	"github.com/sartorproj/govolatility/timeseries"
	"github.com/sartorproj/govolatility/volatility"
)

// ErrNoModel is returned when no candidate order could be fitted.
var ErrNoModel = errors.New("autogarch: no candidate model could be fitted")

// Config holds configuration for the order search.
type Config struct {
	MaxP          int          // Maximum number of lagged variances (default: 2)
	MaxQ          int          // Maximum number of lagged squared residuals (default: 2)
	Stepwise      bool         // Use stepwise search instead of exhaustive
	Criterion     string       // Information criterion: "aic", "aicc", or "bic" (default: "aic")
	Approximation bool         // Fit candidates by variance targeting
	Logger        *slog.Logger // Receives one debug line per candidate (optional)
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxP:      2,
		MaxQ:      2,
		Stepwise:  true,
		Criterion: "aic",
	}
}

// Result represents the result of order selection.
type Result struct {
	// Estimator is the fitted winning estimator.
	Estimator *volatility.GARCH

	P int
	Q int

	AIC       float64
	AICc      float64
	BIC       float64
	LogLik    float64
	Criterion float64

	ModelsEvaluated int
}

// Model returns the winner's fitted backend model.
func (r *Result) Model() *garch.Model {
	m, _ := r.Estimator.Model().(*garch.Model)
	return m
}

// Predict generates forecasts using the selected model.
func (r *Result) Predict(steps int, X [][]float64) ([]float64, error) {
	return r.Estimator.Predict(steps, X)
}

// PredictInterval generates forecasts with intervals at each coverage.
func (r *Result) PredictInterval(steps int, X [][]float64, coverage []float64) (*forecaster.Forecast, error) {
	return r.Estimator.PredictInterval(steps, X, coverage)
}

type candidate struct {
	p, q int
}

type search struct {
	series *timeseries.Series
	exog   [][]float64
	config *Config
	logger *slog.Logger

	tried     map[candidate]bool
	evaluated int
	best      *volatility.GARCH
	bestCand  candidate
	bestCrit  float64
}

// Select searches GARCH(p, q) orders for series, with optional exogenous
// regressors, and returns the best fit under the configured criterion.
func Select(series *timeseries.Series, X [][]float64, config *Config) (*Result, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxQ < 1 {
		return nil, fmt.Errorf("autogarch: MaxQ must be at least 1, got %d", config.MaxQ)
	}
	if config.MaxP < 0 {
		return nil, fmt.Errorf("autogarch: MaxP must be non-negative, got %d", config.MaxP)
	}
	switch config.Criterion {
	case "", "aic", "aicc", "bic":
	default:
		return nil, fmt.Errorf("autogarch: unknown criterion %q", config.Criterion)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &search{
		series:   series,
		exog:     X,
		config:   config,
		logger:   logger,
		tried:    make(map[candidate]bool),
		bestCrit: math.Inf(1),
	}

	if config.Stepwise {
		s.stepwise()
	} else {
		s.grid()
	}

	if s.best == nil {
		return nil, ErrNoModel
	}

	m := s.best.Model().(*garch.Model)
	return &Result{
		Estimator:       s.best,
		P:               s.bestCand.p,
		Q:               s.bestCand.q,
		AIC:             m.AIC,
		AICc:            m.AICc,
		BIC:             m.BIC,
		LogLik:          m.LogLik,
		Criterion:       s.bestCrit,
		ModelsEvaluated: s.evaluated,
	}, nil
}

// grid performs an exhaustive search over 0<=p<=MaxP, 1<=q<=MaxQ.
func (s *search) grid() {
	for p := 0; p <= s.config.MaxP; p++ {
		for q := 1; q <= s.config.MaxQ; q++ {
			s.try(candidate{p, q})
		}
	}
}

// stepwise starts from a few simple orders and moves to neighbors while the
// criterion improves.
func (s *search) stepwise() {
	for _, sp := range []candidate{{0, 1}, {1, 1}, {0, 2}, {1, 2}, {2, 1}} {
		s.try(sp)
	}

	improved := s.best != nil
	for improved {
		improved = false
		center := s.bestCand

		neighbors := []candidate{
			{center.p + 1, center.q},
			{center.p - 1, center.q},
			{center.p, center.q + 1},
			{center.p, center.q - 1},
			{center.p + 1, center.q + 1},
			{center.p - 1, center.q - 1},
		}
		for _, sp := range neighbors {
			if s.try(sp) {
				improved = true
			}
		}
	}
}

// try fits sp once and reports whether it became the new best.
func (s *search) try(sp candidate) bool {
	if sp.p < 0 || sp.p > s.config.MaxP || sp.q < 1 || sp.q > s.config.MaxQ || s.tried[sp] {
		return false
	}
	s.tried[sp] = true

	est := volatility.NewGARCH(
		volatility.WithP(sp.p),
		volatility.WithQ(sp.q),
		volatility.WithApproximation(s.config.Approximation),
	)
	if err := est.Fit(s.series, s.exog); err != nil {
		s.logger.Debug("candidate failed", "model", est.Name(), "err", err)
		return false
	}
	s.evaluated++

	m := est.Model().(*garch.Model)
	crit := s.criterion(m)
	s.logger.Debug("candidate fitted", "model", est.Name(), "criterion", crit)

	if crit < s.bestCrit {
		s.bestCrit = crit
		s.bestCand = sp
		s.best = est
		return true
	}
	return false
}

func (s *search) criterion(m *garch.Model) float64 {
	switch s.config.Criterion {
	case "bic":
		return m.BIC
	case "aicc":
		return m.AICc
	default:
		return m.AIC
	}
}
