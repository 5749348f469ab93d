package volatility

import (
	"fmt"
	"log/slog"

	"github.com/sartorproj/govolatility/forecaster"
)

// Backend names looked up in the registry at instantiation time. The garch
// package registers both when imported.
const (
	archBackend  = "arch"
	garchBackend = "garch"
)

// Both variants pass exogenous regressors through and support in-sample and
// out-of-sample prediction intervals.
var tags = forecaster.Tags{
	IgnoresExogenousX: false,
	PredInt:           true,
	PredIntInSample:   true,
}

// common holds collaborators shared by both estimators. None of them is
// touched before InstantiateModel or Fit.
type common struct {
	approximation bool
	registry      *forecaster.Registry
	logger        *slog.Logger
}

func (c *common) lookup() *forecaster.Registry {
	if c.registry == nil {
		return forecaster.DefaultRegistry
	}
	return c.registry
}

func (c *common) adapterOptions() []forecaster.Option {
	if c.logger == nil {
		return nil
	}
	return []forecaster.Option{forecaster.WithLogger(c.logger)}
}

// ARCH is an ARCH(p) estimator.
//
// The single lag parameter is called P, following the backend's convention,
// but it counts lagged squared residuals. That is the Q slot of GARCH, so
// ARCH(P=k) is equivalent to GARCH(P=0, Q=k) and not to GARCH(P=k, Q=0).
type ARCH struct {
	*forecaster.Adapter
	common

	p int
}

var _ forecaster.Estimator = (*ARCH)(nil)

// NewARCH returns an ARCH estimator with P=1 unless overridden.
// No backend is loaded until the model is instantiated.
func NewARCH(opts ...ARCHOption) *ARCH {
	a := &ARCH{p: 1}
	for _, opt := range opts {
		opt.applyARCH(a)
	}
	a.Adapter = forecaster.NewAdapter(a, a.adapterOptions()...)
	return a
}

// NewARCHFromParams builds an ARCH estimator from a hyperparameter set such
// as one returned by TestParams. Keys are p and approximation.
func NewARCHFromParams(params forecaster.Params, opts ...ARCHOption) (*ARCH, error) {
	if err := params.CheckKeys("p", "approximation"); err != nil {
		return nil, err
	}
	p, err := params.Int("p", 1)
	if err != nil {
		return nil, err
	}
	approx, err := params.Bool("approximation", false)
	if err != nil {
		return nil, err
	}
	return NewARCH(append([]ARCHOption{WithP(p), WithApproximation(approx)}, opts...)...), nil
}

// P returns the number of lagged squared residuals.
func (a *ARCH) P() int { return a.p }

// Approximation reports whether the backend estimates by variance targeting.
func (a *ARCH) Approximation() bool { return a.approximation }

// Name implements forecaster.Estimator.
func (a *ARCH) Name() string { return fmt.Sprintf("ARCH(%d)", a.p) }

// Tags implements forecaster.Estimator.
func (a *ARCH) Tags() forecaster.Tags { return tags }

// Params implements forecaster.Estimator.
func (a *ARCH) Params() forecaster.Params {
	return forecaster.Params{"p": a.p, "approximation": a.approximation}
}

// InstantiateModel builds a fresh backend ARCH model from the stored
// hyperparameters. A missing backend or an invalid order is reported by the
// registry or the backend and returned unchanged.
func (a *ARCH) InstantiateModel() (forecaster.Model, error) {
	return a.lookup().New(archBackend, a.Params())
}

// TestParams returns hyperparameter sets for building test instances. The
// first set is always the defaults. No named sets are defined yet, so every
// set name yields the default list.
func (a *ARCH) TestParams(set string) []forecaster.Params {
	return []forecaster.Params{
		{},
		{"p": 2},
		{"p": 1, "approximation": true},
	}
}

// GARCH is a GARCH(p, q) estimator. P counts lagged conditional variances and
// Q counts lagged squared residuals.
type GARCH struct {
	*forecaster.Adapter
	common

	p, q int
}

var _ forecaster.Estimator = (*GARCH)(nil)

// NewGARCH returns a GARCH estimator with P=1, Q=1 unless overridden.
// No backend is loaded until the model is instantiated.
func NewGARCH(opts ...GARCHOption) *GARCH {
	g := &GARCH{p: 1, q: 1}
	for _, opt := range opts {
		opt.applyGARCH(g)
	}
	g.Adapter = forecaster.NewAdapter(g, g.adapterOptions()...)
	return g
}

// NewGARCHFromParams builds a GARCH estimator from a hyperparameter set such
// as one returned by TestParams. Keys are p, q, and approximation.
func NewGARCHFromParams(params forecaster.Params, opts ...GARCHOption) (*GARCH, error) {
	if err := params.CheckKeys("p", "q", "approximation"); err != nil {
		return nil, err
	}
	p, err := params.Int("p", 1)
	if err != nil {
		return nil, err
	}
	q, err := params.Int("q", 1)
	if err != nil {
		return nil, err
	}
	approx, err := params.Bool("approximation", false)
	if err != nil {
		return nil, err
	}
	return NewGARCH(append([]GARCHOption{WithP(p), WithQ(q), WithApproximation(approx)}, opts...)...), nil
}

// P returns the number of lagged conditional variances.
func (g *GARCH) P() int { return g.p }

// Q returns the number of lagged squared residuals.
func (g *GARCH) Q() int { return g.q }

// Approximation reports whether the backend estimates by variance targeting.
func (g *GARCH) Approximation() bool { return g.approximation }

// Name implements forecaster.Estimator.
func (g *GARCH) Name() string { return fmt.Sprintf("GARCH(%d,%d)", g.p, g.q) }

// Tags implements forecaster.Estimator.
func (g *GARCH) Tags() forecaster.Tags { return tags }

// Params implements forecaster.Estimator.
func (g *GARCH) Params() forecaster.Params {
	return forecaster.Params{"p": g.p, "q": g.q, "approximation": g.approximation}
}

// InstantiateModel builds a fresh backend GARCH model from the stored
// hyperparameters. A missing backend or an invalid order is reported by the
// registry or the backend and returned unchanged.
func (g *GARCH) InstantiateModel() (forecaster.Model, error) {
	return g.lookup().New(garchBackend, g.Params())
}

// TestParams returns hyperparameter sets for building test instances. The
// first set is always the defaults. Every set name yields the default list.
func (g *GARCH) TestParams(set string) []forecaster.Params {
	return []forecaster.Params{
		{},
		{"p": 1, "q": 1, "approximation": true},
		{"p": 0, "q": 2},
	}
}
