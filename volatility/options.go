package volatility

import (
	"log/slog"

	"github.com/sartorproj/govolatility/forecaster"
)

// ARCHOption configures an ARCH estimator.
type ARCHOption interface {
	applyARCH(*ARCH)
}

// GARCHOption configures a GARCH estimator.
type GARCHOption interface {
	applyGARCH(*GARCH)
}

// Option configures either estimator.
type Option interface {
	ARCHOption
	GARCHOption
}

type commonOption func(*common)

func (o commonOption) applyARCH(a *ARCH)   { o(&a.common) }
func (o commonOption) applyGARCH(g *GARCH) { o(&g.common) }

type pOption int

func (o pOption) applyARCH(a *ARCH)   { a.p = int(o) }
func (o pOption) applyGARCH(g *GARCH) { g.p = int(o) }

type qOption int

func (o qOption) applyGARCH(g *GARCH) { g.q = int(o) }

// WithP sets P. For ARCH that is the number of lagged squared residuals, for
// GARCH the number of lagged conditional variances. Values are not checked
// here; the backend rejects invalid orders at instantiation.
func WithP(p int) Option { return pOption(p) }

// WithQ sets the GARCH number of lagged squared residuals.
func WithQ(q int) GARCHOption { return qOption(q) }

// WithApproximation asks the backend to estimate by variance targeting.
func WithApproximation(on bool) Option {
	return commonOption(func(c *common) { c.approximation = on })
}

// WithRegistry sets the registry backends are looked up in. The default is
// forecaster.DefaultRegistry.
func WithRegistry(r *forecaster.Registry) Option {
	return commonOption(func(c *common) { c.registry = r })
}

// WithLogger sets the logger passed to the underlying forecaster.Adapter.
func WithLogger(logger *slog.Logger) Option {
	return commonOption(func(c *common) { c.logger = logger })
}
