package garch

import "github.com/sartorproj/govolatility/forecaster"

// Backend names under which this package registers itself.
const (
	BackendGARCH = "garch"
	BackendARCH  = "arch"
)

func init() {
	forecaster.Register(BackendGARCH, newGARCHFromParams)
	forecaster.Register(BackendARCH, newARCHFromParams)
}

// newGARCHFromParams accepts p, q, and approximation.
func newGARCHFromParams(params forecaster.Params) (forecaster.Model, error) {
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
	m, err := New(p, q, WithApproximation(approx))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// newARCHFromParams accepts p and approximation. p is the number of lagged
// squared residuals, so the result has Order{P: 0, Q: p}.
func newARCHFromParams(params forecaster.Params) (forecaster.Model, error) {
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
	m, err := NewARCH(p, WithApproximation(approx))
	if err != nil {
		return nil, err
	}
	return m, nil
}
