// Package garch implements ARCH and GARCH conditional volatility models.
package garch

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/govolatility/forecaster"
	"github.com/sartorproj/govolatility/stats"
	"github.com/sartorproj/govolatility/timeseries"
)

var (
	ErrInvalidOrder     = errors.New("garch: invalid model order")
	ErrInsufficientData = errors.New("garch: insufficient data points for the specified order")
	ErrNotFitted        = errors.New("garch: model must be fitted before prediction")
	ErrExogenousShape   = errors.New("garch: exogenous regressors do not match the data")
	ErrInvalidLevel     = errors.New("garch: interval level must be in (0, 100)")
	ErrDegenerate       = errors.New("garch: series has zero variance")
)

const (
	defaultMaxIter     = 2000
	approximateMaxIter = 300
)

// Order represents GARCH model order (p, q).
//
// Q counts lagged squared residuals (the ARCH terms) and P counts lagged
// conditional variances (the GARCH terms). ARCH(k) is GARCH with P=0, Q=k.
type Order struct {
	P int // Number of lagged conditional variances
	Q int // Number of lagged squared residuals
}

func (o Order) String() string {
	if o.P == 0 {
		return fmt.Sprintf("ARCH(%d)", o.Q)
	}
	return fmt.Sprintf("GARCH(%d,%d)", o.P, o.Q)
}

// Model represents a GARCH(p, q) model with a constant or linear mean:
//
//	y_t = mu + X_t·gamma + e_t,  e_t = sigma_t z_t,  z_t ~ N(0, 1)
//	sigma²_t = omega + sum_i alpha_i e²_{t-i} + sum_j beta_j sigma²_{t-j}
type Model struct {
	Order  Order
	Mu     float64
	Gamma  []float64 // Exogenous regressor coefficients
	Omega  float64
	Alpha  []float64 // ARCH coefficients, len Q
	Beta   []float64 // GARCH coefficients, len P
	LogLik float64
	AIC    float64
	AICc   float64
	BIC    float64

	// Approximation fixes omega by variance targeting and searches only
	// alpha and beta under a smaller iteration budget.
	Approximation bool
	MaxIter       int

	fitted    bool
	y         []float64
	meanVals  []float64
	residuals []float64
	sigma2    []float64
	backcast  float64
}

var _ forecaster.Model = (*Model)(nil)

// Option configures a Model.
type Option func(*Model)

// WithApproximation toggles variance-targeting estimation.
func WithApproximation(on bool) Option {
	return func(m *Model) { m.Approximation = on }
}

// WithMaxIterations caps the optimizer's major iterations.
func WithMaxIterations(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.MaxIter = n
		}
	}
}

// New creates a new GARCH(p, q) model. p is the number of lagged conditional
// variances and q the number of lagged squared residuals. GARCH(0, 0) is a
// constant-variance model; p > 0 requires q > 0.
func New(p, q int, opts ...Option) (*Model, error) {
	if p < 0 || q < 0 {
		return nil, fmt.Errorf("%w: p=%d, q=%d must be non-negative", ErrInvalidOrder, p, q)
	}
	if p > 0 && q == 0 {
		return nil, fmt.Errorf("%w: GARCH terms (p=%d) need at least one ARCH term (q>0)", ErrInvalidOrder, p)
	}

	m := &Model{
		Order:   Order{P: p, Q: q},
		Alpha:   make([]float64, q),
		Beta:    make([]float64, p),
		MaxIter: defaultMaxIter,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewARCH creates an ARCH(p) model, which is GARCH with P=0 and Q=p.
func NewARCH(p int, opts ...Option) (*Model, error) {
	return New(0, p, opts...)
}

// Fit fits the model to y with optional exogenous regressors X, one row per
// observation. The mean equation is estimated first by least squares, then
// the variance equation by Gaussian maximum likelihood on its residuals.
func (m *Model) Fit(y []float64, X [][]float64) error {
	p, q := m.Order.P, m.Order.Q
	n := len(y)
	if n < max(p, q)+10 {
		return fmt.Errorf("%w: %d observations for %s", ErrInsufficientData, n, m.Order)
	}
	if X != nil && len(X) != n {
		return fmt.Errorf("%w: %d rows for %d observations", ErrExogenousShape, len(X), n)
	}

	m.fitted = false
	m.y = append([]float64(nil), y...)

	if err := m.fitMean(X); err != nil {
		return err
	}

	m.backcast = 0
	for _, e := range m.residuals {
		m.backcast += e * e
	}
	m.backcast /= float64(n)
	if m.backcast == 0 {
		return ErrDegenerate
	}

	if err := m.fitVariance(); err != nil {
		return err
	}

	m.sigma2 = make([]float64, n)
	nll := m.filter(m.Omega, m.Alpha, m.Beta, m.sigma2)
	m.LogLik = -nll

	ic := stats.CalculateIC(m.LogLik, n, m.numParams())
	m.AIC = ic.AIC
	m.AICc = ic.AICc
	m.BIC = ic.BIC

	m.fitted = true
	return nil
}

func (m *Model) fitMean(X [][]float64) error {
	n := len(m.y)
	m.meanVals = make([]float64, n)
	m.residuals = make([]float64, n)

	if X == nil {
		m.Mu = stat.Mean(m.y, nil)
		m.Gamma = nil
		for i, v := range m.y {
			m.meanVals[i] = m.Mu
			m.residuals[i] = v - m.Mu
		}
		return nil
	}

	fit, err := stats.OLS(X, m.y, true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExogenousShape, err)
	}
	m.Mu = fit.Coeffs[0]
	m.Gamma = fit.Coeffs[1:]
	for i, v := range m.y {
		m.residuals[i] = fit.Residuals[i]
		m.meanVals[i] = v - fit.Residuals[i]
	}
	return nil
}

func (m *Model) fitVariance() error {
	p, q := m.Order.P, m.Order.Q
	k := p + q

	if k == 0 {
		m.Omega = m.backcast
		return nil
	}

	// Start from alpha total 0.1 and beta total 0.8, or alpha total 0.3 for pure ARCH.
	alpha0, beta0 := 0.3, 0.0
	if p > 0 {
		alpha0, beta0 = 0.1, 0.8
	}
	coeffs := make([]float64, k)
	for i := 0; i < q; i++ {
		coeffs[i] = alpha0 / float64(q)
	}
	for j := 0; j < p; j++ {
		coeffs[q+j] = beta0 / float64(p)
	}
	raw := encodeCoeffs(coeffs)

	n := len(m.y)
	sigma2 := make([]float64, n)
	alpha := make([]float64, q)
	beta := make([]float64, p)

	var x0 []float64
	var objective func(x []float64) float64

	if m.Approximation {
		x0 = raw
		objective = func(x []float64) float64 {
			persistence := decodeCoeffs(x, alpha, beta)
			omega := m.backcast * (1 - persistence)
			return m.filter(omega, alpha, beta, sigma2)
		}
	} else {
		x0 = append([]float64{math.Log(m.backcast * (1 - alpha0 - beta0))}, raw...)
		objective = func(x []float64) float64 {
			decodeCoeffs(x[1:], alpha, beta)
			return m.filter(math.Exp(x[0]), alpha, beta, sigma2)
		}
	}

	maxIter := m.MaxIter
	if m.Approximation {
		maxIter = min(maxIter, approximateMaxIter)
	}

	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-8,
			Iterations: 50,
		},
	}
	res, err := optimize.Minimize(optimize.Problem{Func: objective}, x0, settings, &optimize.NelderMead{})
	if res == nil || len(res.X) != len(x0) {
		return fmt.Errorf("garch: optimize: %w", err)
	}

	if m.Approximation {
		persistence := decodeCoeffs(res.X, m.Alpha, m.Beta)
		m.Omega = m.backcast * (1 - persistence)
	} else {
		decodeCoeffs(res.X[1:], m.Alpha, m.Beta)
		m.Omega = math.Exp(res.X[0])
	}
	return nil
}

// filter runs the variance recursion over the residuals, writing sigma² into
// out, and returns the Gaussian negative log-likelihood. Presample squared
// residuals and variances are set to the sample mean of e².
func (m *Model) filter(omega float64, alpha, beta []float64, out []float64) float64 {
	e := m.residuals
	nll := 0.0

	for t := range e {
		s := omega
		for i, a := range alpha {
			if lag := t - i - 1; lag >= 0 {
				s += a * e[lag] * e[lag]
			} else {
				s += a * m.backcast
			}
		}
		for j, b := range beta {
			if lag := t - j - 1; lag >= 0 {
				s += b * out[lag]
			} else {
				s += b * m.backcast
			}
		}
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return math.Inf(1)
		}
		out[t] = s
		nll += 0.5 * (math.Log(2*math.Pi) + math.Log(s) + e[t]*e[t]/s)
	}

	return nll
}

// encodeCoeffs maps coefficients with c_k > 0 and sum c < 1 to unconstrained
// values. decodeCoeffs inverts it.
func encodeCoeffs(c []float64) []float64 {
	sum := 0.0
	for _, v := range c {
		sum += v
	}
	raw := make([]float64, len(c))
	for i, v := range c {
		raw[i] = math.Log(v / (1 - sum))
	}
	return raw
}

// decodeCoeffs writes alpha then beta from raw and returns their sum, the
// model's persistence.
func decodeCoeffs(raw []float64, alpha, beta []float64) float64 {
	total := 1.0
	for _, v := range raw {
		total += math.Exp(v)
	}
	persistence := 0.0
	for i, v := range raw {
		c := math.Exp(v) / total
		if i < len(alpha) {
			alpha[i] = c
		} else {
			beta[i-len(alpha)] = c
		}
		persistence += c
	}
	return persistence
}

func (m *Model) numParams() int {
	// mu, omega, alpha, beta, gamma
	return 2 + m.Order.P + m.Order.Q + len(m.Gamma)
}

// Forecast generates h-step forecasts of the mean and conditional variance,
// with one interval per level. X must hold h rows when the model was fitted
// with exogenous regressors.
func (m *Model) Forecast(h int, X [][]float64, levels []float64) (*forecaster.Forecast, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if h < 1 {
		return nil, errors.New("garch: steps must be at least 1")
	}

	mean, err := m.meanPath(h, X)
	if err != nil {
		return nil, err
	}

	variance := m.VarianceForecast(h)
	intervals, err := bands(mean, variance, levels)
	if err != nil {
		return nil, err
	}

	return &forecaster.Forecast{
		Mean:      mean,
		Variance:  variance,
		Intervals: intervals,
	}, nil
}

// InSample returns the fitted mean and conditional variance over the
// training sample, with one interval per level.
func (m *Model) InSample(levels []float64) (*forecaster.Forecast, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}

	mean := m.FittedValues()
	variance := m.ConditionalVariance()
	intervals, err := bands(mean, variance, levels)
	if err != nil {
		return nil, err
	}

	return &forecaster.Forecast{
		Mean:      mean,
		Variance:  variance,
		Intervals: intervals,
	}, nil
}

func (m *Model) meanPath(h int, X [][]float64) ([]float64, error) {
	mean := make([]float64, h)
	if len(m.Gamma) == 0 {
		for i := range mean {
			mean[i] = m.Mu
		}
		return mean, nil
	}

	if len(X) != h {
		return nil, fmt.Errorf("%w: %d future rows for %d steps", ErrExogenousShape, len(X), h)
	}
	for i, row := range X {
		if len(row) != len(m.Gamma) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrExogenousShape, i, len(row), len(m.Gamma))
		}
		mean[i] = m.Mu
		for j, g := range m.Gamma {
			mean[i] += g * row[j]
		}
	}
	return mean, nil
}

// VarianceForecast returns the expected conditional variance for steps
// 1..h past the sample. Future squared residuals are replaced by their
// expectation, the forecast variance. Returns nil before Fit.
func (m *Model) VarianceForecast(h int) []float64 {
	if !m.fitted || h < 1 {
		return nil
	}

	n := len(m.residuals)
	sq := make([]float64, n+h)
	sig := make([]float64, n+h)
	for t := 0; t < n; t++ {
		sq[t] = m.residuals[t] * m.residuals[t]
		sig[t] = m.sigma2[t]
	}

	lagged := func(series []float64, t int) float64 {
		if t < 0 {
			return m.backcast
		}
		return series[t]
	}

	for t := n; t < n+h; t++ {
		s := m.Omega
		for i, a := range m.Alpha {
			s += a * lagged(sq, t-i-1)
		}
		for j, b := range m.Beta {
			s += b * lagged(sig, t-j-1)
		}
		sig[t] = s
		sq[t] = s
	}

	return sig[n:]
}

func bands(mean, variance []float64, levels []float64) ([]forecaster.Interval, error) {
	if len(levels) == 0 {
		return nil, nil
	}

	intervals := make([]forecaster.Interval, len(levels))
	for k, level := range levels {
		if !(level > 0 && level < 100) {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidLevel, level)
		}
		z := distuv.UnitNormal.Quantile(0.5 + level/200)

		iv := forecaster.Interval{
			Level: level,
			Lower: make([]float64, len(mean)),
			Upper: make([]float64, len(mean)),
		}
		for i := range mean {
			half := z * math.Sqrt(variance[i])
			iv.Lower[i] = mean[i] - half
			iv.Upper[i] = mean[i] + half
		}
		intervals[k] = iv
	}
	return intervals, nil
}

// Persistence returns sum(alpha) + sum(beta).
func (m *Model) Persistence() float64 {
	s := 0.0
	for _, a := range m.Alpha {
		s += a
	}
	for _, b := range m.Beta {
		s += b
	}
	return s
}

// UnconditionalVariance returns omega / (1 - persistence), or +Inf when the
// process is not covariance stationary.
func (m *Model) UnconditionalVariance() float64 {
	persistence := m.Persistence()
	if persistence >= 1 {
		return math.Inf(1)
	}
	return m.Omega / (1 - persistence)
}

// IsFitted reports whether Fit has succeeded.
func (m *Model) IsFitted() bool {
	return m.fitted
}

// Residuals returns the mean-equation residuals e_t.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	return append([]float64(nil), m.residuals...)
}

// StandardizedResiduals returns e_t / sigma_t.
func (m *Model) StandardizedResiduals() []float64 {
	if !m.fitted {
		return nil
	}
	z := make([]float64, len(m.residuals))
	for i, e := range m.residuals {
		z[i] = e / math.Sqrt(m.sigma2[i])
	}
	return z
}

// ConditionalVariance returns the in-sample sigma²_t.
func (m *Model) ConditionalVariance() []float64 {
	if !m.fitted {
		return nil
	}
	return append([]float64(nil), m.sigma2...)
}

// FittedValues returns the in-sample conditional mean.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	return append([]float64(nil), m.meanVals...)
}

// Summary describes a fitted model.
type Summary struct {
	Order                 Order
	Mu                    float64
	Gamma                 []float64
	Omega                 float64
	Alpha                 []float64
	Beta                  []float64
	Persistence           float64
	UnconditionalVariance float64
	LogLik                float64
	AIC                   float64
	AICc                  float64
	BIC                   float64
	NObs                  int
	LjungBox              *stats.LjungBoxResult // On standardized residuals
	McLeodLi              *stats.LjungBoxResult // On squared standardized residuals
	ARCHLM                *stats.ARCHLMResult   // Remaining ARCH effects
}

// Summary returns a summary of the fitted model, or nil before Fit.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	z := m.StandardizedResiduals()
	zs := timeseries.New(z)

	return &Summary{
		Order:                 m.Order,
		Mu:                    m.Mu,
		Gamma:                 append([]float64(nil), m.Gamma...),
		Omega:                 m.Omega,
		Alpha:                 append([]float64(nil), m.Alpha...),
		Beta:                  append([]float64(nil), m.Beta...),
		Persistence:           m.Persistence(),
		UnconditionalVariance: m.UnconditionalVariance(),
		LogLik:                m.LogLik,
		AIC:                   m.AIC,
		AICc:                  m.AICc,
		BIC:                   m.BIC,
		NObs:                  len(m.y),
		LjungBox:              stats.LjungBox(zs, 10, 0),
		McLeodLi:              stats.McLeodLi(zs, 10),
		ARCHLM:                stats.ARCHLM(z, max(m.Order.Q, 1)),
	}
}
