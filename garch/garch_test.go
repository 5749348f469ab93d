package garch

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/govolatility/forecaster"
)

// simulate draws n observations of a GARCH(1,1) process with mean mu.
func simulate(n int, mu, omega, alpha, beta float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, n)
	sigma2 := omega / (1 - alpha - beta)
	prev := 0.0
	for i := range y {
		sigma2 = omega + alpha*prev*prev + beta*sigma2
		prev = math.Sqrt(sigma2) * rng.NormFloat64()
		y[i] = mu + prev
	}
	return y
}

func TestNew(t *testing.T) {
	m, err := New(2, 1)
	require.NoError(t, err)

	assert.Equal(t, Order{P: 2, Q: 1}, m.Order)
	assert.Len(t, m.Beta, 2)
	assert.Len(t, m.Alpha, 1)
	assert.Equal(t, "GARCH(2,1)", m.Order.String())
	assert.False(t, m.IsFitted())
}

func TestNewInvalidOrder(t *testing.T) {
	tests := []struct {
		name string
		p, q int
	}{
		{"negative p", -1, 1},
		{"negative q", 1, -1},
		{"garch terms without arch terms", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.p, tt.q)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}

	_, err := NewARCH(-2)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestNewARCHIsGARCHWithZeroP(t *testing.T) {
	for k := 0; k <= 4; k++ {
		a, err := NewARCH(k)
		require.NoError(t, err)
		g, err := New(0, k)
		require.NoError(t, err)

		assert.Equal(t, g.Order, a.Order, "ARCH(%d)", k)
		assert.Equal(t, Order{P: 0, Q: k}, a.Order)
	}
	a, _ := NewARCH(3)
	assert.Equal(t, "ARCH(3)", a.Order.String())
}

func TestFitGARCH11(t *testing.T) {
	y := simulate(3000, 0.05, 0.05, 0.1, 0.85, 1)

	m, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	t.Logf("omega=%.4f alpha=%.4f beta=%.4f loglik=%.2f", m.Omega, m.Alpha[0], m.Beta[0], m.LogLik)

	assert.True(t, m.IsFitted())
	assert.InDelta(t, 0.05, m.Mu, 0.1)
	assert.Greater(t, m.Omega, 0.0)
	assert.Greater(t, m.Alpha[0], 0.0)
	assert.Greater(t, m.Beta[0], 0.0)
	assert.Less(t, m.Persistence(), 1.0)
	assert.Greater(t, m.Persistence(), 0.7)
	assert.False(t, math.IsInf(m.LogLik, 0))
	assert.Less(t, m.AIC, m.BIC)

	assert.Len(t, m.Residuals(), 3000)
	assert.Len(t, m.ConditionalVariance(), 3000)
	assert.Len(t, m.StandardizedResiduals(), 3000)
	for _, s := range m.ConditionalVariance() {
		require.Greater(t, s, 0.0)
	}
}

func TestFitBeatsConstantVariance(t *testing.T) {
	y := simulate(2000, 0, 0.05, 0.15, 0.8, 2)

	g, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, g.Fit(y, nil))

	c, err := New(0, 0)
	require.NoError(t, err)
	require.NoError(t, c.Fit(y, nil))

	assert.Greater(t, g.LogLik, c.LogLik)
	assert.Less(t, g.AIC, c.AIC)
}

func TestFitConstantVariance(t *testing.T) {
	y := simulate(500, 1, 0.5, 0, 0, 3)

	m, err := New(0, 0)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	assert.InDelta(t, m.UnconditionalVariance(), m.Omega, 1e-12)
	v := m.VarianceForecast(3)
	assert.Equal(t, []float64{m.Omega, m.Omega, m.Omega}, v)
}

func TestFitApproximation(t *testing.T) {
	y := simulate(1500, 0, 0.05, 0.1, 0.85, 4)

	m, err := New(1, 1, WithApproximation(true))
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	assert.True(t, m.Approximation)
	assert.Less(t, m.Persistence(), 1.0)

	var e2 float64
	for _, e := range m.Residuals() {
		e2 += e * e
	}
	e2 /= float64(len(y))
	assert.InDelta(t, e2, m.UnconditionalVariance(), 1e-9, "variance targeting ties omega to the sample variance")
}

func TestFitErrors(t *testing.T) {
	m, err := New(1, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Fit(make([]float64, 5), nil), ErrInsufficientData)
	assert.ErrorIs(t, m.Fit(make([]float64, 50), nil), ErrDegenerate)
	assert.ErrorIs(t, m.Fit(simulate(50, 0, 0.1, 0.1, 0.8, 5), [][]float64{{1}}), ErrExogenousShape)

	_, err = m.Forecast(3, nil, nil)
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = m.InSample(nil)
	assert.ErrorIs(t, err, ErrNotFitted)
	assert.Nil(t, m.Summary())
	assert.Nil(t, m.Residuals())
	assert.Nil(t, m.VarianceForecast(3))
}

func TestForecast(t *testing.T) {
	y := simulate(2000, 0.2, 0.05, 0.1, 0.85, 6)

	m, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	f, err := m.Forecast(2000, nil, []float64{80, 95})
	require.NoError(t, err)

	require.Len(t, f.Mean, 2000)
	require.Len(t, f.Variance, 2000)
	for _, v := range f.Mean {
		assert.Equal(t, m.Mu, v)
	}

	uncond := m.UnconditionalVariance()
	assert.InDelta(t, uncond, f.Variance[1999], uncond*1e-3, "variance forecast converges to the unconditional variance")

	require.Len(t, f.Intervals, 2)
	i80, i95 := f.Intervals[0], f.Intervals[1]
	assert.Equal(t, 80.0, i80.Level)
	assert.Equal(t, 95.0, i95.Level)
	for h := range f.Mean {
		assert.Less(t, i95.Lower[h], i80.Lower[h])
		assert.Greater(t, i95.Upper[h], i80.Upper[h])
	}

	half := i95.Upper[0] - f.Mean[0]
	assert.InDelta(t, 1.959964*math.Sqrt(f.Variance[0]), half, 1e-5)

	_, err = m.Forecast(0, nil, nil)
	assert.Error(t, err)
	_, err = m.Forecast(1, nil, []float64{100})
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = m.Forecast(1, nil, []float64{0.9 - 1})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestVarianceForecastOneStep(t *testing.T) {
	y := simulate(800, 0, 0.1, 0.2, 0.6, 7)

	m, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	e := m.Residuals()
	s := m.ConditionalVariance()
	n := len(e)
	want := m.Omega + m.Alpha[0]*e[n-1]*e[n-1] + m.Beta[0]*s[n-1]

	assert.InDelta(t, want, m.VarianceForecast(1)[0], 1e-12)
}

func TestInSample(t *testing.T) {
	y := simulate(600, 0.1, 0.1, 0.2, 0.6, 8)

	m, err := NewARCH(2)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	f, err := m.InSample([]float64{90})
	require.NoError(t, err)

	assert.Len(t, f.Mean, 600)
	assert.Equal(t, m.ConditionalVariance(), f.Variance)
	require.Len(t, f.Intervals, 1)
	assert.Len(t, f.Intervals[0].Lower, 600)

	f, err = m.InSample(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Intervals)
}

func TestExogenousMean(t *testing.T) {
	n := 1000
	noise := simulate(n, 0, 0.05, 0.1, 0.8, 9)
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range y {
		x := float64(i%10) - 4.5
		X[i] = []float64{x}
		y[i] = 1 + 0.5*x + noise[i]
	}

	m, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, X))

	assert.InDelta(t, 1.0, m.Mu, 0.1)
	require.Len(t, m.Gamma, 1)
	assert.InDelta(t, 0.5, m.Gamma[0], 0.05)

	f, err := m.Forecast(2, [][]float64{{0}, {2}}, nil)
	require.NoError(t, err)
	assert.InDelta(t, m.Mu, f.Mean[0], 1e-12)
	assert.InDelta(t, m.Mu+2*m.Gamma[0], f.Mean[1], 1e-12)

	_, err = m.Forecast(2, nil, nil)
	assert.ErrorIs(t, err, ErrExogenousShape)
	_, err = m.Forecast(2, [][]float64{{0, 1}, {2, 1}}, nil)
	assert.ErrorIs(t, err, ErrExogenousShape)
}

func TestSummary(t *testing.T) {
	y := simulate(1500, 0, 0.05, 0.1, 0.85, 10)

	m, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Fit(y, nil))

	s := m.Summary()
	require.NotNil(t, s)

	assert.Equal(t, 1500, s.NObs)
	assert.Equal(t, m.Persistence(), s.Persistence)
	require.NotNil(t, s.LjungBox)
	require.NotNil(t, s.McLeodLi)
	require.NotNil(t, s.ARCHLM)
	assert.Greater(t, s.ARCHLM.PValue, 0.001, "a good fit leaves little ARCH effect in standardized residuals")
}

func TestRegisteredBackends(t *testing.T) {
	assert.Subset(t, forecaster.DefaultRegistry.Names(), []string{BackendARCH, BackendGARCH})

	g, err := forecaster.DefaultRegistry.New(BackendGARCH, forecaster.Params{"p": 0, "q": 3, "approximation": true})
	require.NoError(t, err)
	gm := g.(*Model)
	assert.Equal(t, Order{P: 0, Q: 3}, gm.Order)
	assert.True(t, gm.Approximation)

	a, err := forecaster.DefaultRegistry.New(BackendARCH, forecaster.Params{"p": 3})
	require.NoError(t, err)
	assert.Equal(t, gm.Order, a.(*Model).Order)

	d, err := forecaster.DefaultRegistry.New(BackendGARCH, nil)
	require.NoError(t, err)
	assert.Equal(t, Order{P: 1, Q: 1}, d.(*Model).Order)

	_, err = forecaster.DefaultRegistry.New(BackendARCH, forecaster.Params{"q": 1})
	assert.ErrorIs(t, err, forecaster.ErrParam)

	bad, err := forecaster.DefaultRegistry.New(BackendGARCH, forecaster.Params{"p": 1, "q": 0})
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.Nil(t, bad)

	bad, err = forecaster.DefaultRegistry.New(BackendARCH, forecaster.Params{"p": -1})
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.Nil(t, bad)
}
