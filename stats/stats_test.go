package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/govolatility/timeseries"
)

// simulateARCH1 draws from e_t = sigma_t z_t with sigma²_t = omega + alpha e²_{t-1}.
func simulateARCH1(n int, omega, alpha float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float64, n)
	prev := 0.0
	for i := range out {
		sigma2 := omega + alpha*prev*prev
		out[i] = math.Sqrt(sigma2) * rng.NormFloat64()
		prev = out[i]
	}
	return out
}

func whiteNoise(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

func TestACF(t *testing.T) {
	n := 100
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = 0.8*values[i-1] + (float64(i%10)-5)/10
	}

	acf := ACF(timeseries.New(values), 10)
	require.NotNil(t, acf)

	assert.Len(t, acf, 11)
	assert.InDelta(t, 1.0, acf[0], 1e-10)
	assert.Greater(t, acf[1], 0.5)
}

func TestACFConstantSeries(t *testing.T) {
	assert.Nil(t, ACF(timeseries.New([]float64{3, 3, 3, 3}), 2))
}

func TestACFWithConfidenceAndSignificantLags(t *testing.T) {
	values := simulateARCH1(2000, 0.2, 0.5, 11)

	res := ACFWithConfidence(timeseries.New(values).Squared(), 5)
	require.NotNil(t, res)

	assert.InDelta(t, 1.96/math.Sqrt(2000), res.ConfBounds, 1e-12)
	assert.Contains(t, SignificantLags(res.Values, res.ConfBounds), 1)
	assert.Equal(t, SignificantLags(res.Values, res.ConfBounds), res.Significant)
}

func TestSquaredACF(t *testing.T) {
	clustered := timeseries.New(simulateARCH1(2000, 0.2, 0.5, 11))
	res := SquaredACF(clustered, 10)
	require.NotNil(t, res)
	require.Len(t, res.Values, 11)
	assert.InDelta(t, 1.0, res.Values[0], 1e-12)
	assert.Greater(t, res.Values[1], 0.2)
	assert.Contains(t, res.Significant, 1)

	// Shifting the level does not change the clustering profile.
	shifted := clustered.Copy()
	for i := range shifted.Values {
		shifted.Values[i] += 5
	}
	assert.InDeltaSlice(t, res.Values, SquaredACF(shifted, 10).Values, 1e-9)

	calm := SquaredACF(timeseries.New(whiteNoise(2000, 5)), 10)
	require.NotNil(t, calm)
	assert.Less(t, len(calm.Significant), 3)

	assert.Nil(t, SquaredACF(timeseries.New([]float64{1, -1, 1, -1}), 2))
}

func TestLjungBox(t *testing.T) {
	res := LjungBox(timeseries.New(whiteNoise(500, 3)), 10, 0)
	require.NotNil(t, res)
	assert.Equal(t, 10, res.DOF)
	assert.Greater(t, res.PValue, 0.01)

	n := 500
	ar := make([]float64, n)
	noise := whiteNoise(n, 4)
	for i := 1; i < n; i++ {
		ar[i] = 0.9*ar[i-1] + noise[i]
	}
	res = LjungBox(timeseries.New(ar), 10, 2)
	require.NotNil(t, res)
	assert.Equal(t, 8, res.DOF)
	assert.Less(t, res.PValue, 0.001)

	assert.Nil(t, LjungBox(timeseries.New([]float64{1, 2, 3}), 10, 0))
}

func TestMcLeodLi(t *testing.T) {
	res := McLeodLi(timeseries.New(simulateARCH1(1000, 0.2, 0.5, 5)), 10)
	require.NotNil(t, res)
	assert.Less(t, res.PValue, 0.01)
}

func TestARCHLM(t *testing.T) {
	tests := []struct {
		name      string
		residuals []float64
		wantARCH  bool
	}{
		{"arch process", simulateARCH1(1000, 0.2, 0.5, 21), true},
		{"white noise", whiteNoise(1000, 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ARCHLM(tt.residuals, 2)
			require.NotNil(t, res)
			assert.Equal(t, 998, res.NObs)
			if tt.wantARCH {
				assert.Less(t, res.PValue, 0.01)
			} else {
				assert.Greater(t, res.PValue, 0.001)
			}
		})
	}

	assert.Nil(t, ARCHLM([]float64{1, 2, 3}, 2))
}

func TestOLS(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := []float64{3, 5, 7, 9, 11}

	fit, err := OLS(x, y, true)
	require.NoError(t, err)

	require.Len(t, fit.Coeffs, 2)
	assert.InDelta(t, 1.0, fit.Coeffs[0], 1e-9)
	assert.InDelta(t, 2.0, fit.Coeffs[1], 1e-9)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-9)
	for _, r := range fit.Residuals {
		assert.InDelta(t, 0, r, 1e-9)
	}
}

func TestOLSInvalidDesign(t *testing.T) {
	_, err := OLS([][]float64{{1, 2}}, []float64{1}, true)
	assert.ErrorIs(t, err, ErrDesign)

	_, err = OLS([][]float64{{1}, {2, 3}, {4}}, []float64{1, 2, 3}, false)
	assert.ErrorIs(t, err, ErrDesign)

	_, err = OLS(nil, nil, true)
	assert.ErrorIs(t, err, ErrDesign)
}

func TestCalculateIC(t *testing.T) {
	ic := CalculateIC(-100, 50, 3)

	assert.InDelta(t, 206.0, ic.AIC, 1e-9)
	assert.InDelta(t, 200+3*math.Log(50), ic.BIC, 1e-9)
	assert.InDelta(t, 206+2*3*4/46.0, ic.AICc, 1e-9)
	assert.True(t, math.IsInf(CalculateIC(-1, 3, 3).AICc, 1))
}
