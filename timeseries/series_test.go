package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, values, s.Values)
	assert.Len(t, s.Timestamps, 5)
}

func TestNewWithTimestamps(t *testing.T) {
	ts := []time.Time{time.Unix(0, 0), time.Unix(60, 0)}

	s, err := NewWithTimestamps(ts, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, ts, s.Timestamps)

	_, err = NewWithTimestamps(ts, []float64{1})
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, New(tt.values).Mean(), 1e-10)
		})
	}
}

func TestVarianceAndStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 4.571428571428571, s.Variance(), 1e-10)
	assert.InDelta(t, math.Sqrt(4.571428571428571), s.Std(), 1e-10)
	assert.Zero(t, New([]float64{3}).Variance())
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 9.0, s.Max())
	assert.True(t, math.IsNaN(New(nil).Min()))
}

func TestReturns(t *testing.T) {
	s := New([]float64{100, 110, 99, 0, 5})
	r := s.Returns()

	require.Equal(t, 4, r.Len())
	assert.InDelta(t, 0.1, r.Values[0], 1e-12)
	assert.InDelta(t, -0.1, r.Values[1], 1e-12)
	assert.InDelta(t, -1.0, r.Values[2], 1e-12)
	assert.True(t, math.IsNaN(r.Values[3]))
	assert.True(t, r.HasNaN())
}

func TestLogReturns(t *testing.T) {
	s := New([]float64{100, 110, 121})

	r, err := s.LogReturns()
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.InDelta(t, math.Log(1.1), r.Values[0], 1e-12)
	assert.InDelta(t, math.Log(1.1), r.Values[1], 1e-12)

	_, err = New([]float64{1, 0, 2}).LogReturns()
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestScaleDemeanSquared(t *testing.T) {
	s := New([]float64{1, 2, 3})

	assert.Equal(t, []float64{100, 200, 300}, s.Scale(100).Values)
	assert.Equal(t, []float64{-1, 0, 1}, s.Demean().Values)
	assert.Equal(t, []float64{1, 4, 9}, s.Squared().Values)
	assert.Equal(t, []float64{1, 2, 3}, s.Values, "transforms must not mutate the receiver")
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})

	assert.Equal(t, []float64{2, 3, 4}, s.Slice(1, 4).Values)
	assert.Equal(t, []float64{1, 2}, s.Slice(-3, 2).Values)
	assert.Zero(t, s.Slice(4, 2).Len())
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	c := s.Copy()
	c.Values[0] = 42

	assert.Equal(t, 1.0, s.Values[0])
}
