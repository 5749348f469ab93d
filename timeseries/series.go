// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNonPositive is returned by LogReturns when the series contains a value <= 0.
var ErrNonPositive = errors.New("series contains non-positive values")

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the unbiased sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Returns calculates simple returns (x_t - x_{t-1}) / x_{t-1}.
// Points where the previous value is zero yield NaN.
func (s *Series) Returns() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		prev := s.Values[i-1]
		if prev == 0 {
			result[i-1] = math.NaN()
			continue
		}
		result[i-1] = (s.Values[i] - prev) / prev
	}

	return &Series{
		Timestamps: s.shiftedTimestamps(1, len(result)),
		Values:     result,
		Name:       s.Name + "_ret",
	}
}

// LogReturns calculates log returns log(x_t / x_{t-1}).
func (s *Series) LogReturns() (*Series, error) {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}}, nil
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		if s.Values[i] <= 0 || s.Values[i-1] <= 0 {
			return nil, ErrNonPositive
		}
		result[i-1] = math.Log(s.Values[i] / s.Values[i-1])
	}

	return &Series{
		Timestamps: s.shiftedTimestamps(1, len(result)),
		Values:     result,
		Name:       s.Name + "_logret",
	}, nil
}

// Scale multiplies every value by factor. Percent returns use factor 100.
func (s *Series) Scale(factor float64) *Series {
	out := s.Copy()
	floats.Scale(factor, out.Values)
	return out
}

// Demean subtracts the sample mean from every value.
func (s *Series) Demean() *Series {
	out := s.Copy()
	floats.AddConst(-s.Mean(), out.Values)
	out.Name = s.Name + "_demeaned"
	return out
}

// Squared returns the series of squared values, the usual proxy for realized variance.
func (s *Series) Squared() *Series {
	out := s.Copy()
	floats.Mul(out.Values, s.Values)
	out.Name = s.Name + "_sq"
	return out
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// HasNaN reports whether any value is NaN or infinite.
func (s *Series) HasNaN() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

func (s *Series) shiftedTimestamps(offset, n int) []time.Time {
	timestamps := make([]time.Time, n)
	if len(s.Timestamps) >= offset+n {
		copy(timestamps, s.Timestamps[offset:offset+n])
	}
	return timestamps
}
