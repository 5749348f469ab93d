package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDesign is returned when a regression design matrix is empty, ragged,
// or has fewer rows than columns.
var ErrDesign = errors.New("invalid regression design")

// OLSResult holds a least-squares fit of y on X.
type OLSResult struct {
	Coeffs    []float64
	Residuals []float64
	RSquared  float64
}

// OLS fits y = X·b by least squares. An intercept column of ones is
// prepended when intercept is true, and Coeffs[0] is then the intercept.
func OLS(x [][]float64, y []float64, intercept bool) (*OLSResult, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, fmt.Errorf("%w: %d rows for %d observations", ErrDesign, len(x), n)
	}

	k := len(x[0])
	if intercept {
		k++
	}
	if k == 0 || n < k {
		return nil, fmt.Errorf("%w: %d observations for %d coefficients", ErrDesign, n, k)
	}

	design := mat.NewDense(n, k, nil)
	for i, row := range x {
		if len(row) != len(x[0]) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDesign, i, len(row), len(x[0]))
		}
		col := 0
		if intercept {
			design.Set(i, 0, 1)
			col = 1
		}
		for j, v := range row {
			design.Set(i, col+j, v)
		}
	}

	target := mat.NewVecDense(n, append([]float64(nil), y...))

	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		return nil, fmt.Errorf("stats: ols: %w", err)
	}

	var fitted mat.VecDense
	fitted.MulVec(design, &beta)

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)

	residuals := make([]float64, n)
	rss, tss := 0.0, 0.0
	for i, v := range y {
		residuals[i] = v - fitted.AtVec(i)
		rss += residuals[i] * residuals[i]
		tss += (v - mean) * (v - mean)
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	return &OLSResult{
		Coeffs:    mat.Col(nil, 0, &beta),
		Residuals: residuals,
		RSquared:  r2,
	}, nil
}
