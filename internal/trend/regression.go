package trend

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch = errors.New("x and y lengths differ")
	ErrTooFewPoints   = errors.New("at least 2 points needed")
	ErrZeroVariance   = errors.New("x values have zero variance")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// Fit computes the least-squares line through the points (xs[i], ys[i]).
func Fit(xs, ys []float64) (Line, error) {
	if len(xs) != len(ys) {
		return Line{}, fmt.Errorf("%w: x=%d y=%d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Line{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(xs))
	}
	if floats.Min(xs) == floats.Max(xs) {
		return Line{}, ErrZeroVariance
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Line{
		Slope:     beta,
		Intercept: alpha,
	}, nil
}

func (l Line) Predict(x float64) float64 {
	return l.Slope*x + l.Intercept
}

func (l Line) PredictAll(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = l.Predict(x)
	}
	return ys
}

// Linspace returns n evenly spaced values over [min, max], both ends included.
func Linspace(min, max float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}

// Stats are descriptive statistics of a column. Std is the sample standard deviation.
type Stats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// Describe skips NaN values. Fields that cannot be computed are NaN.
func Describe(values []float64) Stats {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	stats := Stats{
		Count: len(clean),
		Mean:  math.NaN(),
		Std:   math.NaN(),
		Min:   math.NaN(),
		Max:   math.NaN(),
	}
	if len(clean) == 0 {
		return stats
	}

	stats.Mean = stat.Mean(clean, nil)
	stats.Min = floats.Min(clean)
	stats.Max = floats.Max(clean)
	if len(clean) > 1 {
		stats.Std = stat.StdDev(clean, nil)
	}
	return stats
}
