// Package analytics implements the forecasting engine behind the back office:
// trend prediction, anomaly detection, reorder planning, multi-period revenue
// forecasting, ABC revenue classification, and the rule-based insight responder.
//
// Every function is pure and stateless: inputs are in-memory series supplied
// by the caller, outputs are fresh value types, and no call retains state or
// performs I/O. Calls are therefore reentrant and safe to run concurrently
// without locking.
//
// Short or degenerate input is never a hard error. Each function documents an
// explicit fallback (zeroed or flat result) so callers can render "not enough
// data" from the returned values instead of handling failures.
package analytics

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a computation needs at least one value.
var ErrInsufficientData = errors.New("insufficient data: series must not be empty")

// ErrZeroMean is returned when the coefficient of variation is undefined
// because the series mean is zero.
var ErrZeroMean = errors.New("coefficient of variation undefined: mean is zero")

// Mean returns the arithmetic mean of values.
// Returns ErrInsufficientData on an empty slice.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInsufficientData
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// StdDev returns the population standard deviation of values (divide by N,
// not N-1), consistent with the bias choice used across the engine.
// Returns 0 for an empty slice.
func StdDev(values []float64) float64 {
	mean, err := Mean(values)
	if err != nil {
		return 0
	}
	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// CoefficientOfVariation returns stdDev/mean, a unit-free measure of relative
// dispersion. Returns ErrZeroMean when the mean is zero (CV is undefined
// there; callers map it to zero confidence) and ErrInsufficientData on an
// empty slice.
func CoefficientOfVariation(values []float64) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	if mean == 0 {
		return 0, ErrZeroMean
	}
	return StdDev(values) / mean, nil
}

// LinearRegression fits ordinary least squares over (index, value) pairs,
// using the slice index as the independent variable:
//
//	slope     = (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²)
//	intercept = (Σy − slope·Σx) / n
//
// Fewer than 2 points yields the flat-line fallback {0, 0} rather than an
// error, so short series never need special-casing downstream.
func LinearRegression(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	if n < 2 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
