package analytics

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"single value", []float64{5}, 5},
		{"uniform", []float64{10, 10, 10}, 10},
		{"mixed", []float64{1, 2, 3, 4}, 2.5},
		{"negatives", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mean(tt.values)
			if err != nil {
				t.Fatalf("Mean returned error: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Mean(%v) = %f, want %f", tt.values, got, tt.want)
			}
		})
	}
}

func TestMean_Empty(t *testing.T) {
	_, err := Mean(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestStdDev(t *testing.T) {
	// Population std dev (divide by N): classic textbook series.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almostEqual(got, 2) {
		t.Errorf("StdDev = %f, want 2", got)
	}
}

func TestStdDev_Degenerate(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev(nil) = %f, want 0", got)
	}
	if got := StdDev([]float64{7, 7, 7}); got != 0 {
		t.Errorf("StdDev of constant series = %f, want 0", got)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	got, err := CoefficientOfVariation([]float64{8, 8, 12, 12})
	if err != nil {
		t.Fatalf("CoefficientOfVariation returned error: %v", err)
	}
	if !almostEqual(got, 0.2) {
		t.Errorf("CV = %f, want 0.2", got)
	}
}

func TestCoefficientOfVariation_ZeroMean(t *testing.T) {
	_, err := CoefficientOfVariation([]float64{0, 0, 0})
	if !errors.Is(err, ErrZeroMean) {
		t.Errorf("expected ErrZeroMean, got %v", err)
	}
}

func TestLinearRegression(t *testing.T) {
	slope, intercept := LinearRegression([]float64{10, 20, 30})
	if !almostEqual(slope, 10) {
		t.Errorf("slope = %f, want 10", slope)
	}
	if !almostEqual(intercept, 10) {
		t.Errorf("intercept = %f, want 10", intercept)
	}
}

func TestLinearRegression_ShortSeries(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"one point", []float64{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slope, intercept := LinearRegression(tt.values)
			if slope != 0 || intercept != 0 {
				t.Errorf("expected flat-line fallback {0, 0}, got {%f, %f}", slope, intercept)
			}
		})
	}
}

func TestLinearRegression_FlatSeries(t *testing.T) {
	slope, intercept := LinearRegression([]float64{100, 100, 100, 100})
	if !almostEqual(slope, 0) {
		t.Errorf("slope = %f, want 0", slope)
	}
	if !almostEqual(intercept, 100) {
		t.Errorf("intercept = %f, want 100", intercept)
	}
}
