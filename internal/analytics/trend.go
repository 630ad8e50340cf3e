package analytics

import (
	"fmt"
	"math"

	"github.com/stockpilot/stockpilot/internal/models"
)

// minTrendPoints is the floor below which trend classification is meaningless.
// It is stricter than the regression's own 2-point floor: a slope can be fit
// through 2 points, but confidence over it cannot.
const minTrendPoints = 3

// trendBand is the dead zone around zero slope, as a fraction of the series
// mean. Slopes within ±5% of the mean are labeled stable to avoid label
// flapping on noisy-but-flat series.
const trendBand = 0.05

// PredictNextValue fits a regression over the series and predicts the value
// at the next index. Series shorter than 3 points return a zeroed stable
// result with the "not enough data" recommendation.
//
// Confidence is derived from relative variability: clamp(100 − CV·100, 0, 100).
// A zero-mean series has undefined CV and yields confidence 0.
func PredictNextValue(series []models.TimeSeriesPoint) models.PredictionResult {
	if len(series) < minTrendPoints {
		return models.PredictionResult{
			PredictedValue: 0,
			Confidence:     0,
			Trend:          models.TrendStable,
			Recommendation: "Not enough data for a reliable prediction; at least 3 periods are needed.",
		}
	}

	values := seriesValues(series)
	slope, intercept := LinearRegression(values)

	predicted := slope*float64(len(values)) + intercept
	if predicted < 0 {
		predicted = 0
	}

	mean, _ := Mean(values)
	trend := classifyTrend(slope, mean)

	return models.PredictionResult{
		PredictedValue: predicted,
		Confidence:     confidenceScore(values),
		Trend:          trend,
		Recommendation: recommendationFor(trend, slope, mean),
	}
}

// MovingAverage smooths values with a trailing window of the given period.
// Indexes before the window fills (i < period−1) pass through unchanged.
// Output length always equals input length. A period below 2 returns a copy.
func MovingAverage(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period < 2 {
		copy(out, values)
		return out
	}

	var window float64
	for i, v := range values {
		window += v
		if i >= period {
			window -= values[i-period]
		}
		if i < period-1 {
			out[i] = v
		} else {
			out[i] = window / float64(period)
		}
	}
	return out
}

func seriesValues(series []models.TimeSeriesPoint) []float64 {
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}
	return values
}

// confidenceScore maps relative variability to a percentage: a perfectly
// flat series scores 100, a series whose deviation matches its mean scores 0.
// Zero-mean and empty series score 0.
func confidenceScore(values []float64) float64 {
	cv, err := CoefficientOfVariation(values)
	if err != nil {
		return 0
	}
	confidence := 100 - cv*100
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}

func classifyTrend(slope, mean float64) models.Trend {
	switch {
	case slope > trendBand*mean:
		return models.TrendIncreasing
	case slope < -trendBand*mean:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func recommendationFor(trend models.Trend, slope, mean float64) string {
	var pct float64
	if mean != 0 {
		pct = math.Abs(slope/mean) * 100
	}

	switch trend {
	case models.TrendIncreasing:
		return fmt.Sprintf("Values are growing about %.1f%% per period. Consider increasing stock of top sellers ahead of demand.", pct)
	case models.TrendDecreasing:
		return fmt.Sprintf("Values are declining about %.1f%% per period. Review pricing and slow-moving inventory.", pct)
	default:
		return "Values are holding steady. Maintain current stock levels."
	}
}
