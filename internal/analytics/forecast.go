package analytics

import (
	"math"

	"github.com/stockpilot/stockpilot/internal/models"
)

// DefaultForecastPeriods is how far ahead ForecastRevenue looks when the
// caller does not ask for a specific horizon.
const DefaultForecastPeriods = 3

// confidenceDecay shrinks confidence geometrically per period ahead,
// modeling growing uncertainty without a full predictive-interval model.
const confidenceDecay = 0.9

// ForecastRevenue extrapolates a single regression fit periodsAhead periods
// past the end of the series. The fit is computed once and reused for every
// period, not re-fit per step.
//
// Period values are floored at 0 and rounded to 2 decimals. Confidence
// starts from the same variability-based score as PredictNextValue (0 for
// series shorter than 3 points) and decays by ×0.9 per period, rounded to
// the nearest integer. A periodsAhead below 1 falls back to the default
// horizon of 3.
func ForecastRevenue(series []models.TimeSeriesPoint, periodsAhead int) models.RevenueForecast {
	if periodsAhead < 1 {
		periodsAhead = DefaultForecastPeriods
	}

	values := seriesValues(series)
	slope, intercept := LinearRegression(values)

	var base float64
	if len(values) >= minTrendPoints {
		base = confidenceScore(values)
	}

	n := float64(len(values))
	forecast := models.RevenueForecast{
		Forecasts: make([]models.ForecastPoint, 0, periodsAhead),
	}

	var total float64
	for i := 1; i <= periodsAhead; i++ {
		value := slope*(n+float64(i)-1) + intercept
		if value < 0 {
			value = 0
		}
		value = round2(value)
		total += value

		forecast.Forecasts = append(forecast.Forecasts, models.ForecastPoint{
			PeriodOffset: i,
			Value:        value,
			Confidence:   math.Round(base * math.Pow(confidenceDecay, float64(i-1))),
		})
	}

	forecast.TotalPredicted = round2(total)
	return forecast
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
