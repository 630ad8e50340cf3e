package models

import "time"

// TimeSeriesPoint is one observation in a chronologically ordered series,
// e.g. one month of revenue. Index position within a series is significant:
// the analytics engine uses it as the regression independent variable.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Trend labels the direction of a fitted series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// PredictionResult is the output of next-value trend estimation.
// Confidence is a percentage in [0, 100]; PredictedValue is never negative.
type PredictionResult struct {
	PredictedValue float64 `json:"predicted_value"`
	Confidence     float64 `json:"confidence"`
	Trend          Trend   `json:"trend"`
	Recommendation string  `json:"recommendation"`
}

// ForecastPoint is one element of a multi-period revenue forecast.
// PeriodOffset is 1-indexed: offset 1 is the first period after the series.
type ForecastPoint struct {
	PeriodOffset int     `json:"period_offset"`
	Value        float64 `json:"value"`
	Confidence   float64 `json:"confidence"`
}

// RevenueForecast bundles a multi-period forecast with its total.
type RevenueForecast struct {
	Forecasts      []ForecastPoint `json:"forecasts"`
	TotalPredicted float64         `json:"total_predicted"`
}

// ReorderPlan holds the replenishment numbers derived from a daily-demand
// history. Both values are whole units, never negative.
type ReorderPlan struct {
	ReorderPoint int `json:"reorder_point"`
	SafetyStock  int `json:"safety_stock"`
}

// AnomalyReport lists the points of a series that fall outside the
// deviation threshold. Anomalies keep their input order.
type AnomalyReport struct {
	Anomalies []TimeSeriesPoint `json:"anomalies"`
	Threshold float64           `json:"threshold"`
}

// ProductRevenueRecord is the classifier's view of a product: identity
// plus its total revenue contribution.
type ProductRevenueRecord struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// RevenueClassification partitions a product set into ABC revenue tiers.
// Every input product lands in exactly one class.
type RevenueClassification struct {
	ClassA []ProductRevenueRecord `json:"class_a"`
	ClassB []ProductRevenueRecord `json:"class_b"`
	ClassC []ProductRevenueRecord `json:"class_c"`
}
