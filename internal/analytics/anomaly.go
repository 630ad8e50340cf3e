package analytics

import (
	"math"

	"github.com/stockpilot/stockpilot/internal/models"
)

// minAnomalyPoints is the smallest series worth scanning; a deviation band
// over fewer points flags noise, not anomalies.
const minAnomalyPoints = 5

// sigmaMultiplier widens the deviation band to two standard deviations,
// roughly a 95% interval under a normal-ish assumption.
const sigmaMultiplier = 2.0

// DetectAnomalies flags points whose distance from the series mean exceeds
// two standard deviations. Series shorter than 5 points return an empty
// report with threshold 0 — insufficient data is not an error. Flagged
// points keep their input order.
func DetectAnomalies(series []models.TimeSeriesPoint) models.AnomalyReport {
	report := models.AnomalyReport{Anomalies: []models.TimeSeriesPoint{}}
	if len(series) < minAnomalyPoints {
		return report
	}

	values := seriesValues(series)
	mean, _ := Mean(values)
	report.Threshold = sigmaMultiplier * StdDev(values)

	for _, p := range series {
		if math.Abs(p.Value-mean) > report.Threshold {
			report.Anomalies = append(report.Anomalies, p)
		}
	}
	return report
}
