package analytics

import (
	"math"

	"github.com/stockpilot/stockpilot/internal/models"
)

// leadTimeDays is the assumed replenishment lead time. It is a policy
// constant rather than something derived from input; deployments with
// supplier-specific lead times should parameterize it.
const leadTimeDays = 7

// serviceLevelZ is the z-score for a 95% single-sided service level,
// used to size safety stock against demand variability.
const serviceLevelZ = 1.65

// PlanReorder derives safety stock and a reorder point from a daily-demand
// history:
//
//	safetyStock  = ceil(z · σ(demand) · √leadTime)
//	reorderPoint = ceil(avgDailyDemand · leadTime + safetyStock)
//
// An empty history returns the zero plan.
func PlanReorder(dailyDemand []float64) models.ReorderPlan {
	avg, err := Mean(dailyDemand)
	if err != nil {
		return models.ReorderPlan{}
	}

	safety := math.Ceil(serviceLevelZ * StdDev(dailyDemand) * math.Sqrt(leadTimeDays))
	reorder := math.Ceil(avg*leadTimeDays + safety)

	return models.ReorderPlan{
		ReorderPoint: int(reorder),
		SafetyStock:  int(safety),
	}
}
