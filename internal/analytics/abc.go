package analytics

import (
	"sort"

	"github.com/stockpilot/stockpilot/internal/models"
)

// ABC tier boundaries as cumulative percentages of total revenue, boundary
// inclusive: a product landing exactly on 80% is still class A.
const (
	classACutoff = 80.0
	classBCutoff = 95.0
)

// Classify partitions products into ABC revenue tiers: class A covers the
// top ~80% of cumulative revenue, class B the next ~15%, class C the rest.
// Every product lands in exactly one class.
//
// Products are walked in descending revenue order; equal revenues are
// broken by ID ascending so the partition is deterministic. A zero revenue
// total routes every product to class C rather than dividing by zero.
func Classify(products []models.ProductRevenueRecord) models.RevenueClassification {
	sorted := make([]models.ProductRevenueRecord, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Revenue != sorted[j].Revenue {
			return sorted[i].Revenue > sorted[j].Revenue
		}
		return sorted[i].ID < sorted[j].ID
	})

	classification := models.RevenueClassification{
		ClassA: []models.ProductRevenueRecord{},
		ClassB: []models.ProductRevenueRecord{},
		ClassC: []models.ProductRevenueRecord{},
	}

	var total float64
	for _, p := range sorted {
		total += p.Revenue
	}
	if total == 0 {
		classification.ClassC = append(classification.ClassC, sorted...)
		return classification
	}

	var cumulative float64
	for _, p := range sorted {
		cumulative += p.Revenue
		// Multiply before dividing so integer-valued revenues hit the
		// 80/95 boundaries exactly.
		pct := cumulative * 100 / total
		switch {
		case pct <= classACutoff:
			classification.ClassA = append(classification.ClassA, p)
		case pct <= classBCutoff:
			classification.ClassB = append(classification.ClassB, p)
		default:
			classification.ClassC = append(classification.ClassC, p)
		}
	}
	return classification
}
