package kpi

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/freshbites/planner/pkg/application/services/safety"
	"github.com/freshbites/planner/pkg/domain/entities"
)

// Aggregator composes the dashboard KPI report from the classified
// inventory positions and supplier performance
type Aggregator struct {
	classifier         *safety.Calculator
	holdingCostPerUnit float64
}

// NewAggregator creates an aggregator pricing overstock at the given
// per-unit holding cost
func NewAggregator(classifier *safety.Calculator, holdingCostPerUnit float64) *Aggregator {
	if holdingCostPerUnit < 0 {
		holdingCostPerUnit = 0
	}
	return &Aggregator{classifier: classifier, holdingCostPerUnit: holdingCostPerUnit}
}

// Report scores the snapshot:
//   - service level: percentage of positions not in shortage
//   - stockouts: count of shortage positions
//   - excess cost: units above forecast on overstock positions, priced at
//     the holding cost
//   - supplier reliability: mean on-time percentage across suppliers
//
// All values are zero on an empty snapshot.
func (a *Aggregator) Report(snap entities.Snapshot) entities.KPIReport {
	report := entities.KPIReport{ExcessCost: decimal.Zero}

	positions := a.classifier.PredictInventoryStatus(snap)
	if len(positions) > 0 {
		stockouts := 0
		excess := decimal.Zero
		cost := decimal.NewFromFloat(a.holdingCostPerUnit)
		for _, p := range positions {
			switch p.Status {
			case entities.StatusShortage:
				stockouts++
			case entities.StatusOverstock:
				over := decimal.NewFromInt(int64(p.Stock - p.Forecast))
				excess = excess.Add(cost.Mul(over))
			}
		}
		report.Stockouts = stockouts
		report.ExcessCost = excess.Round(2)
		inStock := len(positions) - stockouts
		report.ServiceLevel = round2(100 * float64(inStock) / float64(len(positions)))
	}

	if len(snap.Suppliers) > 0 {
		var sum float64
		for _, s := range snap.Suppliers {
			sum += s.Reliability()
		}
		report.SupplierReliability = round2(sum / float64(len(snap.Suppliers)))
	}
	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
