package whatif

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// Simulator evaluates KPI outcomes under percentage perturbations of demand
// and capacity without touching the live datasets
type Simulator struct {
	holdingCostPerUnit float64
}

// NewSimulator creates a simulator pricing excess supply at the given
// per-unit holding cost
func NewSimulator(holdingCostPerUnit float64) *Simulator {
	if holdingCostPerUnit < 0 {
		holdingCostPerUnit = 0
	}
	return &Simulator{holdingCostPerUnit: holdingCostPerUnit}
}

// Run perturbs the snapshot's aggregate demand by demandPct percent and its
// production capacity by capacityPct percent, then scores the result. Supply
// per SKU is stock on hand plus adjusted capacity. An empty snapshot scores
// all zeros.
func (s *Simulator) Run(snap entities.Snapshot, demandPct, capacityPct float64) entities.WhatIfResult {
	demand := snap.DemandBySKU()
	capacity := snap.CapacityBySKU()
	stock := make(map[entities.SKU]entities.Units)
	for _, r := range snap.Stock {
		stock[r.SKU] += r.Stock
	}

	skus := unionSKUs(demand, capacity, stock)
	demandFactor := 1 + demandPct/100
	capacityFactor := 1 + capacityPct/100

	rows := make([]entities.WhatIfRow, 0, len(skus))
	for _, sku := range skus {
		rows = append(rows, entities.WhatIfRow{
			SKU:      sku,
			Demand:   float64(demand[sku]) * demandFactor,
			Capacity: float64(stock[sku]) + float64(capacity[sku])*capacityFactor,
		})
	}
	return s.score(rows)
}

// RunDataset scores a caller-supplied demand/capacity dataset with the same
// perturbation factors applied
func (s *Simulator) RunDataset(ds entities.WhatIfDataset, demandPct, capacityPct float64) entities.WhatIfResult {
	demandFactor := 1 + demandPct/100
	capacityFactor := 1 + capacityPct/100

	rows := make([]entities.WhatIfRow, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		rows = append(rows, entities.WhatIfRow{
			SKU:      r.SKU,
			Demand:   r.Demand * demandFactor,
			Capacity: r.Capacity * capacityFactor,
		})
	}
	return s.score(rows)
}

// score counts SKUs whose supply falls short of demand and prices the
// aggregate oversupply at the holding cost
func (s *Simulator) score(rows []entities.WhatIfRow) entities.WhatIfResult {
	result := entities.WhatIfResult{ExcessCost: decimal.Zero}
	if len(rows) == 0 {
		return result
	}

	var totalDemand, totalCapacity float64
	stockouts := 0
	for _, r := range rows {
		totalDemand += r.Demand
		totalCapacity += r.Capacity
		if r.Capacity < r.Demand {
			stockouts++
		}
	}

	result.AdjustedDemand = round2(totalDemand)
	result.AdjustedCapacity = round2(totalCapacity)
	result.Stockouts = stockouts
	result.ServiceLevel = round2(100 * (1 - float64(stockouts)/float64(len(rows))))
	if excess := totalCapacity - totalDemand; excess > 0 {
		result.ExcessCost = decimal.NewFromFloat(s.holdingCostPerUnit).
			Mul(decimal.NewFromFloat(excess)).Round(2)
	}
	return result
}

func unionSKUs(
	demand map[entities.SKU]entities.Units,
	capacity map[entities.SKU]entities.Units,
	stock map[entities.SKU]entities.Units,
) []entities.SKU {
	set := make(map[entities.SKU]bool)
	for sku := range demand {
		set[sku] = true
	}
	for sku := range capacity {
		set[sku] = true
	}
	for sku := range stock {
		set[sku] = true
	}
	skus := make([]entities.SKU, 0, len(set))
	for sku := range set {
		skus = append(skus, sku)
	}
	sort.Slice(skus, func(i, j int) bool { return skus[i] < skus[j] })
	return skus
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
