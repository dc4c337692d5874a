package entities

import "github.com/shopspring/decimal"

// Plant identifies a production facility
type Plant string

// ProductionRecord is one week of plant output history for a SKU
type ProductionRecord struct {
	Plant    Plant `json:"Plant"`
	SKU      SKU   `json:"SKU"`
	Week     int   `json:"Week"`
	Capacity Units `json:"Capacity"`
	Produced Units `json:"Produced"`
}

// AllocationStrategy selects how plant capacity is assigned to SKU demand
type AllocationStrategy string

const (
	StrategyEqual          AllocationStrategy = "equal"
	StrategyDemandPriority AllocationStrategy = "demand-priority"
	StrategyProfitPriority AllocationStrategy = "profit-priority"
)

// Valid reports whether the strategy is one of the supported values
func (s AllocationStrategy) Valid() bool {
	switch s {
	case StrategyEqual, StrategyDemandPriority, StrategyProfitPriority:
		return true
	}
	return false
}

// PlantAllocationRow is one (Plant, SKU) line of an allocation problem or
// its solution. Capacity is the plant's total capacity, repeated on every
// row of that plant.
type PlantAllocationRow struct {
	Plant        Plant   `json:"Plant"`
	SKU          SKU     `json:"SKU"`
	Capacity     float64 `json:"Capacity"`
	Forecast     float64 `json:"Forecast"`
	Allocated    float64 `json:"Allocated"`
	ProfitMargin float64 `json:"Profit_Margin"`
}

// Profit returns Allocated x ProfitMargin as an exact decimal, rounded to
// two places
func (r PlantAllocationRow) Profit() decimal.Decimal {
	return decimal.NewFromFloat(r.Allocated).
		Mul(decimal.NewFromFloat(r.ProfitMargin)).
		Round(2)
}

// PlantUtilization summarizes allocated load against capacity for one plant.
// Percent above 100 means the input rows were already overcommitted; the
// optimizer reports this but never produces it from valid capacity.
type PlantUtilization struct {
	Plant     Plant   `json:"Plant"`
	Capacity  float64 `json:"Capacity"`
	Allocated float64 `json:"Allocated"`
	Percent   float64 `json:"Utilization"`
}

// AllocationPlan is the full output of one optimizer run
type AllocationPlan struct {
	Strategy    AllocationStrategy   `json:"strategy"`
	Rows        []PlantAllocationRow `json:"rows"`
	Utilization []PlantUtilization   `json:"utilization"`
	TotalProfit decimal.Decimal      `json:"total_profit"`
}
