package entities

import "github.com/shopspring/decimal"

// KPIReport is the composed dashboard view over the current datasets.
// All values are zero on an empty store.
type KPIReport struct {
	ServiceLevel        float64         `json:"service_level"`
	Stockouts           int             `json:"stockouts"`
	ExcessCost          decimal.Decimal `json:"excess_cost"`
	SupplierReliability float64         `json:"supplier_reliability"`
}

// WhatIfResult holds KPI outcomes under perturbed demand and capacity
type WhatIfResult struct {
	AdjustedDemand   float64         `json:"adjusted_demand"`
	AdjustedCapacity float64         `json:"adjusted_capacity"`
	Stockouts        int             `json:"stockouts"`
	ServiceLevel     float64         `json:"service_level"`
	ExcessCost       decimal.Decimal `json:"excess_cost"`
}

// WhatIfDataset is a one-shot demand/capacity dataset evaluated in place of
// the live snapshot
type WhatIfDataset struct {
	Rows []WhatIfRow `json:"rows"`
}

// WhatIfRow pairs demand with available supply for one SKU
type WhatIfRow struct {
	SKU      SKU     `json:"SKU"`
	Demand   float64 `json:"Demand"`
	Capacity float64 `json:"Capacity"`
}
