package entities

// Snapshot is an immutable copy of every dataset taken under the store's
// mutation lock. Derive operations compute from a Snapshot plus parameters
// and never observe a partially applied mutation.
type Snapshot struct {
	Demand     []DemandRecord
	Stock      []StockRecord
	Suppliers  []SupplierRecord
	Production []ProductionRecord
}

// DemandBySKU sums forecast demand per SKU across the snapshot
func (s Snapshot) DemandBySKU() map[SKU]Units {
	totals := make(map[SKU]Units)
	for _, d := range s.Demand {
		totals[d.SKU] += d.ForecastDemand
	}
	return totals
}

// DemandBySKURegion sums forecast demand per (SKU, Region)
func (s Snapshot) DemandBySKURegion() map[SKU]map[Region]Units {
	totals := make(map[SKU]map[Region]Units)
	for _, d := range s.Demand {
		if totals[d.SKU] == nil {
			totals[d.SKU] = make(map[Region]Units)
		}
		totals[d.SKU][d.Region] += d.ForecastDemand
	}
	return totals
}

// StockBySKURegion sums stock on hand per (SKU, Region)
func (s Snapshot) StockBySKURegion() map[SKU]map[Region]Units {
	totals := make(map[SKU]map[Region]Units)
	for _, r := range s.Stock {
		if totals[r.SKU] == nil {
			totals[r.SKU] = make(map[Region]Units)
		}
		totals[r.SKU][r.Region] += r.Stock
	}
	return totals
}

// CapacityByPlant sums production capacity per plant
func (s Snapshot) CapacityByPlant() map[Plant]Units {
	totals := make(map[Plant]Units)
	for _, p := range s.Production {
		totals[p.Plant] += p.Capacity
	}
	return totals
}

// CapacityBySKU sums production capacity per SKU
func (s Snapshot) CapacityBySKU() map[SKU]Units {
	totals := make(map[SKU]Units)
	for _, p := range s.Production {
		totals[p.SKU] += p.Capacity
	}
	return totals
}

// Empty reports whether no dataset holds any rows
func (s Snapshot) Empty() bool {
	return len(s.Demand) == 0 && len(s.Stock) == 0 &&
		len(s.Suppliers) == 0 && len(s.Production) == 0
}
