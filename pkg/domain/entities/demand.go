package entities

import "strings"

// SKU identifies a stock-keeping unit
type SKU string

// Region identifies a demand or stock site
type Region string

// Units represents a whole-unit quantity of product
type Units int64

// NormalizeSKU canonicalizes a raw SKU string (trimmed, upper case)
func NormalizeSKU(raw string) SKU {
	return SKU(strings.ToUpper(strings.TrimSpace(raw)))
}

// NormalizeRegion canonicalizes a raw region string (trimmed, title case)
func NormalizeRegion(raw string) Region {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(raw))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return Region(strings.Join(words, " "))
}

// DemandRecord is one week of demand history for a SKU in a region.
// (SKU, Region, Week) is the natural key.
type DemandRecord struct {
	SKU            SKU    `json:"SKU"`
	Region         Region `json:"Region"`
	Week           int    `json:"Week"`
	ForecastDemand Units  `json:"Forecast_Demand"`
	ActualDemand   Units  `json:"Actual_Demand"`
}

// SimulatedDemandRecord is a DemandRecord with a spike applied to actual demand
type SimulatedDemandRecord struct {
	SKU             SKU     `json:"SKU"`
	Region          Region  `json:"Region"`
	Week            int     `json:"Week"`
	ForecastDemand  Units   `json:"Forecast_Demand"`
	ActualDemand    Units   `json:"Actual_Demand"`
	SimulatedDemand float64 `json:"Simulated_Demand"`
	Spike           bool    `json:"Spike"`
}

// ForecastResult holds projected future demand points
type ForecastResult struct {
	OriginalSeries []float64 `json:"original_series"`
	Forecast       []float64 `json:"forecast"`
}
