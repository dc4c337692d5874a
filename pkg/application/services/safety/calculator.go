package safety

import (
	"fmt"
	"math"
	"sort"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// OverstockFactor marks stock as overstock once it exceeds forecast demand
// by this multiple
const OverstockFactor = 1.3

// zTable maps service levels to inverse standard normal CDF values.
// Intermediate levels interpolate linearly; levels below 0.5 mirror to
// negative z.
var zTable = []struct {
	level float64
	z     float64
}{
	{0.50, 0},
	{0.80, 0.8416},
	{0.85, 1.0364},
	{0.90, 1.2816},
	{0.95, 1.6449},
	{0.975, 1.9600},
	{0.99, 2.3263},
	{0.995, 2.5758},
	{0.999, 3.0902},
}

// ZScore approximates the inverse standard normal CDF at the given level
func ZScore(serviceLevel float64) float64 {
	if serviceLevel < 0.5 {
		return -ZScore(1 - serviceLevel)
	}
	for i := 1; i < len(zTable); i++ {
		if serviceLevel <= zTable[i].level {
			lo, hi := zTable[i-1], zTable[i]
			frac := (serviceLevel - lo.level) / (hi.level - lo.level)
			return lo.z + frac*(hi.z-lo.z)
		}
	}
	return zTable[len(zTable)-1].z
}

// Calculator sizes statistical reorder buffers from demand history
type Calculator struct {
	leadTimePeriods float64
}

// NewCalculator creates a calculator using the given lead time in periods.
// Non-positive values fall back to 1 (lead time unknown).
func NewCalculator(leadTimePeriods float64) *Calculator {
	if leadTimePeriods <= 0 {
		leadTimePeriods = 1
	}
	return &Calculator{leadTimePeriods: leadTimePeriods}
}

// Compute returns a safety stock recommendation per (SKU, Region) at the
// target service level. serviceLevel must be inside (0, 1) exclusive.
func (c *Calculator) Compute(
	snap entities.Snapshot,
	serviceLevel float64,
) ([]entities.SafetyStockRow, error) {
	if serviceLevel <= 0 || serviceLevel >= 1 {
		return nil, entities.NewValidationError("service_level",
			"%.3f outside (0, 1) exclusive", serviceLevel)
	}

	type seriesKey struct {
		sku    entities.SKU
		region entities.Region
	}
	history := make(map[seriesKey][]float64)
	for _, d := range snap.Demand {
		key := seriesKey{sku: d.SKU, region: d.Region}
		history[key] = append(history[key], float64(d.ForecastDemand))
	}

	keys := make([]seriesKey, 0, len(history))
	for key := range history {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sku != keys[j].sku {
			return keys[i].sku < keys[j].sku
		}
		return keys[i].region < keys[j].region
	})

	z := ZScore(serviceLevel)
	label := fmt.Sprintf("%d%%", int(math.Round(serviceLevel*100)))

	rows := make([]entities.SafetyStockRow, 0, len(keys))
	for _, key := range keys {
		sigma := stdDev(history[key])
		buffer := math.Round(z * sigma * math.Sqrt(c.leadTimePeriods))
		rows = append(rows, entities.SafetyStockRow{
			SKU:          key.sku,
			Region:       key.region,
			SafetyStock:  entities.Units(buffer),
			ServiceLevel: label,
		})
	}
	return rows, nil
}

// PredictInventoryStatus joins forecast demand against stock on hand per
// (SKU, Region) and classifies each position
func (c *Calculator) PredictInventoryStatus(snap entities.Snapshot) []entities.InventoryPosition {
	demand := snap.DemandBySKURegion()
	stock := snap.StockBySKURegion()

	type posKey struct {
		sku    entities.SKU
		region entities.Region
	}
	seen := make(map[posKey]bool)
	var keys []posKey
	for sku, regions := range demand {
		for region := range regions {
			key := posKey{sku, region}
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	for sku, regions := range stock {
		for region := range regions {
			key := posKey{sku, region}
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sku != keys[j].sku {
			return keys[i].sku < keys[j].sku
		}
		return keys[i].region < keys[j].region
	})

	positions := make([]entities.InventoryPosition, 0, len(keys))
	for _, key := range keys {
		var forecast, onHand entities.Units
		if regions := demand[key.sku]; regions != nil {
			forecast = regions[key.region]
		}
		if regions := stock[key.sku]; regions != nil {
			onHand = regions[key.region]
		}

		status := entities.StatusBalanced
		switch {
		case onHand < forecast:
			status = entities.StatusShortage
		case float64(onHand) > float64(forecast)*OverstockFactor:
			status = entities.StatusOverstock
		}
		positions = append(positions, entities.InventoryPosition{
			SKU:      key.sku,
			Region:   key.region,
			Forecast: forecast,
			Stock:    onHand,
			Status:   status,
		})
	}
	return positions
}

// stdDev returns the population standard deviation; fewer than two points
// yield zero
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
