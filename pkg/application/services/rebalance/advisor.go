package rebalance

import (
	"sort"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// Advisor proposes inter-location transfers that move surplus stock toward
// deficit locations, one SKU at a time
type Advisor struct {
	minQty entities.Units
}

// NewAdvisor creates an advisor suppressing transfers below minQty units.
// Non-positive thresholds fall back to 1.
func NewAdvisor(minQty entities.Units) *Advisor {
	if minQty <= 0 {
		minQty = 1
	}
	return &Advisor{minQty: minQty}
}

// position is a location's net stock against forecast for one SKU
type position struct {
	region entities.Region
	qty    entities.Units
}

// Suggest matches the largest surplus against the largest deficit per SKU,
// transferring min(surplus, deficit) until no pair remains. Ties break on
// lexicographic location name; a proposed transfer never exceeds either
// side's balance at match time.
func (a *Advisor) Suggest(snap entities.Snapshot) []entities.TransferSuggestion {
	demand := snap.DemandBySKURegion()
	stock := snap.StockBySKURegion()

	skuSet := make(map[entities.SKU]bool)
	for sku := range demand {
		skuSet[sku] = true
	}
	for sku := range stock {
		skuSet[sku] = true
	}
	skus := make([]entities.SKU, 0, len(skuSet))
	for sku := range skuSet {
		skus = append(skus, sku)
	}
	sort.Slice(skus, func(i, j int) bool { return skus[i] < skus[j] })

	var suggestions []entities.TransferSuggestion
	for _, sku := range skus {
		surplus, deficit := partition(demand[sku], stock[sku])
		for len(surplus) > 0 && len(deficit) > 0 {
			si := largest(surplus)
			di := largest(deficit)

			qty := surplus[si].qty
			if deficit[di].qty < qty {
				qty = deficit[di].qty
			}
			if qty < a.minQty {
				// Largest pair is already below threshold; nothing bigger remains
				break
			}

			suggestions = append(suggestions, entities.TransferSuggestion{
				SKU:      sku,
				From:     surplus[si].region,
				To:       deficit[di].region,
				Quantity: qty,
			})

			surplus[si].qty -= qty
			deficit[di].qty -= qty
			surplus = compact(surplus)
			deficit = compact(deficit)
		}
	}
	return suggestions
}

// partition splits a SKU's locations into surplus (stock above forecast)
// and deficit (forecast above stock) sets
func partition(
	demand map[entities.Region]entities.Units,
	stock map[entities.Region]entities.Units,
) (surplus, deficit []position) {
	regions := make(map[entities.Region]bool)
	for r := range demand {
		regions[r] = true
	}
	for r := range stock {
		regions[r] = true
	}

	sorted := make([]entities.Region, 0, len(regions))
	for r := range regions {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, r := range sorted {
		net := stock[r] - demand[r]
		switch {
		case net > 0:
			surplus = append(surplus, position{region: r, qty: net})
		case net < 0:
			deficit = append(deficit, position{region: r, qty: -net})
		}
	}
	return surplus, deficit
}

// largest returns the index of the position with the greatest quantity,
// breaking ties on lexicographic region name
func largest(positions []position) int {
	best := 0
	for i := 1; i < len(positions); i++ {
		if positions[i].qty > positions[best].qty ||
			(positions[i].qty == positions[best].qty &&
				positions[i].region < positions[best].region) {
			best = i
		}
	}
	return best
}

// compact drops exhausted positions
func compact(positions []position) []position {
	out := positions[:0]
	for _, p := range positions {
		if p.qty > 0 {
			out = append(out, p)
		}
	}
	return out
}
