package allocation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// Optimizer assigns SKU demand to plant capacity under a strategy. Output
// is fully deterministic: identical input rows and strategy always produce
// identical rows in identical order.
type Optimizer struct{}

// NewOptimizer creates a new allocation optimizer
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// plantGroup collects the input rows of one plant. Capacity is the plant
// total, repeated on every row of the plant in the input.
type plantGroup struct {
	plant    entities.Plant
	capacity float64
	rows     []entities.PlantAllocationRow
}

// Optimize solves the allocation problem over the given rows. Rows with
// negative capacity or forecast reject the whole call; sums of Allocated
// per plant never exceed that plant's capacity.
func (o *Optimizer) Optimize(
	rows []entities.PlantAllocationRow,
	strategy entities.AllocationStrategy,
) (entities.AllocationPlan, error) {
	if !strategy.Valid() {
		return entities.AllocationPlan{}, entities.NewValidationError(
			"strategy", "unknown strategy %q", strategy)
	}
	for _, r := range rows {
		if r.Capacity < 0 {
			return entities.AllocationPlan{}, entities.NewValidationError(
				"capacity", "plant %s has negative capacity %v", r.Plant, r.Capacity)
		}
		if r.Forecast < 0 {
			return entities.AllocationPlan{}, entities.NewValidationError(
				"forecast", "SKU %s at plant %s has negative forecast %v",
				r.SKU, r.Plant, r.Forecast)
		}
	}

	groups := groupByPlant(rows)

	var out []entities.PlantAllocationRow
	for _, g := range groups {
		switch strategy {
		case entities.StrategyEqual:
			out = append(out, allocateProportional(g)...)
		case entities.StrategyDemandPriority:
			out = append(out, allocateGreedy(g, byDemand)...)
		case entities.StrategyProfitPriority:
			out = append(out, allocateGreedy(g, byProfitMargin)...)
		}
	}

	sortRows(out)
	plan := entities.AllocationPlan{
		Strategy:    strategy,
		Rows:        out,
		Utilization: Utilization(out),
		TotalProfit: totalProfit(out),
	}
	return plan, nil
}

// PlanFromSnapshot builds the allocation problem from live production and
// demand data: per (Plant, SKU) pair seen in production history, plant
// capacity is the plant's aggregate capacity and forecast is the SKU's
// aggregate forecast demand
func (o *Optimizer) PlanFromSnapshot(
	snap entities.Snapshot,
	strategy entities.AllocationStrategy,
) (entities.AllocationPlan, error) {
	if len(snap.Production) == 0 || len(snap.Demand) == 0 {
		return entities.AllocationPlan{}, entities.ErrNoData
	}

	capacity := snap.CapacityByPlant()
	demand := snap.DemandBySKU()

	type pair struct {
		plant entities.Plant
		sku   entities.SKU
	}
	seen := make(map[pair]bool)
	var rows []entities.PlantAllocationRow
	for _, p := range snap.Production {
		key := pair{p.Plant, p.SKU}
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, entities.PlantAllocationRow{
			Plant:        p.Plant,
			SKU:          p.SKU,
			Capacity:     float64(capacity[p.Plant]),
			Forecast:     float64(demand[p.SKU]),
			ProfitMargin: 1.0,
		})
	}
	return o.Optimize(rows, strategy)
}

// Utilization reports allocated load against capacity per plant, in
// ascending plant order. Input rows already exceeding capacity surface as
// percentages above 100; they are reported, never corrected.
func Utilization(rows []entities.PlantAllocationRow) []entities.PlantUtilization {
	groups := groupByPlant(rows)
	out := make([]entities.PlantUtilization, 0, len(groups))
	for _, g := range groups {
		var allocated float64
		for _, r := range g.rows {
			allocated += r.Allocated
		}
		percent := 0.0
		if g.capacity > 0 {
			percent = round2(allocated / g.capacity * 100)
		}
		out = append(out, entities.PlantUtilization{
			Plant:     g.plant,
			Capacity:  g.capacity,
			Allocated: round2(allocated),
			Percent:   percent,
		})
	}
	return out
}

// allocateProportional apportions plant capacity across SKUs by each SKU's
// share of the plant's total forecast demand, capped at the SKU's own
// forecast and at remaining capacity. SKUs fill in ascending name order.
func allocateProportional(g plantGroup) []entities.PlantAllocationRow {
	rows := make([]entities.PlantAllocationRow, len(g.rows))
	copy(rows, g.rows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })

	var totalForecast float64
	for _, r := range rows {
		totalForecast += r.Forecast
	}

	remaining := g.capacity
	for i := range rows {
		alloc := 0.0
		if totalForecast > 0 {
			alloc = rows[i].Forecast / totalForecast * g.capacity
		}
		alloc = math.Min(alloc, rows[i].Forecast)
		alloc = math.Min(alloc, remaining)
		rows[i].Allocated = round2(alloc)
		remaining -= rows[i].Allocated
	}
	return rows
}

// rankFn orders a plant's rows for greedy filling. Ties fall back to
// ascending plant then SKU name so output is deterministic.
type rankFn func(a, b entities.PlantAllocationRow) bool

func byDemand(a, b entities.PlantAllocationRow) bool {
	if a.Forecast != b.Forecast {
		return a.Forecast > b.Forecast
	}
	return tieBreak(a, b)
}

func byProfitMargin(a, b entities.PlantAllocationRow) bool {
	if a.ProfitMargin != b.ProfitMargin {
		return a.ProfitMargin > b.ProfitMargin
	}
	return tieBreak(a, b)
}

func tieBreak(a, b entities.PlantAllocationRow) bool {
	if a.Plant != b.Plant {
		return a.Plant < b.Plant
	}
	return a.SKU < b.SKU
}

// allocateGreedy fills rows in rank order, each step taking
// min(remaining forecast, remaining plant capacity)
func allocateGreedy(g plantGroup, rank rankFn) []entities.PlantAllocationRow {
	rows := make([]entities.PlantAllocationRow, len(g.rows))
	copy(rows, g.rows)
	sort.Slice(rows, func(i, j int) bool { return rank(rows[i], rows[j]) })

	remaining := g.capacity
	for i := range rows {
		alloc := math.Min(rows[i].Forecast, remaining)
		rows[i].Allocated = round2(alloc)
		remaining -= rows[i].Allocated
	}
	return rows
}

// groupByPlant splits rows into per-plant groups in ascending plant order.
// The plant's capacity is taken from its first input row.
func groupByPlant(rows []entities.PlantAllocationRow) []plantGroup {
	index := make(map[entities.Plant]int)
	var groups []plantGroup
	for _, r := range rows {
		i, ok := index[r.Plant]
		if !ok {
			i = len(groups)
			index[r.Plant] = i
			groups = append(groups, plantGroup{plant: r.Plant, capacity: r.Capacity})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].plant < groups[j].plant })
	return groups
}

func sortRows(rows []entities.PlantAllocationRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Plant != rows[j].Plant {
			return rows[i].Plant < rows[j].Plant
		}
		return rows[i].SKU < rows[j].SKU
	})
}

func totalProfit(rows []entities.PlantAllocationRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Profit())
	}
	return total.Round(2)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
