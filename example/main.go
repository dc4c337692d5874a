package main

import (
	"fmt"

	"github.com/freshbites/planner/pkg/application/services/allocation"
	"github.com/freshbites/planner/pkg/application/services/forecast"
	"github.com/freshbites/planner/pkg/application/services/kpi"
	"github.com/freshbites/planner/pkg/application/services/rebalance"
	"github.com/freshbites/planner/pkg/application/services/safety"
	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/memory"
)

func main() {
	store := memory.NewStore(nil)
	seedDatasets(store)
	snap := store.Snapshot()

	fmt.Println("FreshBites planning demo")
	fmt.Println()

	// Simulate a 25% demand spike on berry smoothies in the North region
	simulated, err := forecast.NewForecaster().SimulateSpike(snap, "North", "SMOOTHIE", 25)
	if err != nil {
		fmt.Printf("Spike simulation failed: %v\n", err)
		return
	}
	fmt.Println("Demand spike simulation (+25% on SMOOTHIE / North):")
	for _, r := range simulated {
		flag := ""
		if r.Spike {
			flag = "  <- spike vs previous week"
		}
		fmt.Printf("  week %d: actual %d -> simulated %.2f%s\n",
			r.Week, r.ActualDemand, r.SimulatedDemand, flag)
	}
	fmt.Println()

	// Allocate plant capacity by demand priority
	plan, err := allocation.NewOptimizer().PlanFromSnapshot(snap, entities.StrategyDemandPriority)
	if err != nil {
		fmt.Printf("Allocation failed: %v\n", err)
		return
	}
	fmt.Printf("Production allocation (%s):\n", plan.Strategy)
	for _, r := range plan.Rows {
		fmt.Printf("  %s / %s: allocated %.1f of forecast %.1f\n",
			r.Plant, r.SKU, r.Allocated, r.Forecast)
	}
	for _, u := range plan.Utilization {
		fmt.Printf("  %s utilization: %.2f%%\n", u.Plant, u.Percent)
	}
	fmt.Println()

	// Safety stock at a 95% service level
	classifier := safety.NewCalculator(1)
	buffers, err := classifier.Compute(snap, 0.95)
	if err != nil {
		fmt.Printf("Safety stock failed: %v\n", err)
		return
	}
	fmt.Println("Safety stock (95% service level):")
	for _, r := range buffers {
		fmt.Printf("  %s / %s: %d units\n", r.SKU, r.Region, r.SafetyStock)
	}
	fmt.Println()

	// Rebalance surplus stock toward deficits
	fmt.Println("Rebalancing transfers:")
	for _, tr := range rebalance.NewAdvisor(1).Suggest(snap) {
		fmt.Printf("  move %d x %s from %s to %s\n", tr.Quantity, tr.SKU, tr.From, tr.To)
	}
	fmt.Println()

	report := kpi.NewAggregator(classifier, 5.0).Report(snap)
	fmt.Printf("KPIs: service level %.2f%%, %d stockouts, excess cost %s\n",
		report.ServiceLevel, report.Stockouts, report.ExcessCost)
}

func seedDatasets(store *memory.Store) {
	mustReplace(store.ReplaceDemand([]entities.DemandRecord{
		{SKU: "SMOOTHIE", Region: "North", Week: 1, ForecastDemand: 100, ActualDemand: 95},
		{SKU: "SMOOTHIE", Region: "North", Week: 2, ForecastDemand: 110, ActualDemand: 140},
		{SKU: "SMOOTHIE", Region: "South", Week: 1, ForecastDemand: 60, ActualDemand: 58},
		{SKU: "SALAD", Region: "North", Week: 1, ForecastDemand: 80, ActualDemand: 75},
		{SKU: "SALAD", Region: "North", Week: 2, ForecastDemand: 90, ActualDemand: 88},
	}))
	mustReplace(store.ReplaceStock([]entities.StockRecord{
		{SKU: "SMOOTHIE", Region: "North", Stock: 40},
		{SKU: "SMOOTHIE", Region: "South", Stock: 200},
		{SKU: "SALAD", Region: "North", Stock: 180},
	}))
	mustReplace(store.ReplaceProduction([]entities.ProductionRecord{
		{Plant: "Plant-A", SKU: "SMOOTHIE", Week: 1, Capacity: 250, Produced: 200},
		{Plant: "Plant-A", SKU: "SALAD", Week: 1, Capacity: 250, Produced: 150},
	}))
}

func mustReplace(count int, err error) {
	if err != nil {
		panic(err)
	}
	_ = count
}
