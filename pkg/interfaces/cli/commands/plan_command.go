package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/freshbites/planner/pkg/application/services/allocation"
	"github.com/freshbites/planner/pkg/application/services/kpi"
	"github.com/freshbites/planner/pkg/application/services/procurement"
	"github.com/freshbites/planner/pkg/application/services/rebalance"
	"github.com/freshbites/planner/pkg/application/services/safety"
	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/csv"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/memory"
	"github.com/freshbites/planner/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir    string
	DemandFile     string
	InventoryFile  string
	SuppliersFile  string
	ProductionFile string
	Strategy       string
	ServiceLevel   float64
	HoldingCost    float64
	OutputDir      string
	Format         string
	Verbose        bool
	Help           bool
}

// PlanCommand runs the full planning pipeline over CSV inputs
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{config: config}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	files := c.resolveInputFiles()

	if c.config.Verbose {
		fmt.Println("Loading data from CSV files...")
	}

	loader := csv.NewLoader()
	store := memory.NewStore(nil)

	demand, err := loader.LoadDemandFile(files["Demand"])
	if err != nil {
		return fmt.Errorf("error loading demand: %w", err)
	}
	if _, err := store.ReplaceDemand(demand); err != nil {
		return fmt.Errorf("failed to load demand into store: %w", err)
	}

	if files["Inventory"] != "" {
		stock, err := loader.LoadStockFile(files["Inventory"])
		if err != nil {
			return fmt.Errorf("error loading inventory: %w", err)
		}
		if _, err := store.ReplaceStock(stock); err != nil {
			return fmt.Errorf("failed to load inventory into store: %w", err)
		}
	}
	if files["Suppliers"] != "" {
		suppliers, err := loader.LoadSuppliersFile(files["Suppliers"])
		if err != nil {
			return fmt.Errorf("error loading suppliers: %w", err)
		}
		if _, err := store.ReplaceSuppliers(suppliers); err != nil {
			return fmt.Errorf("failed to load suppliers into store: %w", err)
		}
	}
	if files["Production"] != "" {
		production, err := loader.LoadProductionFile(files["Production"])
		if err != nil {
			return fmt.Errorf("error loading production: %w", err)
		}
		if _, err := store.ReplaceProduction(production); err != nil {
			return fmt.Errorf("failed to load production into store: %w", err)
		}
	}

	snap := store.Snapshot()
	if c.config.Verbose {
		fmt.Printf("Data loaded: %d demand, %d stock, %d supplier, %d production rows\n\n",
			len(snap.Demand), len(snap.Stock), len(snap.Suppliers), len(snap.Production))
	}

	startTime := time.Now()
	result := output.PlanResult{}

	strategy := entities.AllocationStrategy(c.config.Strategy)
	plan, err := allocation.NewOptimizer().PlanFromSnapshot(snap, strategy)
	switch {
	case err == entities.ErrNoData:
		if c.config.Verbose {
			fmt.Println("No production data; skipping allocation")
		}
	case err != nil:
		return fmt.Errorf("error running allocation: %w", err)
	default:
		result.Allocation = &plan
	}

	classifier := safety.NewCalculator(1)
	result.SafetyStock, err = classifier.Compute(snap, c.config.ServiceLevel)
	if err != nil {
		return fmt.Errorf("error computing safety stock: %w", err)
	}

	result.Transfers = rebalance.NewAdvisor(1).Suggest(snap)

	procRows, err := procurement.NewPlanner(store, logging.NewNop()).Plan()
	if err != nil && err != entities.ErrNoData {
		return fmt.Errorf("error building procurement plan: %w", err)
	}
	result.Procurement = procRows

	result.KPIs = kpi.NewAggregator(classifier, c.config.HoldingCost).Report(snap)
	elapsed := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("Planning completed in %v\n\n", elapsed)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Elapsed:   elapsed,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" && c.config.DemandFile == "" {
		return fmt.Errorf("either -scenario or -demand must be provided")
	}
	strategy := entities.AllocationStrategy(c.config.Strategy)
	if !strategy.Valid() {
		return fmt.Errorf("unknown strategy %q (use equal, demand-priority or profit-priority)",
			c.config.Strategy)
	}
	if c.config.ServiceLevel <= 0 || c.config.ServiceLevel >= 1 {
		return fmt.Errorf("service level %.3f must be inside (0, 1)", c.config.ServiceLevel)
	}
	switch c.config.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	return nil
}

// resolveInputFiles maps dataset names to file paths, preferring explicit
// flags over scenario directory conventions
func (c *PlanCommand) resolveInputFiles() map[string]string {
	files := map[string]string{
		"Demand":     c.config.DemandFile,
		"Inventory":  c.config.InventoryFile,
		"Suppliers":  c.config.SuppliersFile,
		"Production": c.config.ProductionFile,
	}
	if c.config.ScenarioDir == "" {
		return files
	}
	defaults := map[string]string{
		"Demand":     "demand.csv",
		"Inventory":  "inventory.csv",
		"Suppliers":  "suppliers.csv",
		"Production": "production.csv",
	}
	for name, base := range defaults {
		if files[name] != "" {
			continue
		}
		path := filepath.Join(c.config.ScenarioDir, base)
		if _, err := os.Stat(path); err == nil {
			files[name] = path
		}
	}
	return files
}

func (c *PlanCommand) showHelp() {
	fmt.Println(`planner - supply chain planning over CSV datasets

Usage:
  planner -scenario <dir> [flags]
  planner -demand demand.csv [-inventory inventory.csv] [flags]

A scenario directory is expected to contain demand.csv and optionally
inventory.csv, suppliers.csv and production.csv.

Flags:
  -scenario      Path to scenario directory
  -demand        Path to demand CSV (Week,Region,SKU,Forecast_Demand,Actual_Demand)
  -inventory     Path to inventory CSV (SKU,Region,Stock)
  -suppliers     Path to suppliers CSV
  -production    Path to production CSV (Week,SKU,Plant,Capacity,Produced)
  -strategy      Allocation strategy: equal, demand-priority, profit-priority
  -service-level Safety stock service level in (0, 1), default 0.95
  -holding-cost  Per-unit holding cost for excess stock, default 5.0
  -output        Output directory for json/csv results
  -format        Output format: text, json, csv
  -verbose       Enable verbose output
  -help          Show this message`)
}
