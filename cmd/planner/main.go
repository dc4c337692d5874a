package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/freshbites/planner/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		demandFile     = flag.String("demand", "", "Path to demand CSV file")
		inventoryFile  = flag.String("inventory", "", "Path to inventory CSV file")
		suppliersFile  = flag.String("suppliers", "", "Path to suppliers CSV file")
		productionFile = flag.String("production", "", "Path to production CSV file")
		strategy       = flag.String(
			"strategy",
			"equal",
			"Allocation strategy: equal, demand-priority, profit-priority",
		)
		serviceLevel = flag.Float64("service-level", 0.95, "Safety stock service level in (0, 1)")
		holdingCost  = flag.Float64("holding-cost", 5.0, "Per-unit holding cost for excess stock")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json, csv")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir:    *scenarioDir,
		DemandFile:     *demandFile,
		InventoryFile:  *inventoryFile,
		SuppliersFile:  *suppliersFile,
		ProductionFile: *productionFile,
		Strategy:       *strategy,
		ServiceLevel:   *serviceLevel,
		HoldingCost:    *holdingCost,
		OutputDir:      *outputDir,
		Format:         *format,
		Verbose:        *verbose,
		Help:           *help,
	}

	cmd := commands.NewPlanCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
