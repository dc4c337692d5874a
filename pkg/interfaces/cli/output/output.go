package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
}

// PlanResult collects every artifact of one planning run
type PlanResult struct {
	Allocation  *entities.AllocationPlan      `json:"allocation,omitempty"`
	SafetyStock []entities.SafetyStockRow     `json:"safety_stock"`
	Transfers   []entities.TransferSuggestion `json:"transfers"`
	Procurement []entities.ProcurementRow     `json:"procurement"`
	KPIs        entities.KPIReport            `json:"kpis"`
}

// Generate creates output in the specified format
func Generate(result PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result PlanResult, config Config) error {
	fmt.Printf("Planning Results Summary\n")
	fmt.Printf("========================\n\n")
	fmt.Printf("Service Level:        %.2f%%\n", result.KPIs.ServiceLevel)
	fmt.Printf("Stockouts:            %d\n", result.KPIs.Stockouts)
	fmt.Printf("Excess Cost:          %s\n", result.KPIs.ExcessCost)
	fmt.Printf("Supplier Reliability: %.2f%%\n", result.KPIs.SupplierReliability)
	fmt.Printf("Planning Time:        %v\n\n", config.Elapsed)

	if result.Allocation != nil && len(result.Allocation.Rows) > 0 {
		fmt.Printf("Production Allocation (%s):\n", result.Allocation.Strategy)
		fmt.Printf("%-12s %-10s %-10s %-10s %-10s\n",
			"Plant", "SKU", "Capacity", "Forecast", "Allocated")
		fmt.Printf("%-12s %-10s %-10s %-10s %-10s\n",
			"------------", "----------", "----------", "----------", "----------")
		for _, r := range result.Allocation.Rows {
			fmt.Printf("%-12s %-10s %-10.1f %-10.1f %-10.1f\n",
				r.Plant, r.SKU, r.Capacity, r.Forecast, r.Allocated)
		}
		for _, u := range result.Allocation.Utilization {
			fmt.Printf("  %s utilization: %.2f%%\n", u.Plant, u.Percent)
		}
		fmt.Printf("Total Profit: %s\n\n", result.Allocation.TotalProfit)
	}

	if len(result.SafetyStock) > 0 {
		fmt.Printf("Safety Stock:\n")
		fmt.Printf("%-10s %-14s %-12s %-8s\n", "SKU", "Region", "SafetyStock", "Level")
		fmt.Printf("%-10s %-14s %-12s %-8s\n", "----------", "--------------", "------------", "--------")
		for _, r := range result.SafetyStock {
			fmt.Printf("%-10s %-14s %-12d %-8s\n", r.SKU, r.Region, r.SafetyStock, r.ServiceLevel)
		}
		fmt.Println()
	}

	if len(result.Transfers) > 0 {
		fmt.Printf("Rebalancing Transfers:\n")
		fmt.Printf("%-10s %-14s %-14s %-10s\n", "SKU", "From", "To", "Quantity")
		fmt.Printf("%-10s %-14s %-14s %-10s\n", "----------", "--------------", "--------------", "----------")
		for _, tr := range result.Transfers {
			fmt.Printf("%-10s %-14s %-14s %-10d\n", tr.SKU, tr.From, tr.To, tr.Quantity)
		}
		fmt.Println()
	}

	if len(result.Procurement) > 0 {
		fmt.Printf("Procurement Plan:\n")
		fmt.Printf("%-10s %-16s\n", "SKU", "Forecast Demand")
		fmt.Printf("%-10s %-16s\n", "----------", "----------------")
		for _, r := range result.Procurement {
			fmt.Printf("%-10s %-16d\n", r.SKU, r.ForecastDemand)
		}
		fmt.Println()
	}
	return nil
}

// generateJSONOutput writes the full result as JSON, to OutputDir when set
// and to stdout otherwise
func generateJSONOutput(result PlanResult, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, "plan.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if config.Verbose {
		fmt.Printf("Results written to %s\n", path)
	}
	return nil
}

// generateCSVOutput writes one CSV file per artifact into OutputDir
func generateCSVOutput(result PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("csv output requires -output directory")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if result.Allocation != nil {
		rows := [][]string{{"Plant", "SKU", "Capacity", "Forecast", "Allocated", "Profit_Margin"}}
		for _, r := range result.Allocation.Rows {
			rows = append(rows, []string{
				string(r.Plant), string(r.SKU),
				formatFloat(r.Capacity), formatFloat(r.Forecast),
				formatFloat(r.Allocated), formatFloat(r.ProfitMargin),
			})
		}
		if err := writeCSV(config.OutputDir, "allocation.csv", rows); err != nil {
			return err
		}
	}

	rows := [][]string{{"SKU", "Region", "SafetyStock", "ServiceLevel"}}
	for _, r := range result.SafetyStock {
		rows = append(rows, []string{
			string(r.SKU), string(r.Region),
			strconv.FormatInt(int64(r.SafetyStock), 10), r.ServiceLevel,
		})
	}
	if err := writeCSV(config.OutputDir, "safety_stock.csv", rows); err != nil {
		return err
	}

	rows = [][]string{{"SKU", "From", "To", "Quantity"}}
	for _, tr := range result.Transfers {
		rows = append(rows, []string{
			string(tr.SKU), string(tr.From), string(tr.To),
			strconv.FormatInt(int64(tr.Quantity), 10),
		})
	}
	if err := writeCSV(config.OutputDir, "transfers.csv", rows); err != nil {
		return err
	}

	rows = [][]string{{"SKU", "Forecast_Demand"}}
	for _, r := range result.Procurement {
		rows = append(rows, []string{
			string(r.SKU), strconv.FormatInt(int64(r.ForecastDemand), 10),
		})
	}
	if err := writeCSV(config.OutputDir, "procurement.csv", rows); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("CSV results written to %s\n", config.OutputDir)
	}
	return nil
}

func writeCSV(dir, name string, rows [][]string) error {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
