package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// Loader parses uploaded CSV datasets into validated typed rows. Parsing is
// all-or-nothing: any malformed row rejects the file with a BatchError
// listing every offending row.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// ParseDemand reads demand history rows
// (Week, Region, SKU, Forecast_Demand, Actual_Demand)
func (l *Loader) ParseDemand(r io.Reader) ([]entities.DemandRecord, error) {
	records, header, err := readAll(r, "demand")
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "week", "region", "sku", "forecast_demand", "actual_demand")
	if err != nil {
		return nil, fmt.Errorf("demand CSV: %w", err)
	}

	var rows []entities.DemandRecord
	var rowErrs []entities.RowError
	for i, rec := range records {
		week, err1 := strconv.Atoi(strings.TrimSpace(rec[cols["week"]]))
		forecast, err2 := parseUnits(rec[cols["forecast_demand"]])
		actual, err3 := parseUnits(rec[cols["actual_demand"]])
		if err := firstErr(err1, err2, err3); err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2, Err: err})
			continue
		}
		rows = append(rows, entities.DemandRecord{
			SKU:            entities.NormalizeSKU(rec[cols["sku"]]),
			Region:         entities.NormalizeRegion(rec[cols["region"]]),
			Week:           week,
			ForecastDemand: forecast,
			ActualDemand:   actual,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "demand", Rows: rowErrs}
	}
	return rows, nil
}

// ParseStock reads inventory rows (SKU, Region, Stock, optional Forecast)
func (l *Loader) ParseStock(r io.Reader) ([]entities.StockRecord, error) {
	records, header, err := readAll(r, "inventory")
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "sku", "region", "stock")
	if err != nil {
		return nil, fmt.Errorf("inventory CSV: %w", err)
	}
	forecastCol, hasForecast := findColumn(header, "forecast")

	var rows []entities.StockRecord
	var rowErrs []entities.RowError
	for i, rec := range records {
		stock, err := parseUnits(rec[cols["stock"]])
		if err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2, Err: err})
			continue
		}
		row := entities.StockRecord{
			SKU:    entities.NormalizeSKU(rec[cols["sku"]]),
			Region: entities.NormalizeRegion(rec[cols["region"]]),
			Stock:  stock,
		}
		if hasForecast {
			if f, err := parseUnits(rec[forecastCol]); err == nil {
				row.Forecast = f
			}
		}
		rows = append(rows, row)
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "inventory", Rows: rowErrs}
	}
	return rows, nil
}

// ParseSuppliers reads supplier performance rows (Supplier_ID, Name,
// Committed_Lead_Time, Avg_Lead_Time_Days, Deliveries, On_Time_Deliveries)
func (l *Loader) ParseSuppliers(r io.Reader) ([]entities.SupplierRecord, error) {
	records, header, err := readAll(r, "suppliers")
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "supplier_id", "name", "committed_lead_time",
		"avg_lead_time_days", "deliveries", "on_time_deliveries")
	if err != nil {
		return nil, fmt.Errorf("suppliers CSV: %w", err)
	}

	var rows []entities.SupplierRecord
	var rowErrs []entities.RowError
	for i, rec := range records {
		committed, err1 := strconv.Atoi(strings.TrimSpace(rec[cols["committed_lead_time"]]))
		avg, err2 := strconv.Atoi(strings.TrimSpace(rec[cols["avg_lead_time_days"]]))
		deliveries, err3 := strconv.Atoi(strings.TrimSpace(rec[cols["deliveries"]]))
		onTime, err4 := strconv.Atoi(strings.TrimSpace(rec[cols["on_time_deliveries"]]))
		if err := firstErr(err1, err2, err3, err4); err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2, Err: err})
			continue
		}
		rows = append(rows, entities.SupplierRecord{
			SupplierID:        strings.TrimSpace(rec[cols["supplier_id"]]),
			Name:              strings.TrimSpace(rec[cols["name"]]),
			CommittedLeadTime: committed,
			AvgLeadTimeDays:   avg,
			Deliveries:        deliveries,
			OnTimeDeliveries:  onTime,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "suppliers", Rows: rowErrs}
	}
	return rows, nil
}

// ParseProduction reads plant output rows (Week, SKU, Plant, Capacity, Produced)
func (l *Loader) ParseProduction(r io.Reader) ([]entities.ProductionRecord, error) {
	records, header, err := readAll(r, "production")
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "week", "sku", "plant", "capacity", "produced")
	if err != nil {
		return nil, fmt.Errorf("production CSV: %w", err)
	}

	var rows []entities.ProductionRecord
	var rowErrs []entities.RowError
	for i, rec := range records {
		week, err1 := strconv.Atoi(strings.TrimSpace(rec[cols["week"]]))
		capacity, err2 := parseUnits(rec[cols["capacity"]])
		produced, err3 := parseUnits(rec[cols["produced"]])
		if err := firstErr(err1, err2, err3); err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2, Err: err})
			continue
		}
		rows = append(rows, entities.ProductionRecord{
			Plant:    entities.Plant(strings.TrimSpace(rec[cols["plant"]])),
			SKU:      entities.NormalizeSKU(rec[cols["sku"]]),
			Week:     week,
			Capacity: capacity,
			Produced: produced,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "production", Rows: rowErrs}
	}
	return rows, nil
}

// ParseProcurement reads a flat procurement file (SKU, Forecast_Demand)
// into demand records under a single global region
func (l *Loader) ParseProcurement(r io.Reader) ([]entities.DemandRecord, error) {
	records, header, err := readAll(r, "procurement")
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "sku", "forecast_demand")
	if err != nil {
		return nil, fmt.Errorf("procurement CSV: %w", err)
	}

	var rows []entities.DemandRecord
	var rowErrs []entities.RowError
	for i, rec := range records {
		forecast, err := parseUnits(rec[cols["forecast_demand"]])
		if err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2, Err: err})
			continue
		}
		rows = append(rows, entities.DemandRecord{
			SKU:            entities.NormalizeSKU(rec[cols["sku"]]),
			Region:         "Global",
			Week:           i + 1,
			ForecastDemand: forecast,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "procurement", Rows: rowErrs}
	}
	return rows, nil
}

// ParseSeries reads a single numeric Demand column for forecast adjustment
func (l *Loader) ParseSeries(r io.Reader) ([]float64, error) {
	records, header, err := readAll(r, "series")
	if err != nil {
		return nil, err
	}
	col, ok := findColumn(header, "demand")
	if !ok {
		return nil, fmt.Errorf("series CSV: missing required column %q", "Demand")
	}

	var series []float64
	var rowErrs []entities.RowError
	for i, rec := range records {
		raw := strings.TrimSpace(rec[col])
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2,
				Err: entities.NewValidationError("Demand", "not a number: %s", raw)})
			continue
		}
		series = append(series, v)
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "series", Rows: rowErrs}
	}
	return series, nil
}

// ParseAllocationDataset reads a one-shot optimizer input
// (Plant, SKU, Capacity, Forecast, optional Allocated and Profit_Margin)
func (l *Loader) ParseAllocationDataset(r io.Reader) ([]entities.PlantAllocationRow, error) {
	records, header, err := readAll(r, "allocation")
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "plant", "sku", "capacity", "forecast")
	if err != nil {
		return nil, fmt.Errorf("allocation CSV: %w", err)
	}
	marginCol, hasMargin := findColumn(header, "profit_margin")

	var rows []entities.PlantAllocationRow
	var rowErrs []entities.RowError
	for i, rec := range records {
		capacity, err1 := strconv.ParseFloat(strings.TrimSpace(rec[cols["capacity"]]), 64)
		forecast, err2 := strconv.ParseFloat(strings.TrimSpace(rec[cols["forecast"]]), 64)
		if err := firstErr(err1, err2); err != nil {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 2, Err: err})
			continue
		}
		margin := 1.0
		if hasMargin {
			if m, err := strconv.ParseFloat(strings.TrimSpace(rec[marginCol]), 64); err == nil {
				margin = m
			}
		}
		rows = append(rows, entities.PlantAllocationRow{
			Plant:        entities.Plant(strings.TrimSpace(rec[cols["plant"]])),
			SKU:          entities.NormalizeSKU(rec[cols["sku"]]),
			Capacity:     capacity,
			Forecast:     forecast,
			ProfitMargin: margin,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &entities.BatchError{Dataset: "allocation", Rows: rowErrs}
	}
	return rows, nil
}

// LoadDemandFile parses a demand CSV from disk
func (l *Loader) LoadDemandFile(filename string) ([]entities.DemandRecord, error) {
	return loadFile(filename, l.ParseDemand)
}

// LoadStockFile parses an inventory CSV from disk
func (l *Loader) LoadStockFile(filename string) ([]entities.StockRecord, error) {
	return loadFile(filename, l.ParseStock)
}

// LoadSuppliersFile parses a suppliers CSV from disk
func (l *Loader) LoadSuppliersFile(filename string) ([]entities.SupplierRecord, error) {
	return loadFile(filename, l.ParseSuppliers)
}

// LoadProductionFile parses a production CSV from disk
func (l *Loader) LoadProductionFile(filename string) ([]entities.ProductionRecord, error) {
	return loadFile(filename, l.ParseProduction)
}

func loadFile[T any](filename string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()
	rows, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rows, nil
}

// Helper functions for CSV parsing

func readAll(r io.Reader, dataset string) (records [][]string, header []string, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s CSV: %w", dataset, err)
	}
	if len(all) < 1 {
		return nil, nil, fmt.Errorf("%s CSV must have a header row", dataset)
	}
	return all[1:], all[0], nil
}

// columnIndex resolves required column names (case-insensitive) to indexes
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		col, ok := findColumn(header, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[name] = col
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func findColumn(header []string, name string) (int, bool) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, true
		}
	}
	return 0, false
}

func parseUnits(raw string) (entities.Units, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	// Accept "120" and "120.0" alike; uploads are often exported floats
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity: %s", raw)
	}
	return entities.Units(v), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
