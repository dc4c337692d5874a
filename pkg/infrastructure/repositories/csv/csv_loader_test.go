package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/freshbites/planner/pkg/domain/entities"
)

func TestParseDemand(t *testing.T) {
	input := `Week,Region,SKU,Forecast_Demand,Actual_Demand
1,north,sku1,100,90
2,north,sku1,110.0,120
1,south,sku2,50,55
`
	rows, err := NewLoader().ParseDemand(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDemand failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].SKU != "SKU1" || rows[0].Region != "North" {
		t.Errorf("Expected normalized SKU1/North, got %+v", rows[0])
	}
	if rows[1].ForecastDemand != 110 {
		t.Errorf("Float quantity should parse to 110, got %d", rows[1].ForecastDemand)
	}
}

func TestParseDemand_HeaderCaseInsensitive(t *testing.T) {
	input := "WEEK,region,Sku,FORECAST_DEMAND,actual_demand\n1,n,a,10,9\n"
	rows, err := NewLoader().ParseDemand(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDemand failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(rows))
	}
}

func TestParseDemand_MissingColumn(t *testing.T) {
	input := "Week,Region,SKU\n1,n,a\n"
	_, err := NewLoader().ParseDemand(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "missing required columns") {
		t.Errorf("Expected missing-column error, got %v", err)
	}
}

func TestParseDemand_RowErrorsEnumerated(t *testing.T) {
	input := `Week,Region,SKU,Forecast_Demand,Actual_Demand
1,n,a,10,9
x,n,a,10,9
3,n,a,ten,9
`
	_, err := NewLoader().ParseDemand(strings.NewReader(input))
	var batch *entities.BatchError
	if !errors.As(err, &batch) {
		t.Fatalf("Expected BatchError, got %v", err)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("Expected 2 row errors, got %d", len(batch.Rows))
	}
	// Row numbers count the header line
	if batch.Rows[0].Row != 3 || batch.Rows[1].Row != 4 {
		t.Errorf("Expected file rows 3 and 4, got %d and %d",
			batch.Rows[0].Row, batch.Rows[1].Row)
	}
}

func TestParseStock_OptionalForecast(t *testing.T) {
	loader := NewLoader()

	withForecast := "SKU,Region,Stock,Forecast\na,n,40,100\n"
	rows, err := loader.ParseStock(strings.NewReader(withForecast))
	if err != nil {
		t.Fatalf("ParseStock failed: %v", err)
	}
	if rows[0].Forecast != 100 {
		t.Errorf("Expected forecast 100, got %d", rows[0].Forecast)
	}

	without := "SKU,Region,Stock\na,n,40\n"
	rows, err = loader.ParseStock(strings.NewReader(without))
	if err != nil {
		t.Fatalf("ParseStock without forecast failed: %v", err)
	}
	if rows[0].Forecast != 0 {
		t.Errorf("Missing forecast column should default to 0, got %d", rows[0].Forecast)
	}
}

func TestParseSuppliers(t *testing.T) {
	input := `Supplier_ID,Name,Committed_Lead_Time,Avg_Lead_Time_Days,Deliveries,On_Time_Deliveries
S1,Acme,5,7,10,9
`
	rows, err := NewLoader().ParseSuppliers(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSuppliers failed: %v", err)
	}
	if rows[0].SupplierID != "S1" || rows[0].AvgLeadTimeDays != 7 {
		t.Errorf("Unexpected supplier row %+v", rows[0])
	}
}

func TestParseProduction(t *testing.T) {
	input := "Week,SKU,Plant,Capacity,Produced\n1,a,P1,100,80\n"
	rows, err := NewLoader().ParseProduction(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseProduction failed: %v", err)
	}
	if rows[0].Plant != "P1" || rows[0].Capacity != 100 {
		t.Errorf("Unexpected production row %+v", rows[0])
	}
}

func TestParseProcurement_GlobalRegionSequentialWeeks(t *testing.T) {
	input := "SKU,Forecast_Demand\na,100\nb,50\n"
	rows, err := NewLoader().ParseProcurement(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseProcurement failed: %v", err)
	}
	if rows[0].Region != "Global" || rows[0].Week != 1 || rows[1].Week != 2 {
		t.Errorf("Expected Global region with sequential weeks, got %+v", rows)
	}
}

func TestParseSeries(t *testing.T) {
	input := "Demand\n10\n20.5\n\n30\n"
	series, err := NewLoader().ParseSeries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSeries failed: %v", err)
	}
	want := []float64{10, 20.5, 30}
	if len(series) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(series))
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], series[i])
		}
	}
}

func TestParseAllocationDataset_DefaultMargin(t *testing.T) {
	input := "Plant,SKU,Capacity,Forecast\nP1,a,100,60\n"
	rows, err := NewLoader().ParseAllocationDataset(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseAllocationDataset failed: %v", err)
	}
	if rows[0].ProfitMargin != 1.0 {
		t.Errorf("Missing margin column should default to 1.0, got %v", rows[0].ProfitMargin)
	}

	withMargin := "Plant,SKU,Capacity,Forecast,Profit_Margin\nP1,a,100,60,2.5\n"
	rows, err = NewLoader().ParseAllocationDataset(strings.NewReader(withMargin))
	if err != nil {
		t.Fatalf("ParseAllocationDataset with margin failed: %v", err)
	}
	if rows[0].ProfitMargin != 2.5 {
		t.Errorf("Expected margin 2.5, got %v", rows[0].ProfitMargin)
	}
}

func TestParse_EmptyFileRejected(t *testing.T) {
	if _, err := NewLoader().ParseDemand(strings.NewReader("")); err == nil {
		t.Error("Expected error for file without header")
	}
}
