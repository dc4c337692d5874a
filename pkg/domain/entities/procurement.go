package entities

// ProcurementRow is aggregate forecast demand for one SKU
type ProcurementRow struct {
	SKU            SKU   `json:"SKU"`
	ForecastDemand Units `json:"Forecast_Demand"`
}
