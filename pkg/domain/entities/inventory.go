package entities

// StockRecord is an inventory snapshot for a SKU at a region
type StockRecord struct {
	SKU      SKU    `json:"SKU"`
	Region   Region `json:"Region"`
	Stock    Units  `json:"Stock"`
	Forecast Units  `json:"Forecast,omitempty"`
}

// StockStatus classifies inventory position against forecast demand
type StockStatus int

const (
	StatusBalanced StockStatus = iota
	StatusShortage
	StatusOverstock
)

func (s StockStatus) String() string {
	switch s {
	case StatusBalanced:
		return "Balanced"
	case StatusShortage:
		return "Shortage"
	case StatusOverstock:
		return "Overstock"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders the status as its display name
func (s StockStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// InventoryPosition joins stock on hand with forecast demand for one
// (SKU, Region) and carries the resulting classification
type InventoryPosition struct {
	SKU      SKU         `json:"SKU"`
	Region   Region      `json:"Region"`
	Forecast Units       `json:"Forecast"`
	Stock    Units       `json:"Stock"`
	Status   StockStatus `json:"Status"`
}

// SafetyStockRow is the recommended reorder buffer for one (SKU, Region)
type SafetyStockRow struct {
	SKU          SKU    `json:"SKU"`
	Region       Region `json:"Region"`
	SafetyStock  Units  `json:"SafetyStock"`
	ServiceLevel string `json:"ServiceLevel"`
}

// TransferSuggestion is a proposed inter-location stock movement for a SKU
type TransferSuggestion struct {
	SKU      SKU    `json:"SKU"`
	From     Region `json:"From"`
	To       Region `json:"To"`
	Quantity Units  `json:"Quantity"`
}
