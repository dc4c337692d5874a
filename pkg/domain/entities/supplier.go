package entities

import "math"

// SupplierRecord tracks delivery performance against a committed lead time
type SupplierRecord struct {
	SupplierID        string `json:"Supplier_ID"`
	Name              string `json:"Name"`
	CommittedLeadTime int    `json:"Committed_Lead_Time"`
	AvgLeadTimeDays   int    `json:"Avg_Lead_Time_Days"`
	Deliveries        int    `json:"Deliveries"`
	OnTimeDeliveries  int    `json:"On_Time_Deliveries"`
}

// Reliability returns the percentage of deliveries made on time,
// rounded to two decimals. Zero deliveries yields zero.
func (s SupplierRecord) Reliability() float64 {
	if s.Deliveries <= 0 {
		return 0
	}
	r := float64(s.OnTimeDeliveries) / float64(s.Deliveries) * 100
	return math.Round(r*100) / 100
}

// Delayed reports whether average lead time exceeds the committed lead time
func (s SupplierRecord) Delayed() bool {
	return s.AvgLeadTimeDays > s.CommittedLeadTime
}

// SupplierStatusRow is a SupplierRecord with its derived performance fields
type SupplierStatusRow struct {
	SupplierRecord
	Reliability float64 `json:"Reliability"`
	Status      string  `json:"Status"`
}

// StatusRow derives the read-model row for a supplier
func (s SupplierRecord) StatusRow() SupplierStatusRow {
	status := "On-Time"
	if s.Delayed() {
		status = "Delayed"
	}
	return SupplierStatusRow{
		SupplierRecord: s,
		Reliability:    s.Reliability(),
		Status:         status,
	}
}
