package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/domain/repositories"
	"github.com/freshbites/planner/pkg/infrastructure/events"
)

// Store holds every dataset behind one mutex. Replace and Reset serialize
// on the write lock; Snapshot copies all datasets under the read lock so
// derive operations never observe a partially applied mutation.
type Store struct {
	mu         sync.RWMutex
	demand     []entities.DemandRecord
	stock      []entities.StockRecord
	suppliers  []entities.SupplierRecord
	production []entities.ProductionRecord
	notes      []entities.Note
	log        *events.Log
}

// NewStore creates an empty store recording mutations into the given log
func NewStore(log *events.Log) *Store {
	if log == nil {
		log = events.NewLog()
	}
	return &Store{log: log}
}

// Verify interface compliance
var (
	_ repositories.DemandRepository     = (*Store)(nil)
	_ repositories.InventoryRepository  = (*Store)(nil)
	_ repositories.SupplierRepository   = (*Store)(nil)
	_ repositories.ProductionRepository = (*Store)(nil)
	_ repositories.NoteRepository       = (*Store)(nil)
)

// ReplaceDemand validates and swaps in a full demand dataset. Rows are
// normalized and stored sorted by (SKU, Region, Week); a duplicate natural
// key or negative quantity rejects the whole batch.
func (s *Store) ReplaceDemand(rows []entities.DemandRecord) (int, error) {
	clean := make([]entities.DemandRecord, len(rows))
	seen := make(map[entities.DemandRecord]int, len(rows))
	var rowErrs []entities.RowError
	for i, r := range rows {
		r.SKU = entities.NormalizeSKU(string(r.SKU))
		r.Region = entities.NormalizeRegion(string(r.Region))
		key := entities.DemandRecord{SKU: r.SKU, Region: r.Region, Week: r.Week}
		if r.SKU == "" || r.Region == "" {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("SKU/Region", "must not be empty")})
		} else if r.ForecastDemand < 0 || r.ActualDemand < 0 {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("demand", "must not be negative")})
		} else if first, dup := seen[key]; dup {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("week",
					"duplicate (SKU, Region, Week) also on row %d", first)})
		}
		seen[key] = i + 1
		clean[i] = r
	}
	if len(rowErrs) > 0 {
		return 0, &entities.BatchError{Dataset: "demand", Rows: rowErrs}
	}
	sort.Slice(clean, func(i, j int) bool {
		a, b := clean[i], clean[j]
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.Week < b.Week
	})

	s.mu.Lock()
	s.demand = clean
	s.mu.Unlock()
	s.log.Append(events.DatasetDemand, events.KindReplaced, len(clean))
	return len(clean), nil
}

// GetDemand returns a copy of the demand dataset
func (s *Store) GetDemand() ([]entities.DemandRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.DemandRecord, len(s.demand))
	copy(out, s.demand)
	return out, nil
}

// ReplaceStock validates and swaps in a full inventory dataset
func (s *Store) ReplaceStock(rows []entities.StockRecord) (int, error) {
	clean := make([]entities.StockRecord, len(rows))
	var rowErrs []entities.RowError
	for i, r := range rows {
		r.SKU = entities.NormalizeSKU(string(r.SKU))
		r.Region = entities.NormalizeRegion(string(r.Region))
		if r.SKU == "" || r.Region == "" {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("SKU/Region", "must not be empty")})
		} else if r.Stock < 0 {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("stock", "must not be negative")})
		}
		clean[i] = r
	}
	if len(rowErrs) > 0 {
		return 0, &entities.BatchError{Dataset: "inventory", Rows: rowErrs}
	}

	s.mu.Lock()
	s.stock = clean
	s.mu.Unlock()
	s.log.Append(events.DatasetInventory, events.KindReplaced, len(clean))
	return len(clean), nil
}

// GetStock returns a copy of the inventory dataset
func (s *Store) GetStock() ([]entities.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.StockRecord, len(s.stock))
	copy(out, s.stock)
	return out, nil
}

// ReplaceSuppliers validates and swaps in a full supplier dataset
func (s *Store) ReplaceSuppliers(rows []entities.SupplierRecord) (int, error) {
	clean := make([]entities.SupplierRecord, len(rows))
	var rowErrs []entities.RowError
	for i, r := range rows {
		if r.SupplierID == "" {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("Supplier_ID", "must not be empty")})
		} else if r.Deliveries < 0 || r.OnTimeDeliveries < 0 {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("deliveries", "must not be negative")})
		} else if r.OnTimeDeliveries > r.Deliveries {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("On_Time_Deliveries",
					"%d exceeds total deliveries %d", r.OnTimeDeliveries, r.Deliveries)})
		}
		clean[i] = r
	}
	if len(rowErrs) > 0 {
		return 0, &entities.BatchError{Dataset: "suppliers", Rows: rowErrs}
	}

	s.mu.Lock()
	s.suppliers = clean
	s.mu.Unlock()
	s.log.Append(events.DatasetSuppliers, events.KindReplaced, len(clean))
	return len(clean), nil
}

// GetSuppliers returns a copy of the supplier dataset
func (s *Store) GetSuppliers() ([]entities.SupplierRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.SupplierRecord, len(s.suppliers))
	copy(out, s.suppliers)
	return out, nil
}

// ReplaceProduction validates and swaps in a full production dataset
func (s *Store) ReplaceProduction(rows []entities.ProductionRecord) (int, error) {
	clean := make([]entities.ProductionRecord, len(rows))
	var rowErrs []entities.RowError
	for i, r := range rows {
		r.SKU = entities.NormalizeSKU(string(r.SKU))
		if r.Plant == "" || r.SKU == "" {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("Plant/SKU", "must not be empty")})
		} else if r.Capacity < 0 || r.Produced < 0 {
			rowErrs = append(rowErrs, entities.RowError{Row: i + 1,
				Err: entities.NewValidationError("capacity", "must not be negative")})
		}
		clean[i] = r
	}
	if len(rowErrs) > 0 {
		return 0, &entities.BatchError{Dataset: "production", Rows: rowErrs}
	}

	s.mu.Lock()
	s.production = clean
	s.mu.Unlock()
	s.log.Append(events.DatasetProduction, events.KindReplaced, len(clean))
	return len(clean), nil
}

// GetProduction returns a copy of the production dataset
func (s *Store) GetProduction() ([]entities.ProductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.ProductionRecord, len(s.production))
	copy(out, s.production)
	return out, nil
}

// AddNote appends a collaboration note
func (s *Store) AddNote(text string) (entities.Note, error) {
	if text == "" {
		return entities.Note{}, entities.NewValidationError("text", "must not be empty")
	}
	note := entities.Note{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	return note, nil
}

// GetNotes returns all notes in creation order
func (s *Store) GetNotes() ([]entities.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}

// ApproveNote marks a note approved. Approval never reverts.
func (s *Store) ApproveNote(id string) (entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Approved = true
			return s.notes[i], nil
		}
	}
	return entities.Note{}, entities.ErrNotFound
}

// Snapshot returns a consistent copy of every analytic dataset
func (s *Store) Snapshot() entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := entities.Snapshot{
		Demand:     make([]entities.DemandRecord, len(s.demand)),
		Stock:      make([]entities.StockRecord, len(s.stock)),
		Suppliers:  make([]entities.SupplierRecord, len(s.suppliers)),
		Production: make([]entities.ProductionRecord, len(s.production)),
	}
	copy(snap.Demand, s.demand)
	copy(snap.Stock, s.stock)
	copy(snap.Suppliers, s.suppliers)
	copy(snap.Production, s.production)
	return snap
}

// Reset irreversibly clears every analytic dataset and bumps every change
// token so dependent caches recompute. Notes survive a reset: the board is
// collaboration state, not analytic input.
func (s *Store) Reset() {
	s.mu.Lock()
	s.demand = nil
	s.stock = nil
	s.suppliers = nil
	s.production = nil
	s.mu.Unlock()

	s.log.Append(events.DatasetDemand, events.KindCleared, 0)
	s.log.Append(events.DatasetInventory, events.KindCleared, 0)
	s.log.Append(events.DatasetSuppliers, events.KindCleared, 0)
	s.log.Append(events.DatasetProduction, events.KindCleared, 0)
}

// ChangeToken returns the current change token for a dataset
func (s *Store) ChangeToken(ds events.Dataset) string {
	return s.log.Token(ds)
}
