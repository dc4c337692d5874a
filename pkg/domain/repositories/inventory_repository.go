package repositories

import "github.com/freshbites/planner/pkg/domain/entities"

// InventoryRepository provides access to stock snapshots
type InventoryRepository interface {
	GetStock() ([]entities.StockRecord, error)
	ReplaceStock(rows []entities.StockRecord) (int, error)
}
