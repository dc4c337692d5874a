package repositories

import "github.com/freshbites/planner/pkg/domain/entities"

// SupplierRepository provides access to supplier performance records
type SupplierRepository interface {
	GetSuppliers() ([]entities.SupplierRecord, error)
	ReplaceSuppliers(rows []entities.SupplierRecord) (int, error)
}
