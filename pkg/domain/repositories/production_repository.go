package repositories

import "github.com/freshbites/planner/pkg/domain/entities"

// ProductionRepository provides access to plant output history
type ProductionRepository interface {
	GetProduction() ([]entities.ProductionRecord, error)
	ReplaceProduction(rows []entities.ProductionRecord) (int, error)
}
