package repositories

import "github.com/freshbites/planner/pkg/domain/entities"

// DemandRepository provides access to demand history
type DemandRepository interface {
	GetDemand() ([]entities.DemandRecord, error)
	ReplaceDemand(rows []entities.DemandRecord) (int, error)
}
