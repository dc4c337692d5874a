package procurement

import (
	"sort"
	"sync"

	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/events"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
)

// Source provides the demand dataset and its change tokens
type Source interface {
	GetDemand() ([]entities.DemandRecord, error)
	ChangeToken(ds events.Dataset) string
}

// Planner aggregates forecast demand by SKU into a procurement plan. The
// plan is cached against the demand and supplier change tokens and only
// recomputed when an upstream dataset actually changed.
type Planner struct {
	source Source
	log    *logging.Logger

	mu          sync.Mutex
	cachedToken string
	cached      []entities.ProcurementRow
}

// NewPlanner creates a planner reading from the given source
func NewPlanner(source Source, log *logging.Logger) *Planner {
	if log == nil {
		log = logging.NewNop()
	}
	return &Planner{source: source, log: log}
}

// Plan returns the current procurement plan. An empty demand dataset
// yields ErrNoData so callers can distinguish "nothing ingested" from a
// failure.
func (p *Planner) Plan() ([]entities.ProcurementRow, error) {
	token := p.source.ChangeToken(events.DatasetDemand) + "|" +
		p.source.ChangeToken(events.DatasetSuppliers)

	p.mu.Lock()
	if token == p.cachedToken && p.cached != nil {
		rows := make([]entities.ProcurementRow, len(p.cached))
		copy(rows, p.cached)
		p.mu.Unlock()
		return rows, nil
	}
	p.mu.Unlock()

	demand, err := p.source.GetDemand()
	if err != nil {
		return nil, err
	}
	if len(demand) == 0 {
		return nil, entities.ErrNoData
	}

	totals := make(map[entities.SKU]entities.Units)
	for _, d := range demand {
		totals[d.SKU] += d.ForecastDemand
	}
	rows := make([]entities.ProcurementRow, 0, len(totals))
	for sku, total := range totals {
		rows = append(rows, entities.ProcurementRow{SKU: sku, ForecastDemand: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })

	p.mu.Lock()
	p.cachedToken = token
	p.cached = rows
	p.mu.Unlock()
	p.log.Debug("procurement plan recomputed", "skus", len(rows), "token", token)

	out := make([]entities.ProcurementRow, len(rows))
	copy(out, rows)
	return out, nil
}
