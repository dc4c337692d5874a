package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
	csvrepo "github.com/freshbites/planner/pkg/infrastructure/repositories/csv"
)

// PlanningHandler serves every derive operation: forecasts, plans,
// recommendations, and KPIs. Each request computes from a fresh snapshot.
type PlanningHandler struct {
	svc    Services
	loader *csvrepo.Loader
	log    *logging.Logger
}

// NewPlanningHandler creates a planning handler over the engine services
func NewPlanningHandler(svc Services, log *logging.Logger) *PlanningHandler {
	if log == nil {
		log = logging.NewNop()
	}
	return &PlanningHandler{svc: svc, loader: csvrepo.NewLoader(), log: log}
}

// GetStock returns every inventory position with its classification
func (h *PlanningHandler) GetStock(c *gin.Context) {
	positions := h.svc.Safety.PredictInventoryStatus(h.svc.Store.Snapshot())
	c.JSON(http.StatusOK, gin.H{"rows": positions})
}

type simulateDemandRequest struct {
	Region       string  `json:"region"`
	SKU          string  `json:"sku"`
	SpikePercent float64 `json:"spike_percent"`
}

// SimulateDemand applies a demand spike to one (SKU, Region) series.
// Unknown pairs return an empty row set, not an error.
func (h *PlanningHandler) SimulateDemand(c *gin.Context) {
	var req simulateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}

	rows, err := h.svc.Forecaster.SimulateSpike(
		h.svc.Store.Snapshot(),
		entities.NormalizeRegion(req.Region),
		entities.NormalizeSKU(req.SKU),
		req.SpikePercent,
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

type forecastAdjustRequest struct {
	Series  []float64 `json:"series"`
	Periods int       `json:"periods"`
}

// ForecastAdjust projects a demand series forward. The series comes either
// from the JSON body or from an uploaded CSV with a Demand column.
func (h *PlanningHandler) ForecastAdjust(c *gin.Context) {
	req := forecastAdjustRequest{Periods: 3}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := openUpload(c)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		defer file.Close()
		series, err := h.loader.ParseSeries(file)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		req.Series = series
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}

	result, err := h.svc.Forecaster.ForecastAdjust(req.Series, req.Periods)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type productionPlanRequest struct {
	Strategy string                        `json:"strategy"`
	Rows     []entities.PlantAllocationRow `json:"rows"`
}

// ProductionPlan runs the allocation optimizer, either over a one-shot row
// set (JSON body or uploaded CSV) or over live production and demand data
func (h *PlanningHandler) ProductionPlan(c *gin.Context) {
	var req productionPlanRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := openUpload(c)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		defer file.Close()
		rows, err := h.loader.ParseAllocationDataset(file)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		req.Rows = rows
		req.Strategy = c.PostForm("strategy")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}
	strategy := entities.AllocationStrategy(req.Strategy)
	if req.Strategy == "" {
		strategy = entities.StrategyEqual
	}

	var plan entities.AllocationPlan
	var err error
	if len(req.Rows) > 0 {
		plan, err = h.svc.Optimizer.Optimize(req.Rows, strategy)
	} else {
		plan, err = h.svc.Optimizer.PlanFromSnapshot(h.svc.Store.Snapshot(), strategy)
	}
	if errors.Is(err, entities.ErrNoData) {
		c.JSON(http.StatusOK, gin.H{"rows": []entities.PlantAllocationRow{},
			"message": "no production data uploaded"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type safetyStockRequest struct {
	ServiceLevel float64 `json:"service_level"`
}

// SafetyStock sizes reorder buffers per (SKU, Region) at the requested
// service level
func (h *PlanningHandler) SafetyStock(c *gin.Context) {
	req := safetyStockRequest{ServiceLevel: 0.95}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}

	rows, err := h.svc.Safety.Compute(h.svc.Store.Snapshot(), req.ServiceLevel)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// Rebalance proposes inter-location stock transfers
func (h *PlanningHandler) Rebalance(c *gin.Context) {
	transfers := h.svc.Rebalancer.Suggest(h.svc.Store.Snapshot())
	if transfers == nil {
		transfers = []entities.TransferSuggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"rows": transfers})
}

// ProcurementPlan returns aggregate forecast demand per SKU
func (h *PlanningHandler) ProcurementPlan(c *gin.Context) {
	rows, err := h.svc.Procurement.Plan()
	if errors.Is(err, entities.ErrNoData) {
		c.JSON(http.StatusOK, gin.H{"rows": []entities.ProcurementRow{},
			"message": "no demand data uploaded"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

type whatIfRequest struct {
	DemandChangePct   float64              `json:"demand_change_pct"`
	CapacityChangePct float64              `json:"capacity_change_pct"`
	Rows              []entities.WhatIfRow `json:"rows"`
}

// WhatIf scores KPI outcomes under perturbed demand and capacity, over the
// live snapshot or a one-shot dataset from the request
func (h *PlanningHandler) WhatIf(c *gin.Context) {
	var req whatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}

	var result entities.WhatIfResult
	if len(req.Rows) > 0 {
		result = h.svc.WhatIf.RunDataset(entities.WhatIfDataset{Rows: req.Rows},
			req.DemandChangePct, req.CapacityChangePct)
	} else {
		result = h.svc.WhatIf.Run(h.svc.Store.Snapshot(),
			req.DemandChangePct, req.CapacityChangePct)
	}
	c.JSON(http.StatusOK, result)
}

// KPIs returns the composed dashboard report
func (h *PlanningHandler) KPIs(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.KPIs.Report(h.svc.Store.Snapshot()))
}
