package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/freshbites/planner/pkg/application/services/allocation"
	"github.com/freshbites/planner/pkg/application/services/forecast"
	"github.com/freshbites/planner/pkg/application/services/kpi"
	"github.com/freshbites/planner/pkg/application/services/notes"
	"github.com/freshbites/planner/pkg/application/services/procurement"
	"github.com/freshbites/planner/pkg/application/services/rebalance"
	"github.com/freshbites/planner/pkg/application/services/safety"
	"github.com/freshbites/planner/pkg/application/services/whatif"
	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/config"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/memory"
)

// Services bundles the engine components the API serves
type Services struct {
	Store       *memory.Store
	Forecaster  *forecast.Forecaster
	Safety      *safety.Calculator
	Optimizer   *allocation.Optimizer
	Rebalancer  *rebalance.Advisor
	Procurement *procurement.Planner
	WhatIf      *whatif.Simulator
	KPIs        *kpi.Aggregator
	Notes       *notes.Board
}

// NewServices wires the full engine over one store using the configured
// planning parameters
func NewServices(store *memory.Store, cfg config.Config, log *logging.Logger) Services {
	classifier := safety.NewCalculator(cfg.LeadTimePeriods)
	return Services{
		Store:       store,
		Forecaster:  forecast.NewForecaster(),
		Safety:      classifier,
		Optimizer:   allocation.NewOptimizer(),
		Rebalancer:  rebalance.NewAdvisor(entities.Units(cfg.RebalanceMinQty)),
		Procurement: procurement.NewPlanner(store, log),
		WhatIf:      whatif.NewSimulator(cfg.HoldingCostPerUnit),
		KPIs:        kpi.NewAggregator(classifier, cfg.HoldingCostPerUnit),
		Notes:       notes.NewBoard(store, log),
	}
}

// NewRouter builds the Gin engine with CORS, the /api route group, and the
// health endpoint
func NewRouter(svc Services, cfg config.Config, log *logging.Logger) *gin.Engine {
	if log == nil {
		log = logging.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	datasets := NewDatasetHandler(svc.Store, log)
	planning := NewPlanningHandler(svc, log)
	board := NewNotesHandler(svc.Notes, log)

	api := router.Group("/api")
	{
		api.POST("/upload_demand", datasets.UploadDemand)
		api.POST("/upload_inventory", datasets.UploadInventory)
		api.POST("/upload_suppliers", datasets.UploadSuppliers)
		api.POST("/upload_production", datasets.UploadProduction)
		api.POST("/upload_procurement", datasets.UploadProcurement)
		api.POST("/ingest_demand", datasets.IngestDemand)
		api.POST("/ingest_inventory", datasets.IngestInventory)
		api.POST("/ingest_suppliers", datasets.IngestSuppliers)
		api.POST("/ingest_production", datasets.IngestProduction)
		api.POST("/reset", datasets.Reset)
		api.GET("/demand", datasets.GetDemand)
		api.GET("/stock", planning.GetStock)
		api.GET("/suppliers", datasets.GetSuppliers)

		api.POST("/simulate_demand", planning.SimulateDemand)
		api.POST("/forecast_adjust", planning.ForecastAdjust)
		api.POST("/production_plan", planning.ProductionPlan)
		api.POST("/safety_stock", planning.SafetyStock)
		api.GET("/rebalance", planning.Rebalance)
		api.GET("/procurement_plan", planning.ProcurementPlan)
		api.POST("/whatif", planning.WhatIf)
		api.GET("/kpis", planning.KPIs)

		api.GET("/notes", board.List)
		api.POST("/notes", board.Add)
		api.POST("/notes/:id/approve", board.Approve)
	}
	return router
}
