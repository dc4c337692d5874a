package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
	csvrepo "github.com/freshbites/planner/pkg/infrastructure/repositories/csv"
	"github.com/freshbites/planner/pkg/infrastructure/repositories/memory"
)

// DatasetHandler serves dataset uploads, JSON ingestion, reads, and reset
type DatasetHandler struct {
	store  *memory.Store
	loader *csvrepo.Loader
	log    *logging.Logger
}

// NewDatasetHandler creates a dataset handler over the store
func NewDatasetHandler(store *memory.Store, log *logging.Logger) *DatasetHandler {
	if log == nil {
		log = logging.NewNop()
	}
	return &DatasetHandler{store: store, loader: csvrepo.NewLoader(), log: log}
}

// openUpload pulls the multipart "file" part out of the request
func openUpload(c *gin.Context) (io.ReadCloser, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, entities.NewValidationError("file", "multipart field missing: %v", err)
	}
	return header.Open()
}

// uploadDataset runs one parse-then-replace upload and writes the response
func uploadDataset[T any](
	h *DatasetHandler,
	c *gin.Context,
	dataset string,
	parse func(io.Reader) ([]T, error),
	replace func([]T) (int, error),
) {
	file, err := openUpload(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer file.Close()

	rows, err := parse(file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	count, err := replace(rows)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("dataset uploaded", "dataset", dataset, "rows", count)
	c.JSON(http.StatusOK, gin.H{"dataset": dataset, "rows": count})
}

// UploadDemand replaces the demand dataset from a CSV upload
func (h *DatasetHandler) UploadDemand(c *gin.Context) {
	uploadDataset(h, c, "demand", h.loader.ParseDemand, h.store.ReplaceDemand)
}

// UploadInventory replaces the inventory dataset from a CSV upload
func (h *DatasetHandler) UploadInventory(c *gin.Context) {
	uploadDataset(h, c, "inventory", h.loader.ParseStock, h.store.ReplaceStock)
}

// UploadSuppliers replaces the supplier dataset from a CSV upload
func (h *DatasetHandler) UploadSuppliers(c *gin.Context) {
	uploadDataset(h, c, "suppliers", h.loader.ParseSuppliers, h.store.ReplaceSuppliers)
}

// UploadProduction replaces the production dataset from a CSV upload
func (h *DatasetHandler) UploadProduction(c *gin.Context) {
	uploadDataset(h, c, "production", h.loader.ParseProduction, h.store.ReplaceProduction)
}

// UploadProcurement replaces the demand dataset from a flat
// (SKU, Forecast_Demand) file; rows land under the Global region
func (h *DatasetHandler) UploadProcurement(c *gin.Context) {
	uploadDataset(h, c, "procurement", h.loader.ParseProcurement, h.store.ReplaceDemand)
}

// ingestDataset runs one bind-then-replace JSON ingestion
func ingestDataset[T any](
	h *DatasetHandler,
	c *gin.Context,
	dataset string,
	replace func([]T) (int, error),
) {
	var rows []T
	if err := c.ShouldBindJSON(&rows); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}
	count, err := replace(rows)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("dataset ingested", "dataset", dataset, "rows", count)
	c.JSON(http.StatusOK, gin.H{"dataset": dataset, "rows": count})
}

// IngestDemand replaces the demand dataset from a JSON row array
func (h *DatasetHandler) IngestDemand(c *gin.Context) {
	ingestDataset(h, c, "demand", h.store.ReplaceDemand)
}

// IngestInventory replaces the inventory dataset from a JSON row array
func (h *DatasetHandler) IngestInventory(c *gin.Context) {
	ingestDataset(h, c, "inventory", h.store.ReplaceStock)
}

// IngestSuppliers replaces the supplier dataset from a JSON row array
func (h *DatasetHandler) IngestSuppliers(c *gin.Context) {
	ingestDataset(h, c, "suppliers", h.store.ReplaceSuppliers)
}

// IngestProduction replaces the production dataset from a JSON row array
func (h *DatasetHandler) IngestProduction(c *gin.Context) {
	ingestDataset(h, c, "production", h.store.ReplaceProduction)
}

// Reset clears every analytic dataset
func (h *DatasetHandler) Reset(c *gin.Context) {
	h.store.Reset()
	h.log.Info("datasets reset")
	c.JSON(http.StatusOK, gin.H{"message": "all datasets cleared"})
}

// GetDemand returns the demand dataset
func (h *DatasetHandler) GetDemand(c *gin.Context) {
	rows, err := h.store.GetDemand()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// GetSuppliers returns suppliers with derived reliability and status
func (h *DatasetHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.store.GetSuppliers()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	rows := make([]entities.SupplierStatusRow, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, s.StatusRow())
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
