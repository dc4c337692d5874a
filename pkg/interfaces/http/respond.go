package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
)

// respondError maps engine errors onto the API contract: validation and
// batch rejections are 400 with row detail, unknown lookups are 404,
// anything else is a 500 logged server-side.
func respondError(c *gin.Context, log *logging.Logger, err error) {
	var batch *entities.BatchError
	switch {
	case errors.As(err, &batch):
		rows := make([]gin.H, len(batch.Rows))
		for i, r := range batch.Rows {
			rows[i] = gin.H{"row": r.Row, "error": r.Err.Error()}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "upload rejected",
			"dataset": batch.Dataset,
			"rows":    rows,
		})
	case entities.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
