package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/usecase"
)

// ExecutionHandler handles HTTP requests for individual execution records.
type ExecutionHandler struct {
	getUC  *usecase.GetExecutionUsecase
	logger *zap.Logger
}

// NewExecutionHandler creates a new ExecutionHandler.
func NewExecutionHandler(getUC *usecase.GetExecutionUsecase, logger *zap.Logger) *ExecutionHandler {
	return &ExecutionHandler{getUC: getUC, logger: logger}
}

// GetByID handles GET /api/v1/executions/:id
func (h *ExecutionHandler) GetByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid execution ID format"})
		return
	}

	ex, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrExecutionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Execution not found"})
			return
		}
		h.logger.Error("Get execution failed", zap.Error(err), zap.String("execution_id", idStr))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, ex)
}
