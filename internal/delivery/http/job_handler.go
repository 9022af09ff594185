package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/usecase"
)

// triggeredByHeader identifies who triggered a manual run.
const triggeredByHeader = "X-Triggered-By"

// JobHandler handles HTTP requests for jobs and their execution history.
type JobHandler struct {
	runUC    *usecase.RunJobUsecase
	listUC   *usecase.ListExecutionsUsecase
	registry *job.Registry
	logger   *zap.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(runUC *usecase.RunJobUsecase, listUC *usecase.ListExecutionsUsecase, registry *job.Registry, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		runUC:    runUC,
		listUC:   listUC,
		registry: registry,
		logger:   logger,
	}
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	defs := h.registry.List()
	out := make([]domain.JobInfo, 0, len(defs))
	for _, def := range defs {
		info := domain.JobInfo{Name: def.Name, Schedule: def.Schedule}
		if def.LockTTL > 0 {
			info.LockTTL = def.LockTTL.String()
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, out)
}

// Run handles POST /api/v1/jobs/:name/run
//
// The run is synchronous: the caller blocks for the full duration of the
// job, so long-running jobs risk transport-level timeouts on the caller's
// side. A failed job surfaces as a 500 whose message carries the captured
// error, alongside the terminal execution record.
func (h *JobHandler) Run(c *gin.Context) {
	name := c.Param("name")

	triggeredBy := c.GetHeader(triggeredByHeader)
	if triggeredBy == "" {
		triggeredBy = "api"
	}

	ex, err := h.runUC.Execute(c.Request.Context(), name, triggeredBy)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case ex != nil && ex.Status == domain.StatusFailed:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     err.Error(),
				"execution": ex,
			})
		default:
			h.logger.Error("Run job failed", zap.String("job", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ex)
}

// Executions handles GET /api/v1/jobs/:name/executions
func (h *JobHandler) Executions(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.registry.Get(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	executions, err := h.listUC.Execute(c.Request.Context(), name, limit)
	if err != nil {
		h.logger.Error("List executions failed", zap.String("job", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if executions == nil {
		executions = []*domain.Execution{}
	}
	c.JSON(http.StatusOK, executions)
}
