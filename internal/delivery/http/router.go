package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/delivery/http/middleware"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/usecase"
)

// NewRouter creates and configures the Gin router with all routes and middleware.
func NewRouter(
	runUC *usecase.RunJobUsecase,
	getUC *usecase.GetExecutionUsecase,
	listUC *usecase.ListExecutionsUsecase,
	registry *job.Registry,
	healthChecks map[string]HealthCheck,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		healthHandler := NewHealthHandler(logger, healthChecks)
		v1.GET("/health", healthHandler.Health)

		jobHandler := NewJobHandler(runUC, listUC, registry, logger)
		v1.GET("/jobs", jobHandler.List)
		v1.POST("/jobs/:name/run", jobHandler.Run)
		v1.GET("/jobs/:name/executions", jobHandler.Executions)

		execHandler := NewExecutionHandler(getUC, logger)
		v1.GET("/executions/:id", execHandler.GetByID)

		// WebSocket for real-time status updates
		wsHandler := NewWebSocketHandler(getUC, logger)
		v1.GET("/executions/:id/stream", wsHandler.Stream)
	}

	return router
}
