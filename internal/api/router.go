// internal/api/router.go
package api

import (
	"net/http"
	"time"

	"reconciliation-service/internal/api/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the report routes and the health check.
func NewRouter(reportHandler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	apiV1 := router.Group("/api/v1")
	{
		// Sem Middleware -- Gateway lida com isso
		apiV1.POST("/reports", reportHandler.HandleBuildReport)
		apiV1.POST("/reports/duplicates", reportHandler.HandleDuplicates)
		apiV1.GET("/reports/:id", reportHandler.HandleGetReport)
		apiV1.GET("/reports/:id/export", reportHandler.HandleExportReport)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "reconciliation-service"})
	})

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
