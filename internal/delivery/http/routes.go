package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chatlens/bot/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Interaction webhook: slash-command and component events from the platform
	router.POST("/interactions", handler.Interactions)

	return router
}
