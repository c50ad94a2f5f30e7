package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/handlers"
)

func registerHealthRoutes(api *gin.RouterGroup, handler *handlers.HealthHandler) {
	health := api.Group("/health")
	{
		health.GET("", handler.Health)
		health.GET("/live", handler.Live)
		health.GET("/ready", handler.Ready)
		health.GET("/db", handler.Database)
	}
}
