package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/handlers"
)

func registerUploadRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc, handler *handlers.UploadHandler) {
	if r == nil || handler == nil {
		return
	}

	r.Use(requireAuth)
	r.POST("", handler.Upload)
	r.DELETE("/:filename", handler.Delete)
}

func registerAdminRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc, stats *handlers.StatsHandler) {
	if r == nil || stats == nil {
		return
	}

	r.Use(requireAuth)
	r.GET("/stats", stats.Dashboard)
}
