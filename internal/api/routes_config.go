package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/handlers"
)

func registerConfigRoutes(r *gin.RouterGroup, cached, requireAuth gin.HandlerFunc, handler *handlers.SiteConfigHandler) {
	if r == nil || handler == nil {
		return
	}

	r.GET("", cached, handler.List)
	r.GET("/:key", cached, handler.Get)
	r.PUT("/:key", requireAuth, handler.Set)
}
