package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/handlers"
)

// Only the active promotion is public; the full list is a back-office view and is never cached.
func registerPromotionRoutes(r *gin.RouterGroup, cached, requireAuth gin.HandlerFunc, handler *handlers.PromotionHandler) {
	if r == nil || handler == nil {
		return
	}

	r.GET("/active", cached, handler.Active)

	admin := r.Group("", requireAuth)
	{
		admin.GET("", handler.List)
		admin.GET("/:id", handler.Get)
		admin.POST("", handler.Create)
		admin.PUT("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}
}
