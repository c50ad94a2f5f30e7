package api

import (
	"github.com/gin-gonic/gin"
)

// contentHandler is implemented by every handler exposing list, read and write endpoints.
type contentHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// registerContentRoutes mounts public cached reads and authenticated writes.
// Articles and projects resolve :id as either an id or a slug.
func registerContentRoutes(r *gin.RouterGroup, cached, requireAuth gin.HandlerFunc, handler contentHandler) {
	if r == nil || handler == nil {
		return
	}

	r.GET("", cached, handler.List)
	r.GET("/:id", cached, handler.Get)
	r.POST("", requireAuth, handler.Create)
	r.PUT("/:id", requireAuth, handler.Update)
	r.DELETE("/:id", requireAuth, handler.Delete)
}
