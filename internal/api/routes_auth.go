package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/handlers"
)

type authRouteDeps struct {
	Handler     *handlers.AuthHandler
	RequireAuth gin.HandlerFunc
	LoginLimit  gin.HandlerFunc
}

func registerAuthRoutes(api *gin.RouterGroup, deps authRouteDeps) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", deps.LoginLimit, deps.Handler.Login)
		auth.POST("/verify", deps.RequireAuth, deps.Handler.Verify)
		auth.POST("/logout", deps.Handler.Logout)
	}
}
