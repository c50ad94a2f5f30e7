package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/app"
	"github.com/vitrine-studio/vitrine/internal/middleware"
)

const spaIndex = "index.html"

// registerStaticRoutes serves uploaded media and, when configured, the
// single page front end. Unknown /api routes always get a JSON 404.
func registerStaticRoutes(r *gin.Engine, cfg *app.Config) {
	base := strings.TrimRight(strings.TrimSpace(cfg.Storage.PublicBaseURL), "/")
	dir := strings.TrimSpace(cfg.Storage.UploadDir)
	if strings.HasPrefix(base, "/") && !strings.HasPrefix(base, "/api") && dir != "" {
		r.StaticFS(base, gin.Dir(dir, false))
	}

	staticDir := strings.TrimSpace(cfg.Server.StaticDir)
	r.NoRoute(func(c *gin.Context) {
		if staticDir == "" || isAPIPath(c.Request.URL.Path) {
			middleware.NotFoundHandler(c)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			middleware.NotFoundHandler(c)
			return
		}
		serveSPA(c, staticDir)
	})
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// serveSPA serves the requested asset when it exists and index.html otherwise
// so client side routes resolve.
func serveSPA(c *gin.Context, root string) {
	clean := path.Clean("/" + c.Request.URL.Path)
	candidate := filepath.Join(root, filepath.FromSlash(clean))
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		c.File(candidate)
		return
	}

	index := filepath.Join(root, spaIndex)
	if _, err := os.Stat(index); err != nil {
		middleware.NotFoundHandler(c)
		return
	}
	c.File(index)
}
