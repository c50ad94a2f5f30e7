package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

const configPath = "/api/config"

// SiteConfigHandler exposes free-form site settings.
type SiteConfigHandler struct {
	svc         *services.SiteConfigService
	invalidator *cache.Invalidator
}

func NewSiteConfigHandler(svc *services.SiteConfigService, invalidator *cache.Invalidator) *SiteConfigHandler {
	return &SiteConfigHandler{svc: svc, invalidator: invalidator}
}

type configValueRequest struct {
	Value json.RawMessage `json:"value"`
}

// GET /api/config
func (h *SiteConfigHandler) List(c *gin.Context) {
	entries, err := h.svc.All(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// GET /api/config/:key
func (h *SiteConfigHandler) Get(c *gin.Context) {
	entry, err := h.svc.Get(requestContext(c), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// PUT /api/config/:key
func (h *SiteConfigHandler) Set(c *gin.Context) {
	var req configValueRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.svc.Set(requestContext(c), c.Param("key"), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Invalidate(configPath)
	response.Success(c, http.StatusOK, entry)
}
