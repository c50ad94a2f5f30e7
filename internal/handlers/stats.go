package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

// StatsHandler reports back-office dashboard counters.
type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GET /api/admin/stats
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
