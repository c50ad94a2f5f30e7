package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/monitoring"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	manager *monitoring.HealthManager
	now     func() time.Time
}

func NewHealthHandler(manager *monitoring.HealthManager) *HealthHandler {
	if manager == nil {
		manager = monitoring.NewHealthManager()
	}
	return &HealthHandler{manager: manager, now: time.Now}
}

// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC(),
	})
}

// GET /api/health/live
func (h *HealthHandler) Live(c *gin.Context) {
	h.writeReport(c, h.manager.EvaluateLiveness(requestContext(c)))
}

// GET /api/health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	h.writeReport(c, h.manager.EvaluateReadiness(requestContext(c)))
}

// GET /api/health/db
func (h *HealthHandler) Database(c *gin.Context) {
	result, ok := h.manager.Evaluate(requestContext(c), "database")
	if !ok {
		result = monitoring.ProbeResult{
			Component: "database",
			Status:    monitoring.StatusDown,
			Details:   "database check not registered",
		}
	}

	status := http.StatusOK
	if result.Status != monitoring.StatusUp {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response.Response{
		Success: status == http.StatusOK,
		Data:    result,
	})
}

func (h *HealthHandler) writeReport(c *gin.Context, report monitoring.HealthReport) {
	status := http.StatusOK
	if report.Status == monitoring.StatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response.Response{
		Success: report.Success,
		Data:    report,
	})
}
