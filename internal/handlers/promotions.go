package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/models"
	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

const promotionsPath = "/api/promotions"

// PromotionHandler serves promotional banners. Only the active promotion is public.
type PromotionHandler struct {
	*RecordHandler[models.Promotion, services.PromotionInput, services.PromotionUpdate]
	svc *services.PromotionService
}

func NewPromotionHandler(svc *services.PromotionService, invalidator *cache.Invalidator) *PromotionHandler {
	return &PromotionHandler{
		RecordHandler: newRecordHandler[models.Promotion, services.PromotionInput, services.PromotionUpdate](svc, promotionsPath, invalidator),
		svc:           svc,
	}
}

// GET /api/promotions/active
//
// Responds with data null when no promotion is currently running.
func (h *PromotionHandler) Active(c *gin.Context) {
	promotion, err := h.svc.Active(requestContext(c), time.Time{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, promotion)
}
