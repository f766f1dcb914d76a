package travel

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/domain"
	"github.com/jorgechato/website/internal/app/pages"
)

type TravelHandlers struct {
	*domain.BaseHandler
	service Service
	logger  *zap.Logger
}

func NewTravelHandlers(base *domain.BaseHandler, service Service, logger *zap.Logger) *TravelHandlers {
	return &TravelHandlers{
		BaseHandler: base,
		service:     service,
		logger:      logger,
	}
}

func (h *TravelHandlers) ShowWherePage(c *gin.Context) {
	snapshot := h.service.Load(c.Request.Context())
	if snapshot.IsEmpty() {
		h.logger.Info("No travel data to show, rendering placeholder",
			zap.String("request_id", c.GetString("request_id")))
	}
	h.RenderPage(c, "Where I am today", "Where", pages.WherePage(snapshot))
}

// GetSnapshot always answers 200; an unavailable profile is the empty snapshot.
func (h *TravelHandlers) GetSnapshot(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.service.Load(c.Request.Context()))
}
