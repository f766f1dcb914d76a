package gist

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/domain"
	"github.com/jorgechato/website/internal/app/models"
	"github.com/jorgechato/website/internal/app/pages"
)

type HowHandlers struct {
	*domain.BaseHandler
	service Service
	logger  *zap.Logger
}

func NewHowHandlers(base *domain.BaseHandler, service Service, logger *zap.Logger) *HowHandlers {
	return &HowHandlers{
		BaseHandler: base,
		service:     service,
		logger:      logger,
	}
}

// ShowHowPage renders the gist; when it cannot be loaded the page still
// renders with a placeholder.
func (h *HowHandlers) ShowHowPage(c *gin.Context) {
	body, err := h.service.Page(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrContentNotConfig) {
			h.logger.Debug("GITHUB_GIST not set, rendering placeholder")
		} else {
			h.logger.Error("Failed to load how-to-work-with-me gist", zap.Error(err))
		}
		body = ""
	}
	h.RenderPage(c, "How to work with me", "How", pages.HowPage(body))
}
