package home

import (
	"github.com/gin-gonic/gin"

	"github.com/jorgechato/website/internal/app/domain"
	"github.com/jorgechato/website/internal/app/domain/travel"
	"github.com/jorgechato/website/internal/app/pages"
	"github.com/jorgechato/website/internal/content"
)

type HomeHandlers struct {
	*domain.BaseHandler
	travel travel.Service
}

func NewHomeHandlers(base *domain.BaseHandler, travelService travel.Service) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base, travel: travelService}
}

func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	snapshot := h.travel.Load(c.Request.Context())
	h.RenderPage(c, "", "Home", pages.HomePage(snapshot.Location.Now, content.SocialLinks))
}
