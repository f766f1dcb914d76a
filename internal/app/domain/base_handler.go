package domain

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/models"
	"github.com/jorgechato/website/internal/app/observability/metrics"
	"github.com/jorgechato/website/internal/app/pages"
	"github.com/jorgechato/website/internal/content"
)

const siteTitle = "Jorge Chato"

type BaseHandler struct {
	Logger  *zap.Logger
	BaseURL string
}

func NewBaseHandler(logger *zap.Logger, baseURL string) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger, BaseURL: baseURL}
}

func (h *BaseHandler) newLayoutData(title, activeNav string, body templ.Component) models.LayoutTempl {
	return models.LayoutTempl{
		Title:     title,
		BaseURL:   h.BaseURL,
		Content:   body,
		Nav:       content.SiteMap,
		Social:    content.SocialLinks,
		ActiveNav: activeNav,
	}
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component, name string) {
	start := time.Now()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.String("component", name), zap.Error(err))
		_ = c.Error(err)
	}
	metrics.Get().TemplateRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("component", name)))
}

// RenderPage renders content inside the layout, or the bare fragment for
// HTMX requests.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, body templ.Component) {
	h.RenderPageStatus(c, http.StatusOK, title, activeNav, body)
}

func (h *BaseHandler) RenderPageStatus(c *gin.Context, status int, title, activeNav string, body templ.Component) {
	fullTitle := siteTitle
	if title != "" {
		fullTitle = title + " - " + siteTitle
	}

	if c.GetHeader("HX-Request") == "true" {
		h.render(c, status, body, activeNav)
		return
	}
	h.render(c, status, pages.LayoutPage(h.newLayoutData(fullTitle, activeNav, body)), activeNav)
}

func (h *BaseHandler) ShowNotFoundPage(c *gin.Context) {
	h.RenderPageStatus(c, http.StatusNotFound, "Not found", "", pages.NotFoundPage())
}
