package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/domain"
	"github.com/jorgechato/website/internal/app/domain/gist"
	"github.com/jorgechato/website/internal/app/domain/home"
	"github.com/jorgechato/website/internal/app/domain/travel"
	"github.com/jorgechato/website/internal/content"
	"github.com/jorgechato/website/internal/pkg/config"
	"github.com/jorgechato/website/internal/pkg/markdown"
)

type AppHandlers struct {
	Home   *home.HomeHandlers
	Travel *travel.TravelHandlers
	How    *gist.HowHandlers
	Pages  *domain.BaseHandler
}

// Services are the upstream-backed dependencies of the handlers. Tests swap
// them for stubs.
type Services struct {
	Travel travel.Service
	Gist   gist.Service
}

func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	services, err := setupServices(cfg, log)
	if err != nil {
		log.Fatal("Failed to setup dependencies", zap.Error(err))
	}
	SetupWithServices(r, cfg, services, log)
}

// SetupWithServices registers every route against the given services.
func SetupWithServices(r *gin.Engine, cfg *config.Config, services Services, log *zap.Logger) {
	baseHandler := domain.NewBaseHandler(log, cfg.BaseURL)
	handlers := &AppHandlers{
		Home:   home.NewHomeHandlers(baseHandler, services.Travel),
		Travel: travel.NewTravelHandlers(baseHandler, services.Travel, log),
		How:    gist.NewHowHandlers(baseHandler, services.Gist, log),
		Pages:  baseHandler,
	}
	setupRouter(r, handlers)
}

func setupServices(cfg *config.Config, log *zap.Logger) (Services, error) {
	overrides, err := content.ThumbnailLocations(cfg.Nomads.ThumbnailsFile)
	if err != nil {
		return Services{}, err
	}

	travelService := travel.NewService(travel.Config{
		Username: cfg.Nomads.Username,
		Key:      cfg.Nomads.Key,
		BaseURL:  cfg.Nomads.BaseURL,
		Timeout:  cfg.Nomads.Timeout,
	}, overrides, log)

	gistService := gist.NewService(gist.Config{
		Owner:    cfg.Github.Owner,
		ID:       cfg.Github.Gist,
		CacheTTL: cfg.Github.CacheTTL,
	}, markdown.NewRenderer(), log)

	if cfg.Github.Gist == "" {
		log.Warn("GITHUB_GIST not set, how-to-work-with-me will show a placeholder")
	}

	return Services{Travel: travelService, Gist: gistService}, nil
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	{
		public.GET("/", h.Home.ShowHomePage)
		public.GET("/where-i-am-today", h.Travel.ShowWherePage)
		public.GET("/how-to-work-with-me", h.How.ShowHowPage)
	}

	api := r.Group("/api")
	{
		api.GET("/travel", h.Travel.GetSnapshot)
	}

	r.NoRoute(h.Pages.ShowNotFoundPage)
}
