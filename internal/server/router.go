package server

import (
	"regexp"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jorgechato/website/internal/app/middleware"
	"github.com/jorgechato/website/internal/pkg/config"
	"github.com/jorgechato/website/internal/routes"
)

const serviceName = "jrg-website"

var assetsPath = regexp.MustCompile(`^/assets/`)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	useMiddleware(r, logger)
	routes.Setup(r, cfg, logger)

	return r
}

func useMiddleware(r *gin.Engine, logger *zap.Logger) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:             true,
		TimeFormat:      time.RFC3339,
		Context:         zapContextFunc(),
		SkipPaths:       []string{"/healthz"},
		SkipPathRegexps: []*regexp.Regexp{assetsPath},
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.OTELGinMiddleware(serviceName))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get(middleware.RequestIDHeader); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		if c.GetHeader("HX-Request") == "true" {
			fields = append(fields, zap.Bool("htmx", true))
		}

		return fields
	}
}
